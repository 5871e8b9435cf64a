package nfc

import (
	"io"
	"log"
	"math"
	"os"
	"time"
)

// ISO-DEP read defaults.
const (
	DefaultIsoDepAttempts   = 3
	DefaultIsoDepRetryDelay = 500 * time.Millisecond
)

const opReadIsoDep = "ReadIsoDep"

// ReadBinaryCommand is the 5-byte {CLA, INS, P1, P2, LEN} read command.
// P1/P2 carry the read offset big-endian. LEN is left at 0x00, which asks
// the card for everything it can return in one frame.
type ReadBinaryCommand [5]byte

// NewReadBinaryCommand returns the command for offset 0.
func NewReadBinaryCommand() ReadBinaryCommand {
	return ReadBinaryCommand{CLAStandard, INSReadBinary, 0x00, 0x00, 0x00}
}

// SetOffset encodes offset into P1 (high byte) and P2 (low byte).
func (c *ReadBinaryCommand) SetOffset(offset uint16) {
	c[2] = byte(offset >> 8)
	c[3] = byte(offset & 0xFF)
}

// Offset decodes P1/P2.
func (c ReadBinaryCommand) Offset() uint16 {
	return uint16(c[2])<<8 | uint16(c[3])
}

// Bytes returns a copy of the command suitable for a transceive call.
func (c ReadBinaryCommand) Bytes() []byte {
	out := make([]byte, len(c))
	copy(out, c[:])
	return out
}

// IsoDepConfig controls the retry policy of the first READ BINARY.
type IsoDepConfig struct {
	Attempts   int
	RetryDelay time.Duration
}

func (c IsoDepConfig) withDefaults() IsoDepConfig {
	if c.Attempts <= 0 {
		c.Attempts = DefaultIsoDepAttempts
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	} else if c.RetryDelay == 0 {
		c.RetryDelay = DefaultIsoDepRetryDelay
	}
	return c
}

// IsoDepReader reads a card's binary content over ISO-DEP.
//
// The first command is retried; if its response fills a whole frame the
// reader keeps issuing READ BINARY at the running offset until the card
// answers with an empty response. Continuation reads are not retried.
type IsoDepReader struct {
	config IsoDepConfig
	clock  Clock
	logger *log.Logger
}

// NewIsoDepReader creates a reader. A nil clock or logger selects the defaults.
func NewIsoDepReader(config IsoDepConfig, clock Clock, logger *log.Logger) *IsoDepReader {
	if clock == nil {
		clock = NewRealClock()
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[isodep] ", log.LstdFlags)
	}
	return &IsoDepReader{
		config: config.withDefaults(),
		clock:  clock,
		logger: logger,
	}
}

// Read connects to tech, reads all available data and always closes the
// connection before returning.
func (r *IsoDepReader) Read(tech IsoDepTech) ([]byte, error) {
	defer release(r.logger, opReadIsoDep, tech)
	if err := tech.Connect(); err != nil {
		return nil, NewConnectError(opReadIsoDep, err)
	}

	maxLen := tech.MaxTransceiveLength()
	cmd := NewReadBinaryCommand()

	resp, err := r.transceiveWithRetry(tech, cmd)
	if err != nil {
		return nil, err
	}
	if len(resp) != maxLen {
		return resp, nil
	}

	r.logger.Printf("Response filled the %d byte frame, reading continuation", maxLen)
	return r.readContinuation(tech, cmd, resp)
}

func (r *IsoDepReader) transceiveWithRetry(tech IsoDepTech, cmd ReadBinaryCommand) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= r.config.Attempts; attempt++ {
		resp, err := tech.Transceive(cmd.Bytes())
		if err == nil {
			if resp == nil {
				resp = []byte{}
			}
			return resp, nil
		}
		lastErr = err
		r.logger.Printf("READ BINARY attempt %d/%d failed: %v", attempt, r.config.Attempts, err)
		if attempt < r.config.Attempts && r.config.RetryDelay > 0 {
			r.clock.Sleep(r.config.RetryDelay)
		}
	}
	return nil, NewRetriesExhaustedError(opReadIsoDep, r.config.Attempts, lastErr)
}

func (r *IsoDepReader) readContinuation(tech IsoDepTech, cmd ReadBinaryCommand, first []byte) ([]byte, error) {
	data := make([]byte, 0, 2*len(first))
	data = append(data, first...)

	for {
		if len(data) > math.MaxUint16 {
			return nil, Errorf(ErrCodeInvalidData, opReadIsoDep, "offset %d exceeds 16-bit addressing", len(data))
		}
		cmd.SetOffset(uint16(len(data)))

		chunk, err := tech.Transceive(cmd.Bytes())
		if err != nil {
			return nil, NewTransceiveError(opReadIsoDep, err)
		}
		if len(chunk) == 0 {
			return data, nil
		}
		data = append(data, chunk...)
	}
}

// release closes a technology session, logging instead of returning errors
// so a failed close never replaces the read result.
func release(logger *log.Logger, op string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Printf("%s: close failed: %v", op, err)
	}
}
