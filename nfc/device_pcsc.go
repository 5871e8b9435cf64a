package nfc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ebfe/scard"

	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
)

// pcscDevice implements Device for one PC/SC reader slot.
type pcscDevice struct {
	ctx        *scard.Context
	readerName string
	cfg        DeviceConfig

	mu   syncutil.Mutex
	card *scard.Card
	tag  *hardwareTag

	// unsupportedATR suppresses repeated logs for the card on the reader
	unsupportedATR string
}

func newPCSCDevice(ctx *scard.Context, readerName string, cfg DeviceConfig) *pcscDevice {
	return &pcscDevice{ctx: ctx, readerName: readerName, cfg: cfg}
}

func (d *pcscDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disconnectLocked()
}

// InitiatorInit checks the reader is still attached.
func (d *pcscDevice) InitiatorInit() error {
	if _, err := readerState(d.ctx, d.readerName); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func (d *pcscDevice) String() string {
	return d.readerName
}

func (d *pcscDevice) Connection() string {
	return "pcsc:" + d.readerName
}

// Tags returns the card on the reader, connecting to it on first sight.
func (d *pcscDevice) Tags() ([]TagEvent, error) {
	state, err := readerState(d.ctx, d.readerName)
	if err != nil {
		return nil, fmt.Errorf("%w: reader %s: %v", ErrIO, d.readerName, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if state&scard.StatePresent == 0 {
		if err := d.disconnectLocked(); err != nil {
			d.cfg.Logger.Printf("Disconnect after removal: %v", err)
		}
		return nil, nil
	}

	if d.card == nil {
		if err := d.connectLocked(); err != nil {
			if isCardRemovedPCSCError(err) {
				return nil, nil
			}
			return nil, err
		}
	}
	return []TagEvent{newTagEvent(d.tag)}, nil
}

func (d *pcscDevice) connectLocked() error {
	card, err := d.ctx.Connect(d.readerName, scard.ShareShared, scard.ProtocolAny)
	if err != nil {
		return fmt.Errorf("failed to connect to card on %s: %w", d.readerName, err)
	}

	// scard panics on transmit with any other protocol
	proto := card.ActiveProtocol()
	if proto != scard.ProtocolT0 && proto != scard.ProtocolT1 {
		card.Disconnect(scard.LeaveCard)
		return fmt.Errorf("unsupported card protocol: %d", proto)
	}

	status, err := card.Status()
	if err != nil {
		card.Disconnect(scard.LeaveCard)
		return fmt.Errorf("failed to get card status: %w", err)
	}

	d.card = card
	uid, err := d.getUIDLocked()
	if err != nil {
		d.cfg.Logger.Printf("Warning: could not get UID: %v", err)
	}

	family := detectFamilyFromATR(status.Atr)
	switch family {
	case familyUltralight:
		d.tag = newHardwareTag(uid, &pcscUltralight{dev: d}, nil)
	case familyDESFire, familyISO14443_4:
		d.tag = newHardwareTag(uid, nil, &pcscIsoDep{dev: d, maxLen: d.cfg.MaxTransceiveLength})
	default:
		d.tag = newHardwareTag(uid, nil, nil)
		if atr := BytesToHex(status.Atr); atr != d.unsupportedATR {
			d.unsupportedATR = atr
			d.cfg.Logger.Printf("Card family %s (ATR %s) only offers NfcA", family, atr)
		}
	}
	return nil
}

func (d *pcscDevice) disconnectLocked() error {
	d.tag = nil
	if d.card == nil {
		return nil
	}
	err := d.card.Disconnect(scard.LeaveCard)
	d.card = nil
	return err
}

// transmit sends an APDU to the connected card.
func (d *pcscDevice) transmit(apdu []byte) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transmitLocked(apdu)
}

func (d *pcscDevice) transmitLocked(apdu []byte) ([]byte, error) {
	if d.card == nil {
		return nil, NewCardRemovedError(fmt.Errorf("no card connected"))
	}
	rx, err := d.card.Transmit(apdu)
	if err != nil {
		if isCardRemovedPCSCError(err) {
			return nil, NewCardRemovedError(err)
		}
		return nil, fmt.Errorf("pcsc transmit: %w", err)
	}
	return rx, nil
}

// getUIDLocked retrieves the card UID with the GET DATA pseudo-APDU.
func (d *pcscDevice) getUIDLocked() ([]byte, error) {
	resp, err := d.transmitLocked(GetUIDAPDU())
	if err != nil {
		return nil, fmt.Errorf("GET UID failed: %w", err)
	}
	parsed, err := ParseAPDUResponse(resp)
	if err != nil {
		return nil, err
	}
	if !parsed.IsSuccess() {
		return nil, parsed.Error()
	}
	return parsed.Data, nil
}

// isCardRemovedPCSCError checks if a PC/SC error indicates the card was removed.
func isCardRemovedPCSCError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, scard.ErrRemovedCard) ||
		errors.Is(err, scard.ErrResetCard) ||
		errors.Is(err, scard.ErrNoSmartcard) ||
		errors.Is(err, scard.ErrUnpoweredCard) {
		return true
	}
	errLower := strings.ToLower(err.Error())
	return strings.Contains(errLower, "removed") ||
		strings.Contains(errLower, "no smart card") ||
		strings.Contains(errLower, "unpowered")
}
