package nfc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hsanjuan/go-ndef"
)

// NdefApplicationAID is the NFC Forum Type 4 NDEF Tag Application (v2).
var NdefApplicationAID = []byte{0xD2, 0x76, 0x00, 0x00, 0x85, 0x01, 0x01}

const (
	type4CCFileID      = 0xE103
	type4CCLength      = 15
	type4NdefFileTLV   = 0x04
	type4MaxReadLength = 0xFD
	type4AppNotFound   = 0x6A82
)

// type4Ndef reads the NDEF file of an NFC Forum Type 4 tag over ISO-DEP.
type type4Ndef struct {
	tech IsoDepTech
}

// NewType4Ndef exposes the NDEF interface of an ISO-DEP tag.
func NewType4Ndef(tech IsoDepTech) NdefTech {
	return &type4Ndef{tech: tech}
}

func (t *type4Ndef) Connect() error { return t.tech.Connect() }
func (t *type4Ndef) Close() error   { return t.tech.Close() }

// Message returns nil when the tag has no NDEF application or an empty NDEF file.
func (t *type4Ndef) Message() (*ndef.Message, error) {
	resp, err := t.command(SelectAIDAPDU(NdefApplicationAID))
	if err != nil {
		return nil, fmt.Errorf("select NDEF application: %w", err)
	}
	if resp.StatusWord() == type4AppNotFound {
		return nil, nil
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("select NDEF application: %w", err)
	}

	if err := t.selectFile(type4CCFileID); err != nil {
		return nil, fmt.Errorf("select capability container: %w", err)
	}
	cc, err := t.readBinary(0, type4CCLength)
	if err != nil {
		return nil, fmt.Errorf("read capability container: %w", err)
	}
	fileID, mle, err := parseType4CC(cc)
	if err != nil {
		return nil, err
	}
	if limit := t.tech.MaxTransceiveLength() - 2; limit > 0 && mle > limit {
		mle = limit
	}

	if err := t.selectFile(fileID); err != nil {
		return nil, fmt.Errorf("select NDEF file %04X: %w", fileID, err)
	}
	nlenBytes, err := t.readBinary(0, 2)
	if err != nil {
		return nil, fmt.Errorf("read NLEN: %w", err)
	}
	nlen := int(binary.BigEndian.Uint16(nlenBytes))
	if nlen == 0 {
		return nil, nil
	}

	raw := make([]byte, 0, nlen)
	for len(raw) < nlen {
		if 2+len(raw) > math.MaxUint16 {
			return nil, Errorf(ErrCodeInvalidData, opReadNdef, "NDEF file offset %d exceeds 16-bit addressing", 2+len(raw))
		}
		n := min(nlen-len(raw), mle)
		chunk, err := t.readBinary(uint16(2+len(raw)), byte(n))
		if err != nil {
			return nil, fmt.Errorf("read NDEF file at %d: %w", len(raw), err)
		}
		if len(chunk) == 0 {
			return nil, fmt.Errorf("read NDEF file at %d: empty response", len(raw))
		}
		raw = append(raw, chunk...)
	}
	return unmarshalNdef(raw[:nlen])
}

// parseType4CC returns the NDEF file identifier and the maximum R-APDU data
// size from a capability container.
func parseType4CC(cc []byte) (fileID uint16, mle int, err error) {
	if len(cc) < type4CCLength {
		return 0, 0, fmt.Errorf("capability container too short (%d bytes)", len(cc))
	}
	mle = int(binary.BigEndian.Uint16(cc[3:5]))
	if mle > type4MaxReadLength {
		mle = type4MaxReadLength
	}
	if mle == 0 {
		return 0, 0, fmt.Errorf("capability container declares MLe of 0")
	}
	if cc[7] != type4NdefFileTLV || cc[8] < 6 {
		return 0, 0, fmt.Errorf("NDEF file control TLV missing (T=%02X L=%02X)", cc[7], cc[8])
	}
	return binary.BigEndian.Uint16(cc[9:11]), mle, nil
}

func (t *type4Ndef) command(apdu []byte) (APDUResponse, error) {
	raw, err := t.tech.Transceive(apdu)
	if err != nil {
		return APDUResponse{}, err
	}
	return ParseAPDUResponse(raw)
}

func (t *type4Ndef) selectFile(id uint16) error {
	resp, err := t.command(SelectFileAPDU(id))
	if err != nil {
		return err
	}
	return resp.Error()
}

func (t *type4Ndef) readBinary(offset uint16, length byte) ([]byte, error) {
	resp, err := t.command(ReadBinaryAPDU(offset, length))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("APDU error: SW1=%02X SW2=%02X", resp.SW1, resp.SW2)
	}
	return resp.Data, nil
}
