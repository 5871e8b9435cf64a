package nfc

import (
	"fmt"

	"github.com/hsanjuan/go-ndef"
)

// Type 2 capability container layout (page 3).
const (
	type2CCPage      = 3
	type2CCMagic     = 0xE1
	type2MaxDataSize = 0xFF * 8
)

// type2Ndef reads NDEF messages from NFC Forum Type 2 tags (MIFARE
// Ultralight, NTAG) through their page interface.
type type2Ndef struct {
	tech UltralightTech
}

// NewType2Ndef exposes the NDEF interface of a Type 2 tag.
func NewType2Ndef(tech UltralightTech) NdefTech {
	return &type2Ndef{tech: tech}
}

func (t *type2Ndef) Connect() error { return t.tech.Connect() }
func (t *type2Ndef) Close() error   { return t.tech.Close() }

// Message returns nil when the tag is not NDEF formatted or holds an empty
// NDEF TLV.
func (t *type2Ndef) Message() (*ndef.Message, error) {
	cc, err := t.tech.ReadPages(type2CCPage)
	if err != nil {
		return nil, fmt.Errorf("read capability container: %w", err)
	}
	if len(cc) < 4 {
		return nil, fmt.Errorf("capability container too short (%d bytes)", len(cc))
	}
	if cc[0] != type2CCMagic {
		return nil, nil
	}

	size := int(cc[2]) * 8
	if size == 0 || size > type2MaxDataSize {
		return nil, fmt.Errorf("invalid data area size %d", size)
	}

	area := make([]byte, 0, size+UltralightReadSize)
	for page := UltralightUserPage; len(area) < size; page += 4 {
		chunk, err := t.tech.ReadPages(page)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", page, err)
		}
		if len(chunk) > UltralightReadSize {
			chunk = chunk[:UltralightReadSize]
		}
		if len(chunk) == 0 {
			break
		}
		area = append(area, chunk...)
	}
	if len(area) > size {
		area = area[:size]
	}

	value, found, err := TLVFindNDEF(area)
	if err != nil {
		return nil, err
	}
	if !found || len(value) == 0 {
		return nil, nil
	}
	return unmarshalNdef(value)
}

func unmarshalNdef(raw []byte) (*ndef.Message, error) {
	msg := &ndef.Message{}
	if _, err := msg.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("parse NDEF message: %w", err)
	}
	return msg, nil
}
