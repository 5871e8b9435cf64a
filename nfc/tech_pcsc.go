package nfc

import "fmt"

// pcscUltralight reads Ultralight pages through the reader's storage card
// READ BINARY pseudo-APDU.
type pcscUltralight struct {
	dev *pcscDevice
}

// Connect is a no-op: the card session is owned by the device.
func (u *pcscUltralight) Connect() error { return nil }
func (u *pcscUltralight) Close() error   { return nil }

func (u *pcscUltralight) ReadPages(startPage int) ([]byte, error) {
	if startPage < 0 || startPage > 0xFF {
		return nil, fmt.Errorf("page %d out of range", startPage)
	}
	resp, err := u.dev.transmit(PCSCReadPagesAPDU(byte(startPage)))
	if err != nil {
		return nil, err
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

// pcscIsoDep passes APDUs straight to the card; the reader handles the
// ISO14443-4 framing.
type pcscIsoDep struct {
	dev    *pcscDevice
	maxLen int
}

func (t *pcscIsoDep) Connect() error { return nil }
func (t *pcscIsoDep) Close() error   { return nil }

func (t *pcscIsoDep) MaxTransceiveLength() int {
	return t.maxLen
}

func (t *pcscIsoDep) Transceive(command []byte) ([]byte, error) {
	return t.dev.transmit(command)
}
