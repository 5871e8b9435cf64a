package nfc

import (
	"fmt"

	"github.com/clausecker/freefare"
	"github.com/clausecker/nfc/v2"
)

// freefareUltralight adapts a freefare.UltralightTag to UltralightTech.
type freefareUltralight struct {
	tag freefare.UltralightTag
}

func (u *freefareUltralight) Connect() error {
	return u.tag.Connect()
}

func (u *freefareUltralight) Close() error {
	return u.tag.Disconnect()
}

// ReadPages reads four consecutive pages, matching the 16 byte READ command.
func (u *freefareUltralight) ReadPages(startPage int) ([]byte, error) {
	if startPage < 0 || startPage+3 > 0xFF {
		return nil, fmt.Errorf("page %d out of range", startPage)
	}
	out := make([]byte, 0, UltralightReadSize)
	for i := 0; i < 4; i++ {
		page, err := u.tag.ReadPage(byte(startPage + i))
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", startPage+i, err)
		}
		out = append(out, page[:]...)
	}
	return out, nil
}

// libnfcIsoDep is an ISO-DEP transport over a selected libnfc target.
type libnfcIsoDep struct {
	device nfc.Device
	uid    []byte
	maxLen int
}

func (t *libnfcIsoDep) Connect() error {
	if _, err := t.device.InitiatorSelectPassiveTarget(modulationISO14443A, t.uid); err != nil {
		return fmt.Errorf("select target: %w", err)
	}
	return nil
}

func (t *libnfcIsoDep) Close() error {
	return t.device.InitiatorDeselectTarget()
}

func (t *libnfcIsoDep) MaxTransceiveLength() int {
	return t.maxLen
}

func (t *libnfcIsoDep) Transceive(command []byte) ([]byte, error) {
	rx := make([]byte, max(t.maxLen+2, 264))
	n, err := t.device.InitiatorTransceiveBytes(command, rx, 0)
	if err != nil {
		return nil, fmt.Errorf("libnfc transceive: %w", err)
	}
	return rx[:n], nil
}
