package nfc

import "log"

const (
	opReadUltralight = "ReadUltralight"

	// UltralightUserPage is the first page after the UID, lock and CC pages.
	UltralightUserPage = 4
	// UltralightReadSize is what one READ returns: four 4-byte pages.
	UltralightReadSize = 16
)

// readUltralight returns pages 4-7. Short reads are zero-padded to 16 bytes.
func readUltralight(logger *log.Logger, tech UltralightTech) ([]byte, error) {
	defer release(logger, opReadUltralight, tech)
	if err := tech.Connect(); err != nil {
		return nil, NewConnectError(opReadUltralight, err)
	}

	pages, err := tech.ReadPages(UltralightUserPage)
	if err != nil {
		return nil, NewReadError(opReadUltralight, err)
	}

	out := make([]byte, UltralightReadSize)
	copy(out, pages)
	return out, nil
}
