package nfc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// APDU status words
const (
	SW1Success  = 0x90
	SW2Success  = 0x00
	SW1MoreData = 0x61 // More data available
)

// Common APDU command classes
const (
	CLAStandard = 0x00 // Standard ISO7816-4
	CLAPCSC     = 0xFF // PC/SC pseudo-APDU (reader commands)
)

// Instructions
const (
	INSGetUID     = 0xCA // PC/SC get UID
	INSReadBinary = 0xB0 // Read binary
	INSSelectFile = 0xA4 // Select file
)

// APDUResponse represents a parsed APDU response
type APDUResponse struct {
	Data []byte
	SW1  byte
	SW2  byte
}

// IsSuccess returns true if the response indicates success (SW1=90, SW2=00)
func (r APDUResponse) IsSuccess() bool {
	return r.SW1 == SW1Success && r.SW2 == SW2Success
}

// HasMoreData returns true if more data is available (SW1=61)
func (r APDUResponse) HasMoreData() bool {
	return r.SW1 == SW1MoreData
}

// Error returns an error if the response is not successful
func (r APDUResponse) Error() error {
	if r.IsSuccess() || r.HasMoreData() {
		return nil
	}
	return fmt.Errorf("APDU error: SW1=%02X SW2=%02X", r.SW1, r.SW2)
}

// StatusWord returns the 2-byte status word as uint16
func (r APDUResponse) StatusWord() uint16 {
	return uint16(r.SW1)<<8 | uint16(r.SW2)
}

// ParseAPDUResponse parses a raw response into APDUResponse
func ParseAPDUResponse(raw []byte) (APDUResponse, error) {
	if len(raw) < 2 {
		return APDUResponse{}, errors.New("response too short")
	}
	return APDUResponse{
		Data: raw[:len(raw)-2],
		SW1:  raw[len(raw)-2],
		SW2:  raw[len(raw)-1],
	}, nil
}

// BuildAPDU constructs an APDU command
func BuildAPDU(cla, ins, p1, p2 byte, data []byte, le *byte) []byte {
	cmd := []byte{cla, ins, p1, p2}

	if len(data) > 0 {
		cmd = append(cmd, byte(len(data)))
		cmd = append(cmd, data...)
	}

	if le != nil {
		cmd = append(cmd, *le)
	}

	return cmd
}

// GetUIDAPDU returns the PC/SC pseudo-APDU for getting the card UID
func GetUIDAPDU() []byte {
	le := byte(0x00)
	return BuildAPDU(CLAPCSC, INSGetUID, 0x00, 0x00, nil, &le)
}

// SelectAIDAPDU selects an application by AID.
func SelectAIDAPDU(aid []byte) []byte {
	le := byte(0x00)
	return BuildAPDU(CLAStandard, INSSelectFile, 0x04, 0x00, aid, &le)
}

// SelectFileAPDU selects an elementary file by its 2-byte identifier.
func SelectFileAPDU(fileID uint16) []byte {
	return BuildAPDU(CLAStandard, INSSelectFile, 0x00, 0x0C, Uint16ToBytes(fileID), nil)
}

// ReadBinaryAPDU reads length bytes at offset from the selected file.
func ReadBinaryAPDU(offset uint16, length byte) []byte {
	off := Uint16ToBytes(offset)
	return BuildAPDU(CLAStandard, INSReadBinary, off[0], off[1], nil, &length)
}

// PCSCReadPagesAPDU is the PC/SC storage-card read used for Ultralight pages.
// Readers answer with 16 bytes (four pages) starting at page.
func PCSCReadPagesAPDU(page byte) []byte {
	le := byte(16)
	return BuildAPDU(CLAPCSC, INSReadBinary, 0x00, page, nil, &le)
}

// Uint16ToBytes encodes v big-endian.
func Uint16ToBytes(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}
