package nfc

import "fmt"

// TLV block types found in the data area of Type 2 tags.
const (
	TLVNull       = 0x00
	TLVLockCtrl   = 0x01
	TLVMemCtrl    = 0x02
	TLVNDEF       = 0x03
	TLVTerminator = 0xFE
)

// TLVEncode wraps value in a TLV of the given type followed by a Terminator.
// Lengths of 0xFF and above use the three-byte form.
func TLVEncode(value []byte, tlvType byte) []byte {
	out := []byte{tlvType}
	if n := len(value); n < 0xFF {
		out = append(out, byte(n))
	} else {
		out = append(out, 0xFF, byte(n>>8), byte(n))
	}
	out = append(out, value...)
	return append(out, TLVTerminator)
}

// TLVFindNDEF walks a TLV area and returns the value of the first NDEF
// Message TLV. found is false when a Terminator or the end of the data is
// reached first; err reports a TLV that runs past the data.
func TLVFindNDEF(data []byte) (value []byte, found bool, err error) {
	offset := 0
	for offset < len(data) {
		tlvType := data[offset]
		switch tlvType {
		case TLVNull:
			offset++
			continue
		case TLVTerminator:
			return nil, false, nil
		}

		length, header, err := tlvLength(data[offset:])
		if err != nil {
			return nil, false, fmt.Errorf("TLV 0x%02X at offset %d: %w", tlvType, offset, err)
		}
		start := offset + header
		if start+length > len(data) {
			return nil, false, fmt.Errorf("TLV 0x%02X at offset %d: value (len %d) exceeds buffer", tlvType, offset, length)
		}
		if tlvType == TLVNDEF {
			return data[start : start+length], true, nil
		}
		offset = start + length
	}
	return nil, false, nil
}

// tlvLength decodes the length field of the TLV starting at data[0] and
// returns the value length and the size of type plus length fields.
func tlvLength(data []byte) (length, header int, err error) {
	if len(data) < 2 {
		return 0, 0, fmt.Errorf("length field missing")
	}
	if data[1] != 0xFF {
		return int(data[1]), 2, nil
	}
	if len(data) < 4 {
		return 0, 0, fmt.Errorf("long length field truncated")
	}
	return int(data[2])<<8 | int(data[3]), 4, nil
}
