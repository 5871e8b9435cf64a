package nfc

import (
	"encoding/hex"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Unavailable is shown in place of the payload when a tag yields no data.
const Unavailable = "Unavailable"

// FormatDisplay renders the two-line summary shown for a tag:
//
//	Data on card: <payload as UTF-8 or Unavailable>
//	ID: <FormatTagID(id)>
func FormatDisplay(id []byte, result ReadResult) string {
	payload := Unavailable
	if result.Ok() {
		payload = DecodePayload(result.Data)
	}
	return "Data on card: " + payload + "\nID: " + FormatTagID(id)
}

// FormatTagID renders an ID as " 0x" followed by lowercase hex digits with
// no separators. An empty ID renders as "null".
func FormatTagID(id []byte) string {
	if len(id) == 0 {
		return "null"
	}
	const digits = "0123456789abcdef"
	var sb strings.Builder
	sb.Grow(3 + 2*len(id))
	sb.WriteString(" 0x")
	for _, b := range id {
		sb.WriteByte(digits[b>>4])
		sb.WriteByte(digits[b&0x0F])
	}
	return sb.String()
}

// DecodePayload decodes data as UTF-8, substituting U+FFFD for invalid bytes.
func DecodePayload(data []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(decoded)
}

// BytesToHex renders b as uppercase hex without separators, the form used
// for UIDs in logs and as cache keys.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
