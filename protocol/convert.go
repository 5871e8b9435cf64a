package protocol

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var validHex = regexp.MustCompile(`^[0-9A-F]+$`)

// ParseUID normalizes a UID from various formats to colon-separated uppercase hex.
// Supports: "04:AB:CD:EF", "04ABCDEF", "04 AB CD EF", "04-AB-CD-EF", "0x04abcdef"
func ParseUID(uid string) (string, error) {
	cleaned := strings.TrimSpace(uid)
	if cleaned == "" {
		return "", fmt.Errorf("empty UID")
	}

	cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, "0x"), "0X")
	cleaned = strings.NewReplacer(":", "", " ", "", "-", "").Replace(cleaned)
	cleaned = strings.ToUpper(cleaned)

	if !validHex.MatchString(cleaned) {
		return "", fmt.Errorf("UID contains invalid characters: %s", uid)
	}
	if len(cleaned)%2 != 0 {
		return "", fmt.Errorf("UID has odd number of hex characters: %s", uid)
	}

	raw, _ := hex.DecodeString(cleaned)
	return FormatUID(raw), nil
}

// FormatUID renders a tag identifier as colon-separated uppercase hex.
func FormatUID(id []byte) string {
	var sb strings.Builder
	for i, b := range id {
		if i > 0 {
			sb.WriteByte(':')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
