package nfc

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFormatTagID(t *testing.T) {
	tests := []struct {
		id   []byte
		want string
	}{
		{nil, "null"},
		{[]byte{}, "null"},
		{[]byte{0x00}, " 0x00"},
		{[]byte{0x04, 0xA1, 0xB2, 0xC3}, " 0x04a1b2c3"},
		{[]byte{0xFF, 0x0F}, " 0xff0f"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTagID(tt.id))
	}
}

func TestFormatDisplay(t *testing.T) {
	ok := dataResult(ReaderUltralight, []byte("hello"))
	assert.Equal(t, "Data on card: hello\nID:  0x0102", FormatDisplay([]byte{0x01, 0x02}, ok))

	failed := errorResult(ReaderIsoDep, errors.New("boom"))
	assert.Equal(t, "Data on card: Unavailable\nID: null", FormatDisplay(nil, failed))

	empty := dataResult(ReaderIsoDep, nil)
	assert.Equal(t, "Data on card: \nID:  0x01", FormatDisplay([]byte{0x01}, empty))
}

func TestDecodePayload(t *testing.T) {
	assert.Equal(t, "plain", DecodePayload([]byte("plain")))
	assert.Equal(t, "héllo", DecodePayload([]byte("héllo")))
	assert.Equal(t, "a\uFFFDb", DecodePayload([]byte{'a', 0xFF, 'b'}))
}

func TestDecodePayload_AlwaysValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "data")
		out := DecodePayload(data)
		if !utf8.ValidString(out) {
			t.Fatalf("invalid UTF-8 from % X", data)
		}
		if utf8.Valid(data) && out != string(data) {
			t.Fatalf("valid input altered: %q -> %q", data, out)
		}
	})
}

func TestFormatTagID_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.SliceOfN(rapid.Byte(), 1, 10).Draw(t, "id")
		out := FormatTagID(id)
		if !strings.HasPrefix(out, " 0x") || len(out) != 3+2*len(id) {
			t.Fatalf("FormatTagID(% X) = %q", id, out)
		}
		if strings.ToLower(out) != out {
			t.Fatalf("uppercase digits in %q", out)
		}
	})
}
