package nfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFamilyFromATR(t *testing.T) {
	tests := []struct {
		name string
		atr  []byte
		want cardFamily
	}{
		{
			name: "ultralight",
			atr:  []byte{0x3B, 0x8F, 0x80, 0x01, 0x80, 0x4F, 0x0C, 0xA0, 0x00, 0x00, 0x03, 0x06, 0x03, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x68},
			want: familyUltralight,
		},
		{
			name: "classic 1k",
			atr:  []byte{0x3B, 0x8F, 0x80, 0x01, 0x80, 0x4F, 0x0C, 0xA0, 0x00, 0x00, 0x03, 0x06, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x6A},
			want: familyClassic,
		},
		{
			name: "desfire",
			atr:  []byte{0x3B, 0x81, 0x80, 0x01, 0x80, 0x80},
			want: familyISO14443_4,
		},
		{
			name: "unknown card name",
			atr:  []byte{0x3B, 0x8F, 0x80, 0x01, 0x80, 0x4F, 0x0C, 0xA0, 0x00, 0x00, 0x03, 0x06, 0x03, 0x00, 0x7F, 0x00, 0x00, 0x00, 0x00, 0x6A},
			want: familyUnknown,
		},
		{name: "too short", atr: []byte{0x3B}, want: familyUnknown},
		{name: "bad TS", atr: []byte{0x00, 0x81, 0x80, 0x01, 0x80}, want: familyUnknown},
		{name: "no historical bytes", atr: []byte{0x3B, 0x80, 0x80, 0x01}, want: familyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFamilyFromATR(tt.atr))
		})
	}
}

func TestFindHistoricalBytesStart(t *testing.T) {
	assert.Equal(t, 4, findHistoricalBytesStart([]byte{0x3B, 0x81, 0x80, 0x01, 0x80, 0x80}))
	assert.Equal(t, 2, findHistoricalBytesStart([]byte{0x3B, 0x02, 0x14, 0x50}))
	assert.Equal(t, -1, findHistoricalBytesStart([]byte{0x3B, 0x81, 0x80}))
}
