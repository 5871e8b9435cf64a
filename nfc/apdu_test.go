package nfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPDUResponse(t *testing.T) {
	resp, err := ParseAPDUResponse([]byte{0x01, 0x02, 0x90, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, resp.Data)
	assert.True(t, resp.IsSuccess())
	assert.NoError(t, resp.Error())
	assert.Equal(t, uint16(0x9000), resp.StatusWord())

	resp, err = ParseAPDUResponse([]byte{0x6A, 0x82})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.False(t, resp.IsSuccess())
	assert.EqualError(t, resp.Error(), "APDU error: SW1=6A SW2=82")

	resp, err = ParseAPDUResponse([]byte{0x61, 0x10})
	require.NoError(t, err)
	assert.True(t, resp.HasMoreData())
	assert.NoError(t, resp.Error())

	_, err = ParseAPDUResponse([]byte{0x90})
	assert.Error(t, err)
}

func TestAPDUBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"get uid", GetUIDAPDU(), []byte{0xFF, 0xCA, 0x00, 0x00, 0x00}},
		{"select ndef app", SelectAIDAPDU(NdefApplicationAID), []byte{0x00, 0xA4, 0x04, 0x00, 0x07, 0xD2, 0x76, 0x00, 0x00, 0x85, 0x01, 0x01, 0x00}},
		{"select cc", SelectFileAPDU(0xE103), []byte{0x00, 0xA4, 0x00, 0x0C, 0x02, 0xE1, 0x03}},
		{"read binary", ReadBinaryAPDU(0x0102, 0x0F), []byte{0x00, 0xB0, 0x01, 0x02, 0x0F}},
		{"pcsc read pages", PCSCReadPagesAPDU(4), []byte{0xFF, 0xB0, 0x00, 0x04, 0x10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
