package nfc

import (
	"errors"
	"testing"

	"github.com/hsanjuan/go-ndef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textMessage builds a single text record message and its wire form.
func textMessage(t *testing.T, text string) (*ndef.Message, []byte) {
	t.Helper()
	rec := ndef.NewTextRecord(text, "en")
	rec.SetMB(true)
	rec.SetME(true)
	msg := &ndef.Message{Records: []*ndef.Record{rec}}
	raw, err := msg.Marshal()
	require.NoError(t, err)
	return msg, raw
}

// type2Image lays out a Type 2 tag: UID/lock pages, a CC with the given data
// area size, then area starting at page 4.
func type2Image(sizeByte byte, area []byte) []byte {
	mem := make([]byte, 16+int(sizeByte)*8)
	copy(mem[0:], []byte{0x04, 0xA1, 0xB2, 0x8F, 0xC3, 0xD4, 0xE5, 0xF6, 0x00, 0x48, 0x00, 0x00})
	copy(mem[12:], []byte{0xE1, 0x10, sizeByte, 0x00})
	copy(mem[16:], area)
	return mem
}

func TestType2Ndef_ReadsMessage(t *testing.T) {
	_, raw := textMessage(t, "hello")
	tech := NewMockUltralight(type2Image(0x06, TLVEncode(raw, TLVNDEF)))

	msg, err := NewType2Ndef(tech).Message()

	require.NoError(t, err)
	require.NotNil(t, msg)
	got, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Equal(t, []int{3, 4, 8, 12}, tech.PagesRead)
}

func TestType2Ndef_SkipsLockControlTLV(t *testing.T) {
	_, raw := textMessage(t, "locked")
	area := append([]byte{TLVLockCtrl, 0x03, 0xA0, 0x10, 0x44}, TLVEncode(raw, TLVNDEF)...)
	tech := NewMockUltralight(type2Image(0x12, area))

	msg, err := NewType2Ndef(tech).Message()

	require.NoError(t, err)
	require.NotNil(t, msg)
	require.Len(t, msg.Records, 1)
}

func TestType2Ndef_NotFormatted(t *testing.T) {
	mem := type2Image(0x06, nil)
	mem[12] = 0x00
	tech := NewMockUltralight(mem)

	msg, err := NewType2Ndef(tech).Message()

	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.Equal(t, []int{3}, tech.PagesRead)
}

func TestType2Ndef_EmptyNdefTLV(t *testing.T) {
	tech := NewMockUltralight(type2Image(0x06, []byte{TLVNDEF, 0x00, TLVTerminator}))

	msg, err := NewType2Ndef(tech).Message()

	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestType2Ndef_Errors(t *testing.T) {
	t.Run("zero data area", func(t *testing.T) {
		tech := NewMockUltralight(type2Image(0x06, nil))
		tech.Memory[14] = 0x00
		_, err := NewType2Ndef(tech).Message()
		assert.Error(t, err)
	})

	t.Run("read failure", func(t *testing.T) {
		tech := NewMockUltralight(type2Image(0x06, nil))
		tech.ReadError = errors.New("NAK")
		_, err := NewType2Ndef(tech).Message()
		assert.ErrorContains(t, err, "capability container")
	})

	t.Run("malformed message", func(t *testing.T) {
		tech := NewMockUltralight(type2Image(0x06, TLVEncode([]byte{0xFF, 0xFF}, TLVNDEF)))
		_, err := NewType2Ndef(tech).Message()
		assert.ErrorContains(t, err, "parse NDEF message")
	})
}
