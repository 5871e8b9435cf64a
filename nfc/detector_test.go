package nfc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector(selection Selection, clock Clock) *Detector {
	return NewDetector(DetectorConfig{
		Selection: selection,
		Clock:     clock,
		Logger:    quietLogger(),
	})
}

// ultralightMemory returns a 16 page image whose user pages hold 0x10..0x1F.
func ultralightMemory() []byte {
	mem := make([]byte, 64)
	for i := 16; i < 32; i++ {
		mem[i] = byte(i)
	}
	return mem
}

func TestDetector_NdefTakesPriority(t *testing.T) {
	msg, raw := textMessage(t, "ndef wins")
	ndefTech := &MockNdef{Msg: msg}
	isoDep := &MockIsoDep{MaxLen: 253, Responses: []MockResponse{{Data: []byte{0x01}}}}
	tag := &MockTag{
		TagID:      []byte{0x04, 0x11},
		Techs:      []string{TechIsoDep, TechNfcA, TechNdef},
		NdefTech:   ndefTech,
		IsoDepTech: isoDep,
	}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	require.True(t, result.Ok())
	assert.Equal(t, ReaderNdef, result.Reader)
	assert.Equal(t, raw, result.Data)
	assert.True(t, ndefTech.Balanced())
	assert.Equal(t, 0, isoDep.Connects)
	assert.Empty(t, isoDep.SentCommands())
}

func TestDetector_UltralightUserPages(t *testing.T) {
	ul := NewMockUltralight(ultralightMemory())
	tag := &MockTag{
		TagID:      []byte{0x04, 0x22},
		Techs:      []string{TechMifareUltralight, TechNfcA},
		NdefTech:   &MockNdef{},
		Ultralight: ul,
	}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	require.True(t, result.Ok())
	assert.Equal(t, ReaderUltralight, result.Reader)
	assert.Equal(t, ultralightMemory()[16:32], result.Data)
	assert.Equal(t, []int{UltralightUserPage}, ul.PagesRead)
	assert.True(t, ul.Balanced())
}

func TestDetector_UltralightShortReadIsPadded(t *testing.T) {
	ul := NewMockUltralight(ultralightMemory())
	ul.ShortRead = 10
	tag := &MockTag{Techs: []string{TechMifareUltralight}, Ultralight: ul}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	require.True(t, result.Ok())
	require.Len(t, result.Data, UltralightReadSize)
	assert.Equal(t, ultralightMemory()[16:26], result.Data[:10])
	assert.Equal(t, make([]byte, 6), result.Data[10:])
}

func TestDetector_SelectionPolicy(t *testing.T) {
	newTag := func() (*MockTag, *MockUltralight, *MockIsoDep) {
		ul := NewMockUltralight(ultralightMemory())
		iso := &MockIsoDep{MaxLen: 253, Responses: []MockResponse{{Data: []byte("iso")}}}
		return &MockTag{
			Techs:      []string{TechNfcA, TechMifareUltralight},
			Ultralight: ul,
			IsoDepTech: iso,
		}, ul, iso
	}

	t.Run("specificity prefers ultralight", func(t *testing.T) {
		tag, ul, iso := newTag()
		result := newTestDetector(SelectBySpecificity, nil).Detect(tag)
		assert.Equal(t, ReaderUltralight, result.Reader)
		assert.Len(t, ul.PagesRead, 1)
		assert.Empty(t, iso.SentCommands())
	})

	t.Run("list order takes first match", func(t *testing.T) {
		tag, ul, iso := newTag()
		result := newTestDetector(SelectByListOrder, nil).Detect(tag)
		assert.Equal(t, ReaderIsoDep, result.Reader)
		assert.Equal(t, []byte("iso"), result.Data)
		assert.Empty(t, ul.PagesRead)
		assert.Len(t, iso.SentCommands(), 1)
	})
}

func TestDetector_SelectReader(t *testing.T) {
	tests := []struct {
		name      string
		selection Selection
		techs     []string
		want      ReaderKind
	}{
		{"empty", SelectBySpecificity, nil, ReaderNone},
		{"ndef only", SelectBySpecificity, []string{TechNdef}, ReaderNone},
		{"nfca", SelectBySpecificity, []string{TechNfcA}, ReaderIsoDep},
		{"isodep", SelectBySpecificity, []string{TechIsoDep}, ReaderIsoDep},
		{"isodep over nfca", SelectBySpecificity, []string{TechNfcA, TechIsoDep}, ReaderIsoDep},
		{"ultralight over nfca", SelectBySpecificity, []string{TechNfcA, TechMifareUltralight}, ReaderUltralight},
		{"list order nfca first", SelectByListOrder, []string{TechNfcA, TechMifareUltralight}, ReaderIsoDep},
		{"list order ultralight first", SelectByListOrder, []string{TechMifareUltralight, TechNfcA}, ReaderUltralight},
		{"list order ignores isodep", SelectByListOrder, []string{TechIsoDep}, ReaderNone},
		{"unknown tech", SelectByListOrder, []string{"android.nfc.tech.NfcF"}, ReaderNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(tt.selection, nil)
			assert.Equal(t, tt.want, d.SelectReader(tt.techs))
		})
	}
}

func TestDetector_Unsupported(t *testing.T) {
	tag := &MockTag{TagID: []byte{0x01}, Techs: []string{"android.nfc.tech.NfcF"}}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	assert.False(t, result.Ok())
	assert.Equal(t, ReaderNone, result.Reader)
	assert.Equal(t, OutcomeUnsupported, result.Outcome())
	assert.Equal(t, "Data on card: Unavailable\nID:  0x01", FormatDisplay(tag.ID(), result))
}

func TestDetector_SelectedTechMissing(t *testing.T) {
	tag := &MockTag{Techs: []string{TechMifareUltralight}}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	assert.Equal(t, ReaderUltralight, result.Reader)
	assert.True(t, IsNotSupportedError(result.Err))
}

func TestDetector_NdefFailureFallsThrough(t *testing.T) {
	ndefTech := &MockNdef{MessageError: errors.New("tag lost")}
	ul := NewMockUltralight(ultralightMemory())
	tag := &MockTag{
		Techs:      []string{TechNdef, TechMifareUltralight},
		NdefTech:   ndefTech,
		Ultralight: ul,
	}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	require.True(t, result.Ok())
	assert.Equal(t, ReaderUltralight, result.Reader)
	assert.True(t, ndefTech.Balanced())
}

func TestDetector_NdefFailureWithoutFallback(t *testing.T) {
	tag := &MockTag{
		Techs:    []string{TechNdef},
		NdefTech: &MockNdef{MessageError: errors.New("tag lost")},
	}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	assert.Equal(t, ReaderNdef, result.Reader)
	assert.Equal(t, ErrCodeReadFailed, GetErrorCode(result.Err))
	assert.Equal(t, OutcomeTransientIO, result.Outcome())
}

func TestDetector_UltralightReadFailure(t *testing.T) {
	ul := NewMockUltralight(ultralightMemory())
	ul.ReadError = errors.New("NAK")
	tag := &MockTag{Techs: []string{TechMifareUltralight}, Ultralight: ul}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	assert.Equal(t, OutcomeTransientIO, result.Outcome())
	assert.True(t, ul.Balanced())
}

func TestDetector_IsoDepExhausted(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	failure := MockResponse{Err: errors.New("tag lost")}
	iso := &MockIsoDep{MaxLen: 253, Responses: []MockResponse{failure, failure, failure}}
	tag := &MockTag{TagID: []byte{0xAB, 0xCD}, Techs: []string{TechNfcA, TechIsoDep}, IsoDepTech: iso}

	result := newTestDetector(SelectBySpecificity, clock).Detect(tag)

	assert.Equal(t, OutcomeProtocolExhausted, result.Outcome())
	assert.Len(t, clock.Sleeps(), 2)
	assert.Equal(t, "Data on card: Unavailable\nID:  0xabcd", FormatDisplay(tag.ID(), result))
}

func TestDetector_IsoDepDisplay(t *testing.T) {
	iso := &MockIsoDep{MaxLen: 253, Responses: []MockResponse{{Data: []byte("Hi\x90\x00")}}}
	tag := &MockTag{TagID: []byte{0x04, 0xA1, 0xB2}, Techs: []string{TechNfcA}, IsoDepTech: iso}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	require.True(t, result.Ok())
	assert.Equal(t, "Data on card: Hi\uFFFD\x00\nID:  0x04a1b2", FormatDisplay(tag.ID(), result))
}

func TestParseSelection(t *testing.T) {
	for in, want := range map[string]Selection{
		"":            SelectBySpecificity,
		"specificity": SelectBySpecificity,
		"list-order":  SelectByListOrder,
	} {
		got, err := ParseSelection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		if in != "" {
			assert.Equal(t, in, got.String())
		}
	}

	_, err := ParseSelection("random")
	assert.Error(t, err)
}

func TestDetector_NdefConnectFailureStillCloses(t *testing.T) {
	ndefTech := &MockNdef{}
	ndefTech.ConnectError = errors.New("no target")
	ul := NewMockUltralight(ultralightMemory())
	tag := &MockTag{
		TagID:      []byte{0x04, 0x55},
		Techs:      []string{TechMifareUltralight, TechNfcA, TechNdef},
		NdefTech:   ndefTech,
		Ultralight: ul,
	}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	require.True(t, result.Ok())
	assert.Equal(t, ReaderUltralight, result.Reader)
	assert.Equal(t, 1, ndefTech.Closes)
	assert.True(t, ndefTech.Balanced())
	assert.True(t, ul.Balanced())
}

func TestDetector_UltralightConnectFailureStillCloses(t *testing.T) {
	ul := NewMockUltralight(ultralightMemory())
	ul.ConnectError = errors.New("no target")
	tag := &MockTag{
		TagID:      []byte{0x04, 0x66},
		Techs:      []string{TechMifareUltralight, TechNfcA},
		Ultralight: ul,
	}

	result := newTestDetector(SelectBySpecificity, nil).Detect(tag)

	assert.False(t, result.Ok())
	assert.Equal(t, ErrCodeConnectFailed, GetErrorCode(result.Err))
	assert.Empty(t, ul.PagesRead)
	assert.Equal(t, 1, ul.Closes)
}
