package nfc

import (
	"fmt"
	"sync"

	"github.com/hsanjuan/go-ndef"
)

// MockTag is a test implementation of TagHandle.
//
// Technologies are offered when the matching field is non-nil. Techs is
// returned verbatim by TechList, so tests can present any list order.
//
// Example:
//
//	tag := &MockTag{
//	    TagID:      []byte{0x04, 0xA1},
//	    Techs:      []string{TechNfcA, TechMifareUltralight},
//	    Ultralight: NewMockUltralight(memory),
//	}
type MockTag struct {
	// TagID is returned by ID()
	TagID []byte

	// Techs is returned by TechList()
	Techs []string

	NdefTech   NdefTech
	Ultralight UltralightTech
	IsoDepTech IsoDepTech
}

func (m *MockTag) ID() []byte         { return m.TagID }
func (m *MockTag) TechList() []string { return m.Techs }

func (m *MockTag) Ndef() (NdefTech, bool) {
	return m.NdefTech, m.NdefTech != nil
}

func (m *MockTag) MifareUltralight() (UltralightTech, bool) {
	return m.Ultralight, m.Ultralight != nil
}

func (m *MockTag) IsoDep() (IsoDepTech, bool) {
	return m.IsoDepTech, m.IsoDepTech != nil
}

// mockSession counts connect and close calls shared by the mock technologies.
type mockSession struct {
	// ConnectError, if set, will be returned by Connect()
	ConnectError error

	// CloseError, if set, will be returned by Close()
	CloseError error

	Connects int
	Closes   int

	mu sync.Mutex
}

func (s *mockSession) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Connects++
	return s.ConnectError
}

func (s *mockSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closes++
	return s.CloseError
}

// Balanced reports whether every connect attempt was closed.
func (s *mockSession) Balanced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Connects == s.Closes
}

// MockNdef is a test NdefTech returning a fixed message.
type MockNdef struct {
	mockSession

	// Msg is returned by Message(); nil means the tag holds no NDEF message
	Msg *ndef.Message

	// MessageError, if set, will be returned by Message()
	MessageError error
}

func (m *MockNdef) Message() (*ndef.Message, error) {
	if m.MessageError != nil {
		return nil, m.MessageError
	}
	return m.Msg, nil
}

// MockUltralight is a test UltralightTech backed by a page memory image.
type MockUltralight struct {
	mockSession

	// Memory is the tag image, 4 bytes per page
	Memory []byte

	// ReadError, if set, will be returned by ReadPages()
	ReadError error

	// ShortRead truncates every ReadPages response to this many bytes when > 0
	ShortRead int

	// PagesRead records the start page of every ReadPages call
	PagesRead []int
}

// NewMockUltralight creates a MockUltralight over a copy of memory.
func NewMockUltralight(memory []byte) *MockUltralight {
	return &MockUltralight{Memory: append([]byte(nil), memory...)}
}

func (m *MockUltralight) ReadPages(startPage int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PagesRead = append(m.PagesRead, startPage)

	if m.ReadError != nil {
		return nil, m.ReadError
	}
	start := startPage * 4
	if start >= len(m.Memory) {
		return nil, fmt.Errorf("page %d out of range", startPage)
	}
	out := make([]byte, UltralightReadSize)
	copy(out, m.Memory[start:])
	if m.ShortRead > 0 && m.ShortRead < len(out) {
		out = out[:m.ShortRead]
	}
	return out, nil
}

// MockResponse is one scripted reply of a MockIsoDep.
type MockResponse struct {
	Data []byte
	Err  error
}

// MockIsoDep is a test IsoDepTech.
//
// Transceive answers from TransceiveFunc when set, otherwise pops Responses in
// order. Once Responses is exhausted an empty response is returned.
type MockIsoDep struct {
	mockSession

	// MaxLen is returned by MaxTransceiveLength()
	MaxLen int

	// Responses are consumed one per Transceive call
	Responses []MockResponse

	// TransceiveFunc allows custom transceive behavior
	TransceiveFunc func([]byte) ([]byte, error)

	// Commands records every command sent
	Commands [][]byte
}

func (m *MockIsoDep) MaxTransceiveLength() int { return m.MaxLen }

func (m *MockIsoDep) Transceive(command []byte) ([]byte, error) {
	m.mu.Lock()
	m.Commands = append(m.Commands, append([]byte(nil), command...))
	fn := m.TransceiveFunc
	var next *MockResponse
	if fn == nil && len(m.Responses) > 0 {
		next = &m.Responses[0]
		m.Responses = m.Responses[1:]
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(command)
	}
	if next == nil {
		return []byte{}, nil
	}
	return next.Data, next.Err
}

// SentCommands returns a copy of the recorded commands.
func (m *MockIsoDep) SentCommands() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.Commands...)
}

// NewStreamIsoDep returns a MockIsoDep serving READ BINARY from a contiguous
// byte stream: each command returns up to maxLen bytes at the P1/P2 offset and
// an empty response past the end.
func NewStreamIsoDep(stream []byte, maxLen int) *MockIsoDep {
	m := &MockIsoDep{MaxLen: maxLen}
	m.TransceiveFunc = func(cmd []byte) ([]byte, error) {
		if len(cmd) < 4 {
			return nil, fmt.Errorf("short command % X", cmd)
		}
		offset := int(cmd[2])<<8 | int(cmd[3])
		if offset >= len(stream) {
			return []byte{}, nil
		}
		end := min(offset+maxLen, len(stream))
		return append([]byte(nil), stream[offset:end]...), nil
	}
	return m
}
