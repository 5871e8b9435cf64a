package nfc

import (
	"fmt"
	"sync"
)

// MockDevice is a test implementation of Device that simulates NFC hardware.
//
// MockDevice allows testing the reader without physical hardware by
// simulating device behavior, connection states and tag presentations.
//
// Example:
//
//	mock := NewMockDevice()
//	mock.SetTags([]TagEvent{{Tag: &MockTag{TagID: []byte{0x01}}}})
//	events, _ := mock.Tags()
type MockDevice struct {
	// DeviceName is the simulated device name returned by String()
	DeviceName string

	// DeviceConnection is the simulated connection string returned by Connection()
	DeviceConnection string

	// IsOpen tracks whether the device is currently open
	IsOpen bool

	// InitError, if set, will be returned by InitiatorInit()
	InitError error

	// CloseError, if set, will be returned by Close()
	CloseError error

	// TagsFunc allows custom Tags behavior for testing
	// If nil, returns TagEvents or TagsError
	TagsFunc func() ([]TagEvent, error)

	// TagEvents is the list of tags returned by Tags()
	TagEvents []TagEvent

	// TagsError, if set, will be returned by Tags()
	TagsError error

	// CallLog tracks all method calls for verification in tests
	CallLog []string

	mu sync.Mutex
}

// NewMockDevice creates a new MockDevice with default values.
func NewMockDevice() *MockDevice {
	return &MockDevice{
		DeviceName:       "Mock NFC Reader",
		DeviceConnection: "mock:usb:001",
		IsOpen:           true,
		CallLog:          make([]string, 0),
	}
}

// Close simulates closing the device.
func (m *MockDevice) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallLog = append(m.CallLog, "Close")

	if !m.IsOpen {
		return fmt.Errorf("device already closed")
	}

	m.IsOpen = false
	return m.CloseError
}

// InitiatorInit simulates device initialization.
func (m *MockDevice) InitiatorInit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallLog = append(m.CallLog, "InitiatorInit")

	if !m.IsOpen {
		return fmt.Errorf("device not open")
	}

	return m.InitError
}

// String returns the simulated device name.
func (m *MockDevice) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DeviceName
}

// Connection returns the simulated connection string.
func (m *MockDevice) Connection() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DeviceConnection
}

// Tags simulates polling the field.
func (m *MockDevice) Tags() ([]TagEvent, error) {
	m.mu.Lock()
	m.CallLog = append(m.CallLog, "Tags")
	open := m.IsOpen
	fn := m.TagsFunc
	tagsErr := m.TagsError
	events := append([]TagEvent(nil), m.TagEvents...)
	m.mu.Unlock()

	if !open {
		return nil, fmt.Errorf("device not open")
	}
	if fn != nil {
		return fn()
	}
	if tagsErr != nil {
		return nil, tagsErr
	}
	return events, nil
}

// SetTags sets the tags that will be returned by Tags().
func (m *MockDevice) SetTags(events []TagEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TagEvents = events
}

// SetTagsError sets the error returned by Tags().
func (m *MockDevice) SetTagsError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TagsError = err
}

// GetCallLog returns a copy of the call log for verification.
func (m *MockDevice) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	logCopy := make([]string, len(m.CallLog))
	copy(logCopy, m.CallLog)
	return logCopy
}

// Calls counts how often method appears in the call log.
func (m *MockDevice) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.CallLog {
		if c == method {
			n++
		}
	}
	return n
}
