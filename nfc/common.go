package nfc

import (
	"errors"
	"strings"
	"time"
)

// DeviceStatus represents the status of the reader device.
type DeviceStatus struct {
	Connected   bool   `json:"connected"`
	Message     string `json:"message"`
	CardPresent bool   `json:"cardPresent"`
}

// Constants for device handling
const (
	MaxReconnectTries   = 10
	ReconnectDelay      = 2 * time.Second
	DeviceCheckInterval = 2 * time.Second
	DeviceEnumRetries   = 3
)

// Sentinel errors for device operations
var (
	// ErrTimeout indicates a timeout occurred during device communication
	ErrTimeout = errors.New("device operation timed out")

	// ErrDeviceClosed indicates the device connection was closed
	ErrDeviceClosed = errors.New("device closed")

	// ErrIO indicates an input/output error with the device
	ErrIO = errors.New("device I/O error")

	// ErrNoDevice is returned when no reader could be found
	ErrNoDevice = errors.New("no NFC reader found")
)

// noCardError is returned when a PC/SC reader has no card on it.
// This is the normal idle state and not a device error.
type noCardError struct {
	ReaderName string
}

func (e *noCardError) Error() string {
	return "no card present in reader " + e.ReaderName
}

// IsNoCardError checks if an error indicates no card is present in the reader.
func IsNoCardError(err error) bool {
	if err == nil {
		return false
	}
	var noCard *noCardError
	if errors.As(err, &noCard) {
		return true
	}
	errLower := strings.ToLower(err.Error())
	return strings.Contains(errLower, "no card present") ||
		strings.Contains(errLower, "no smart card") ||
		strings.Contains(errLower, "card is not present")
}

// cardRemovedError indicates the card was removed during operation.
type cardRemovedError struct {
	Cause error
}

func (e *cardRemovedError) Error() string {
	if e.Cause != nil {
		return "card was removed: " + e.Cause.Error()
	}
	return "card was removed"
}

func (e *cardRemovedError) Unwrap() error {
	return e.Cause
}

// NewCardRemovedError creates a card removed error.
func NewCardRemovedError(cause error) error {
	return &cardRemovedError{Cause: cause}
}

// IsCardRemovedError checks if an error indicates the card was removed during operation.
func IsCardRemovedError(err error) bool {
	if err == nil {
		return false
	}
	var cardRemoved *cardRemovedError
	return errors.As(err, &cardRemoved)
}

func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Operation timed out") ||
		strings.Contains(errStr, "operation timed out") ||
		strings.Contains(errStr, "timeout")
}

func IsDeviceClosedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDeviceClosed) {
		return true
	}
	return strings.Contains(err.Error(), "device closed")
}

func IsIOError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrIO) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "input / output error") ||
		strings.Contains(errStr, "Input/output error") ||
		strings.Contains(errStr, "i/o error") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "Operation not permitted")
}

// IsCooldownError reports USB transport errors after which the reader needs
// a pause before it can be opened again (seen on ACR122U).
func IsCooldownError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Operation not permitted") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "RDR_to_PC_DataBlock")
}
