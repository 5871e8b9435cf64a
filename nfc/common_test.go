package nfc

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNoCardError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "typed noCardError",
			err:      &noCardError{ReaderName: "ACR122U"},
			expected: true,
		},
		{
			name:     "wrapped noCardError",
			err:      fmt.Errorf("open: %w", &noCardError{ReaderName: "ACR122U"}),
			expected: true,
		},
		{
			name:     "string match - No smart card",
			err:      errors.New("scard: No smart card inserted"),
			expected: true,
		},
		{
			name:     "unrelated error",
			err:      errors.New("connection lost"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNoCardError(tt.err); got != tt.expected {
				t.Errorf("IsNoCardError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDeviceErrorClassifiers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		timeout  bool
		closed   bool
		io       bool
		cooldown bool
	}{
		{name: "sentinel timeout", err: fmt.Errorf("poll: %w", ErrTimeout), timeout: true},
		{name: "sentinel closed", err: ErrDeviceClosed, closed: true},
		{name: "sentinel io", err: fmt.Errorf("x: %w", ErrIO), io: true},
		{name: "libusb broken pipe", err: errors.New("usb: broken pipe"), io: true, cooldown: true},
		{name: "acr122 data block", err: errors.New("RDR_to_PC_DataBlock failed"), cooldown: true},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeoutError(tt.err); got != tt.timeout {
				t.Errorf("IsTimeoutError() = %v, want %v", got, tt.timeout)
			}
			if got := IsDeviceClosedError(tt.err); got != tt.closed {
				t.Errorf("IsDeviceClosedError() = %v, want %v", got, tt.closed)
			}
			if got := IsIOError(tt.err); got != tt.io {
				t.Errorf("IsIOError() = %v, want %v", got, tt.io)
			}
			if got := IsCooldownError(tt.err); got != tt.cooldown {
				t.Errorf("IsCooldownError() = %v, want %v", got, tt.cooldown)
			}
		})
	}
}

func TestCardRemovedError(t *testing.T) {
	cause := errors.New("SCARD_W_REMOVED_CARD")
	err := NewCardRemovedError(cause)

	if !IsCardRemovedError(fmt.Errorf("transceive: %w", err)) {
		t.Error("wrapped card removed error not detected")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if NewCardRemovedError(nil).Error() != "card was removed" {
		t.Errorf("unexpected message %q", NewCardRemovedError(nil).Error())
	}
}
