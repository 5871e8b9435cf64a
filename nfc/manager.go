package nfc

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cenkalti/backoff"
)

// Manager handles NFC device discovery.
//
// Manager provides methods to list available NFC readers and open connections
// to devices.
//
// Example:
//
//	manager, _ := nfc.NewManager(nfc.BackendPCSC, nfc.DeviceConfig{})
//	devices, _ := manager.ListDevices()
//	device, _ := manager.OpenDevice(devices[0])
type Manager interface {
	OpenDevice(deviceStr string) (Device, error)
	ListDevices() ([]string, error)
}

// Backend selects the driver stack used to talk to readers.
type Backend string

const (
	// BackendLibNFC drives readers through libnfc and libfreefare.
	BackendLibNFC Backend = "libnfc"
	// BackendPCSC drives readers through the platform PC/SC service.
	BackendPCSC Backend = "pcsc"
)

// ParseBackend maps a flag value onto a Backend.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendLibNFC, BackendPCSC:
		return Backend(s), nil
	case "":
		return BackendPCSC, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want %q or %q)", s, BackendLibNFC, BackendPCSC)
	}
}

// DeviceConfig holds settings shared by all backends.
type DeviceConfig struct {
	// MaxTransceiveLength is reported by ISO-DEP transports. Zero selects
	// DefaultMaxTransceiveLength.
	MaxTransceiveLength int
	Logger              *log.Logger
}

func (c DeviceConfig) withDefaults() DeviceConfig {
	if c.MaxTransceiveLength <= 0 {
		c.MaxTransceiveLength = DefaultMaxTransceiveLength
	}
	if c.Logger == nil {
		c.Logger = log.New(os.Stderr, "[device] ", log.LstdFlags)
	}
	return c
}

// NewManager creates a Manager for the given backend.
func NewManager(backend Backend, cfg DeviceConfig) (Manager, error) {
	cfg = cfg.withDefaults()
	switch backend {
	case BackendLibNFC:
		return newLibnfcManager(cfg), nil
	case BackendPCSC:
		return newPCSCManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// listWithRetry retries a device enumeration a few times; USB readers often
// fail the first enumeration right after being plugged in.
func listWithRetry(list func() ([]string, error)) ([]string, error) {
	var devices []string
	op := func() error {
		var err error
		devices, err = list()
		return err
	}
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(100*time.Millisecond), DeviceEnumRetries-1)
	if err := backoff.Retry(op, b); err != nil {
		return nil, fmt.Errorf("failed to list NFC devices after %d retries: %w", DeviceEnumRetries, err)
	}
	return devices, nil
}
