package nfc

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
)

// Cooldown periods after the reader misbehaves.
const (
	DeviceErrorCooldownPeriod = 10 * time.Second
	MaxRetriesCooldownPeriod  = 30 * time.Second
)

// DeviceManager handles device lifecycle, connection management, and reconnection logic.
// It maintains a connection to a single NFC device and handles recovery from errors.
type DeviceManager struct {
	manager    Manager
	device     Device
	devicePath string
	hasDevice  bool

	inCooldown    bool
	cooldownTimer Timer

	clock  Clock
	logger *log.Logger

	// newBackOff builds the reconnect schedule; replaced in tests.
	newBackOff func() backoff.BackOff

	mu syncutil.RWMutex
}

// NewDeviceManager creates a new DeviceManager for managing an NFC device connection.
// An empty devicePath connects to the first device the manager lists.
func NewDeviceManager(manager Manager, devicePath string, clock Clock, logger *log.Logger) *DeviceManager {
	if clock == nil {
		clock = NewRealClock()
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[device] ", log.LstdFlags)
	}

	timer := clock.NewTimer(time.Hour)
	timer.Stop()

	return &DeviceManager{
		manager:       manager,
		devicePath:    devicePath,
		cooldownTimer: timer,
		clock:         clock,
		logger:        logger,
		newBackOff:    reconnectBackOff,
	}
}

// reconnectBackOff doubles the pause from ReconnectDelay for at most
// MaxReconnectTries attempts.
func reconnectBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = ReconnectDelay
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, MaxReconnectTries-1)
}

// Device returns the current active device, or nil if not connected.
func (dm *DeviceManager) Device() Device {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.device
}

// HasDevice returns true if a device is currently connected.
func (dm *DeviceManager) HasDevice() bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.hasDevice
}

// InCooldown returns true if the device manager is in a cooldown period.
func (dm *DeviceManager) InCooldown() bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.inCooldown
}

// DevicePath returns the path of the device being managed.
func (dm *DeviceManager) DevicePath() string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.devicePath
}

// TryConnect attempts to connect to the device. If the device is already connected
// and responsive, it returns nil. Otherwise, it attempts to open and initialize the device.
func (dm *DeviceManager) TryConnect() error {
	dm.mu.RLock()
	currentDevice := dm.device
	dm.mu.RUnlock()

	if currentDevice != nil {
		initErr := currentDevice.InitiatorInit()
		if initErr == nil {
			return nil
		}
		dm.logger.Printf("Device was marked connected, but Init failed: %v. Attempting full reconnect.", initErr)
		dm.dropDevice()
	}

	path := dm.DevicePath()
	if path == "" {
		devices, err := dm.manager.ListDevices()
		if err != nil {
			return fmt.Errorf("error listing NFC devices: %w", err)
		}
		if len(devices) == 0 {
			return ErrNoDevice
		}
		path = devices[0]
		dm.logger.Printf("No specific device path, trying first available: %s", path)
	}

	newDevice, err := dm.manager.OpenDevice(path)
	if err != nil {
		return fmt.Errorf("failed to open device %s: %w", path, err)
	}
	if err := newDevice.InitiatorInit(); err != nil {
		newDevice.Close()
		return fmt.Errorf("failed to initialize device %s: %w", path, err)
	}

	dm.mu.Lock()
	dm.device = newDevice
	dm.hasDevice = true
	dm.mu.Unlock()

	dm.logger.Printf("Successfully connected to device: %s", newDevice.String())
	return nil
}

// Reconnect closes the current device and reopens it with exponential
// backoff until it succeeds, the attempts run out or ctx is done.
func (dm *DeviceManager) Reconnect(ctx context.Context) error {
	dm.dropDevice()

	attempt := 0
	op := func() error {
		attempt++
		return dm.TryConnect()
	}
	notify := func(err error, next time.Duration) {
		dm.logger.Printf("Reconnect: attempt %d failed: %v (next in %v)", attempt, err, next)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(dm.newBackOff(), ctx), notify); err != nil {
		return fmt.Errorf("reconnect failed after %d attempts: %w", attempt, err)
	}
	dm.logger.Printf("Reconnect: attempt %d successful.", attempt)
	return nil
}

// Close closes the current device connection and releases the manager
// when it holds system resources.
func (dm *DeviceManager) Close() {
	dm.dropDevice()
	if c, ok := dm.manager.(io.Closer); ok {
		if err := c.Close(); err != nil {
			dm.logger.Printf("Error releasing manager: %v", err)
		}
	}
}

func (dm *DeviceManager) dropDevice() {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.device != nil {
		if err := dm.device.Close(); err != nil {
			dm.logger.Printf("Error closing device: %v", err)
		}
	}
	dm.device = nil
	dm.hasDevice = false
}

// HandleError processes a device error and reports whether the manager
// entered a cooldown.
//
// USB transport errors close the device and start a short cooldown. I/O,
// timeout and closed-device errors trigger a reconnect; if that fails the
// long cooldown starts. Other errors are left to the caller.
func (dm *DeviceManager) HandleError(ctx context.Context, err error) (needsCooldown bool) {
	switch {
	case IsCooldownError(err):
		dm.logger.Printf("Reader transport error: %v. Entering cooldown for %v", err, DeviceErrorCooldownPeriod)
		dm.dropDevice()
		dm.startCooldown(DeviceErrorCooldownPeriod)
		return true

	case IsIOError(err) || IsTimeoutError(err) || IsDeviceClosedError(err):
		dm.logger.Printf("Device error: %v. Reconnecting.", err)
		if rerr := dm.Reconnect(ctx); rerr != nil {
			if ctx.Err() != nil {
				return false
			}
			dm.logger.Printf("%v. Entering cooldown for %v", rerr, MaxRetriesCooldownPeriod)
			dm.startCooldown(MaxRetriesCooldownPeriod)
			return true
		}
		return false
	}
	return false
}

func (dm *DeviceManager) startCooldown(d time.Duration) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.inCooldown {
		return
	}
	dm.inCooldown = true
	dm.cooldownTimer.Reset(d)
}

// EndCooldown ends the current cooldown period and attempts to reconnect.
func (dm *DeviceManager) EndCooldown() {
	dm.logger.Println("Device cooldown period ended.")
	dm.mu.Lock()
	dm.inCooldown = false
	dm.mu.Unlock()
	if err := dm.TryConnect(); err != nil {
		dm.logger.Printf("Reconnection after cooldown failed: %v", err)
	}
}

// CooldownChannel returns the cooldown timer channel for select statements.
func (dm *DeviceManager) CooldownChannel() <-chan time.Time {
	return dm.cooldownTimer.C()
}
