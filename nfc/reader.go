package nfc

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
)

// Polling intervals
const (
	DefaultPollingInterval      = 100 * time.Millisecond
	DeviceIdleCheckInterval     = 200 * time.Millisecond
	CardCheckTickerInterval     = 250 * time.Millisecond
	UnhandledErrorRetryInterval = 1 * time.Second
)

// ReadEvent is published once per tag presentation.
type ReadEvent struct {
	ID        uuid.UUID
	TagID     []byte
	Kind      DiscoveryKind
	Device    string
	Result    ReadResult
	Display   string
	ScannedAt time.Time
}

// ReaderConfig configures a Reader.
type ReaderConfig struct {
	// DevicePath selects the reader; empty uses the first one listed.
	DevicePath   string
	Detector     DetectorConfig
	PollInterval time.Duration
	Clock        Clock
	Logger       *log.Logger
}

// Reader polls a device for tags, runs the detection cascade on every new
// presentation and publishes the results.
type Reader struct {
	deviceManager *DeviceManager
	detector      *Detector
	cache         *TagCache
	clock         Clock
	logger        *log.Logger
	pollInterval  time.Duration

	events     chan ReadEvent
	statusChan chan DeviceStatus

	ctx    context.Context
	cancel context.CancelFunc

	statusMux   syncutil.RWMutex
	cardPresent bool

	workerWg sync.WaitGroup
	stopOnce sync.Once
}

// NewReader creates a Reader and makes a first attempt to connect. A failed
// attempt is retried by the worker.
func NewReader(manager Manager, cfg ReaderConfig) (*Reader, error) {
	if manager == nil {
		return nil, fmt.Errorf("NFC manager cannot be nil")
	}
	if cfg.Clock == nil {
		cfg.Clock = NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "[reader] ", log.LstdFlags)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollingInterval
	}
	if cfg.Detector.Clock == nil {
		cfg.Detector.Clock = cfg.Clock
	}
	if cfg.Detector.Logger == nil {
		cfg.Detector.Logger = cfg.Logger
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Reader{
		deviceManager: NewDeviceManager(manager, cfg.DevicePath, cfg.Clock, cfg.Logger),
		detector:      NewDetector(cfg.Detector),
		cache:         NewTagCache(cfg.Clock, CardPresenceTimeout),
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		pollInterval:  cfg.PollInterval,
		events:        make(chan ReadEvent, 8),
		statusChan:    make(chan DeviceStatus, 1),
		ctx:           ctx,
		cancel:        cancel,
	}

	r.handleDeviceCheck()
	return r, nil
}

// Start begins polling in a separate goroutine.
func (r *Reader) Start() {
	r.workerWg.Add(1)
	go r.worker()
}

// Stop shuts the worker down and waits for it to finish. The device is
// closed by the worker on exit.
func (r *Reader) Stop() {
	r.stopOnce.Do(func() {
		r.logger.Println("Stopping reader...")
		r.cancel()
	})
	r.workerWg.Wait()
}

// Events returns the channel read events are published on.
func (r *Reader) Events() <-chan ReadEvent {
	return r.events
}

// StatusUpdates returns a channel that provides DeviceStatus updates.
func (r *Reader) StatusUpdates() <-chan DeviceStatus {
	return r.statusChan
}

// LastEvent returns the most recent read event.
func (r *Reader) LastEvent() (ReadEvent, bool) {
	return r.cache.Last()
}

// GetDeviceStatus returns the current device status by querying live state.
func (r *Reader) GetDeviceStatus() DeviceStatus {
	connected := r.deviceManager.HasDevice()
	var message string
	switch {
	case connected:
		if dev := r.deviceManager.Device(); dev != nil {
			message = fmt.Sprintf("Connected to %s", dev.String())
		} else {
			message = "Connected"
		}
	case r.deviceManager.InCooldown():
		message = "Device in cooldown"
	default:
		message = "Not connected"
	}

	return DeviceStatus{
		Connected:   connected,
		Message:     message,
		CardPresent: r.readCardPresent(),
	}
}

// HandleTag runs the detection cascade on one presented tag. Every
// discovery kind is handled the same way.
func (r *Reader) HandleTag(ev TagEvent) ReadEvent {
	id := ev.Tag.ID()
	result := r.detector.Detect(ev.Tag)

	device := ""
	if dev := r.deviceManager.Device(); dev != nil {
		device = dev.String()
	}

	event := ReadEvent{
		ID:        uuid.New(),
		TagID:     append([]byte(nil), id...),
		Kind:      ev.Kind,
		Device:    device,
		Result:    result,
		Display:   FormatDisplay(id, result),
		ScannedAt: r.clock.Now(),
	}
	r.cache.SetLast(event)

	if result.Ok() {
		r.logger.Printf("Read %d bytes from %s tag %s via %s", len(result.Data), ev.Kind, BytesToHex(id), result.Reader)
	} else {
		r.logger.Printf("No data from %s tag %s (%s): %v", ev.Kind, BytesToHex(id), result.Outcome(), result.Err)
	}
	return event
}

func (r *Reader) worker() {
	defer r.workerWg.Done()

	deviceCheckTicker := r.clock.NewTicker(DeviceCheckInterval)
	cardCheckTicker := r.clock.NewTicker(CardCheckTickerInterval)
	defer func() {
		deviceCheckTicker.Stop()
		cardCheckTicker.Stop()
		r.deviceManager.Close()
		r.broadcastDeviceStatus("Worker stopped, device disconnected.")
		r.logger.Println("Reader worker stopped.")
	}()

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-deviceCheckTicker.C():
			r.handleDeviceCheck()

		case <-cardCheckTicker.C():
			r.handleCardCheck()

		case <-r.deviceManager.CooldownChannel():
			r.deviceManager.EndCooldown()
			r.broadcastDeviceStatus()

		default:
			if !r.deviceManager.HasDevice() || r.deviceManager.InCooldown() {
				r.clock.Sleep(DeviceIdleCheckInterval)
				continue
			}
			r.poll()
			r.clock.Sleep(r.pollInterval)
		}
	}
}

// poll reads the field once and handles every new presentation.
func (r *Reader) poll() {
	dev := r.deviceManager.Device()
	if dev == nil {
		return
	}

	tags, err := dev.Tags()
	if err != nil {
		r.handleDeviceError(err)
		return
	}

	for _, ev := range tags {
		uid := BytesToHex(ev.Tag.ID())
		if !r.cache.Observe(uid) {
			continue
		}
		r.setCardPresent(true, uid)

		event := r.HandleTag(ev)
		select {
		case r.events <- event:
		case <-r.ctx.Done():
			return
		}
	}
}

// handleDeviceCheck attempts to connect to the device if not connected and not in cooldown.
func (r *Reader) handleDeviceCheck() {
	if r.deviceManager.HasDevice() || r.deviceManager.InCooldown() {
		return
	}
	if err := r.deviceManager.TryConnect(); err != nil {
		r.logger.Printf("Device check: connection attempt failed: %v", err)
		r.broadcastDeviceStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	dev := r.deviceManager.Device()
	if dev != nil {
		r.logger.Printf("Connected NFC device: %s (Connection: %s)", dev.String(), dev.Connection())
	}
	r.broadcastDeviceStatus()
}

// handleCardCheck drops tags that left the field.
func (r *Reader) handleCardCheck() {
	for _, uid := range r.cache.Expire() {
		r.logger.Printf("Tag %s left the field", uid)
	}
	if r.readCardPresent() && !r.cache.IsCardPresent() {
		r.setCardPresent(false, "")
	}
}

func (r *Reader) handleDeviceError(err error) {
	if IsNoCardError(err) || IsCardRemovedError(err) {
		r.cache.Clear()
		r.setCardPresent(false, "")
		return
	}

	if r.deviceManager.HandleError(r.ctx, err) {
		r.broadcastDeviceStatus("Device in cooldown")
		return
	}
	if r.ctx.Err() != nil {
		return
	}
	if IsIOError(err) || IsTimeoutError(err) || IsDeviceClosedError(err) {
		r.broadcastDeviceStatus()
		return
	}

	r.logger.Printf("Unhandled error while polling tags: %v", err)
	r.broadcastDeviceStatus(fmt.Sprintf("Device error: %v", err))
	r.clock.Sleep(UnhandledErrorRetryInterval)
}

func (r *Reader) readCardPresent() bool {
	r.statusMux.RLock()
	defer r.statusMux.RUnlock()
	return r.cardPresent
}

func (r *Reader) setCardPresent(present bool, uid string) {
	r.statusMux.Lock()
	if r.cardPresent == present {
		r.statusMux.Unlock()
		return
	}
	r.cardPresent = present
	r.statusMux.Unlock()

	message := "Card removed"
	if present {
		message = fmt.Sprintf("Card detected (UID: %s)", uid)
	}
	r.broadcastDeviceStatus(message)
}

// broadcastDeviceStatus sends the live status, optionally with a custom
// message. It never blocks; a stale update is dropped.
func (r *Reader) broadcastDeviceStatus(customMessage ...string) {
	status := r.GetDeviceStatus()
	if len(customMessage) > 0 && customMessage[0] != "" {
		status.Message = customMessage[0]
	}

	select {
	case r.statusChan <- status:
	default:
		select {
		case <-r.statusChan:
		default:
		}
		select {
		case r.statusChan <- status:
		default:
		}
	}
}
