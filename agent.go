package main

import (
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
	"github.com/dotside-studios/nfc-tag-reader/nfc"
	"github.com/dotside-studios/nfc-tag-reader/server"
)

// Agent ties a reader to its display surfaces: the log, the HTTP/WebSocket
// server and any registered listeners such as the system tray.
type Agent struct {
	Logger       *log.Logger
	Manager      nfc.Manager
	ReaderConfig nfc.ReaderConfig
	// ServerConfig is nil when the HTTP server is disabled.
	ServerConfig *server.Config

	Reader *nfc.Reader
	Server *server.Server

	mu              syncutil.Mutex
	eventListeners  []func(nfc.ReadEvent)
	statusListeners []func(nfc.DeviceStatus)

	stop     chan struct{}
	pumpDone sync.WaitGroup
}

func NewAgent(manager nfc.Manager, readerCfg nfc.ReaderConfig, serverCfg *server.Config) *Agent {
	return &Agent{
		Logger:       log.New(os.Stderr, "[agent] ", log.LstdFlags),
		Manager:      manager,
		ReaderConfig: readerCfg,
		ServerConfig: serverCfg,
	}
}

// OnReadEvent registers fn to be called for every read event.
func (a *Agent) OnReadEvent(fn func(nfc.ReadEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.eventListeners = append(a.eventListeners, fn)
}

// OnStatus registers fn to be called for every device status update.
func (a *Agent) OnStatus(fn func(nfc.DeviceStatus)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statusListeners = append(a.statusListeners, fn)
}

// IsRunning reports whether the reader is started.
func (a *Agent) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Reader != nil
}

// Start creates the reader for devicePath (empty for the first reader found)
// and starts publishing.
func (a *Agent) Start(devicePath string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Reader != nil {
		if devicePath == a.ReaderConfig.DevicePath {
			a.Logger.Printf("NFC reader already running on device: %s", devicePath)
			return nil
		}
		return errors.New("agent is already running")
	}

	cfg := a.ReaderConfig
	cfg.DevicePath = devicePath
	reader, err := nfc.NewReader(a.Manager, cfg)
	if err != nil {
		a.Logger.Printf("Error initializing NFC reader: %v", err)
		return err
	}

	var srv *server.Server
	if a.ServerConfig != nil {
		serverCfg := *a.ServerConfig
		serverCfg.Reader = reader
		srv = server.New(serverCfg)
		if err := srv.Start(); err != nil {
			return err
		}
	}

	a.ReaderConfig.DevicePath = devicePath
	a.Reader = reader
	a.Server = srv
	a.stop = make(chan struct{})

	a.pumpDone.Add(1)
	go a.pump(reader, srv, a.stop)
	reader.Start()

	a.Logger.Printf("Agent started (device: %s)", displayDevice(devicePath))
	return nil
}

// Stop stops the reader first, then the fan-out and the server.
func (a *Agent) Stop() {
	a.mu.Lock()
	reader, srv, stop := a.Reader, a.Server, a.stop
	a.Reader, a.Server, a.stop = nil, nil, nil
	a.mu.Unlock()

	if reader == nil {
		a.Logger.Println("Agent is not running")
		return
	}

	a.Logger.Println("Stopping agent...")
	reader.Stop()
	close(stop)
	a.pumpDone.Wait()
	if srv != nil {
		srv.Stop()
	}
	a.Logger.Println("Agent stopped successfully")
}

// LastEvent returns the most recent read event of the running reader.
func (a *Agent) LastEvent() (nfc.ReadEvent, bool) {
	a.mu.Lock()
	reader := a.Reader
	a.mu.Unlock()
	if reader == nil {
		return nfc.ReadEvent{}, false
	}
	return reader.LastEvent()
}

// pump forwards reader output to every surface until stop is closed.
func (a *Agent) pump(reader *nfc.Reader, srv *server.Server, stop <-chan struct{}) {
	defer a.pumpDone.Done()

	for {
		select {
		case <-stop:
			return

		case ev := <-reader.Events():
			a.Logger.Printf("%s tag read via %s (%s)\n%s", ev.Kind, ev.Result.Reader, ev.Result.Outcome(), ev.Display)
			if srv != nil {
				srv.BroadcastReadEvent(ev)
			}
			for _, fn := range a.listeners() {
				fn(ev)
			}

		case status := <-reader.StatusUpdates():
			if srv != nil {
				srv.BroadcastDeviceStatus(status)
			}
			for _, fn := range a.statusFuncs() {
				fn(status)
			}
		}
	}
}

func (a *Agent) listeners() []func(nfc.ReadEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append(([]func(nfc.ReadEvent))(nil), a.eventListeners...)
}

func (a *Agent) statusFuncs() []func(nfc.DeviceStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append(([]func(nfc.DeviceStatus))(nil), a.statusListeners...)
}

func displayDevice(path string) string {
	if strings.TrimSpace(path) == "" {
		return "auto-detect"
	}
	return path
}
