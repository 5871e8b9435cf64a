package main

import (
	"fmt"
	"log"
	"net"
	"os/exec"
	"runtime"
	"strings"

	"fyne.io/systray"

	"github.com/dotside-studios/nfc-tag-reader/buildinfo"
	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
	"github.com/dotside-studios/nfc-tag-reader/nfc"
	"github.com/dotside-studios/nfc-tag-reader/protocol"
)

// menuTitleLimit keeps tray entries readable on every platform.
const menuTitleLimit = 48

// getLocalIPs returns a list of local IP addresses (excluding loopback)
func getLocalIPs() []string {
	var ips []string
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ips
	}

	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() {
			if ipNet.IP.To4() != nil {
				ips = append(ips, ipNet.IP.String())
			}
		}
	}
	return ips
}

// SystrayApp shows the reader state and the last read in the system tray.
type SystrayApp struct {
	agent      *Agent
	serverPort int

	mu            syncutil.Mutex
	currentDevice string
	lastDisplay   string

	// Menu items
	mStatus     *systray.MenuItem
	mConnection *systray.MenuItem
	mData       *systray.MenuItem
	mCardUID    *systray.MenuItem
	mReader     *systray.MenuItem
	mCopyData   *systray.MenuItem
	mWSURL      *systray.MenuItem
	mCopyWSURL  *systray.MenuItem
	mStart      *systray.MenuItem
	mStop       *systray.MenuItem
	mDeviceMenu *systray.MenuItem

	deviceMenuItems map[string]*systray.MenuItem
}

// NewSystrayApp creates a new systray application. A serverPort of 0 hides
// the server URL entries.
func NewSystrayApp(agent *Agent, initialDevice string, serverPort int) *SystrayApp {
	s := &SystrayApp{
		agent:           agent,
		serverPort:      serverPort,
		currentDevice:   initialDevice,
		deviceMenuItems: make(map[string]*systray.MenuItem),
	}
	agent.OnReadEvent(s.showReadEvent)
	agent.OnStatus(s.showStatus)
	return s
}

// Run starts the systray application
func (s *SystrayApp) Run() {
	systray.Run(s.onReady, s.onExit)
}

func (s *SystrayApp) onReady() {
	s.setupUI()
	go s.startAgent()
}

func (s *SystrayApp) onExit() {
	s.agent.Stop()
}

// setupUI initializes all menu items
func (s *SystrayApp) setupUI() {
	systray.SetTitle("NFC")
	systray.SetTooltip(buildinfo.DisplayName + " " + buildinfo.FullVersion())

	s.mStatus = systray.AddMenuItem("Starting...", "Reader status")
	s.mStatus.Disable()
	s.mConnection = systray.AddMenuItem("Connection: Disconnected", "Device connection")
	s.mConnection.Disable()

	systray.AddSeparator()

	// Last read section
	s.mData = systray.AddMenuItem("Data on card: None", "Payload of the last tag")
	s.mData.Disable()
	s.mCardUID = systray.AddMenuItem("ID: None", "Identifier of the last tag")
	s.mCardUID.Disable()
	s.mReader = systray.AddMenuItem("Read via: None", "Reader that produced the last result")
	s.mReader.Disable()
	s.mCopyData = systray.AddMenuItem("Copy Last Read", "Copy the last read to the clipboard")

	if s.serverPort > 0 {
		systray.AddSeparator()
		s.mWSURL = systray.AddMenuItem("WebSocket: "+s.webSocketURL(), "WebSocket URL")
		s.mWSURL.Disable()
		s.mCopyWSURL = systray.AddMenuItem("Copy WebSocket URL", "Copy the WebSocket URL to the clipboard")
	}

	systray.AddSeparator()

	s.mDeviceMenu = systray.AddMenuItem("Device", "Select NFC Device")
	mRefreshDevices := s.mDeviceMenu.AddSubMenuItem("Refresh Devices", "Refresh device list")

	systray.AddSeparator()

	s.mStart = systray.AddMenuItem("Start Reader", "Start reading tags")
	s.mStop = systray.AddMenuItem("Stop Reader", "Stop reading tags")
	s.mStart.Disable()
	s.mStop.Disable()

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	go s.handleMenuEvents(mRefreshDevices, mQuit)
}

func (s *SystrayApp) startAgent() {
	if err := s.agent.Start(s.device()); err != nil {
		log.Printf("Failed to start reader: %v", err)
		s.mStatus.SetTitle("Failed to Start")
		s.mStart.Enable()
	} else {
		s.mStatus.SetTitle("Running")
		s.mStart.Disable()
		s.mStop.Enable()
	}
	s.updateDeviceList()
}

func (s *SystrayApp) handleMenuEvents(mRefreshDevices, mQuit *systray.MenuItem) {
	var copyWS <-chan struct{}
	if s.mCopyWSURL != nil {
		copyWS = s.mCopyWSURL.ClickedCh
	}

	for {
		select {
		case <-s.mStart.ClickedCh:
			s.startAgent()
		case <-s.mStop.ClickedCh:
			s.agent.Stop()
			s.mStatus.SetTitle("Stopped")
			s.mConnection.SetTitle("Connection: Disconnected")
			s.mStop.Disable()
			s.mStart.Enable()
		case <-mRefreshDevices.ClickedCh:
			s.updateDeviceList()
		case <-s.mCopyData.ClickedCh:
			s.mu.Lock()
			text := s.lastDisplay
			s.mu.Unlock()
			if text != "" {
				if err := copyToClipboard(text); err != nil {
					log.Printf("Failed to copy last read: %v", err)
				}
			}
		case <-copyWS:
			if err := copyToClipboard(s.webSocketURL()); err != nil {
				log.Printf("Failed to copy WebSocket URL: %v", err)
			}
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}

		s.handleDeviceSelection()
	}
}

// handleDeviceSelection processes device menu selections
func (s *SystrayApp) handleDeviceSelection() {
	for deviceName, menuItem := range s.deviceMenuItems {
		select {
		case <-menuItem.ClickedCh:
			if s.device() != deviceName {
				s.switchDevice(deviceName, menuItem)
			}
		default:
		}
	}
}

// switchDevice restarts the reader on a different device
func (s *SystrayApp) switchDevice(deviceName string, menuItem *systray.MenuItem) {
	for _, item := range s.deviceMenuItems {
		item.Uncheck()
	}
	menuItem.Check()

	s.mu.Lock()
	s.currentDevice = deviceName
	s.mu.Unlock()

	if s.agent.IsRunning() {
		s.agent.Stop()
		s.startAgent()
	}
}

// updateDeviceList refreshes the list of available devices
func (s *SystrayApp) updateDeviceList() {
	for _, item := range s.deviceMenuItems {
		item.Hide()
	}
	s.deviceMenuItems = make(map[string]*systray.MenuItem)

	devices, err := s.agent.Manager.ListDevices()
	if err != nil {
		log.Printf("Error listing devices: %v", err)
		return
	}

	current := s.device()
	for _, device := range devices {
		isChecked := current == device || (current == "" && len(s.deviceMenuItems) == 0)
		s.deviceMenuItems[device] = s.mDeviceMenu.AddSubMenuItemCheckbox(device, "Select this device", isChecked)
	}
}

func (s *SystrayApp) device() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentDevice
}

func (s *SystrayApp) showStatus(status nfc.DeviceStatus) {
	if s.mConnection == nil {
		return
	}
	title := "Connection: Disconnected"
	if status.Connected {
		title = "Connection: Connected"
	}
	s.mConnection.SetTitle(title)
	s.mStatus.SetTitle(truncate(status.Message))
}

func (s *SystrayApp) showReadEvent(ev nfc.ReadEvent) {
	s.mu.Lock()
	s.lastDisplay = ev.Display
	s.mu.Unlock()

	if s.mData == nil {
		return
	}
	data, id := splitDisplay(ev.Display)
	s.mData.SetTitle(truncate(data))
	s.mCardUID.SetTitle(truncate("ID: " + protocol.FormatUID(ev.TagID)))
	s.mCardUID.SetTooltip(id)
	s.mReader.SetTitle(fmt.Sprintf("Read via: %s (%s)", ev.Result.Reader, ev.Result.Outcome()))
}

func (s *SystrayApp) webSocketURL() string {
	ip := "localhost"
	if ips := getLocalIPs(); len(ips) > 0 {
		ip = ips[0]
	}
	return fmt.Sprintf("ws://%s:%d/ws", ip, s.serverPort)
}

// splitDisplay separates the data line from the ID line.
func splitDisplay(display string) (data, id string) {
	i := strings.LastIndex(display, "\nID: ")
	if i < 0 {
		return display, ""
	}
	return display[:i], display[i+1:]
}

// truncate shortens a menu title to menuTitleLimit runes and flattens newlines.
func truncate(title string) string {
	title = strings.ReplaceAll(title, "\n", " ")
	runes := []rune(title)
	if len(runes) <= menuTitleLimit {
		return title
	}
	return string(runes[:menuTitleLimit-1]) + "…"
}

// copyToClipboard copies text to the system clipboard
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		cmd = exec.Command("xclip", "-selection", "clipboard")
	case "windows":
		cmd = exec.Command("clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
