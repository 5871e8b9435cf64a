// Command nfc-tag-reader reads NFC tags presented to a reader and publishes
// what they hold. Each tag is tried as NDEF first, then as MIFARE Ultralight
// or over ISO-DEP, and the result is shown in the system tray, logged and
// broadcast to WebSocket clients.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/systray"

	"github.com/dotside-studios/nfc-tag-reader/buildinfo"
	"github.com/dotside-studios/nfc-tag-reader/nfc"
	"github.com/dotside-studios/nfc-tag-reader/server"
)

const selectionUsage = "Technology selection: specificity (most specific technology wins) or " +
	"list-order (first supported entry of the tag technology list, as the legacy cascade did)"

type options struct {
	backend       string
	device        string
	port          int
	cli           bool
	selection     string
	maxTransceive int
	retries       int
	retryDelay    time.Duration
	pollInterval  time.Duration
	mdns          bool
	version       bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet(buildinfo.Name, flag.ContinueOnError)
	fs.StringVar(&opts.backend, "backend", string(nfc.BackendPCSC), "Reader backend: pcsc or libnfc")
	fs.StringVar(&opts.device, "device", "", "Reader name or libnfc connstring (optional, default: first found)")
	fs.IntVar(&opts.port, "port", server.DefaultPort, "Port for the HTTP/WebSocket server (0 disables it)")
	fs.BoolVar(&opts.cli, "cli", false, "Run in CLI mode (default: system tray mode)")
	fs.StringVar(&opts.selection, "selection", "specificity", selectionUsage)
	fs.IntVar(&opts.maxTransceive, "max-transceive", nfc.DefaultMaxTransceiveLength, "ISO-DEP frame size reported by the reader")
	fs.IntVar(&opts.retries, "retries", nfc.DefaultIsoDepAttempts, "ISO-DEP attempts for the first READ BINARY")
	fs.DurationVar(&opts.retryDelay, "retry-delay", nfc.DefaultIsoDepRetryDelay, "Pause between ISO-DEP attempts (negative for none)")
	fs.DurationVar(&opts.pollInterval, "poll-interval", nfc.DefaultPollingInterval, "Interval between polls of the reader")
	fs.BoolVar(&opts.mdns, "mdns", true, "Advertise the server over mDNS")
	fs.BoolVar(&opts.version, "version", false, "Print version information and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func buildAgent(opts options) (*Agent, error) {
	backend, err := nfc.ParseBackend(opts.backend)
	if err != nil {
		return nil, err
	}
	selection, err := nfc.ParseSelection(opts.selection)
	if err != nil {
		return nil, err
	}

	manager, err := nfc.NewManager(backend, nfc.DeviceConfig{
		MaxTransceiveLength: opts.maxTransceive,
	})
	if err != nil {
		return nil, err
	}

	readerCfg := nfc.ReaderConfig{
		PollInterval: opts.pollInterval,
		Detector: nfc.DetectorConfig{
			Selection: selection,
			IsoDep: nfc.IsoDepConfig{
				Attempts:   opts.retries,
				RetryDelay: opts.retryDelay,
			},
		},
	}

	var serverCfg *server.Config
	if opts.port > 0 {
		serverCfg = &server.Config{Port: opts.port, EnableMDNS: opts.mdns}
	}
	return NewAgent(manager, readerCfg, serverCfg), nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts.version {
		fmt.Println(buildinfo.BuildInfo())
		return
	}
	if buildinfo.IsDev() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	agent, err := buildAgent(opts)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Run in CLI mode only if explicitly requested
	if opts.cli {
		if err := agent.Start(opts.device); err != nil {
			log.Fatalf("Failed to start reader: %v", err)
		}
		defer agent.Stop()

		<-sigChan
		log.Println("Shutdown signal received, stopping reader...")
		return
	}

	go func() {
		<-sigChan
		systray.Quit()
	}()

	port := 0
	if agent.ServerConfig != nil {
		port = agent.ServerConfig.Port
	}
	NewSystrayApp(agent, opts.device, port).Run()
}
