package nfc

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/clausecker/freefare"
	"github.com/clausecker/nfc/v2"
)

var modulationISO14443A = nfc.Modulation{Type: nfc.ISO14443a, BaudRate: nfc.Nbr106}

// libnfcDevice implements Device using an nfc.Device from libnfc.
type libnfcDevice struct {
	device nfc.Device
	cfg    DeviceConfig
}

func newLibnfcDevice(dev nfc.Device, cfg DeviceConfig) Device {
	return &libnfcDevice{device: dev, cfg: cfg}
}

func (d *libnfcDevice) Close() error {
	return d.device.Close()
}

func (d *libnfcDevice) InitiatorInit() error {
	return d.device.InitiatorInit()
}

func (d *libnfcDevice) String() string {
	return d.device.String()
}

func (d *libnfcDevice) Connection() string {
	return d.device.Connection()
}

// Tags polls for tags on the device.
// MIFARE Ultralight tags are taken from freefare, which knows how to drive
// their page interface. Every other ISO14443A target is then listed directly;
// targets whose SAK announces ISO14443-4 get an ISO-DEP transport.
func (d *libnfcDevice) Tags() ([]TagEvent, error) {
	var events []TagEvent
	seen := make(map[string]bool)

	ffTags, ffErr := freefare.GetTags(d.device)
	if ffErr != nil {
		d.cfg.Logger.Printf("Error getting tags from freefare.GetTags: %v", ffErr)
	}
	for _, ffTag := range ffTags {
		ul, ok := ffTag.(freefare.UltralightTag)
		if !ok {
			continue
		}
		uid := strings.ToUpper(ul.UID())
		id, err := hex.DecodeString(uid)
		if err != nil {
			d.cfg.Logger.Printf("Skipping Ultralight tag with malformed UID %q: %v", uid, err)
			continue
		}
		if seen[uid] {
			continue
		}
		seen[uid] = true
		events = append(events, newTagEvent(newHardwareTag(id, &freefareUltralight{tag: ul}, nil)))
	}

	targets, listErr := d.device.InitiatorListPassiveTargets(modulationISO14443A)
	if listErr != nil {
		if ffErr != nil && len(events) == 0 {
			return nil, fmt.Errorf("error from freefare (%v) AND passive targets (%w)", ffErr, listErr)
		}
		d.cfg.Logger.Printf("Error listing passive targets: %v", listErr)
		return events, nil
	}

	for _, target := range targets {
		isoA, ok := target.(*nfc.ISO14443aTarget)
		if !ok || isoA.UIDLen == 0 || int(isoA.UIDLen) > len(isoA.UID) {
			continue
		}
		id := append([]byte(nil), isoA.UID[:isoA.UIDLen]...)
		uid := strings.ToUpper(hex.EncodeToString(id))
		if seen[uid] {
			continue
		}
		seen[uid] = true

		var isoDep IsoDepTech
		if isoA.Sak&0x20 != 0 {
			d.cfg.Logger.Printf("Found ISO14443-4A tag: UID %s, SAK %02X", uid, isoA.Sak)
			isoDep = &libnfcIsoDep{device: d.device, uid: id, maxLen: d.cfg.MaxTransceiveLength}
		}
		events = append(events, newTagEvent(newHardwareTag(id, nil, isoDep)))
	}

	return events, nil
}
