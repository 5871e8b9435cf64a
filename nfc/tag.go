package nfc

import (
	"github.com/hsanjuan/go-ndef"
)

//go:generate mockgen -source=tag.go -destination=mocks/tag_mock.go -package=mocks

// Technology names a tag can report in its technology list.
const (
	TechNdef             = "android.nfc.tech.Ndef"
	TechMifareUltralight = "android.nfc.tech.MifareUltralight"
	TechNfcA             = "android.nfc.tech.NfcA"
	TechIsoDep           = "android.nfc.tech.IsoDep"
)

// TagHandle represents a physical tag for the duration of one detection event.
//
// A TagHandle is borrowed from the device layer and must not be kept after
// the event has been handled. The technology accessors return false when the
// tag does not offer that technology.
//
// Example:
//
//	result := detector.Detect(tag)
//	fmt.Println(nfc.FormatDisplay(tag.ID(), result))
type TagHandle interface {
	ID() []byte
	TechList() []string
	Ndef() (NdefTech, bool)
	MifareUltralight() (UltralightTech, bool)
	IsoDep() (IsoDepTech, bool)
}

// NdefTech is a connection-scoped session to a tag's NDEF interface.
// Message returns nil without error when the tag holds no NDEF message.
type NdefTech interface {
	Connect() error
	Message() (*ndef.Message, error)
	Close() error
}

// UltralightTech is a connection-scoped session to a MIFARE Ultralight tag.
// ReadPages returns at least 16 bytes starting at startPage.
type UltralightTech interface {
	Connect() error
	ReadPages(startPage int) ([]byte, error)
	Close() error
}

// IsoDepTech is a connection-scoped ISO 14443-4 transport.
type IsoDepTech interface {
	Connect() error
	MaxTransceiveLength() int
	Transceive(command []byte) ([]byte, error)
	Close() error
}

// DiscoveryKind classifies how a tag was presented. All kinds are handled
// the same way by the detector.
type DiscoveryKind int

const (
	TagDiscovered DiscoveryKind = iota
	TechDiscovered
	NdefDiscovered
)

func (k DiscoveryKind) String() string {
	switch k {
	case NdefDiscovered:
		return "ndef"
	case TechDiscovered:
		return "tech"
	default:
		return "tag"
	}
}

// TagEvent is a single tag presentation delivered by a device.
type TagEvent struct {
	Tag  TagHandle
	Kind DiscoveryKind
}

// hasTech reports whether name is in the tag's technology list.
func hasTech(techs []string, name string) bool {
	for _, t := range techs {
		if t == name {
			return true
		}
	}
	return false
}

// discoveryKindFor mirrors how a tag would be dispatched: NDEF-formatted tags
// first, then tags with a known technology, everything else as a plain tag.
func discoveryKindFor(techs []string) DiscoveryKind {
	switch {
	case hasTech(techs, TechNdef):
		return NdefDiscovered
	case hasTech(techs, TechMifareUltralight), hasTech(techs, TechIsoDep), hasTech(techs, TechNfcA):
		return TechDiscovered
	default:
		return TagDiscovered
	}
}
