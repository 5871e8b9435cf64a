package nfc

// DefaultMaxTransceiveLength is the ISO-DEP frame size assumed when the
// reader does not report one: a short APDU response of 256 bytes minus the
// status word and framing overhead.
const DefaultMaxTransceiveLength = 253

// Device represents an NFC reader.
//
// A Device is obtained from a Manager. Tags polls the field once and returns
// every tag currently presented; the returned handles are only valid until
// the next call to Tags or Close.
//
// Example:
//
//	manager, _ := nfc.NewManager(nfc.BackendLibNFC, nfc.DeviceConfig{})
//	device, err := manager.OpenDevice("")
//	defer device.Close()
//	events, _ := device.Tags()
type Device interface {
	Close() error
	InitiatorInit() error
	String() string
	Connection() string
	Tags() ([]TagEvent, error)
}

// hardwareTag is the TagHandle handed out by the hardware backends.
type hardwareTag struct {
	id         []byte
	techs      []string
	ndef       NdefTech
	ultralight UltralightTech
	isoDep     IsoDepTech
}

// newHardwareTag derives the technology list from the transports the reader
// could open. Every tag is NfcA; a page interface adds MifareUltralight and a
// Type 2 NDEF view, an ISO-DEP transport adds IsoDep and a Type 4 NDEF view.
func newHardwareTag(id []byte, ultralight UltralightTech, isoDep IsoDepTech) *hardwareTag {
	t := &hardwareTag{id: id}
	switch {
	case ultralight != nil:
		t.ultralight = ultralight
		t.ndef = NewType2Ndef(ultralight)
		t.techs = []string{TechNfcA, TechMifareUltralight, TechNdef}
	case isoDep != nil:
		t.isoDep = isoDep
		t.ndef = NewType4Ndef(isoDep)
		t.techs = []string{TechIsoDep, TechNfcA, TechNdef}
	default:
		t.techs = []string{TechNfcA}
	}
	return t
}

func (t *hardwareTag) ID() []byte         { return t.id }
func (t *hardwareTag) TechList() []string { return t.techs }

func (t *hardwareTag) Ndef() (NdefTech, bool) {
	return t.ndef, t.ndef != nil
}

func (t *hardwareTag) MifareUltralight() (UltralightTech, bool) {
	return t.ultralight, t.ultralight != nil
}

func (t *hardwareTag) IsoDep() (IsoDepTech, bool) {
	return t.isoDep, t.isoDep != nil
}

func newTagEvent(tag TagHandle) TagEvent {
	return TagEvent{Tag: tag, Kind: discoveryKindFor(tag.TechList())}
}
