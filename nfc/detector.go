package nfc

import (
	"log"
	"os"
)

const (
	opDetect   = "Detect"
	opReadNdef = "ReadNdef"
)

// Selection decides which technology-specific reader runs when NDEF yields nothing.
type Selection int

const (
	// SelectBySpecificity ranks MifareUltralight above IsoDep above NfcA,
	// independent of the order the tag lists them in.
	SelectBySpecificity Selection = iota
	// SelectByListOrder walks the technology list and takes the first
	// MifareUltralight or NfcA entry. A tag listing NfcA before
	// MifareUltralight is read over ISO-DEP.
	SelectByListOrder
)

func (s Selection) String() string {
	if s == SelectByListOrder {
		return "list-order"
	}
	return "specificity"
}

// ParseSelection maps a flag value onto a Selection.
func ParseSelection(s string) (Selection, error) {
	switch s {
	case "", "specificity":
		return SelectBySpecificity, nil
	case "list-order":
		return SelectByListOrder, nil
	default:
		return SelectBySpecificity, Errorf(ErrCodeInvalidData, "ParseSelection", "unknown selection %q", s)
	}
}

// techRank orders technologies from most to least specific.
var techRank = map[string]int{
	TechMifareUltralight: 3,
	TechIsoDep:           2,
	TechNfcA:             1,
}

// DetectorConfig configures a Detector.
type DetectorConfig struct {
	Selection Selection
	IsoDep    IsoDepConfig
	Clock     Clock
	Logger    *log.Logger
}

// Detector runs the format detection cascade: NDEF first, then exactly one
// of the MIFARE Ultralight or ISO-DEP readers.
type Detector struct {
	selection Selection
	isoDep    *IsoDepReader
	logger    *log.Logger
}

// NewDetector creates a Detector.
func NewDetector(cfg DetectorConfig) *Detector {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[detect] ", log.LstdFlags)
	}
	return &Detector{
		selection: cfg.Selection,
		isoDep:    NewIsoDepReader(cfg.IsoDep, cfg.Clock, logger),
		logger:    logger,
	}
}

// Detect reads the tag and returns the first payload found.
// Failures are logged and reported through the result, never panicked or
// returned as a separate error.
func (d *Detector) Detect(tag TagHandle) ReadResult {
	ndefResult := d.read(ReaderNdef, tag)
	if ndefResult.Ok() {
		return ndefResult
	}
	if !IsNotSupportedError(ndefResult.Err) {
		d.logger.Printf("NDEF read failed: %v", ndefResult.Err)
	}

	kind := d.SelectReader(tag.TechList())
	if kind == ReaderNone {
		if !IsNotSupportedError(ndefResult.Err) {
			return ndefResult
		}
		return errorResult(ReaderNone, NewNotSupportedError(opDetect, "no supported technology"))
	}

	result := d.read(kind, tag)
	if !result.Ok() {
		d.logger.Printf("%s read failed (%s): %v", kind, result.Outcome(), result.Err)
	}
	return result
}

// SelectReader picks the reader for a technology list according to the
// configured selection policy.
func (d *Detector) SelectReader(techs []string) ReaderKind {
	if d.selection == SelectByListOrder {
		for _, tech := range techs {
			switch tech {
			case TechMifareUltralight:
				return ReaderUltralight
			case TechNfcA:
				return ReaderIsoDep
			}
		}
		return ReaderNone
	}

	best, bestRank := "", 0
	for _, tech := range techs {
		if rank := techRank[tech]; rank > bestRank {
			best, bestRank = tech, rank
		}
	}
	switch best {
	case TechMifareUltralight:
		return ReaderUltralight
	case TechIsoDep, TechNfcA:
		return ReaderIsoDep
	default:
		return ReaderNone
	}
}

// read dispatches to one reader variant.
func (d *Detector) read(kind ReaderKind, tag TagHandle) ReadResult {
	var (
		data []byte
		err  error
	)

	switch kind {
	case ReaderNdef:
		tech, ok := tag.Ndef()
		if !ok {
			return errorResult(kind, NewNotSupportedError(opReadNdef, "tag has no NDEF interface"))
		}
		data, err = readNdef(d.logger, tech)
	case ReaderUltralight:
		tech, ok := tag.MifareUltralight()
		if !ok {
			return errorResult(kind, NewNotSupportedError(opReadUltralight, "tag is not a MIFARE Ultralight"))
		}
		data, err = readUltralight(d.logger, tech)
	case ReaderIsoDep:
		tech, ok := tag.IsoDep()
		if !ok {
			return errorResult(kind, NewNotSupportedError(opReadIsoDep, "tag has no ISO-DEP transport"))
		}
		data, err = d.isoDep.Read(tech)
	default:
		return errorResult(kind, NewNotSupportedError(opDetect, "no reader selected"))
	}

	if err != nil {
		return errorResult(kind, err)
	}
	return dataResult(kind, data)
}

// readNdef returns the serialised NDEF message of the tag.
func readNdef(logger *log.Logger, tech NdefTech) ([]byte, error) {
	defer release(logger, opReadNdef, tech)
	if err := tech.Connect(); err != nil {
		return nil, NewConnectError(opReadNdef, err)
	}

	msg, err := tech.Message()
	if err != nil {
		return nil, NewReadError(opReadNdef, err)
	}
	if msg == nil {
		return nil, NewNotSupportedError(opReadNdef, "no NDEF message on tag")
	}

	raw, err := msg.Marshal()
	if err != nil {
		return nil, WrapError(ErrCodeInvalidData, opReadNdef, "cannot serialise NDEF message", err)
	}
	return raw, nil
}
