package nfc

// ReaderKind identifies one of the format-specific readers.
type ReaderKind int

const (
	ReaderNone ReaderKind = iota
	ReaderNdef
	ReaderUltralight
	ReaderIsoDep
)

func (k ReaderKind) String() string {
	switch k {
	case ReaderNdef:
		return "ndef"
	case ReaderUltralight:
		return "mifare-ultralight"
	case ReaderIsoDep:
		return "iso-dep"
	default:
		return "none"
	}
}

// Outcome classifies a ReadResult.
type Outcome int

const (
	OutcomeData Outcome = iota
	OutcomeUnsupported
	OutcomeTransientIO
	OutcomeProtocolExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeData:
		return "data"
	case OutcomeUnsupported:
		return "unsupported"
	case OutcomeTransientIO:
		return "transient-io"
	case OutcomeProtocolExhausted:
		return "protocol-exhausted"
	default:
		return "unknown"
	}
}

// ReadResult is the outcome of reading one tag. Data is meaningful only when
// Err is nil; it may then be empty but is never nil.
type ReadResult struct {
	Data   []byte
	Reader ReaderKind
	Err    error
}

// Ok reports whether the read produced a payload.
func (r ReadResult) Ok() bool {
	return r.Err == nil
}

// Outcome maps the result onto the read taxonomy.
func (r ReadResult) Outcome() Outcome {
	if r.Err == nil {
		return OutcomeData
	}
	switch GetErrorCode(r.Err) {
	case ErrCodeNotSupported:
		return OutcomeUnsupported
	case ErrCodeRetriesExhausted:
		return OutcomeProtocolExhausted
	default:
		return OutcomeTransientIO
	}
}

func dataResult(kind ReaderKind, data []byte) ReadResult {
	if data == nil {
		data = []byte{}
	}
	return ReadResult{Data: data, Reader: kind}
}

func errorResult(kind ReaderKind, err error) ReadResult {
	return ReadResult{Reader: kind, Err: err}
}
