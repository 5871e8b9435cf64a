package protocol

// NDEFRecordPayload is the JSON-friendly representation of an NDEF record.
type NDEFRecordPayload struct {
	Type     string `json:"type"`              // "text", "uri" or the raw record type
	Content  string `json:"content,omitempty"` // Decoded content
	Language string `json:"language,omitempty"`
	TNF      uint8  `json:"tnf"`
	ID       string `json:"id,omitempty"`
	Payload  []byte `json:"payload"`
}

// NDEFMessagePayload is the JSON-friendly representation of an NDEF message.
type NDEFMessagePayload struct {
	Type    string              `json:"type"` // "ndef"
	Records []NDEFRecordPayload `json:"records"`
}
