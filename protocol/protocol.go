// Package protocol provides the JSON message types published by the reader.
// This package is designed to be importable without pulling in server dependencies.
package protocol

// ReadEventPayload is broadcast once per tag presentation.
type ReadEventPayload struct {
	// ID is the event identifier (UUID)
	ID string `json:"id"`

	// UID is the tag identifier as colon-separated uppercase hex (e.g. "04:AB:CD:EF")
	UID string `json:"uid"`

	// Kind is how the tag was presented: "ndef", "tech" or "tag"
	Kind string `json:"kind"`

	// Reader names the format reader that produced the result:
	// "ndef", "mifare-ultralight", "iso-dep" or "none"
	Reader string `json:"reader"`

	// Outcome is "data", "unsupported", "transient-io" or "protocol-exhausted"
	Outcome string `json:"outcome"`

	// Data is the raw payload (base64 in JSON); empty unless Outcome is "data"
	Data []byte `json:"data"`

	// Display is the two-line summary, e.g. "Data on card: hi\nID:  0x04ab"
	Display string `json:"display"`

	// Message is set when the payload is a well-formed NDEF message
	Message *NDEFMessagePayload `json:"message,omitempty"`

	Device    string  `json:"device,omitempty"`
	ScannedAt string  `json:"scannedAt"` // RFC3339 format
	Error     *string `json:"err"`
}

// DeviceStatusPayload is the payload for device status updates.
type DeviceStatusPayload struct {
	Connected   bool   `json:"connected"`
	Message     string `json:"message"`
	CardPresent bool   `json:"cardPresent"`
}

// HealthPayload is returned by GET /api/v1/health.
type HealthPayload struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Error codes for HTTP error responses
const (
	ErrCodeInvalidUID    = "INVALID_UID"
	ErrCodeNoEvent       = "NO_EVENT"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// ErrorResponse is the body of a failed HTTP request.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode"`
}
