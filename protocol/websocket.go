package protocol

// WebSocket message type constants
const (
	WSTypeReadEvent    = "readEvent"
	WSTypeDeviceStatus = "deviceStatus"
)

// WebSocketMessage is the generic message envelope for WebSocket communication.
type WebSocketMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
