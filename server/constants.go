package server

import (
	"github.com/dotside-studios/nfc-tag-reader/buildinfo"
	"github.com/dotside-studios/nfc-tag-reader/protocol"
)

// mDNS service discovery constants
var (
	MDNSServiceType = "_nfc-reader._tcp"
	MDNSServiceName = buildinfo.DisplayName
	MDNSDomain      = "local."
)

// WebSocket message types for client-server communication
const (
	WSMessageTypeReadEvent    = protocol.WSTypeReadEvent
	WSMessageTypeDeviceStatus = protocol.WSTypeDeviceStatus
)

// CORS configuration
const (
	CORSAllowOrigin  = "*"
	CORSAllowMethods = "GET, OPTIONS"
	CORSAllowHeaders = "Content-Type, Authorization"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 18080

const apiV1 = "/api/v1"
