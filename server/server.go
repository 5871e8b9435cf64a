// Package server publishes tag reads over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"

	"github.com/dotside-studios/nfc-tag-reader/buildinfo"
	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
	"github.com/dotside-studios/nfc-tag-reader/nfc"
	"github.com/dotside-studios/nfc-tag-reader/protocol"
)

// StatusSource is the part of the reader the server queries on demand.
type StatusSource interface {
	GetDeviceStatus() nfc.DeviceStatus
	LastEvent() (nfc.ReadEvent, bool)
}

// Config holds the server configuration
type Config struct {
	Reader     StatusSource
	Port       int
	EnableMDNS bool
	Logger     *log.Logger
}

// Server manages the HTTP and WebSocket server
type Server struct {
	config     Config
	logger     *log.Logger
	mux        *http.ServeMux
	httpServer *http.Server
	listener   net.Listener

	// Client WebSocket management
	clients    map[*websocket.Conn]bool
	clientsMux syncutil.Mutex
	upgrader   websocket.Upgrader

	// mDNS service for auto-discovery
	mdnsServer *zeroconf.Server
}

// New creates a new server instance
func New(config Config) *Server {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.Logger == nil {
		config.Logger = log.New(os.Stderr, "[server] ", log.LstdFlags)
	}

	s := &Server{
		config:  config,
		logger:  config.Logger,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
	}
	s.mux = s.routes()
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc(apiV1+"/health", enableCORS(getOnly(s.handleHealthCheck)))
	mux.HandleFunc(apiV1+"/status", enableCORS(getOnly(s.handleStatus)))
	mux.HandleFunc(apiV1+"/last", enableCORS(getOnly(s.handleLastEvent)))
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/", enableCORS(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(buildinfo.DisplayName + " Running"))
	}))
	return mux
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start binds the listening socket and serves in the background. mDNS
// failures are logged and do not stop the server.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.config.Port, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Printf("Starting server on %s", ln.Addr())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("HTTP server error: %v", err)
		}
	}()

	if s.config.EnableMDNS {
		if err := s.startMDNS(); err != nil {
			s.logger.Printf("Warning: Failed to start mDNS service: %v", err)
			s.logger.Printf("Auto-discovery will not be available, but server will continue normally")
		}
	}
	return nil
}

// Stop shuts the HTTP server down and closes every WebSocket client.
func (s *Server) Stop() {
	s.stopMDNS()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Printf("Server shutdown error: %v", err)
		}
		s.httpServer = nil
	}

	s.clientsMux.Lock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
	s.clientsMux.Unlock()
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()
	return len(s.clients)
}

// broadcast sends a message to all connected clients
func (s *Server) broadcast(message protocol.WebSocketMessage) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	for client := range s.clients {
		client.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := client.WriteJSON(message); err != nil {
			s.logger.Printf("WebSocket write error: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
}

// BroadcastDeviceStatus sends the device status to all connected WebSocket clients
func (s *Server) BroadcastDeviceStatus(status nfc.DeviceStatus) {
	s.broadcast(protocol.WebSocketMessage{
		Type:    WSMessageTypeDeviceStatus,
		Payload: NewDeviceStatusPayload(status),
	})
}

// BroadcastReadEvent sends a read event to all connected WebSocket clients
func (s *Server) BroadcastReadEvent(ev nfc.ReadEvent) {
	s.broadcast(protocol.WebSocketMessage{
		Type:    WSMessageTypeReadEvent,
		Payload: NewReadEventPayload(ev),
	})
}

const writeTimeout = 5 * time.Second

// handleWebSocket upgrades the connection, sends the current state and keeps
// the client registered until it disconnects. Clients only listen.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("WebSocket upgrade error: %v", err)
		return
	}
	s.logger.Printf("WebSocket connected from %s", r.RemoteAddr)

	s.clientsMux.Lock()
	err = s.sendInitialState(conn)
	if err == nil {
		s.clients[conn] = true
	}
	s.clientsMux.Unlock()
	if err != nil {
		s.logger.Printf("WebSocket initial write failed: %v", err)
		conn.Close()
		return
	}

	defer func() {
		s.clientsMux.Lock()
		delete(s.clients, conn)
		s.clientsMux.Unlock()
		conn.Close()
		s.logger.Printf("WebSocket disconnected from %s", r.RemoteAddr)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// sendInitialState must be called with clientsMux held.
func (s *Server) sendInitialState(conn *websocket.Conn) error {
	if s.config.Reader == nil {
		return nil
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := conn.WriteJSON(protocol.WebSocketMessage{
		Type:    WSMessageTypeDeviceStatus,
		Payload: NewDeviceStatusPayload(s.config.Reader.GetDeviceStatus()),
	})
	if err != nil {
		return err
	}
	if ev, ok := s.config.Reader.LastEvent(); ok {
		return conn.WriteJSON(protocol.WebSocketMessage{
			Type:    WSMessageTypeReadEvent,
			Payload: NewReadEventPayload(ev),
		})
	}
	return nil
}

// handleHealthCheck provides a health check endpoint (GET /api/v1/health)
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, protocol.HealthPayload{
		Status:    "ok",
		Version:   buildinfo.FullVersion(),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// handleStatus returns the live device status (GET /api/v1/status)
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.config.Reader == nil {
		writeError(w, http.StatusServiceUnavailable, protocol.ErrCodeInternalError, "no reader configured")
		return
	}
	writeJSON(w, http.StatusOK, NewDeviceStatusPayload(s.config.Reader.GetDeviceStatus()))
}

// handleLastEvent returns the most recent read (GET /api/v1/last). With
// ?uid= it only matches a read of that tag.
func (s *Server) handleLastEvent(w http.ResponseWriter, r *http.Request) {
	var want string
	if raw := r.URL.Query().Get("uid"); raw != "" {
		uid, err := protocol.ParseUID(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, protocol.ErrCodeInvalidUID, err.Error())
			return
		}
		want = uid
	}

	if s.config.Reader == nil {
		writeError(w, http.StatusNotFound, protocol.ErrCodeNoEvent, "no tag has been read")
		return
	}
	ev, ok := s.config.Reader.LastEvent()
	if !ok {
		writeError(w, http.StatusNotFound, protocol.ErrCodeNoEvent, "no tag has been read")
		return
	}

	payload := NewReadEventPayload(ev)
	if want != "" && payload.UID != want {
		writeError(w, http.StatusNotFound, protocol.ErrCodeNoEvent, fmt.Sprintf("last read was not tag %s", want))
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, protocol.ErrorResponse{Error: message, ErrorCode: code})
}

// enableCORS is a middleware that adds CORS headers to responses
func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", CORSAllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", CORSAllowMethods)
		w.Header().Set("Access-Control-Allow-Headers", CORSAllowHeaders)

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
