package server

import (
	"fmt"

	"github.com/grandcat/zeroconf"

	"github.com/dotside-studios/nfc-tag-reader/buildinfo"
)

// mdnsTXTRecords describes the service to browsers on the local network.
func mdnsTXTRecords() []string {
	return []string{
		"version=" + buildinfo.Version,
		"protocol=websocket",
		"path=/ws",
		"api=" + apiV1,
	}
}

// startMDNS registers the reader as an mDNS service for auto-discovery
func (s *Server) startMDNS() error {
	server, err := zeroconf.Register(MDNSServiceName, MDNSServiceType, MDNSDomain, s.config.Port, mdnsTXTRecords(), nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}

	s.mdnsServer = server
	s.logger.Printf("mDNS service registered: %s (%s) on port %d", MDNSServiceName, MDNSServiceType, s.config.Port)
	return nil
}

func (s *Server) stopMDNS() {
	if s.mdnsServer == nil {
		return
	}
	s.mdnsServer.Shutdown()
	s.mdnsServer = nil
	s.logger.Printf("mDNS service stopped")
}
