// Package buildinfo contains application metadata that can be set at build time.
//
// For release builds, use ldflags to set the version:
//
//	go build -ldflags "-X github.com/dotside-studios/nfc-tag-reader/buildinfo.Version=1.0.0"
//
// Or set multiple values:
//
//	go build -ldflags "\
//	  -X github.com/dotside-studios/nfc-tag-reader/buildinfo.Version=1.0.0 \
//	  -X github.com/dotside-studios/nfc-tag-reader/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/dotside-studios/nfc-tag-reader/buildinfo.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime"
)

// Application metadata - can be overridden at build time via ldflags
var (
	// Name is the technical application name
	Name = "nfc-tag-reader"

	// DisplayName is the user-friendly name (used for UI, mDNS, titles)
	DisplayName = "NFC Tag Reader"

	// Description is a short description of the application
	Description = "Reads NDEF, MIFARE Ultralight and ISO-DEP tags and publishes what they hold"

	// Version is the semantic version (set via ldflags for releases)
	Version = "dev"

	// Commit is the git commit hash (set via ldflags)
	Commit = ""

	// BuildTime is the build timestamp (set via ldflags)
	BuildTime = ""
)

// FullVersion returns the version string with optional commit info.
// Examples:
//   - "dev" (development build)
//   - "1.0.0" (release build)
//   - "1.0.0 (abc1234)" (release build with commit)
func FullVersion() string {
	if Commit != "" {
		return fmt.Sprintf("%s (%s)", Version, Commit)
	}
	return Version
}

// BuildInfo returns a multi-line string with full build information.
func BuildInfo() string {
	info := fmt.Sprintf("%s %s\n", Name, FullVersion())
	info += fmt.Sprintf("  %s\n", Description)
	info += fmt.Sprintf("  Go: %s\n", runtime.Version())
	info += fmt.Sprintf("  OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH)
	if BuildTime != "" {
		info += fmt.Sprintf("\n  Built: %s", BuildTime)
	}
	return info
}

// IsDev returns true if this is a development build.
func IsDev() bool {
	return Version == "dev"
}
