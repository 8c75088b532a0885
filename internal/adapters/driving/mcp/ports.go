package mcp

import (
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library queries the classified corpus.
	Library driving.LibraryService

	// Scan classifies documents on demand. Optional; without it the
	// classify tool reports classification as unavailable.
	Scan driving.ScanService

	// Settings reads application settings. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	// Scan and Settings are optional
	return nil
}
