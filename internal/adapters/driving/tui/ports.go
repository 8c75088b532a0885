// Package tui provides an interactive terminal browser over the
// classified corpus. It implements a driving adapter following
// hexagonal architecture principles.
package tui

import (
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library queries the classified corpus.
	Library driving.LibraryService

	// Settings manages application settings. Optional; the settings
	// view shows a notice when absent.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(library driving.LibraryService, settings driving.SettingsService) *Ports {
	return &Ports{
		Library:  library,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}
