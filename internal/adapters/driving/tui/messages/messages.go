// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDomains lists classified domains with counts.
	ViewDomains
	// ViewRecords lists the records under one domain, or all records.
	ViewRecords
	// ViewRecordDetail shows one classification record.
	ViewRecordDetail
	// ViewSettings is the settings overview.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDomains:
		return "domains"
	case ViewRecords:
		return "records"
	case ViewRecordDetail:
		return "record_detail"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DomainsLoaded carries the domain counts from the library.
type DomainsLoaded struct {
	Counts []domain.DomainCount
	Err    error
}

// DomainSelected signals a domain was selected for browsing.
// An empty label means all records.
type DomainSelected struct {
	Label string
}

// RecordsLoaded carries the records for the selected domain.
type RecordsLoaded struct {
	Label   string
	Records []domain.Record
	Err     error
}

// RecordSelected signals a record was selected for detail view.
type RecordSelected struct {
	Record domain.Record
}

// RecordDeleted signals a record was deleted.
type RecordDeleted struct {
	Path string
	Err  error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}
