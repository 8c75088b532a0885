// Package recorddetail provides the single-record detail view for the TUI.
package recorddetail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/messages"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/styles"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// View shows one classification record in full.
type View struct {
	styles *styles.Styles

	record *domain.Record
	width  int
	height int
	ready  bool
}

// NewView creates a new record detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
	}
}

// SetRecord sets the record to display.
func (v *View) SetRecord(record domain.Record) {
	v.record = &record
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewRecords}
			}
		}
	}

	return v, nil
}

// View renders the record detail.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Record"))
	b.WriteString("\n\n")

	if v.record == nil {
		b.WriteString(v.styles.Muted.Render("No record selected."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	label := v.record.DomainCN
	if v.record.DomainEN != "" && v.record.DomainEN != v.record.DomainCN {
		label = fmt.Sprintf("%s | %s", v.record.DomainCN, v.record.DomainEN)
	}

	rows := []struct {
		name  string
		value string
	}{
		{"File", v.record.FileName},
		{"Path", v.record.FilePath},
		{"Domain", label},
		{"Model", v.record.Model},
		{"Excerpt chars", fmt.Sprintf("%d", v.record.ExcerptChars)},
		{"Updated", v.record.UpdatedAt.Format("2006-01-02 15:04:05")},
	}

	for _, row := range rows {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%-14s", row.name)))
		b.WriteString(" ")
		b.WriteString(v.styles.Normal.Render(row.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the keybinding hints.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[Esc] Back")
}

// Record returns the displayed record.
func (v *View) Record() *domain.Record {
	return v.record
}

// SetDimensions sets the display dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
