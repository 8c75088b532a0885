// Package records provides the record list view for the TUI.
package records

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/components/list"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/messages"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/styles"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// View is the record list view. With a domain label set it shows that
// domain's records; with an empty label it shows the whole corpus.
type View struct {
	styles  *styles.Styles
	library driving.LibraryService

	label   string
	records *list.RecordList
	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new records view.
func NewView(s *styles.Styles, library driving.LibraryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		library: library,
		records: list.NewRecordList(s),
	}
}

// SetDomain sets the domain filter and loads the matching records.
// An empty label loads everything.
func (v *View) SetDomain(label string) tea.Cmd {
	v.label = label
	v.records.SetRecords(nil)
	v.err = nil
	return v.loadRecords()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadRecords returns a command that fetches records from the library.
func (v *View) loadRecords() tea.Cmd {
	v.loading = true
	return func() tea.Msg {
		if v.library == nil {
			return messages.RecordsLoaded{Err: fmt.Errorf("library service not available")}
		}

		var (
			records []domain.Record
			err     error
		)
		if v.label == "" {
			records, err = v.library.AllRecords(context.Background())
		} else {
			records, err = v.library.RecordsByDomain(context.Background(), v.label)
		}
		return messages.RecordsLoaded{Label: v.label, Records: records, Err: err}
	}
}

// deleteRecord returns a command that removes the selected record.
func (v *View) deleteRecord(path string) tea.Cmd {
	return func() tea.Msg {
		if v.library == nil {
			return messages.RecordDeleted{Path: path, Err: fmt.Errorf("library service not available")}
		}

		err := v.library.Delete(context.Background(), path)
		return messages.RecordDeleted{Path: path, Err: err}
	}
}

// Update handles messages for the records view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.records.SetDimensions(msg.Width, msg.Height-4)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RecordsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.records.SetRecords(msg.Records)
			v.err = nil
		}
		return v, nil

	case messages.RecordDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		// Reload after a successful delete.
		return v, v.loadRecords()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.records.MoveUp()
	case "down", "j":
		v.records.MoveDown()
	case "enter":
		if rec := v.records.Selected(); rec != nil {
			selected := *rec
			return v, func() tea.Msg {
				return messages.RecordSelected{Record: selected}
			}
		}
	case "d":
		if rec := v.records.Selected(); rec != nil {
			return v, v.deleteRecord(rec.FilePath)
		}
	case "esc":
		target := messages.ViewDomains
		if v.label == "" {
			target = messages.ViewMenu
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: target}
		}
	case "r":
		return v, v.loadRecords()
	}

	return v, nil
}

// View renders the records view.
func (v *View) View() string {
	var b strings.Builder

	title := "All Records"
	if v.label != "" {
		title = v.label
	}
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("%s (%d)", title, len(v.records.Records()))))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading records..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.records.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the keybinding hints.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[j/k] Navigate  [Enter] Detail  [d] Delete  [r] Reload  [Esc] Back")
}

// Label returns the active domain filter.
func (v *View) Label() string {
	return v.label
}

// Records returns the loaded records.
func (v *View) Records() []domain.Record {
	return v.records.Records()
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.records.SelectedIndex()
}

// Err returns the last error, if any.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the display dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.records.SetDimensions(width, height-4)
	v.ready = true
}
