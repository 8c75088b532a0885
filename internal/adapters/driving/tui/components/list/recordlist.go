// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/styles"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// RecordList displays classification records in a navigable list.
type RecordList struct {
	records  []domain.Record
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRecordList creates a new record list component.
func NewRecordList(s *styles.Styles) *RecordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RecordList{
		records:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the record list.
func (r *RecordList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *RecordList) Update(msg tea.Msg) (*RecordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the record list.
func (r *RecordList) View() string {
	if len(r.records) == 0 {
		return r.styles.Muted.Render("No records")
	}

	lines := make([]string, 0, len(r.records))

	// One line per record; keep the selection visible.
	visibleCount := r.height - 4
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.records) {
		end = len(r.records)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRecord(i, &r.records[i]))
	}

	return strings.Join(lines, "\n")
}

// renderRecord formats a single record line: name and domain label.
func (r *RecordList) renderRecord(index int, rec *domain.Record) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := rec.FileName
	if name == "" {
		name = "(unnamed)"
	}

	label := rec.DomainCN
	if rec.DomainEN != "" && rec.DomainEN != rec.DomainCN {
		label = fmt.Sprintf("%s | %s", rec.DomainCN, rec.DomainEN)
	}

	// Leave room for the label on the right.
	maxNameLen := r.width - len(label) - 8
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	line := indicator + name + "  " + r.styles.Label.Render(label)
	if index == r.selected {
		return r.styles.Selected.Render(indicator+name) + "  " + r.styles.Label.Render(label)
	}
	return line
}

// SetRecords replaces the list contents and resets the selection.
func (r *RecordList) SetRecords(records []domain.Record) {
	r.records = records
	r.selected = 0
}

// Records returns the current records.
func (r *RecordList) Records() []domain.Record {
	return r.records
}

// Selected returns the selected record, or nil when the list is empty.
func (r *RecordList) Selected() *domain.Record {
	if r.selected < 0 || r.selected >= len(r.records) {
		return nil
	}
	return &r.records[r.selected]
}

// SelectedIndex returns the selected index.
func (r *RecordList) SelectedIndex() int {
	return r.selected
}

// MoveUp moves the selection up.
func (r *RecordList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down.
func (r *RecordList) MoveDown() {
	if r.selected < len(r.records)-1 {
		r.selected++
	}
}

// SetDimensions sets the display dimensions.
func (r *RecordList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}
