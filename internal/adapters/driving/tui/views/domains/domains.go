// Package domains provides the domain list view for the TUI.
package domains

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/messages"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/styles"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// View is the domain list view. It shows every domain label in the
// corpus with its record count, most populous first.
type View struct {
	styles  *styles.Styles
	library driving.LibraryService

	counts       []domain.DomainCount
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	scrollOffset int
}

// NewView creates a new domains view.
func NewView(s *styles.Styles, library driving.LibraryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		library: library,
		counts:  []domain.DomainCount{},
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that fetches domain counts from the library.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.err = nil
	return func() tea.Msg {
		if v.library == nil {
			return messages.DomainsLoaded{Err: fmt.Errorf("library service not available")}
		}

		counts, err := v.library.Domains(context.Background())
		return messages.DomainsLoaded{Counts: counts, Err: err}
	}
}

// Update handles messages for the domains view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DomainsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.counts = msg.Counts
			v.err = nil
			if v.selected >= len(v.counts) {
				v.selected = 0
			}
		}
		return v, nil

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
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.counts)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.counts) {
			label := v.counts[v.selected].DomainCN
			return v, func() tea.Msg {
				return messages.DomainSelected{Label: label}
			}
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "r":
		return v, v.Load()
	}

	return v, nil
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the domains view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Domains (%d)", len(v.counts))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading domains..."))
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

	if len(v.counts) == 0 {
		b.WriteString(v.styles.Muted.Render("No classified documents yet. Run a scan first."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	end := v.scrollOffset + visibleItems
	if end > len(v.counts) {
		end = len(v.counts)
	}

	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderCount(i, &v.counts[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderCount formats one domain line with its record count.
func (v *View) renderCount(index int, c *domain.DomainCount) string {
	cursor := "  "
	label := c.DomainCN
	if c.DomainEN != "" && c.DomainEN != c.DomainCN {
		label = fmt.Sprintf("%s | %s", c.DomainCN, c.DomainEN)
	}
	count := v.styles.Muted.Render(fmt.Sprintf("(%d)", c.Count))

	if index == v.selected {
		cursor = "> "
		return cursor + v.styles.Selected.Render(label) + " " + count
	}
	return cursor + v.styles.Normal.Render(label) + " " + count
}

// renderHelp renders the keybinding hints.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[j/k] Navigate  [Enter] Browse  [r] Reload  [Esc] Back")
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// Counts returns the loaded domain counts.
func (v *View) Counts() []domain.DomainCount {
	return v.counts
}

// Err returns the last error, if any.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the display dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
