// Package settings provides the read-only settings overview for the TUI.
// Editing happens through `taxa settings` on the command line.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/messages"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/styles"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// View is the settings overview.
type View struct {
	styles   *styles.Styles
	settings driving.SettingsService

	current *domain.AppSettings
	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		settings: settings,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that fetches the current settings.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.err = nil
	return func() tea.Msg {
		if v.settings == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}

		current, err := v.settings.Get()
		return messages.SettingsLoaded{Settings: current, Err: err}
	}
}

// Update handles messages for the settings view.
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
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "r":
			return v, v.Load()
		}

	case messages.SettingsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.current = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// View renders the settings overview.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
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

	if v.current == nil {
		b.WriteString(v.styles.Muted.Render("Settings not loaded."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	dirs := "(none)"
	if len(v.current.Scan.Directories) > 0 {
		dirs = strings.Join(v.current.Scan.Directories, ", ")
	}

	rows := []struct {
		name  string
		value string
	}{
		{"Provider", string(v.current.LLM.Provider)},
		{"Model", v.current.LLM.Model},
		{"Base URL", v.current.LLM.BaseURL},
		{"API key", maskAPIKey(v.current.LLM.APIKey)},
		{"Strategy", string(v.current.Excerpt.Strategy)},
		{"Excerpt budget", fmt.Sprintf("%d chars", v.current.Excerpt.MaxChars)},
		{"Scan dirs", dirs},
		{"Database", v.current.Storage.DatabasePath},
	}

	for _, row := range rows {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%-16s", row.name)))
		b.WriteString(" ")
		b.WriteString(v.styles.Normal.Render(row.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Edit with: taxa settings"))
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the keybinding hints.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[r] Reload  [Esc] Back")
}

// maskAPIKey hides all but the tail of a key.
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// Current returns the loaded settings.
func (v *View) Current() *domain.AppSettings {
	return v.current
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
