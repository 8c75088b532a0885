package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/components/status"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/messages"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/styles"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/views/domains"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/views/menu"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/views/recorddetail"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/views/records"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/views/settings"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// domainsView lists domain labels with their record counts.
	domainsView *domains.View

	// recordsView lists the records of one domain, or every record.
	recordsView *records.View

	// detailView shows one classification record.
	detailView *recorddetail.View

	// settingsView is the read-only settings overview.
	settingsView *settings.View

	// statusBar shows state and keybinding hints under list views.
	statusBar *status.Bar

	// selectedRecord tracks the record opened in the detail view.
	selectedRecord *domain.Record

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		domainsView:  domains.NewView(s, ports.Library),
		recordsView:  records.NewView(s, ports.Library),
		detailView:   recorddetail.NewView(s),
		settingsView: settings.NewView(s, ports.Settings),
		statusBar:    status.NewBar(s, nil),
		currentView:  messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("taxa - Literature Domains"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.domainsView.SetDimensions(msg.Width, msg.Height)
		a.recordsView.SetDimensions(msg.Width, msg.Height)
		a.detailView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewDomains:
			a.domainsView, cmd = a.domainsView.Update(msg)
			a.err = a.domainsView.Err()
			return a, cmd

		case messages.ViewRecords:
			a.recordsView, cmd = a.recordsView.Update(msg)
			a.err = a.recordsView.Err()
			return a, cmd

		case messages.ViewRecordDetail:
			a.detailView, cmd = a.detailView.Update(msg)
			return a, cmd

		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewDomains:
			return a, a.domainsView.Load()
		case messages.ViewSettings:
			return a, a.settingsView.Load()
		case messages.ViewMenu, messages.ViewHelp,
			messages.ViewRecords, messages.ViewRecordDetail:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.DomainSelected:
		// Navigate from domains (or menu's All Records) to the
		// record list.
		a.currentView = messages.ViewRecords
		return a, a.recordsView.SetDomain(msg.Label)

	case messages.DomainsLoaded:
		a.domainsView, cmd = a.domainsView.Update(msg)
		return a, cmd

	case messages.RecordsLoaded:
		a.recordsView, cmd = a.recordsView.Update(msg)
		return a, cmd

	case messages.RecordSelected:
		a.selectedRecord = &msg.Record
		a.detailView.SetRecord(msg.Record)
		a.currentView = messages.ViewRecordDetail
		return a, nil

	case messages.RecordDeleted:
		a.recordsView, cmd = a.recordsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewDomains:
			a.domainsView, cmd = a.domainsView.Update(msg)
		case messages.ViewRecords:
			a.recordsView, cmd = a.recordsView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp, messages.ViewRecordDetail:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDomains:
		a.domainsView, cmd = a.domainsView.Update(msg)
	case messages.ViewRecords:
		a.recordsView, cmd = a.recordsView.Update(msg)
	case messages.ViewRecordDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewDomains:
		return a.domainsView.View() + "\n" + a.renderStatusBar()
	case messages.ViewRecords:
		return a.recordsView.View() + "\n" + a.renderStatusBar()
	case messages.ViewRecordDetail:
		return a.detailView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// renderStatusBar syncs the bar with the active list view and renders it.
func (a *App) renderStatusBar() string {
	switch {
	case a.err != nil:
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(a.err.Error())
	case a.currentView == messages.ViewRecords:
		a.statusBar.SetState(status.StateBrowse)
		a.statusBar.SetRecordCount(len(a.recordsView.Records()))
	default:
		a.statusBar.SetState(status.StateReady)
		a.statusBar.SetRecordCount(0)
	}
	return a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Domains:
  j/k, ↑/↓    Navigate domains
  enter       Browse a domain's records
  r           Reload

Records:
  j/k, ↑/↓    Navigate records
  enter       Show record detail
  d           Delete record
  r           Reload

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SelectedRecord returns the record opened in the detail view.
func (a *App) SelectedRecord() *domain.Record {
	return a.selectedRecord
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets terminal dimensions (mainly for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.domainsView.SetDimensions(width, height)
	a.recordsView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
