package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/messages"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Library:  &MockLibraryService{},
		Settings: &MockSettingsService{},
	}
}

func testRecord() domain.Record {
	return domain.Record{
		FilePath:     "/papers/crispr.pdf",
		FileName:     "crispr.pdf",
		DomainCN:     "生物学",
		DomainEN:     "Biology",
		Model:        "mock",
		ExcerptChars: 420,
		UpdatedAt:    time.Now(),
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView()) // Starts at menu
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := &Ports{
		Library:  nil,
		Settings: &MockSettingsService{},
	}

	app, err := NewApp(ports)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	cmd := app.Init()

	// Init returns a batch command
	assert.NotNil(t, cmd)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_CtrlC_Quits(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_ViewChanged_Domains(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewDomains})

	assert.Equal(t, messages.ViewDomains, app.CurrentView())
	// Switching to domains triggers a load command
	require.NotNil(t, cmd)
}

func TestApp_Update_ViewChanged_Settings(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSettings})

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	require.NotNil(t, cmd)
}

func TestApp_Update_DomainSelected(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.DomainSelected{Label: "生物学"})

	assert.Equal(t, messages.ViewRecords, app.CurrentView())
	require.NotNil(t, cmd)

	// The load command queries the library with the selected label.
	msg := cmd()
	loaded, ok := msg.(messages.RecordsLoaded)
	require.True(t, ok)
	assert.Equal(t, "生物学", loaded.Label)
}

func TestApp_Update_DomainSelected_EmptyLabelLoadsAll(t *testing.T) {
	called := false
	ports := newTestPorts()
	ports.Library = &MockLibraryService{
		AllRecordsFunc: func(ctx context.Context) ([]domain.Record, error) {
			called = true
			return []domain.Record{testRecord()}, nil
		},
	}
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.DomainSelected{Label: ""})
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.RecordsLoaded)
	require.True(t, ok)
	assert.True(t, called)
	assert.Len(t, loaded.Records, 1)
}

func TestApp_Update_RecordSelected(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	rec := testRecord()

	_, cmd := app.Update(messages.RecordSelected{Record: rec})

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewRecordDetail, app.CurrentView())
	require.NotNil(t, app.SelectedRecord())
	assert.Equal(t, rec.FilePath, app.SelectedRecord().FilePath)
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	testErr := assert.AnError
	app.Update(messages.ErrorOccurred{Err: testErr})

	assert.Equal(t, testErr, app.Err())
}

func TestApp_Update_QuitMessage(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	output := app.View()

	assert.Contains(t, output, "Initialising")
}

func TestApp_View_Menu(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	output := app.View()

	assert.Contains(t, output, "Taxa")
	assert.Contains(t, output, "Domains")
	assert.Contains(t, output, "All Records")
}

func TestApp_View_Help(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	output := app.View()

	assert.Contains(t, output, "Help")
	assert.Contains(t, output, "Navigate")
}

func TestApp_Help_EscReturnsToMenu(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_FullNavigation_DomainsToDetail(t *testing.T) {
	counts := []domain.DomainCount{
		{DomainCN: "生物学", DomainEN: "Biology", Count: 2},
	}
	recs := []domain.Record{testRecord()}
	ports := newTestPorts()
	ports.Library = &MockLibraryService{
		DomainsFunc: func(ctx context.Context) ([]domain.DomainCount, error) {
			return counts, nil
		},
		RecordsByDomainFunc: func(ctx context.Context, label string) ([]domain.Record, error) {
			return recs, nil
		},
	}
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	// Menu -> Domains
	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewDomains})
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Contains(t, app.View(), "生物学")

	// Domains -> Records
	_, cmd = app.Update(messages.DomainSelected{Label: "生物学"})
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, messages.ViewRecords, app.CurrentView())
	assert.Contains(t, app.View(), "crispr.pdf")

	// Records -> Detail
	app.Update(messages.RecordSelected{Record: recs[0]})
	assert.Equal(t, messages.ViewRecordDetail, app.CurrentView())
	assert.Contains(t, app.View(), "/papers/crispr.pdf")
}
