package domains

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/messages"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// mockLibrary implements driving.LibraryService for testing.
type mockLibrary struct {
	DomainsFunc func(ctx context.Context) ([]domain.DomainCount, error)
}

func (m *mockLibrary) Domains(ctx context.Context) ([]domain.DomainCount, error) {
	if m.DomainsFunc != nil {
		return m.DomainsFunc(ctx)
	}
	return nil, nil
}

func (m *mockLibrary) RecordsByDomain(ctx context.Context, label string) ([]domain.Record, error) {
	return nil, nil
}

func (m *mockLibrary) AllRecords(ctx context.Context) ([]domain.Record, error) {
	return nil, nil
}

func (m *mockLibrary) Get(ctx context.Context, path string) (*domain.Record, error) {
	return nil, nil
}

func (m *mockLibrary) Delete(ctx context.Context, path string) error { return nil }

func (m *mockLibrary) Export(
	ctx context.Context, format domain.ExportFormat, path, domainCN string,
) (string, error) {
	return "", nil
}

func testCounts() []domain.DomainCount {
	return []domain.DomainCount{
		{DomainCN: "生物学", DomainEN: "Biology", Count: 12},
		{DomainCN: "医学", DomainEN: "Medicine", Count: 5},
		{DomainCN: "未分类", DomainEN: "Uncategorized", Count: 1},
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, &mockLibrary{})

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Empty(t, view.Counts())
}

func TestView_Load_Success(t *testing.T) {
	library := &mockLibrary{
		DomainsFunc: func(ctx context.Context) ([]domain.DomainCount, error) {
			return testCounts(), nil
		},
	}
	view := NewView(nil, library)

	cmd := view.Load()
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.DomainsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Len(t, loaded.Counts, 3)
}

func TestView_Load_Error(t *testing.T) {
	library := &mockLibrary{
		DomainsFunc: func(ctx context.Context) ([]domain.DomainCount, error) {
			return nil, assert.AnError
		},
	}
	view := NewView(nil, library)

	msg := view.Load()()
	loaded, ok := msg.(messages.DomainsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_Load_NilService(t *testing.T) {
	view := NewView(nil, nil)

	msg := view.Load()()
	loaded, ok := msg.(messages.DomainsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_Update_DomainsLoaded(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)

	view.Update(messages.DomainsLoaded{Counts: testCounts()})

	assert.Len(t, view.Counts(), 3)
	assert.NoError(t, view.Err())
}

func TestView_Update_DomainsLoaded_Error(t *testing.T) {
	view := NewView(nil, &mockLibrary{})

	view.Update(messages.DomainsLoaded{Err: assert.AnError})

	assert.Error(t, view.Err())
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)
	view.Update(messages.DomainsLoaded{Counts: testCounts()})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.Selected())

	// Up at the top stays put
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_Enter_SelectsDomain(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)
	view.Update(messages.DomainsLoaded{Counts: testCounts()})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg := cmd()
	selected, ok := msg.(messages.DomainSelected)
	require.True(t, ok)
	assert.Equal(t, "医学", selected.Label)
}

func TestView_Update_Esc_ReturnsToMenu(t *testing.T) {
	view := NewView(nil, &mockLibrary{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "No classified documents")
}

func TestView_View_RendersCounts(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)
	view.Update(messages.DomainsLoaded{Counts: testCounts()})

	output := view.View()

	assert.Contains(t, output, "生物学")
	assert.Contains(t, output, "Biology")
	assert.Contains(t, output, "(12)")
	assert.Contains(t, output, "医学")
}

func TestView_View_Error(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)
	view.Update(messages.DomainsLoaded{Err: assert.AnError})

	output := view.View()

	assert.Contains(t, output, "Error")
}
