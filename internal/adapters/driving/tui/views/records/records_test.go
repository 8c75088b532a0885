package records

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

// mockLibrary implements driving.LibraryService for testing.
type mockLibrary struct {
	RecordsByDomainFunc func(ctx context.Context, label string) ([]domain.Record, error)
	AllRecordsFunc      func(ctx context.Context) ([]domain.Record, error)
	DeleteFunc          func(ctx context.Context, path string) error
}

func (m *mockLibrary) Domains(ctx context.Context) ([]domain.DomainCount, error) {
	return nil, nil
}

func (m *mockLibrary) RecordsByDomain(ctx context.Context, label string) ([]domain.Record, error) {
	if m.RecordsByDomainFunc != nil {
		return m.RecordsByDomainFunc(ctx, label)
	}
	return nil, nil
}

func (m *mockLibrary) AllRecords(ctx context.Context) ([]domain.Record, error) {
	if m.AllRecordsFunc != nil {
		return m.AllRecordsFunc(ctx)
	}
	return nil, nil
}

func (m *mockLibrary) Get(ctx context.Context, path string) (*domain.Record, error) {
	return nil, nil
}

func (m *mockLibrary) Delete(ctx context.Context, path string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, path)
	}
	return nil
}

func (m *mockLibrary) Export(
	ctx context.Context, format domain.ExportFormat, path, domainCN string,
) (string, error) {
	return "", nil
}

func testRecords() []domain.Record {
	return []domain.Record{
		{
			FilePath: "/papers/crispr.pdf",
			FileName: "crispr.pdf",
			DomainCN: "生物学",
			DomainEN: "Biology",
			Model:    "mock",
		},
		{
			FilePath: "/papers/folding.pdf",
			FileName: "folding.pdf",
			DomainCN: "生物学",
			DomainEN: "Biology",
			Model:    "mock",
		},
	}
}

func TestView_SetDomain_LoadsByLabel(t *testing.T) {
	var gotLabel string
	library := &mockLibrary{
		RecordsByDomainFunc: func(ctx context.Context, label string) ([]domain.Record, error) {
			gotLabel = label
			return testRecords(), nil
		},
	}
	view := NewView(nil, library)

	cmd := view.SetDomain("生物学")
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.RecordsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, "生物学", gotLabel)
	assert.Len(t, loaded.Records, 2)
}

func TestView_SetDomain_EmptyLabelLoadsAll(t *testing.T) {
	called := false
	library := &mockLibrary{
		AllRecordsFunc: func(ctx context.Context) ([]domain.Record, error) {
			called = true
			return testRecords(), nil
		},
	}
	view := NewView(nil, library)

	msg := view.SetDomain("")()

	loaded, ok := msg.(messages.RecordsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.True(t, called)
}

func TestView_Update_RecordsLoaded(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)

	view.Update(messages.RecordsLoaded{Label: "生物学", Records: testRecords()})

	assert.Len(t, view.Records(), 2)
	assert.NoError(t, view.Err())
}

func TestView_Update_RecordsLoaded_Error(t *testing.T) {
	view := NewView(nil, &mockLibrary{})

	view.Update(messages.RecordsLoaded{Err: assert.AnError})

	assert.Error(t, view.Err())
}

func TestView_Update_Enter_SelectsRecord(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)
	view.Update(messages.RecordsLoaded{Records: testRecords()})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg := cmd()
	selected, ok := msg.(messages.RecordSelected)
	require.True(t, ok)
	assert.Equal(t, "/papers/folding.pdf", selected.Record.FilePath)
}

func TestView_Update_Delete(t *testing.T) {
	var deleted string
	library := &mockLibrary{
		DeleteFunc: func(ctx context.Context, path string) error {
			deleted = path
			return nil
		},
	}
	view := NewView(nil, library)
	view.SetDimensions(80, 24)
	view.Update(messages.RecordsLoaded{Records: testRecords()})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)

	msg := cmd()
	del, ok := msg.(messages.RecordDeleted)
	require.True(t, ok)
	require.NoError(t, del.Err)
	assert.Equal(t, "/papers/crispr.pdf", deleted)
}

func TestView_Update_RecordDeleted_Reloads(t *testing.T) {
	reloaded := false
	library := &mockLibrary{
		AllRecordsFunc: func(ctx context.Context) ([]domain.Record, error) {
			reloaded = true
			return nil, nil
		},
	}
	view := NewView(nil, library)
	view.SetDimensions(80, 24)

	_, cmd := view.Update(messages.RecordDeleted{Path: "/papers/crispr.pdf"})
	require.NotNil(t, cmd)
	cmd()

	assert.True(t, reloaded)
}

func TestView_Update_Esc_FromDomain_GoesToDomains(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDomain("生物学")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDomains, changed.View)
}

func TestView_Update_Esc_FromAll_GoesToMenu(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDomain("")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_View_RendersRecords(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)
	view.Update(messages.RecordsLoaded{Label: "生物学", Records: testRecords()})
	view.label = "生物学"

	output := view.View()

	assert.Contains(t, output, "生物学")
	assert.Contains(t, output, "crispr.pdf")
	assert.Contains(t, output, "folding.pdf")
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "No records")
}

func TestView_View_AllRecordsTitle(t *testing.T) {
	view := NewView(nil, &mockLibrary{})
	view.SetDimensions(80, 24)
	recs := testRecords()
	recs[0].UpdatedAt = time.Now()
	view.Update(messages.RecordsLoaded{Records: recs})

	output := view.View()

	assert.Contains(t, output, "All Records")
}
