package recorddetail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/tui/messages"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

func testRecord() domain.Record {
	return domain.Record{
		FilePath:     "/papers/crispr.pdf",
		FileName:     "crispr.pdf",
		DomainCN:     "生物学",
		DomainEN:     "Biology",
		Model:        "qwen2.5:7b-instruct",
		ExcerptChars: 640,
		UpdatedAt:    time.Date(2026, 7, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.Nil(t, view.Record())
}

func TestView_SetRecord(t *testing.T) {
	view := NewView(nil)

	view.SetRecord(testRecord())

	require.NotNil(t, view.Record())
	assert.Equal(t, "/papers/crispr.pdf", view.Record().FilePath)
}

func TestView_Update_Esc_ReturnsToRecords(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewRecords, changed.View)
}

func TestView_View_NoRecord(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "No record selected")
}

func TestView_View_RendersFields(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)
	view.SetRecord(testRecord())

	output := view.View()

	assert.Contains(t, output, "crispr.pdf")
	assert.Contains(t, output, "/papers/crispr.pdf")
	assert.Contains(t, output, "生物学")
	assert.Contains(t, output, "Biology")
	assert.Contains(t, output, "qwen2.5:7b-instruct")
	assert.Contains(t, output, "640")
	assert.Contains(t, output, "2026-07-14")
}

func TestView_View_SameLabels_RenderedOnce(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)
	rec := testRecord()
	rec.DomainCN = "未分类"
	rec.DomainEN = "未分类"
	view.SetRecord(rec)

	output := view.View()

	assert.Contains(t, output, "未分类")
	assert.NotContains(t, output, "未分类 | 未分类")
}
