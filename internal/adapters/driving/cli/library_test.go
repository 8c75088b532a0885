package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// stubLibrary is a hand-rolled LibraryService for command tests.
type stubLibrary struct {
	domains  []domain.DomainCount
	records  []domain.Record
	exported string
	err      error
}

var _ driving.LibraryService = (*stubLibrary)(nil)

func (s *stubLibrary) Domains(_ context.Context) ([]domain.DomainCount, error) {
	return s.domains, s.err
}

func (s *stubLibrary) RecordsByDomain(_ context.Context, _ string) ([]domain.Record, error) {
	return s.records, s.err
}

func (s *stubLibrary) AllRecords(_ context.Context) ([]domain.Record, error) {
	return s.records, s.err
}

func (s *stubLibrary) Get(_ context.Context, _ string) (*domain.Record, error) {
	if len(s.records) == 0 {
		return nil, domain.ErrNotFound
	}
	return &s.records[0], s.err
}

func (s *stubLibrary) Delete(_ context.Context, _ string) error {
	return s.err
}

func (s *stubLibrary) Export(_ context.Context, _ domain.ExportFormat, _, _ string) (string, error) {
	return s.exported, s.err
}

// withLibrary swaps in a stub library service for the duration of a test.
func withLibrary(t *testing.T, stub *stubLibrary) {
	t.Helper()
	original := libraryService
	libraryService = stub
	t.Cleanup(func() { libraryService = original })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestDomainsCmd_ListsCounts(t *testing.T) {
	withLibrary(t, &stubLibrary{
		domains: []domain.DomainCount{
			{DomainCN: "病毒学", DomainEN: "Virology", Count: 12},
			{DomainCN: "未分类", DomainEN: "Uncategorized", Count: 3},
		},
	})

	out, err := execute(t, "domains")

	require.NoError(t, err)
	assert.Contains(t, out, "12  病毒学 | Virology")
	assert.Contains(t, out, "15 records across 2 domains")
}

func TestDomainsCmd_EmptyCorpus(t *testing.T) {
	withLibrary(t, &stubLibrary{})

	out, err := execute(t, "domains")

	require.NoError(t, err)
	assert.Contains(t, out, "No records yet")
}

func TestFilterCmd_ListsRecords(t *testing.T) {
	withLibrary(t, &stubLibrary{
		records: []domain.Record{
			{FileName: "a.pdf", FilePath: "/papers/a.pdf", DomainCN: "病毒学"},
			{FileName: "b.pdf", FilePath: "/papers/b.pdf", DomainCN: "病毒学"},
		},
	})

	out, err := execute(t, "filter", "病毒学")

	require.NoError(t, err)
	assert.Contains(t, out, "a.pdf")
	assert.Contains(t, out, "/papers/b.pdf")
	assert.Contains(t, out, "2 records")
}

func TestFilterCmd_NoMatches(t *testing.T) {
	withLibrary(t, &stubLibrary{})

	out, err := execute(t, "filter", "astrology")

	require.NoError(t, err)
	assert.Contains(t, out, `No records for domain "astrology"`)
}

func TestFilterCmd_RequiresArgument(t *testing.T) {
	withLibrary(t, &stubLibrary{})

	_, err := execute(t, "filter")

	assert.Error(t, err)
}

func TestExportCmd_WritesCSV(t *testing.T) {
	withLibrary(t, &stubLibrary{exported: "/tmp/out.csv"})

	out, err := execute(t, "export", "--csv", "/tmp/out.csv")

	require.NoError(t, err)
	assert.Contains(t, out, "Exported to /tmp/out.csv")
}

func TestExportCmd_RejectsBothFormats(t *testing.T) {
	withLibrary(t, &stubLibrary{})
	exportCSVPath, exportXLSXPath = "a.csv", "b.xlsx"
	defer func() { exportCSVPath, exportXLSXPath = "", "" }()

	_, _, err := exportTarget()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "choose one")
}

func TestExportTarget_DefaultsToCSV(t *testing.T) {
	exportCSVPath, exportXLSXPath = "", ""

	format, path, err := exportTarget()

	require.NoError(t, err)
	assert.Equal(t, domain.ExportCSV, format)
	assert.Empty(t, path)
}
