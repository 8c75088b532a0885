package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/storage/memory"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// mockExporter records what it was asked to write.
type mockExporter struct {
	records []domain.Record
	path    string
	written string
	err     error
}

func (m *mockExporter) Export(_ context.Context, records []domain.Record, path string) (string, error) {
	m.records = records
	m.path = path
	if m.err != nil {
		return "", m.err
	}
	if m.written != "" {
		return m.written, nil
	}
	return path, nil
}

func libraryRecord(path, name, cn, en string) *domain.Record {
	return &domain.Record{
		FilePath:  path,
		FileName:  name,
		DomainCN:  cn,
		DomainEN:  en,
		Model:     "mock",
		UpdatedAt: time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC),
	}
}

func seededLibrary(t *testing.T) (*LibraryService, *mockExporter) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewRecordStore()

	require.NoError(t, store.Upsert(ctx, libraryRecord("/papers/vesicle.pdf", "vesicle.pdf", "细胞生物学", "细胞生物学")))
	require.NoError(t, store.Upsert(ctx, libraryRecord("/papers/antigen.pdf", "antigen.pdf", "免疫学", "免疫学")))
	require.NoError(t, store.Upsert(ctx, libraryRecord("/papers/blurry-scan.pdf", "blurry-scan.pdf", "未分类", "Uncategorized")))
	require.NoError(t, store.Upsert(ctx, libraryRecord("/papers/adjuvant.pdf", "adjuvant.pdf", "免疫学", "免疫学")))

	exp := &mockExporter{}
	svc := NewLibraryService(store, map[domain.ExportFormat]driven.Exporter{
		domain.ExportCSV: exp,
	})
	return svc, exp
}

func TestLibraryService_Domains(t *testing.T) {
	svc, _ := seededLibrary(t)

	domains, err := svc.Domains(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 3)
	assert.Equal(t, "免疫学", domains[0].DomainCN)
	assert.Equal(t, 2, domains[0].Count)
}

func TestLibraryService_RecordsByDomain_ChineseLabel(t *testing.T) {
	svc, _ := seededLibrary(t)

	recs, err := svc.RecordsByDomain(context.Background(), "免疫学")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "adjuvant.pdf", recs[0].FileName)
}

func TestLibraryService_RecordsByDomain_EnglishFallback(t *testing.T) {
	svc, _ := seededLibrary(t)

	recs, err := svc.RecordsByDomain(context.Background(), "Uncategorized")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "blurry-scan.pdf", recs[0].FileName)
}

func TestLibraryService_RecordsByDomain_NoMatch(t *testing.T) {
	svc, _ := seededLibrary(t)

	recs, err := svc.RecordsByDomain(context.Background(), "考古学")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLibraryService_GetAndDelete(t *testing.T) {
	svc, _ := seededLibrary(t)
	ctx := context.Background()

	rec, err := svc.Get(ctx, "/papers/vesicle.pdf")
	require.NoError(t, err)
	assert.Equal(t, "细胞生物学", rec.DomainCN)

	require.NoError(t, svc.Delete(ctx, "/papers/vesicle.pdf"))
	_, err = svc.Get(ctx, "/papers/vesicle.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_Export_SortsByDomainThenName(t *testing.T) {
	svc, exp := seededLibrary(t)

	written, err := svc.Export(context.Background(), domain.ExportCSV, "out.csv", "")
	require.NoError(t, err)
	assert.Equal(t, "out.csv", written)

	require.Len(t, exp.records, 4)
	var got []string
	for _, r := range exp.records {
		got = append(got, r.DomainCN+"/"+r.FileName)
	}
	assert.Equal(t, []string{
		"免疫学/adjuvant.pdf",
		"免疫学/antigen.pdf",
		"未分类/blurry-scan.pdf",
		"细胞生物学/vesicle.pdf",
	}, got)
}

func TestLibraryService_Export_DomainFilterAndDefaultPath(t *testing.T) {
	svc, exp := seededLibrary(t)

	written, err := svc.Export(context.Background(), domain.ExportCSV, "", "免疫学")
	require.NoError(t, err)
	assert.Equal(t, "literature_domains.csv", written)
	assert.Len(t, exp.records, 2)
}

func TestLibraryService_Export_ReturnsFallbackPath(t *testing.T) {
	svc, exp := seededLibrary(t)
	exp.written = "out.new.csv"

	written, err := svc.Export(context.Background(), domain.ExportCSV, "out.csv", "")
	require.NoError(t, err)
	assert.Equal(t, "out.new.csv", written)
}

func TestLibraryService_Export_UnknownFormat(t *testing.T) {
	svc, _ := seededLibrary(t)

	_, err := svc.Export(context.Background(), domain.ExportFormat("pdf"), "out.pdf", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLibraryService_Export_UnregisteredFormat(t *testing.T) {
	store := memory.NewRecordStore()
	svc := NewLibraryService(store, nil)

	_, err := svc.Export(context.Background(), domain.ExportCSV, "out.csv", "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestLibraryService_Export_ExporterFailure(t *testing.T) {
	svc, exp := seededLibrary(t)
	exp.err = errors.New("disk full")

	_, err := svc.Export(context.Background(), domain.ExportCSV, "out.csv", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
