package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// defaultExportStem is the file name used when an export path is not
// supplied; the format's extension is appended.
const defaultExportStem = "literature_domains"

// LibraryService is the read side of the classified corpus: domain
// listings, per-domain filtering and interchange exports.
type LibraryService struct {
	store     driven.RecordStore
	exporters map[domain.ExportFormat]driven.Exporter
}

// NewLibraryService creates a library service. exporters maps each
// supported interchange format to its writer; formats without an entry
// are rejected at export time.
func NewLibraryService(store driven.RecordStore, exporters map[domain.ExportFormat]driven.Exporter) *LibraryService {
	return &LibraryService{
		store:     store,
		exporters: exporters,
	}
}

// Domains returns per-domain record counts, most populous first.
func (l *LibraryService) Domains(ctx context.Context) ([]domain.DomainCount, error) {
	return l.store.ListDomains(ctx)
}

// RecordsByDomain filters records by label, Chinese first, English as
// a fallback.
func (l *LibraryService) RecordsByDomain(ctx context.Context, label string) ([]domain.Record, error) {
	recs, err := l.store.ListByDomain(ctx, label)
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		return recs, nil
	}

	all, err := l.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Record
	for _, rec := range all {
		if rec.DomainEN == label {
			out = append(out, rec)
		}
	}
	return out, nil
}

// AllRecords returns every classification record.
func (l *LibraryService) AllRecords(ctx context.Context) ([]domain.Record, error) {
	return l.store.ListAll(ctx)
}

// Get retrieves the record for a file path.
func (l *LibraryService) Get(ctx context.Context, path string) (*domain.Record, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return l.store.GetByPath(ctx, abs)
}

// Delete removes the record for a file path.
func (l *LibraryService) Delete(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	return l.store.DeleteByPath(ctx, abs)
}

// Export writes records to an interchange file and returns the path
// actually written, which may differ from the requested one when the
// exporter had to fall back to a sibling file.
func (l *LibraryService) Export(ctx context.Context, format domain.ExportFormat, path, domainCN string) (string, error) {
	if !format.IsValid() {
		return "", fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
	exporter, ok := l.exporters[format]
	if !ok {
		return "", fmt.Errorf("%w: no exporter registered for %s", domain.ErrUnsupportedFormat, format)
	}

	var (
		records []domain.Record
		err     error
	)
	if domainCN == "" {
		records, err = l.store.ListAll(ctx)
	} else {
		records, err = l.RecordsByDomain(ctx, domainCN)
	}
	if err != nil {
		return "", err
	}

	// Exports group by domain, then file name, so spreadsheets read
	// as one block per discipline.
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].DomainCN != records[j].DomainCN {
			return records[i].DomainCN < records[j].DomainCN
		}
		return records[i].FileName < records[j].FileName
	})

	if path == "" {
		path = defaultExportStem + format.Extension()
	}

	written, err := exporter.Export(ctx, records, path)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", format, err)
	}
	slog.Info("export.done", "format", format, "records", len(records), "path", written)
	return written, nil
}
