package driving

import (
	"context"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// LibraryService queries and exports the classified corpus.
type LibraryService interface {
	// Domains returns per-domain record counts, most populous first.
	Domains(ctx context.Context) ([]domain.DomainCount, error)

	// RecordsByDomain returns the records whose Chinese label equals
	// label. When none match, records whose English label equals it
	// are returned instead, so filtering works in either language.
	RecordsByDomain(ctx context.Context, label string) ([]domain.Record, error)

	// AllRecords returns every classification record.
	AllRecords(ctx context.Context) ([]domain.Record, error)

	// Get retrieves the record for a file path.
	Get(ctx context.Context, path string) (*domain.Record, error)

	// Delete removes the record for a file path.
	Delete(ctx context.Context, path string) error

	// Export writes records to an interchange file and returns the
	// path actually written. domainCN narrows the export to one
	// domain; empty exports everything.
	Export(ctx context.Context, format domain.ExportFormat, path, domainCN string) (string, error)
}
