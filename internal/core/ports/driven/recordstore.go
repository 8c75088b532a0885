package driven

import (
	"context"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// RecordStore persists classification records.
// Backed by SQLite for the CLI; an in-memory implementation exists for
// tests and ephemeral runs.
type RecordStore interface {
	// Upsert stores or replaces the record keyed by its file path.
	// Last writer wins.
	Upsert(ctx context.Context, rec *domain.Record) error

	// GetByPath retrieves the record for an absolute file path.
	// Returns domain.ErrNotFound when the path has never been classified.
	GetByPath(ctx context.Context, path string) (*domain.Record, error)

	// ListDomains returns per-domain record counts, most populous first.
	ListDomains(ctx context.Context) ([]domain.DomainCount, error)

	// ListByDomain returns all records classified under domainCN,
	// ordered by file name.
	ListByDomain(ctx context.Context, domainCN string) ([]domain.Record, error)

	// ListAll returns every record, ordered by file name.
	ListAll(ctx context.Context) ([]domain.Record, error)

	// DeleteByPath removes the record for a file path. Deleting an
	// unknown path is not an error.
	DeleteByPath(ctx context.Context, path string) error

	// Close releases the underlying storage.
	Close() error
}
