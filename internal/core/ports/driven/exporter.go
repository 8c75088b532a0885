package driven

import (
	"context"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// Exporter writes classification records to an interchange file.
// Implementations exist for CSV and XLSX.
type Exporter interface {
	// Export writes the records to path and returns the path actually
	// written. Implementations may fall back to a sibling path when the
	// target is locked by another program, so callers must report the
	// returned path, not the requested one.
	Export(ctx context.Context, records []domain.Record, path string) (string, error)
}
