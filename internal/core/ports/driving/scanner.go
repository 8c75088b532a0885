package driving

import (
	"context"
	"time"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// ScanService walks document directories, extracts text, classifies
// each document and persists the results.
type ScanService interface {
	// Scan processes every supported document under dirs sequentially.
	// Empty dirs falls back to the configured scan directories.
	// onProgress, when non-nil, is invoked once per document after its
	// classification completes.
	Scan(ctx context.Context, dirs []string, onProgress func(ScanProgress)) (*ScanSummary, error)

	// ScanFile classifies a single document and persists the result.
	ScanFile(ctx context.Context, path string) (*domain.Record, error)
}

// ScanProgress reports one document's outcome during a scan.
type ScanProgress struct {
	// Index is the 1-based position within the scan.
	Index int

	// Total is the number of documents discovered.
	Total int

	// Path is the document's absolute path.
	Path string

	// Record is the persisted result; nil when Err is set.
	Record *domain.Record

	// Err is the per-document failure, if any. A failed document does
	// not stop the scan.
	Err error
}

// ScanSummary aggregates a completed scan.
type ScanSummary struct {
	// Discovered is the number of matching files found.
	Discovered int

	// Classified is the number of records persisted.
	Classified int

	// Uncategorised counts records that fell back to the sentinel.
	Uncategorised int

	// Failed counts documents whose extraction or persistence errored.
	Failed int

	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration
}
