package driving

import "context"

// WatchService keeps the classified corpus current by watching the
// configured scan directories and classifying documents as they appear
// or change.
type WatchService interface {
	// Start begins watching. Blocks until the context is cancelled or
	// the watcher fails.
	Start(ctx context.Context) error

	// Stop gracefully stops watching.
	Stop() error
}
