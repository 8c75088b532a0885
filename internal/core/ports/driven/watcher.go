package driven

import (
	"context"
	"time"
)

// WatchConfig configures filesystem watching.
type WatchConfig struct {
	// Roots are the directories to watch, recursively.
	Roots []string

	// Extensions filters events to these lowercase extensions, dot
	// included. Empty means every file.
	Extensions []string

	// InitialScan emits all existing matching files before live events.
	InitialScan bool

	// Debounce coalesces rapid write bursts for the same file.
	Debounce time.Duration
}

// FileWatcher emits paths of created or modified documents under the
// configured roots until the context is cancelled.
type FileWatcher interface {
	// Watch starts watching and returns a channel of file paths and a
	// channel of non-fatal watcher errors. Both close when ctx ends.
	Watch(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error)
}
