package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService keeps the corpus current: it subscribes to filesystem
// events under the configured literature directories and classifies
// each settled file. One classification failure never stops the watch.
type WatchService struct {
	watcher     driven.FileWatcher
	scanner     driving.ScanService
	settings    domain.AppSettings
	initialScan bool

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewWatchService creates a watch service. When initialScan is true,
// every matching file already present is classified before live events
// are processed.
func NewWatchService(watcher driven.FileWatcher, scanner driving.ScanService, settings domain.AppSettings, initialScan bool) *WatchService {
	return &WatchService{
		watcher:     watcher,
		scanner:     scanner,
		settings:    settings.Normalised(),
		initialScan: initialScan,
	}
}

// Start begins watching and blocks until the context is cancelled,
// Stop is called, or the watcher fails to start. Cancellation is the
// normal way a watch ends and returns nil.
func (w *WatchService) Start(ctx context.Context) error {
	dirs := w.settings.Scan.Directories
	if len(dirs) == 0 {
		return domain.ErrNoDirectories
	}

	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return domain.ErrWatchInProgress
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()
	defer func() {
		cancel()
		w.mu.Lock()
		w.cancel = nil
		w.mu.Unlock()
	}()

	exts := make([]string, len(w.settings.Scan.Extensions))
	for i, e := range w.settings.Scan.Extensions {
		exts[i] = strings.ToLower(e)
	}

	paths, errs, err := w.watcher.Watch(ctx, driven.WatchConfig{
		Roots:       dirs,
		Extensions:  exts,
		InitialScan: w.initialScan,
		Debounce:    w.settings.Watch.Debounce,
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	slog.Info("watch.start", "dirs", len(dirs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-paths:
			if !ok {
				return nil
			}
			w.classify(ctx, path)
		case werr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("watch.error", "error", werr)
		}
	}
}

// Stop gracefully stops watching. Safe to call when not running.
func (w *WatchService) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	return nil
}

func (w *WatchService) classify(ctx context.Context, path string) {
	rec, err := w.scanner.ScanFile(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("watch.classify.error", "path", path, "error", err)
		return
	}
	slog.Info("watch.classify.done", "file", rec.FileName,
		"domain_cn", rec.DomainCN, "domain_en", rec.DomainEN)
}
