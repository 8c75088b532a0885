package fswatch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher emits document paths as they appear or change under the
// watched roots, backed by fsnotify. Write bursts for the same file
// (editors, slow network copies) are coalesced by the configured
// debounce, and a path is only emitted once it still exists when the
// burst settles.
type Watcher struct{}

// New creates a filesystem watcher.
func New() *Watcher {
	return &Watcher{}
}

// Watch starts watching cfg.Roots recursively. It returns a channel of
// file paths and a channel of non-fatal errors; both close when ctx
// ends. Directories created later under a root are picked up and
// watched as they appear.
func (w *Watcher) Watch(ctx context.Context, cfg driven.WatchConfig) (<-chan string, <-chan error, error) {
	if len(cfg.Roots) == 0 {
		return nil, nil, fmt.Errorf("no directories to watch")
	}

	exts := make(map[string]struct{}, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}
	matches := func(path string) bool {
		if len(exts) == 0 {
			return true
		}
		_, ok := exts[strings.ToLower(filepath.Ext(path))]
		return ok
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}

	var initial []string
	for _, root := range cfg.Roots {
		info, err := os.Stat(root)
		if err != nil {
			fsw.Close()
			return nil, nil, fmt.Errorf("watch root: %w", err)
		}
		if !info.IsDir() {
			fsw.Close()
			return nil, nil, fmt.Errorf("watch root %s: not a directory", root)
		}
		if err := addTree(fsw, root, func(path string) {
			if cfg.InitialScan && matches(path) {
				initial = append(initial, path)
			}
		}); err != nil {
			fsw.Close()
			return nil, nil, err
		}
	}
	sort.Strings(initial)

	paths := make(chan string, 256)
	errs := make(chan error, 1)

	go func() {
		defer close(paths)
		defer close(errs)
		defer fsw.Close()

		emit := func(path string) bool {
			select {
			case paths <- path:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for _, p := range initial {
			if !emit(p) {
				return
			}
		}

		// The debounce timer and pending set live entirely in this
		// goroutine, so flushes never race with event handling.
		pending := make(map[string]struct{})
		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		flush := func() bool {
			settled := make([]string, 0, len(pending))
			for p := range pending {
				delete(pending, p)
				// Renamed-away and deleted paths settle to nothing.
				if _, err := os.Stat(p); err != nil {
					continue
				}
				settled = append(settled, p)
			}
			sort.Strings(settled)
			for _, p := range settled {
				if !emit(p) {
					return false
				}
			}
			return true
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Create) {
					watchNewDir(fsw, ev.Name, func(path string) {
						if matches(path) {
							pending[path] = struct{}{}
						}
					})
				}
				if matches(ev.Name) && ev.Op.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename) {
					pending[ev.Name] = struct{}{}
				}
				if len(pending) == 0 {
					continue
				}
				if cfg.Debounce > 0 {
					timer.Reset(cfg.Debounce)
				} else if !flush() {
					return
				}

			case <-timer.C:
				if !flush() {
					return
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				slog.Warn("watch.fsnotify.error", "error", err)
				select {
				case errs <- err:
				default:
				}
			}
		}
	}()

	return paths, errs, nil
}

// addTree registers every directory under root with the watcher and
// hands each regular file to collect. Unreadable subtrees are skipped.
func addTree(fsw *fsnotify.Watcher, root string, collect func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("watch.walk.error", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			return nil
		}
		if collect != nil {
			collect(path)
		}
		return nil
	})
}

// watchNewDir starts watching a freshly created directory tree. Files
// already inside (a directory moved into a root arrives populated) are
// handed to collect so they are not missed. Non-directories are ignored.
func watchNewDir(fsw *fsnotify.Watcher, path string, collect func(string)) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := addTree(fsw, path, collect); err != nil {
		slog.Warn("watch.dir.error", "dir", path, "error", err)
	}
}
