package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// Ensure ScanService implements the interface.
var _ driving.ScanService = (*ScanService)(nil)

// ScanService walks literature directories and runs each document
// through extraction, classification and persistence. Documents are
// processed sequentially; a per-document failure is counted and
// reported through the progress callback but does not stop the scan.
type ScanService struct {
	resolver   driven.TextSourceResolver
	classifier driving.ClassifierService
	store      driven.RecordStore
	gateway    driven.LLMGateway
	settings   domain.AppSettings
	limiter    *rate.Limiter

	mu       sync.Mutex
	scanning bool
}

// NewScanService creates a scan service. Settings are normalised and
// snapshotted; the gateway throttle comes from LLM.RequestsPerSecond,
// zero or negative disables it.
func NewScanService(
	resolver driven.TextSourceResolver,
	classifier driving.ClassifierService,
	store driven.RecordStore,
	gateway driven.LLMGateway,
	settings domain.AppSettings,
) *ScanService {
	settings = settings.Normalised()

	var limiter *rate.Limiter
	if rps := settings.LLM.RequestsPerSecond; rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &ScanService{
		resolver:   resolver,
		classifier: classifier,
		store:      store,
		gateway:    gateway,
		settings:   settings,
		limiter:    limiter,
	}
}

// Scan processes every supported document under dirs.
func (s *ScanService) Scan(ctx context.Context, dirs []string, onProgress func(driving.ScanProgress)) (*driving.ScanSummary, error) {
	// 1. Claim the single scan slot.
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return nil, domain.ErrScanInProgress
	}
	s.scanning = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	// 2. Resolve the directory list.
	if len(dirs) == 0 {
		dirs = s.settings.Scan.Directories
	}
	if len(dirs) == 0 {
		return nil, domain.ErrNoDirectories
	}

	runID := uuid.NewString()
	started := time.Now()
	summary := &driving.ScanSummary{}
	defer func() {
		summary.Elapsed = time.Since(started)
		slog.Info("scan.done", "run_id", runID, "classified", summary.Classified,
			"failed", summary.Failed, "elapsed", summary.Elapsed)
	}()

	// 3. Discover matching files.
	files := s.collectFiles(dirs)
	summary.Discovered = len(files)
	slog.Info("scan.start", "run_id", runID, "files", len(files), "dirs", len(dirs))

	// 4. Process sequentially.
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		rec, err := s.processFile(ctx, path)
		progress := driving.ScanProgress{Index: i + 1, Total: len(files), Path: path}

		switch {
		case err == nil:
			summary.Classified++
			slog.Debug("scan.file.done", "run_id", runID, "path", path,
				"domain_cn", rec.DomainCN, "domain_en", rec.DomainEN)
			if rec.DomainCN == domain.UncategorisedCN {
				summary.Uncategorised++
			}
			progress.Record = rec
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return summary, err
		default:
			summary.Failed++
			progress.Err = err
			slog.Warn("scan.file.error", "run_id", runID, "path", path, "error", err)
		}

		if onProgress != nil {
			onProgress(progress)
		}
	}

	return summary, nil
}

// ScanFile classifies a single document and persists the result.
func (s *ScanService) ScanFile(ctx context.Context, path string) (*domain.Record, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return s.processFile(ctx, abs)
}

// processFile runs one document through the pipeline: resolve the text
// source, extract, throttle, classify, persist.
func (s *ScanService) processFile(ctx context.Context, path string) (*domain.Record, error) {
	source, err := s.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}

	doc, err := source.Extract(ctx, path, s.settings.Scan.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	result, err := s.classifier.Classify(ctx, doc)
	if err != nil {
		return nil, err
	}

	rec := &domain.Record{
		FilePath:     doc.Path,
		FileName:     doc.Name,
		DomainCN:     result.DomainCN,
		DomainEN:     result.DomainEN,
		Model:        s.gateway.ModelName(),
		ExcerptChars: s.classifier.ExcerptLength(doc),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist %s: %w", doc.Name, err)
	}
	return rec, nil
}

// collectFiles walks each directory and returns the sorted, deduplicated
// absolute paths of files whose extension is configured for ingestion.
// Unreadable directories are skipped with a warning.
func (s *ScanService) collectFiles(dirs []string) []string {
	exts := make(map[string]struct{}, len(s.settings.Scan.Extensions))
	for _, e := range s.settings.Scan.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			slog.Warn("scan.dir.skip", "dir", dir)
			continue
		}

		walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				slog.Debug("scan.walk.error", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := exts[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil
			}
			seen[abs] = struct{}{}
			return nil
		})
		if walkErr != nil {
			slog.Warn("scan.walk.error", "dir", dir, "error", walkErr)
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
