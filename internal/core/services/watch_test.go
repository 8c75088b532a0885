package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// mockFileWatcher hands out test-controlled channels and records the
// config it was started with.
type mockFileWatcher struct {
	cfg      driven.WatchConfig
	paths    chan string
	errs     chan error
	startErr error
	started  chan struct{}
}

func newMockFileWatcher() *mockFileWatcher {
	return &mockFileWatcher{
		paths:   make(chan string),
		errs:    make(chan error),
		started: make(chan struct{}),
	}
}

func (m *mockFileWatcher) Watch(ctx context.Context, cfg driven.WatchConfig) (<-chan string, <-chan error, error) {
	if m.startErr != nil {
		return nil, nil, m.startErr
	}
	m.cfg = cfg
	close(m.started)
	go func() {
		<-ctx.Done()
		close(m.paths)
		close(m.errs)
	}()
	return m.paths, m.errs, nil
}

// stubScanner records ScanFile calls and signals each one.
type stubScanner struct {
	mu      sync.Mutex
	files   []string
	failFor map[string]error
	seen    chan string
}

func newStubScanner() *stubScanner {
	return &stubScanner{
		failFor: map[string]error{},
		seen:    make(chan string, 16),
	}
}

func (s *stubScanner) Scan(_ context.Context, _ []string, _ func(driving.ScanProgress)) (*driving.ScanSummary, error) {
	return &driving.ScanSummary{}, nil
}

func (s *stubScanner) ScanFile(_ context.Context, path string) (*domain.Record, error) {
	s.mu.Lock()
	s.files = append(s.files, path)
	s.mu.Unlock()
	s.seen <- path

	if err, ok := s.failFor[filepath.Base(path)]; ok {
		return nil, err
	}
	return &domain.Record{
		FilePath: path,
		FileName: filepath.Base(path),
		DomainCN: "免疫学",
		DomainEN: "免疫学",
	}, nil
}

func (s *stubScanner) scanned() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.files...)
}

func watchTestSettings() domain.AppSettings {
	s := domain.DefaultAppSettings()
	s.Scan.Directories = []string{"/data/papers"}
	s.Scan.Extensions = []string{".PDF", ".txt"}
	s.Watch.Debounce = 50 * time.Millisecond
	return s
}

func waitStopped(t *testing.T, ret <-chan error) {
	t.Helper()
	select {
	case err := <-ret:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop in time")
	}
}

func TestWatchService_Start_NoDirectories(t *testing.T) {
	svc := NewWatchService(newMockFileWatcher(), newStubScanner(), domain.DefaultAppSettings(), false)

	err := svc.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoDirectories)
}

func TestWatchService_Start_PassesWatcherConfig(t *testing.T) {
	watcher := newMockFileWatcher()
	svc := NewWatchService(watcher, newStubScanner(), watchTestSettings(), true)

	ret := make(chan error, 1)
	go func() { ret <- svc.Start(context.Background()) }()
	<-watcher.started

	require.NoError(t, svc.Stop())
	waitStopped(t, ret)

	assert.Equal(t, []string{"/data/papers"}, watcher.cfg.Roots)
	assert.Equal(t, []string{".pdf", ".txt"}, watcher.cfg.Extensions, "extensions are lowercased for the watcher")
	assert.Equal(t, 50*time.Millisecond, watcher.cfg.Debounce)
	assert.True(t, watcher.cfg.InitialScan)
}

func TestWatchService_Start_ClassifiesEmittedPaths(t *testing.T) {
	watcher := newMockFileWatcher()
	scanner := newStubScanner()
	svc := NewWatchService(watcher, scanner, watchTestSettings(), false)

	ret := make(chan error, 1)
	go func() { ret <- svc.Start(context.Background()) }()
	<-watcher.started

	watcher.paths <- "/data/papers/first.pdf"
	<-scanner.seen
	watcher.paths <- "/data/papers/second.pdf"
	<-scanner.seen

	require.NoError(t, svc.Stop())
	waitStopped(t, ret)

	assert.Equal(t, []string{"/data/papers/first.pdf", "/data/papers/second.pdf"}, scanner.scanned())
}

func TestWatchService_Start_ClassifyFailureKeepsWatching(t *testing.T) {
	watcher := newMockFileWatcher()
	scanner := newStubScanner()
	scanner.failFor["broken.pdf"] = errors.New("extract: corrupt stream")
	svc := NewWatchService(watcher, scanner, watchTestSettings(), false)

	ret := make(chan error, 1)
	go func() { ret <- svc.Start(context.Background()) }()
	<-watcher.started

	watcher.paths <- "/data/papers/broken.pdf"
	<-scanner.seen
	watcher.paths <- "/data/papers/fine.pdf"
	<-scanner.seen

	require.NoError(t, svc.Stop())
	waitStopped(t, ret)

	assert.Len(t, scanner.scanned(), 2)
}

func TestWatchService_Start_WatcherErrorsAreNonFatal(t *testing.T) {
	watcher := newMockFileWatcher()
	scanner := newStubScanner()
	svc := NewWatchService(watcher, scanner, watchTestSettings(), false)

	ret := make(chan error, 1)
	go func() { ret <- svc.Start(context.Background()) }()
	<-watcher.started

	watcher.errs <- errors.New("inotify overflow")
	watcher.paths <- "/data/papers/after-error.pdf"
	<-scanner.seen

	require.NoError(t, svc.Stop())
	waitStopped(t, ret)

	assert.Len(t, scanner.scanned(), 1)
}

func TestWatchService_Start_AlreadyRunning(t *testing.T) {
	watcher := newMockFileWatcher()
	svc := NewWatchService(watcher, newStubScanner(), watchTestSettings(), false)

	ret := make(chan error, 1)
	go func() { ret <- svc.Start(context.Background()) }()
	<-watcher.started

	err := svc.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrWatchInProgress)

	require.NoError(t, svc.Stop())
	waitStopped(t, ret)
}

func TestWatchService_Start_WatcherStartupFailure(t *testing.T) {
	watcher := newMockFileWatcher()
	watcher.startErr = errors.New("too many open files")
	svc := NewWatchService(watcher, newStubScanner(), watchTestSettings(), false)

	err := svc.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start watcher")
}

func TestWatchService_Start_ParentContextCancel(t *testing.T) {
	watcher := newMockFileWatcher()
	svc := NewWatchService(watcher, newStubScanner(), watchTestSettings(), false)

	ctx, cancel := context.WithCancel(context.Background())
	ret := make(chan error, 1)
	go func() { ret <- svc.Start(ctx) }()
	<-watcher.started

	cancel()
	waitStopped(t, ret)
}

func TestWatchService_Stop_WhenNotRunning(t *testing.T) {
	svc := NewWatchService(newMockFileWatcher(), newStubScanner(), watchTestSettings(), false)
	assert.NoError(t, svc.Stop())
}
