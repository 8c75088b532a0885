package mcp

import (
	"context"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	domains  []domain.DomainCount
	records  []domain.Record
	record   *domain.Record
	exported string
	err      error
}

var _ driving.LibraryService = (*mockLibraryService)(nil)

func (m *mockLibraryService) Domains(_ context.Context) ([]domain.DomainCount, error) {
	return m.domains, m.err
}

func (m *mockLibraryService) RecordsByDomain(_ context.Context, _ string) ([]domain.Record, error) {
	return m.records, m.err
}

func (m *mockLibraryService) AllRecords(_ context.Context) ([]domain.Record, error) {
	return m.records, m.err
}

func (m *mockLibraryService) Get(_ context.Context, _ string) (*domain.Record, error) {
	return m.record, m.err
}

func (m *mockLibraryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) Export(_ context.Context, _ domain.ExportFormat, _, _ string) (string, error) {
	return m.exported, m.err
}

// mockScanService is a mock implementation of driving.ScanService.
type mockScanService struct {
	record  *domain.Record
	summary *driving.ScanSummary
	err     error
}

var _ driving.ScanService = (*mockScanService)(nil)

func (m *mockScanService) Scan(
	_ context.Context,
	_ []string,
	_ func(driving.ScanProgress),
) (*driving.ScanSummary, error) {
	return m.summary, m.err
}

func (m *mockScanService) ScanFile(_ context.Context, _ string) (*domain.Record, error) {
	return m.record, m.err
}
