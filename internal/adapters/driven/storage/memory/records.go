package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore,
// used in tests and for ephemeral runs without a database path.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.Record
	closed  bool
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.Record),
	}
}

// Upsert stores or replaces the record keyed by its file path.
func (s *RecordStore) Upsert(_ context.Context, rec *domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	s.records[rec.FilePath] = *rec
	return nil
}

// GetByPath retrieves the record for an absolute file path.
func (s *RecordStore) GetByPath(_ context.Context, path string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	rec, ok := s.records[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// ListDomains returns per-domain counts, most populous first, ties
// broken by Chinese label. When records under one Chinese label
// disagree on the English label the lexically smallest wins, matching
// the SQLite store.
func (s *RecordStore) ListDomains(_ context.Context) ([]domain.DomainCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	counts := make(map[string]*domain.DomainCount)
	for _, rec := range s.records {
		dc, ok := counts[rec.DomainCN]
		if !ok {
			dc = &domain.DomainCount{DomainCN: rec.DomainCN, DomainEN: rec.DomainEN}
			counts[rec.DomainCN] = dc
		} else if rec.DomainEN < dc.DomainEN {
			dc.DomainEN = rec.DomainEN
		}
		dc.Count++
	}

	out := make([]domain.DomainCount, 0, len(counts))
	for _, dc := range counts {
		out = append(out, *dc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].DomainCN < out[j].DomainCN
	})
	return out, nil
}

// ListByDomain returns records classified under domainCN, ordered by
// file name.
func (s *RecordStore) ListByDomain(_ context.Context, domainCN string) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	var out []domain.Record
	for _, rec := range s.records {
		if rec.DomainCN == domainCN {
			out = append(out, rec)
		}
	}
	sortRecordsByName(out)
	return out, nil
}

// ListAll returns every record, ordered by file name.
func (s *RecordStore) ListAll(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	out := make([]domain.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sortRecordsByName(out)
	return out, nil
}

// DeleteByPath removes the record for a file path.
func (s *RecordStore) DeleteByPath(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	delete(s.records, path)
	return nil
}

// Close marks the store closed. Subsequent calls fail with
// domain.ErrStoreClosed.
func (s *RecordStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// sortRecordsByName orders records by file name, path as tie-break so
// duplicate names across directories stay stable.
func sortRecordsByName(recs []domain.Record) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].FileName != recs[j].FileName {
			return recs[i].FileName < recs[j].FileName
		}
		return recs[i].FilePath < recs[j].FilePath
	})
}
