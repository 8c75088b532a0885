package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

var _ driven.RecordStore = (*Store)(nil)

// Store is a SQLite-backed classification record store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the classification database at dbPath.
// If dbPath is empty, defaults to ~/.taxa/data/records.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".taxa", "data", "records.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_records.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Upsert stores or replaces the record keyed by its file path.
// Last writer wins.
func (s *Store) Upsert(ctx context.Context, rec *domain.Record) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (file_path, file_name, domain_cn, domain_en, model, excerpt_chars, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			file_name = excluded.file_name,
			domain_cn = excluded.domain_cn,
			domain_en = excluded.domain_en,
			model = excluded.model,
			excerpt_chars = excluded.excerpt_chars,
			updated_at = excluded.updated_at
	`, rec.FilePath, rec.FileName, rec.DomainCN, rec.DomainEN,
		rec.Model, rec.ExcerptChars, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}

	slog.Debug("store.upsert", "path", rec.FilePath, "domain_cn", rec.DomainCN)
	return nil
}

// GetByPath retrieves the record for an absolute file path.
func (s *Store) GetByPath(ctx context.Context, path string) (*domain.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT file_path, file_name, domain_cn, domain_en, model, excerpt_chars, updated_at
		FROM records WHERE file_path = ?
	`, path)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	return rec, nil
}

// ListDomains returns per-domain record counts, most populous first,
// ties broken by Chinese label. Records under one Chinese label that
// disagree on the English label resolve to the lexically smallest.
func (s *Store) ListDomains(ctx context.Context) ([]domain.DomainCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain_cn, MIN(domain_en), COUNT(*) AS n
		FROM records
		GROUP BY domain_cn
		ORDER BY n DESC, domain_cn ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying domains: %w", err)
	}
	defer rows.Close()

	var counts []domain.DomainCount //nolint:prealloc // size unknown from query
	for rows.Next() {
		var dc domain.DomainCount
		if err := rows.Scan(&dc.DomainCN, &dc.DomainEN, &dc.Count); err != nil {
			return nil, fmt.Errorf("scanning domain count: %w", err)
		}
		counts = append(counts, dc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating domains: %w", err)
	}

	return counts, nil
}

// ListByDomain returns all records classified under domainCN, ordered
// by file name.
func (s *Store) ListByDomain(ctx context.Context, domainCN string) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_path, file_name, domain_cn, domain_en, model, excerpt_chars, updated_at
		FROM records
		WHERE domain_cn = ?
		ORDER BY file_name, file_path
	`, domainCN)
	if err != nil {
		return nil, fmt.Errorf("querying records by domain: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListAll returns every record, ordered by file name.
func (s *Store) ListAll(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_path, file_name, domain_cn, domain_en, model, excerpt_chars, updated_at
		FROM records
		ORDER BY file_name, file_path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// DeleteByPath removes the record for a file path. Deleting an unknown
// path is not an error.
func (s *Store) DeleteByPath(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE file_path = ?", path)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanRecord.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single record row.
func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var updatedAt sql.NullTime

	if err := row.Scan(&rec.FilePath, &rec.FileName, &rec.DomainCN, &rec.DomainEN,
		&rec.Model, &rec.ExcerptChars, &updatedAt); err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}
	return &rec, nil
}

// collectRecords drains a result set into a record slice.
func collectRecords(rows *sql.Rows) ([]domain.Record, error) {
	var records []domain.Record //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}
