package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure CSVExporter implements the interface.
var _ driven.Exporter = (*CSVExporter)(nil)

// utf8BOM makes spreadsheet programs detect the encoding; without it
// Excel renders Chinese labels as mojibake.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// header is the exported column order, shared with the XLSX exporter.
var header = []string{"file_path", "file_name", "domain_cn", "domain_en", "model", "excerpt_chars", "updated_at"}

// timeLayout renders timestamps the way spreadsheets sort naturally.
const timeLayout = "2006-01-02 15:04:05"

// CSVExporter writes classification records as UTF-8 CSV with a BOM.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes records to path. When the target is locked by another
// program (Excel keeps exports open), it falls back to a .new sibling
// and returns that path instead.
func (e *CSVExporter) Export(ctx context.Context, records []domain.Record, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}

	f, written, err := createWithFallback(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", fmt.Errorf("writing BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.FilePath,
			rec.FileName,
			rec.DomainCN,
			rec.DomainEN,
			rec.Model,
			strconv.Itoa(rec.ExcerptChars),
			rec.UpdatedAt.Format(timeLayout),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", written, err)
	}
	return written, nil
}

// createWithFallback opens path for writing, diverting to a .new
// sibling when the target exists but cannot be written.
func createWithFallback(path string) (*os.File, string, error) {
	f, err := os.Create(path)
	if err == nil {
		return f, path, nil
	}
	if !errors.Is(err, fs.ErrPermission) {
		return nil, "", fmt.Errorf("creating %s: %w", path, err)
	}

	alt := fallbackPath(path)
	f, altErr := os.Create(alt)
	if altErr != nil {
		return nil, "", fmt.Errorf("creating %s: %w", path, err)
	}
	slog.Warn("export.fallback", "from", path, "to", alt)
	return f, alt, nil
}

// fallbackPath returns the .new sibling: report.csv -> report.new.csv.
func fallbackPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".new" + ext
}
