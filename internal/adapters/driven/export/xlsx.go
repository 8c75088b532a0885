package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure XLSXExporter implements the interface.
var _ driven.Exporter = (*XLSXExporter)(nil)

// sheetName is the single worksheet carrying the records.
const sheetName = "Records"

// XLSXExporter writes classification records as an Excel workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes records to path. Like the CSV exporter it falls back
// to a .new sibling when the target is locked, returning the path
// actually written.
func (e *XLSXExporter) Export(ctx context.Context, records []domain.Record, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	for rowIdx, rec := range records {
		values := []any{
			rec.FilePath,
			rec.FileName,
			rec.DomainCN,
			rec.DomainEN,
			rec.Model,
			rec.ExcerptChars,
			rec.UpdatedAt.Format(timeLayout),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return "", fmt.Errorf("record cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", fmt.Errorf("writing record: %w", err)
			}
		}
	}

	// Widen the path and label columns
	_ = f.SetColWidth(sheetName, "A", "A", 60)
	_ = f.SetColWidth(sheetName, "B", "B", 32)
	_ = f.SetColWidth(sheetName, "C", "D", 18)
	_ = f.SetColWidth(sheetName, "E", "E", 22)
	_ = f.SetColWidth(sheetName, "G", "G", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("building workbook: %w", err)
	}

	written := path
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		if !errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		alt := fallbackPath(path)
		if altErr := os.WriteFile(alt, buf.Bytes(), 0644); altErr != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		slog.Warn("export.fallback", "from", path, "to", alt)
		written = alt
	}
	return written, nil
}
