package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.TextSource = (*Source)(nil)

// utf8BOM is stripped from files saved by Windows editors.
const utf8BOM = "\ufeff"

// Source handles plain text documents.
type Source struct{}

// New creates a new plain text source.
func New() *Source {
	return &Source{}
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".txt", ".md"}
}

// Extract reads the whole file as UTF-8 text. Plain text has no page
// notion, so maxPages is ignored and Pages is zero.
func (s *Source) Extract(_ context.Context, path string, _ int) (*domain.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	text := strings.TrimPrefix(string(data), utf8BOM)

	return &domain.RawDocument{
		Path: path,
		Name: filepath.Base(path),
		Text: strings.TrimSpace(text),
	}, nil
}
