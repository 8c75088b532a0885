package driven

import (
	"context"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// TextSource extracts the text layer from one family of document
// formats. Extraction is best effort: scanned documents without a text
// layer yield an empty RawDocument, not an error.
type TextSource interface {
	// Extensions returns the lowercase file extensions this source
	// handles, dot included (".pdf").
	Extensions() []string

	// Extract reads up to maxPages pages of text from the file.
	// maxPages <= 0 means no page limit. Formats without a page notion
	// ignore it.
	Extract(ctx context.Context, path string, maxPages int) (*domain.RawDocument, error)
}

// TextSourceResolver selects the TextSource for a file.
type TextSourceResolver interface {
	// Resolve returns the source registered for the file's extension.
	// Returns domain.ErrUnsupportedFormat when no source handles it.
	Resolve(path string) (TextSource, error)

	// SupportedExtensions returns every extension with a registered
	// source, sorted.
	SupportedExtensions() []string
}
