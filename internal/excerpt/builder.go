// Package excerpt reduces a document body to a bounded,
// information-dense excerpt for prompting.
//
// Two strategies exist: field extraction (title, author, affiliation,
// abstract under bracketed headings) and chunk merging (overlapping
// windows joined under the budget). Both bound the result to a rune
// budget using the shared boundary-seeking truncation in package chunk.
package excerpt

import (
	"strings"
	"unicode/utf8"

	"github.com/taxa-labs/taxa-cli/internal/chunk"
)

// Excerpt is the bounded text handed to the model in place of the full
// document.
type Excerpt struct {
	// DisplayName is the document's base filename.
	DisplayName string

	// Text is the composed excerpt. Empty when the document had no
	// extractable text.
	Text string

	// Reserved is kept for a future body section and is always empty
	// today. Callers must not rely on it being populated.
	Reserved string
}

// Section headings for the field strategy.
const (
	headingTitle       = "【标题】"
	headingAuthor      = "【作者】"
	headingAffiliation = "【研究团队/机构】"
	headingAbstract    = "【摘要】"
)

// Options configures excerpt construction. All budgets count runes.
type Options struct {
	// Caps bounds the individual fields.
	Caps Caps

	// MaxChars bounds the whole excerpt.
	MaxChars int

	// Chunked selects chunk merging instead of field extraction.
	Chunked bool

	// ChunkSize is the window size for the chunked strategy.
	ChunkSize int

	// ChunkOverlap is the window overlap for the chunked strategy.
	ChunkOverlap int
}

// DefaultOptions returns the standard field-strategy configuration.
func DefaultOptions() Options {
	return Options{
		Caps:         DefaultCaps(),
		MaxChars:     3000,
		ChunkSize:    chunk.DefaultSize,
		ChunkOverlap: chunk.DefaultOverlap,
	}
}

// Build composes the excerpt for one document. A document without
// extractable text yields an empty excerpt; the classifier then works
// from the filename alone.
//
// Field mode emits only the non-empty fields, each under its bracketed
// heading, joined by a blank line. When the combined text exceeds
// MaxChars the whole excerpt is truncated once at a structural
// boundary; fields are never re-truncated individually.
func Build(fullText, filename string, opts Options) Excerpt {
	if strings.TrimSpace(fullText) == "" {
		return Excerpt{DisplayName: filename}
	}

	var content string
	if opts.Chunked {
		chunks := chunk.Split(fullText, opts.ChunkSize, opts.ChunkOverlap)
		content = chunk.Merge(chunks, opts.MaxChars)
	} else {
		fields := Segment(fullText, filename, opts.Caps)

		parts := make([]string, 0, 4)
		if fields.Title != "" {
			parts = append(parts, headingTitle+"\n"+fields.Title)
		}
		if fields.Author != "" {
			parts = append(parts, headingAuthor+"\n"+fields.Author)
		}
		if fields.Affiliation != "" {
			parts = append(parts, headingAffiliation+"\n"+fields.Affiliation)
		}
		if fields.Abstract != "" {
			parts = append(parts, headingAbstract+"\n"+fields.Abstract)
		}

		content = strings.Join(parts, "\n\n")
		if utf8.RuneCountInString(content) > opts.MaxChars {
			content = chunk.Truncate(content, opts.MaxChars)
		}
	}

	return Excerpt{
		DisplayName: filename,
		Text:        strings.TrimSpace(content),
	}
}
