package textsource

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/textsource/docx"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/textsource/pdf"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/textsource/plaintext"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.TextSourceResolver = (*Resolver)(nil)

// Resolver routes files to the text source registered for their
// extension.
type Resolver struct {
	byExt map[string]driven.TextSource
}

// NewResolver creates a resolver over the given sources. Later sources
// win when two claim the same extension.
func NewResolver(sources ...driven.TextSource) *Resolver {
	r := &Resolver{byExt: make(map[string]driven.TextSource)}
	for _, src := range sources {
		for _, ext := range src.Extensions() {
			r.byExt[strings.ToLower(ext)] = src
		}
	}
	return r
}

// NewDefaultResolver registers the built-in sources: plain text, Word
// and PDF. runner is the subprocess runner handed to the PDF source;
// nil uses the real pdftotext binary.
func NewDefaultResolver(runner driven.CommandRunner) *Resolver {
	return NewResolver(
		plaintext.New(),
		docx.New(),
		pdf.New(runner),
	)
}

// Resolve returns the source registered for the file's extension.
func (r *Resolver) Resolve(path string) (driven.TextSource, error) {
	ext := strings.ToLower(filepath.Ext(path))
	src, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}
	return src, nil
}

// SupportedExtensions returns every registered extension, sorted.
func (r *Resolver) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
