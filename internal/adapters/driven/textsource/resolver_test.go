package textsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// fakeSource claims a fixed extension list.
type fakeSource struct {
	exts []string
}

func (f *fakeSource) Extensions() []string { return f.exts }

func (f *fakeSource) Extract(context.Context, string, int) (*domain.RawDocument, error) {
	return &domain.RawDocument{}, nil
}

func TestResolver_Resolve(t *testing.T) {
	txt := &fakeSource{exts: []string{".txt"}}
	pdf := &fakeSource{exts: []string{".pdf"}}
	r := NewResolver(txt, pdf)

	src, err := r.Resolve("/papers/study.pdf")
	require.NoError(t, err)
	assert.Same(t, driven.TextSource(pdf), src)

	src, err = r.Resolve("/papers/notes.txt")
	require.NoError(t, err)
	assert.Same(t, driven.TextSource(txt), src)
}

func TestResolver_Resolve_CaseInsensitive(t *testing.T) {
	pdf := &fakeSource{exts: []string{".pdf"}}
	r := NewResolver(pdf)

	src, err := r.Resolve("/papers/STUDY.PDF")
	require.NoError(t, err)
	assert.Same(t, driven.TextSource(pdf), src)
}

func TestResolver_Resolve_Unsupported(t *testing.T) {
	r := NewResolver(&fakeSource{exts: []string{".txt"}})

	_, err := r.Resolve("/papers/slides.pptx")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestResolver_LaterSourceWins(t *testing.T) {
	first := &fakeSource{exts: []string{".txt"}}
	second := &fakeSource{exts: []string{".txt"}}
	r := NewResolver(first, second)

	src, err := r.Resolve("/papers/notes.txt")
	require.NoError(t, err)
	assert.Same(t, driven.TextSource(second), src)
}

func TestResolver_SupportedExtensions(t *testing.T) {
	r := NewResolver(
		&fakeSource{exts: []string{".txt", ".md"}},
		&fakeSource{exts: []string{".pdf"}},
	)

	assert.Equal(t, []string{".md", ".pdf", ".txt"}, r.SupportedExtensions())
}

func TestNewDefaultResolver(t *testing.T) {
	r := NewDefaultResolver(nil)

	exts := r.SupportedExtensions()
	assert.Contains(t, exts, ".pdf")
	assert.Contains(t, exts, ".docx")
	assert.Contains(t, exts, ".doc")
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".md")
}
