package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.TextSource = (*Source)(nil)

// pdftotextBinary is the Poppler text-layer extractor.
const pdftotextBinary = "pdftotext"

// Source extracts the text layer of PDF files by shelling out to
// pdftotext. Scanned PDFs without a text layer extract as empty, which
// downstream treats as "classify from the filename".
type Source struct {
	runner driven.CommandRunner
}

// New creates a PDF source. A nil runner uses the real pdftotext
// binary; tests inject a stub.
func New(runner driven.CommandRunner) *Source {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Source{runner: runner}
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".pdf"}
}

// Extract runs pdftotext over the first maxPages pages and returns the
// text with page breaks intact. Pages counts the form feeds pdftotext
// emits between pages.
func (s *Source) Extract(ctx context.Context, path string, maxPages int) (*domain.RawDocument, error) {
	name := filepath.Base(path)

	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}
	if maxPages > 0 {
		args = append(args, "-l", strconv.Itoa(maxPages))
	}
	args = append(args, path, "-")

	out, err := s.runner.Run(ctx, pdftotextBinary, args...)
	if err != nil {
		if errIsMissingBinary(err) {
			return nil, fmt.Errorf("%s: %w (install poppler-utils)", pdftotextBinary, domain.ErrToolNotFound)
		}
		return nil, fmt.Errorf("extracting %s: %w", name, err)
	}

	text := strings.TrimSpace(string(out))
	pages := 0
	if text != "" {
		pages = 1 + strings.Count(text, "\f")
	}

	return &domain.RawDocument{
		Path:  path,
		Name:  name,
		Text:  text,
		Pages: pages,
	}, nil
}

// errIsMissingBinary reports whether the error means the binary is not
// installed rather than that extraction failed.
func errIsMissingBinary(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.Is(execErr.Err, exec.ErrNotFound)
	}
	return errors.Is(err, exec.ErrNotFound)
}

// ExecRunner runs commands with os/exec. It is the production
// CommandRunner behind the PDF source.
type ExecRunner struct{}

var _ driven.CommandRunner = ExecRunner{}

// Run executes the command and returns stdout. Stderr is logged, not
// returned: pdftotext prints recoverable syntax warnings there while
// still producing usable text.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		slog.Debug("exec.failed", "cmd", name, "error", err, "stderr", truncate(errb.String(), 2048))
		return nil, err
	}
	if errb.Len() > 0 {
		slog.Debug("exec.stderr", "cmd", name, "stderr", truncate(errb.String(), 2048))
	}
	return out.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
