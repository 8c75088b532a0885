package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.TextSource = (*Source)(nil)

// Source handles Word documents. Modern .docx files are ZIP archives
// carrying word/document.xml; legacy binary .doc files cannot be
// opened that way and extract as empty, leaving classification to fall
// back to the filename.
type Source struct{}

// New creates a new Word document source.
func New() *Source {
	return &Source{}
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".docx", ".doc"}
}

// Extract pulls paragraph text out of word/document.xml. Word files
// have no page notion at the XML level, so maxPages is ignored.
func (s *Source) Extract(_ context.Context, path string, _ int) (*domain.RawDocument, error) {
	doc := &domain.RawDocument{
		Path: path,
		Name: filepath.Base(path),
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, fmt.Errorf("reading %s: %w", doc.Name, statErr)
		}
		// Legacy .doc or a corrupt archive: no text layer.
		return doc, nil
	}
	defer reader.Close()

	text, err := extractDocumentText(&reader.Reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", doc.Name, err)
	}

	doc.Text = text
	return doc, nil
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		return parseDocumentXML(content), nil
	}
	return "", nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, text := range r.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}
