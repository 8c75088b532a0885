package domain

// RawDocument is the text-layer extraction of one corpus file.
// It is produced once per document by the text source and is
// read-only input for the classification pipeline.
type RawDocument struct {
	// Path is the resolved absolute path of the file.
	Path string

	// Name is the base filename, used for display and as the title
	// fallback when no title line qualifies.
	Name string

	// Text is the full extracted text. Empty when the file had no
	// extractable text layer.
	Text string

	// Pages is the number of pages consumed by extraction.
	// Zero for unpaged formats (plain text, DOCX).
	Pages int
}

// HasText reports whether extraction produced at least threshold runes
// of usable text. Below the threshold the document is treated as
// non-extractable and classified from its filename alone.
func (d RawDocument) HasText(threshold int) bool {
	if d.Text == "" {
		return false
	}
	return len([]rune(d.Text)) >= threshold
}
