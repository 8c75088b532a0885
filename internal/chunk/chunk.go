// Package chunk provides boundary-respecting text segmentation.
//
// All sizes and offsets count runes, not bytes: the corpus mixes CJK
// and Latin scripts and budgets must be script-independent.
package chunk

import "strings"

// DefaultSize is the default window size in runes.
const DefaultSize = 800

// DefaultOverlap is the default overlap between consecutive windows.
const DefaultOverlap = 100

// Boundary separators tried when cutting a window, in priority order.
// A hard cut at the window edge is the last resort.
var splitSeparators = []string{"\n\n", "\n", "。", ".", " "}

// Separators recognised by Truncate, in priority order.
var truncateSeparators = []rune{'\n', '。', '.', ' '}

// Split carves text into overlapping windows of at most chunkSize runes,
// preferring to cut at a separator found past each window's midpoint so
// words and sentences survive intact. Chunks come out trimmed, in source
// order. Blank text or a non-positive chunkSize yields nil; text that
// already fits yields a single trimmed element.
func Split(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		return nil
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= chunkSize {
		return []string{string(runes)}
	}

	chunks := make([]string, 0, len(runes)/chunkSize+1)
	start := 0

	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			if piece := strings.TrimSpace(string(runes[start:])); piece != "" {
				chunks = append(chunks, piece)
			}
			break
		}

		if idx, sepLen, ok := lastBoundary(runes[start:end], chunkSize/2); ok {
			end = start + idx + sepLen
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, piece)
		}

		// Guard keeps progress strictly forward: a boundary cut can
		// shorten the window below the overlap.
		next := end - min(overlap, chunkSize-1)
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// Merge joins chunks with a blank line and bounds the result to maxChars
// via Truncate. This is the RAG-style alternative to field extraction:
// the cut is boundary-seeking but deliberately field-agnostic.
func Merge(chunks []string, maxChars int) string {
	return Truncate(strings.Join(chunks, "\n\n"), maxChars)
}

// Truncate bounds s to maxChars runes. When a cut is needed it searches
// backward for the last separator past maxChars/2 and cuts just after
// it; without one it hard-cuts at the budget. The result is trimmed and
// the operation is idempotent: Truncate(Truncate(s, n), n) == Truncate(s, n).
func Truncate(s string, maxChars int) string {
	t := []rune(strings.TrimSpace(s))
	if len(t) <= maxChars {
		return string(t)
	}
	if maxChars <= 0 {
		return ""
	}

	t = t[:maxChars]
	for _, sep := range truncateSeparators {
		if idx := lastIndexRune(t, sep); idx > maxChars/2 {
			return strings.TrimSpace(string(t[:idx+1]))
		}
	}
	return strings.TrimSpace(string(t))
}

// lastBoundary finds the highest-priority separator occurring after mid
// within the window. Returns its index, the separator length, and
// whether one was found.
func lastBoundary(window []rune, mid int) (int, int, bool) {
	for _, sep := range splitSeparators {
		sepRunes := []rune(sep)
		if idx := lastIndexRunes(window, sepRunes); idx > mid {
			return idx, len(sepRunes), true
		}
	}
	return 0, 0, false
}

// lastIndexRunes is strings.LastIndex over rune slices.
func lastIndexRunes(runes, sep []rune) int {
	if len(sep) == 0 || len(sep) > len(runes) {
		return -1
	}
outer:
	for i := len(runes) - len(sep); i >= 0; i-- {
		for j := range sep {
			if runes[i+j] != sep[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// lastIndexRune is strings.LastIndexByte's rune-slice counterpart.
func lastIndexRune(runes []rune, sep rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == sep {
			return i
		}
	}
	return -1
}
