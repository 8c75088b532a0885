package excerpt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/taxa-labs/taxa-cli/internal/chunk"
)

// Fields holds the four spans extracted from a document's leading text.
// Values are trimmed and capped; any of them may be empty except Title,
// which falls back to the filename.
type Fields struct {
	Title       string
	Author      string
	Affiliation string
	Abstract    string
}

// Caps bounds each field in runes.
type Caps struct {
	Title       int
	Author      int
	Affiliation int
	Abstract    int
}

// DefaultCaps returns the standard per-field budgets.
func DefaultCaps() Caps {
	return Caps{Title: 200, Author: 200, Affiliation: 300, Abstract: 600}
}

// Abstract section markers, matched case-insensitively. The earliest
// occurrence wins.
var abstractMarkers = []string{"abstract", "摘要", "summary"}

// Markers that end the abstract section.
var abstractTerminators = []string{
	"introduction",
	"1. introduction",
	"keywords",
	"key words",
	"索引",
	"1. ",
	"\n1.\t",
}

// Lines containing any of these are classified as affiliation rather
// than author. The trailing space on "lab " avoids matching "label".
var affiliationKeywords = []string{
	"department", "university", "hospital", "school", "college",
	"institute", "laboratory", "lab ",
	"学院", "大学", "系", "所", "医院", "实验室",
}

// Segment heuristically partitions a document's leading text into
// title, author, affiliation and abstract spans. It is pure: the same
// text and filename always produce the same result.
func Segment(fullText, filename string, caps Caps) Fields {
	text := strings.TrimSpace(fullText)
	runes := []rune(text)

	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}

	// Title: scan the first four non-empty lines, skip URL-like and
	// short lines, stop after two accepted lines or one very long one.
	var titleLines []string
	for _, ln := range headSlice(lines, 4) {
		if utf8.RuneCountInString(ln) <= 10 {
			continue
		}
		lower := strings.ToLower(ln)
		if strings.HasPrefix(lower, "http") || strings.HasPrefix(lower, "www.") {
			continue
		}
		titleLines = append(titleLines, ln)
		if len(titleLines) == 2 || utf8.RuneCountInString(ln) > 80 {
			break
		}
	}
	title := filename
	if len(titleLines) > 0 {
		title = chunk.Truncate(strings.Join(titleLines, " "), caps.Title)
	}

	absStart, absEnd := abstractSpan(runes)
	abstract := ""
	if absStart >= 0 && absEnd > absStart {
		abstract = chunk.Truncate(string(runes[absStart:absEnd]), caps.Abstract)
	}

	// Author/affiliation live between the title and the abstract.
	var block string
	if absStart > 0 {
		block = strings.TrimSpace(string(runes[:absStart]))
	} else {
		block = strings.TrimSpace(string(runes[:min(800, len(runes))]))
	}
	for _, ln := range titleLines {
		block = strings.TrimSpace(strings.Replace(block, ln, "", 1))
	}

	var beforeLines []string
	for _, ln := range strings.Split(block, "\n") {
		if strings.TrimSpace(ln) != "" {
			beforeLines = append(beforeLines, ln)
		}
	}

	var authorParts, affiliationParts []string
	for _, ln := range headSlice(beforeLines, 20) {
		if isAffiliationLine(ln) {
			affiliationParts = append(affiliationParts, ln)
		} else {
			authorParts = append(authorParts, ln)
		}
	}
	author := chunk.Truncate(strings.Join(authorParts, "\n"), caps.Author)
	affiliation := chunk.Truncate(strings.Join(affiliationParts, "\n"), caps.Affiliation)

	// Backfill so at least one bucket is populated whenever any
	// pre-abstract text exists.
	if author == "" && len(beforeLines) > 0 {
		author = chunk.Truncate(strings.Join(headSlice(beforeLines, 5), "\n"), caps.Author)
	}
	if affiliation == "" && len(beforeLines) > 0 && author == "" {
		affiliation = chunk.Truncate(strings.Join(headSlice(beforeLines, 8), "\n"), caps.Affiliation)
	}

	return Fields{
		Title:       title,
		Author:      author,
		Affiliation: affiliation,
		Abstract:    abstract,
	}
}

// abstractSpan locates the abstract section as [start, end) rune
// offsets, or (-1, -1) when no marker is present. The span begins on
// the line after the marker (or 8 runes past it when no newline
// follows) and ends at the earliest terminator within the next 2000
// runes.
func abstractSpan(runes []rune) (int, int) {
	lower := lowerRunes(runes)

	start := -1
	for _, mark := range abstractMarkers {
		if i := indexRunes(lower, []rune(mark)); i != -1 && (start == -1 || i < start) {
			start = i
		}
	}
	if start == -1 {
		return -1, -1
	}

	if nl := indexRuneFrom(runes, '\n', start); nl != -1 {
		start = nl + 1
	} else {
		start += 8
	}
	if start > len(runes) {
		start = len(runes)
	}

	region := lower[start:min(start+2000, len(runes))]
	endInRegion := len(region)
	for _, mark := range abstractTerminators {
		if j := indexRunes(region, []rune(mark)); j != -1 && j < endInRegion {
			endInRegion = j
		}
	}
	return start, start + endInRegion
}

func isAffiliationLine(ln string) bool {
	lower := strings.ToLower(ln)
	for _, kw := range affiliationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return utf8.RuneCountInString(ln) > 60
}

// headSlice returns the first n elements at most.
func headSlice(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// lowerRunes lowercases rune by rune, preserving offsets.
func lowerRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexRunes finds the first occurrence of needle within haystack.
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i <= len(haystack)-len(needle); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// indexRuneFrom finds r in runes at or after from.
func indexRuneFrom(runes []rune, r rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
