// Package label recovers a single domain label from unconstrained
// model output. Responses arrive as anything from the agreed one-line
// JSON to reasoning-tag leakage, prose around a JSON fragment,
// alternate key names or pipe-delimited pairs; the parser tries an
// ordered list of strategies and stops at the first that yields a
// label, so a well-formed response never pays for the fallbacks.
package label

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"

	// maxLabelRunes rejects labels that are clearly prose, not a name.
	maxLabelRunes = 50
)

var (
	// fieldJSONRe matches the agreed wire format {"field": "<label>"}.
	fieldJSONRe = regexp.MustCompile(`\{\s*"field"\s*:\s*"([^"]+)"\s*\}`)

	// fieldObjectRe finds any brace-enclosed object mentioning "field",
	// tolerating noise around and inside it.
	fieldObjectRe = regexp.MustCompile(`\{[^{}]*"field"[^{}]*\}`)

	// pairObjectRe finds an object carrying both label keys.
	pairObjectRe = regexp.MustCompile(`\{[^{}]*"domain_cn"[^{}]*"domain_en"[^{}]*\}`)

	// braceRe grabs the outermost brace span as a last structured resort.
	braceRe = regexp.MustCompile(`(?s)\{.*\}`)

	// prefixRe drops leading category words the model sometimes prepends.
	prefixRe = regexp.MustCompile(`(?i)^(?:领域|学科|类别|domain|field|category|subject)[:：]?\s*`)
)

// strategy attempts one extraction; ok reports whether it produced a
// result at all, which may still be the uncategorised sentinel.
type strategy func(work string) (domain.Classification, bool)

var strategies = []strategy{
	parseStrictField,
	parseFieldObject,
	parseDomainPair,
	parseAnyObject,
	parsePipe,
}

// Parse extracts a classification from raw model output. It returns
// ok=false for empty input and for reasoning-only responses; otherwise
// it strips everything up to the last reasoning-close marker and runs
// the strategy chain over the remainder.
func Parse(raw string) (domain.Classification, bool) {
	if raw == "" {
		return domain.Classification{}, false
	}
	if isThinkOnly(raw) {
		return domain.Classification{}, false
	}

	work := raw
	if i := strings.LastIndex(work, thinkClose); i >= 0 {
		work = work[i+len(thinkClose):]
	}
	work = strings.TrimSpace(work)

	for _, try := range strategies {
		if c, ok := try(work); ok {
			return c, true
		}
	}
	return domain.Classification{}, false
}

// isThinkOnly reports whether the response is internal reasoning with
// no recognisable field assertion after the close marker.
func isThinkOnly(raw string) bool {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToLower(s), thinkOpen) {
		return false
	}
	if !strings.Contains(s, thinkClose) {
		return true
	}
	_, after, _ := strings.Cut(s, thinkClose)
	after = strings.TrimSpace(after)
	if after == "" {
		return true
	}
	if fieldJSONRe.MatchString(after) {
		return false
	}
	if strings.Contains(after, `"field"`) {
		return false
	}
	return true
}

// parseStrictField handles the agreed format with a strict match on
// the quoted value.
func parseStrictField(work string) (domain.Classification, bool) {
	m := fieldJSONRe.FindStringSubmatch(work)
	if m == nil {
		return domain.Classification{}, false
	}
	cn := strings.Trim(strings.TrimSpace(m[1]), "。，,、")
	if cn == "" || containsThinkMarker(cn) || utf8.RuneCountInString(cn) > maxLabelRunes {
		return domain.Classification{}, false
	}
	return Normalise(cn, cn), true
}

// parseFieldObject scans every small brace span mentioning "field" and
// takes the first that parses as JSON with a usable string value.
func parseFieldObject(work string) (domain.Classification, bool) {
	for _, frag := range fieldObjectRe.FindAllString(work, -1) {
		var data map[string]any
		if err := json.Unmarshal([]byte(frag), &data); err != nil {
			continue
		}
		v, isString := data["field"].(string)
		if !isString {
			continue
		}
		cn := strings.TrimSpace(v)
		if cn == "" || containsThinkMarker(cn) {
			continue
		}
		return Normalise(cn, cn), true
	}
	return domain.Classification{}, false
}

// parseDomainPair accepts the alternate two-key shape.
func parseDomainPair(work string) (domain.Classification, bool) {
	for _, frag := range pairObjectRe.FindAllString(work, -1) {
		var data map[string]any
		if err := json.Unmarshal([]byte(frag), &data); err != nil {
			continue
		}
		cnRaw, hasCN := data["domain_cn"]
		enRaw, hasEN := data["domain_en"]
		if !hasCN || !hasEN {
			continue
		}
		cn, _ := cnRaw.(string)
		en, _ := enRaw.(string)
		return Normalise(cn, en), true
	}
	return domain.Classification{}, false
}

// parseAnyObject takes the outermost brace span and reads whichever
// label keys it carries. A parseable object with neither key still
// counts as a result; it normalises to the uncategorised sentinel and
// the caller's retry policy decides what to do with it.
func parseAnyObject(work string) (domain.Classification, bool) {
	frag := braceRe.FindString(work)
	if frag == "" {
		return domain.Classification{}, false
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(frag), &data); err != nil {
		return domain.Classification{}, false
	}
	if v, exists := data["field"]; exists {
		s, _ := v.(string)
		if cn := strings.TrimSpace(s); cn != "" {
			return Normalise(cn, cn), true
		}
	}
	cn, _ := data["domain_cn"].(string)
	en, _ := data["domain_en"].(string)
	return Normalise(cn, en), true
}

// parsePipe accepts the "cn|en" plain-text fallback.
func parsePipe(work string) (domain.Classification, bool) {
	if !strings.Contains(work, "|") {
		return domain.Classification{}, false
	}
	parts := strings.Split(work, "|")
	if len(parts) < 2 {
		return domain.Classification{}, false
	}
	return Normalise(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])), true
}

// Normalise cleans an extracted label pair. The Chinese label is run
// through the loose normaliser; the English label defaults to it when
// absent. Labels that normalise to nothing, keep reasoning markers or
// exceed the length bound collapse to the uncategorised sentinel
// rather than passing something misleading downstream.
func Normalise(cnRaw, enRaw string) domain.Classification {
	cn := strings.TrimSpace(cnRaw)
	en := strings.TrimSpace(enRaw)
	if cn != "" {
		cn = NormaliseLoose(cn)
	}
	if en == "" && cn != "" {
		en = cn
	}
	if cn == "" || cn == domain.UncategorisedCN {
		if en == "" {
			en = domain.UncategorisedEN
		}
		return domain.Classification{DomainCN: domain.UncategorisedCN, DomainEN: en}
	}
	if containsThinkMarker(cn) || containsJSONPunct(cn) || utf8.RuneCountInString(cn) > maxLabelRunes {
		return domain.Uncategorised()
	}
	return domain.Classification{DomainCN: cn, DomainEN: en}
}

// NormaliseLoose reduces free text to a single label-like token: the
// segment before the first line break, comma or full stop in either
// script, minus leading category words and surrounding quotes. Empty
// results become the uncategorised sentinel.
func NormaliseLoose(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.UncategorisedCN
	}
	for _, sep := range []string{"\n", "，", "。", ",", "."} {
		if i := strings.Index(s, sep); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
	}
	s = prefixRe.ReplaceAllString(s, "")
	s = strings.Trim(s, "\"' \t")
	if s == "" {
		return domain.UncategorisedCN
	}
	return s
}

// LooseLabel is the last-resort extraction applied to a raw response
// after every structured strategy has failed twice. It reports ok only
// for a usable label, never the sentinel.
func LooseLabel(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	cn := NormaliseLoose(s)
	if cn == "" || cn == domain.UncategorisedCN {
		return "", false
	}
	if containsThinkMarker(cn) || containsJSONPunct(cn) || utf8.RuneCountInString(cn) > maxLabelRunes {
		return "", false
	}
	return cn, true
}

func containsThinkMarker(s string) bool {
	return strings.Contains(s, thinkOpen) || strings.Contains(s, thinkClose)
}

// containsJSONPunct rejects labels carrying structural JSON characters;
// a clean domain name never contains braces, brackets or quotes, and
// bracketed gateway diagnostics must not leak through the loose path.
func containsJSONPunct(s string) bool {
	return strings.ContainsAny(s, `{}[]"`)
}
