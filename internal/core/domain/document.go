package domain

import "time"

// Sentinel values for a classification that could not be resolved.
// DomainCN carries the Chinese sentinel, DomainEN the English one.
const (
	UncategorisedCN = "未分类"
	UncategorisedEN = "Uncategorized"
)

// Classification is the outcome of labelling one document with an
// academic domain. It is the only pipeline artifact that crosses into
// persistence.
type Classification struct {
	// DomainCN is the Chinese domain label, or the Uncategorised sentinel.
	// Never empty, never longer than 50 runes, never contains reasoning
	// markers or raw JSON punctuation.
	DomainCN string

	// DomainEN is the English domain label. Defaults to DomainCN when the
	// model supplies no distinct translation.
	DomainEN string
}

// Uncategorised returns the terminal fallback classification.
func Uncategorised() Classification {
	return Classification{DomainCN: UncategorisedCN, DomainEN: UncategorisedEN}
}

// IsUncategorised reports whether the classification is the sentinel pair.
func (c Classification) IsUncategorised() bool {
	return c.DomainCN == UncategorisedCN
}

// Record is a persisted (document, domain) association.
// FilePath is the natural upsert key: re-classifying the same path
// replaces the previous record (last writer wins).
type Record struct {
	// FilePath is the resolved absolute path of the document.
	FilePath string

	// FileName is the base name, kept denormalised for display and export.
	FileName string

	// DomainCN is the Chinese domain label.
	DomainCN string

	// DomainEN is the English domain label.
	DomainEN string

	// Model is the model name that produced the label ("mock" for the
	// offline keyword classifier).
	Model string

	// ExcerptChars is the rune length of the excerpt sent to the model.
	ExcerptChars int

	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time
}

// DomainCount aggregates how many records share a domain label.
type DomainCount struct {
	// DomainCN is the Chinese domain label.
	DomainCN string

	// DomainEN is the English domain label.
	DomainEN string

	// Count is the number of records carrying this label.
	Count int
}
