package driving

import (
	"context"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

// ClassifierService assigns a single academic-domain label to a
// document. Classification never fails in the ordinary sense: gateway
// errors, malformed responses and reasoning-only output all degrade to
// the uncategorised sentinel after a bounded retry. The error return
// covers context cancellation only.
type ClassifierService interface {
	// Classify labels one extracted document. At most two gateway
	// calls are made; the result is deterministic given the same text
	// and gateway responses.
	Classify(ctx context.Context, doc *domain.RawDocument) (domain.Classification, error)

	// ExcerptLength returns the rune length of the excerpt Classify
	// would send for this document. Recorded alongside the label so
	// exports show how much text backed the decision.
	ExcerptLength(doc *domain.RawDocument) int
}
