package services

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
	"github.com/taxa-labs/taxa-cli/internal/excerpt"
	"github.com/taxa-labs/taxa-cli/internal/label"
	"github.com/taxa-labs/taxa-cli/internal/prompt"
	"github.com/taxa-labs/taxa-cli/internal/vocab"
)

// Ensure ClassifierService implements the interface.
var _ driving.ClassifierService = (*ClassifierService)(nil)

// ClassifierService assigns one domain label per document: excerpt the
// text, prompt the gateway, parse the response, retry once, fall back
// to the loose extraction, and finally to the uncategorised sentinel.
// Worst case is two gateway calls per document.
type ClassifierService struct {
	gateway  driven.LLMGateway
	settings domain.AppSettings
}

// NewClassifierService creates a classifier around a gateway.
// Settings are normalised and snapshotted at construction; build a new
// service after configuration changes.
func NewClassifierService(gateway driven.LLMGateway, settings domain.AppSettings) *ClassifierService {
	return &ClassifierService{
		gateway:  gateway,
		settings: settings.Normalised(),
	}
}

// Classify labels one extracted document. Gateway failures surface as
// bracketed diagnostic text that no parse strategy accepts, so
// transport errors funnel into the same retry path as malformed
// responses. The error return covers context cancellation only.
func (c *ClassifierService) Classify(ctx context.Context, doc *domain.RawDocument) (domain.Classification, error) {
	if err := ctx.Err(); err != nil {
		return domain.Classification{}, err
	}

	ex := c.buildExcerpt(doc)
	p := c.buildPrompt(ex)
	slog.Debug("classify.start", "file", doc.Name,
		"excerpt_runes", utf8.RuneCountInString(ex.Text),
		"prompt_runes", utf8.RuneCountInString(p.User))

	raw := c.complete(ctx, p)
	if result, ok := label.Parse(raw); ok && !result.IsUncategorised() {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return domain.Classification{}, err
	}

	slog.Debug("classify.retry", "file", doc.Name)
	raw2 := c.complete(ctx, p)
	if result, ok := label.Parse(raw2); ok {
		return result, nil
	}

	// Last resort: loose extraction over whichever raw response is
	// non-empty, second preferred.
	s := raw2
	if s == "" {
		s = raw
	}
	if lbl, ok := label.LooseLabel(s); ok {
		slog.Debug("classify.loose", "file", doc.Name, "label", lbl)
		return domain.Classification{DomainCN: lbl, DomainEN: lbl}, nil
	}

	slog.Debug("classify.fallback", "file", doc.Name)
	return domain.Uncategorised(), nil
}

// ExcerptLength returns the rune length of the excerpt that Classify
// would send for this document. Persisted on the record so exports
// show how much text backed each label.
func (c *ClassifierService) ExcerptLength(doc *domain.RawDocument) int {
	return utf8.RuneCountInString(c.buildExcerpt(doc).Text)
}

func (c *ClassifierService) buildExcerpt(doc *domain.RawDocument) excerpt.Excerpt {
	es := c.settings.Excerpt

	text := doc.Text
	if !doc.HasText(es.MinTextThreshold) {
		text = ""
	}

	return excerpt.Build(text, doc.Name, excerpt.Options{
		Caps: excerpt.Caps{
			Title:       es.TitleMax,
			Author:      es.AuthorMax,
			Affiliation: es.AffiliationMax,
			Abstract:    es.AbstractMax,
		},
		MaxChars:     es.MaxChars,
		Chunked:      es.Strategy == domain.ExcerptChunks,
		ChunkSize:    es.ChunkSize,
		ChunkOverlap: es.ChunkOverlap,
	})
}

func (c *ClassifierService) buildPrompt(ex excerpt.Excerpt) prompt.Prompt {
	labels := c.settings.Vocabulary
	if len(labels) == 0 {
		labels = vocab.Default()
	}
	system := c.settings.Prompt.SystemPrompt
	if system == "" {
		system = prompt.DefaultSystemPrompt
	}
	return prompt.Assemble(ex.DisplayName, ex.Text, labels, system, c.settings.Prompt.MaxPromptChars)
}

// complete invokes the gateway and folds transport errors into a
// bracketed diagnostic string the parser will reject.
func (c *ClassifierService) complete(ctx context.Context, p prompt.Prompt) string {
	requestID := uuid.NewString()
	raw, err := c.gateway.Complete(ctx, p.User, p.System, driven.GenerateOptions{
		MaxTokens:   c.settings.LLM.MaxTokens,
		Temperature: c.settings.LLM.Temperature,
		Timeout:     c.settings.LLM.RequestTimeout,
	})
	if err != nil {
		slog.Warn("classify.gateway.error", "request_id", requestID, "error", err)
		return fmt.Sprintf("[gateway error: %v]", err)
	}
	slog.Debug("classify.gateway.done", "request_id", requestID,
		"response_runes", utf8.RuneCountInString(raw))
	return raw
}
