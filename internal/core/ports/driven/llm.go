package driven

import (
	"context"
	"time"
)

// LLMGateway sends completion requests to a language model backend.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI-compatible servers (LM Studio, vLLM)
//   - Mock (keyword lookup for offline runs and tests)
type LLMGateway interface {
	// Complete sends one prompt pair and returns the raw model output.
	// Transport failures and timeouts surface as errors; the caller
	// decides whether to retry. The returned text is never assumed to
	// match any format.
	Complete(ctx context.Context, userPrompt, systemPrompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the backend is reachable with a lightweight request.
	// Used at startup to verify connectivity before a long scan commits
	// to a provider.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures one completion request.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// Timeout bounds the whole request. Zero means the adapter's
	// default.
	Timeout time.Duration
}
