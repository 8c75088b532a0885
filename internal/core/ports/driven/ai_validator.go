package driven

import "github.com/taxa-labs/taxa-cli/internal/core/domain"

// AIConfigValidator validates LLM provider configurations.
// Implementations verify that a configuration is usable by testing
// connectivity to the underlying service.
type AIConfigValidator interface {
	// ValidateLLM validates an LLM configuration by pinging the
	// provider. Returns nil if the configuration is valid or not
	// configured.
	ValidateLLM(config *domain.LLMSettings) error
}
