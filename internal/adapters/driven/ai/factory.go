// Package ai provides factory functions for creating LLM gateway adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	mockllm "github.com/taxa-labs/taxa-cli/internal/adapters/driven/llm/mock"
	ollamallm "github.com/taxa-labs/taxa-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/taxa-labs/taxa-cli/internal/adapters/driven/llm/openai"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for backend connectivity validation.
const pingTimeout = 5 * time.Second

// CreateGateway creates the gateway for the configured provider.
func CreateGateway(settings *domain.LLMSettings) (driven.LLMGateway, error) {
	if settings == nil {
		return nil, fmt.Errorf("no LLM settings")
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaGateway(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIGateway(settings), nil

	case domain.AIProviderMock:
		return mockllm.NewGateway(), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// CreateAndValidateGateway creates a gateway and validates connectivity.
// Returns the gateway if successful, or an error with guidance. A long
// scan should fail here, before the first document is extracted.
func CreateAndValidateGateway(settings *domain.LLMSettings) (driven.LLMGateway, error) {
	gw, err := CreateGateway(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'taxa settings wizard' to fix",
			domain.ErrLLMUnavailable, err)
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := gw.Ping(ctx); err != nil {
		gw.Close()
		return nil, fmt.Errorf("%w: backend unreachable (%w). Run 'taxa settings wizard' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return gw, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a gateway and pinging it.
// This is intended for use in the settings wizard to validate settings on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	gw, err := CreateGateway(settings)
	if err != nil {
		return err
	}
	defer gw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return gw.Ping(ctx)
}

// createOllamaGateway creates an Ollama gateway.
func createOllamaGateway(settings *domain.LLMSettings) driven.LLMGateway {
	return ollamallm.NewGateway(ollamallm.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.RequestTimeout,
	})
}

// createOpenAIGateway creates an OpenAI-compatible gateway.
func createOpenAIGateway(settings *domain.LLMSettings) driven.LLMGateway {
	return openaillm.NewGateway(openaillm.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		APIKey:  settings.APIKey,
		Timeout: settings.RequestTimeout,
	})
}
