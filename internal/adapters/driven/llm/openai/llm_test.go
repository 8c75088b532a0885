package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
)

// chatReply builds a minimal completions response body.
func chatReply(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
}

func TestNewGateway_Defaults(t *testing.T) {
	gw := NewGateway(Config{})

	require.NotNil(t, gw)
	assert.Equal(t, DefaultModel, gw.ModelName())
	assert.Equal(t, DefaultBaseURL, gw.baseURL)
	assert.Equal(t, DefaultAPIKey, gw.apiKey)
}

func TestGateway_Complete(t *testing.T) {
	var got chatRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		auth = r.Header.Get("Authorization")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatReply("  {\"field\": \"病毒学\"}  "))
	}))
	defer server.Close()

	gw := NewGateway(Config{
		BaseURL: server.URL + "/v1",
		Model:   "test-model",
		APIKey:  "sk-local",
	})

	reply, err := gw.Complete(context.Background(), "user prompt", "system prompt", driven.GenerateOptions{
		MaxTokens:   64,
		Temperature: 0.1,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"field": "病毒学"}`, reply, "reply is whitespace-trimmed")
	assert.Equal(t, "Bearer sk-local", auth)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system prompt", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "user prompt", got.Messages[1].Content)
	assert.Equal(t, 64, got.MaxTokens)
	assert.InDelta(t, 0.1, got.Temperature, 1e-9)
	assert.False(t, got.Stream)
}

func TestGateway_Complete_NoSystemPrompt(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(chatReply("ok"))
	}))
	defer server.Close()

	gw := NewGateway(Config{BaseURL: server.URL + "/v1"})

	_, err := gw.Complete(context.Background(), "just the user turn", "", driven.GenerateOptions{})

	require.NoError(t, err)
	require.Len(t, got.Messages, 1, "no empty system message on the wire")
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestGateway_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	gw := NewGateway(Config{BaseURL: server.URL + "/v1"})

	reply, err := gw.Complete(context.Background(), "prompt", "", driven.GenerateOptions{})

	require.NoError(t, err)
	assert.Empty(t, reply, "a choiceless reply is empty, not an error")
}

func TestGateway_Complete_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "model is loading"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gw := NewGateway(Config{BaseURL: server.URL + "/v1"})

	_, err := gw.Complete(context.Background(), "prompt", "", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
	assert.Contains(t, err.Error(), "model is loading")
}

func TestGateway_Complete_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(chatReply("ok"))
	}))
	defer server.Close()

	gw := NewGateway(Config{BaseURL: server.URL + "/v1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.Complete(ctx, "prompt", "", driven.GenerateOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGateway_Ping(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/models", r.URL.Path)
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gw := NewGateway(Config{BaseURL: server.URL + "/v1"})

	require.NoError(t, gw.Ping(context.Background()))
	assert.Equal(t, "Bearer "+DefaultAPIKey, auth, "local servers still get the placeholder key")
}

func TestGateway_Ping_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	gw := NewGateway(Config{BaseURL: server.URL + "/v1"})

	err := gw.Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestGateway_Close(t *testing.T) {
	gw := NewGateway(Config{})

	assert.NoError(t, gw.Close())
}
