package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a language-model backend.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is any OpenAI-compatible chat endpoint
	// (LM Studio, vLLM, or the hosted API).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderMock is the offline keyword classifier, used for
	// dry runs and tests.
	AIProviderMock AIProvider = "mock"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderMock:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider may need an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider needs no network at all.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderMock
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local server)"
	case AIProviderOpenAI:
		return "OpenAI-compatible (LM Studio, vLLM, hosted)"
	case AIProviderMock:
		return "Mock (offline keyword rules)"
	default:
		return unknownDescription
	}
}

// AllAIProviders returns every selectable provider.
func AllAIProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderMock,
	}
}

// DefaultModels returns the default model name for each provider.
func DefaultModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "qwen2.5:7b-instruct",
		AIProviderOpenAI: "qwen2.5-7b-instruct",
		AIProviderMock:   "mock",
	}
}

// DefaultBaseURLs returns the canonical endpoint for each provider.
// The OpenAI-compatible default targets LM Studio's local port; the
// mock runs in-process and has none.
func DefaultBaseURLs() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "http://localhost:11434",
		AIProviderOpenAI: "http://localhost:1234/v1",
		AIProviderMock:   "",
	}
}

// ExcerptStrategy selects how a document body is reduced to an excerpt.
type ExcerptStrategy string

// Available excerpt strategies.
const (
	// ExcerptFields extracts title/author/affiliation/abstract spans.
	ExcerptFields ExcerptStrategy = "fields"

	// ExcerptChunks splits the body into overlapping chunks and merges
	// them under the budget (RAG-style coverage).
	ExcerptChunks ExcerptStrategy = "chunks"
)

// IsValid returns true if the strategy is recognised.
func (s ExcerptStrategy) IsValid() bool {
	return s == ExcerptFields || s == ExcerptChunks
}

// String returns the string representation.
func (s ExcerptStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s ExcerptStrategy) Description() string {
	switch s {
	case ExcerptFields:
		return "Fields (title, author, affiliation, abstract)"
	case ExcerptChunks:
		return "Chunks (overlapping windows, merged)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds language-model backend configuration.
type LLMSettings struct {
	// Provider is the model backend.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL is the server endpoint (Ollama or OpenAI-compatible).
	BaseURL string

	// APIKey authenticates against hosted OpenAI-compatible endpoints.
	// Local servers ignore it.
	APIKey string

	// MaxTokens bounds the model's reply length.
	MaxTokens int

	// Temperature controls sampling randomness. Kept low: the reply
	// must be a single JSON line, not prose.
	Temperature float64

	// RequestTimeout bounds one gateway call.
	RequestTimeout time.Duration

	// RequestsPerSecond throttles gateway calls during a scan.
	// Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured returns true if the backend is usable as configured.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.IsLocal() {
		return true
	}
	return l.BaseURL != ""
}

// ExcerptSettings holds the field caps and chunking parameters for
// excerpt construction. All values count runes, not bytes.
type ExcerptSettings struct {
	// Strategy selects field extraction or chunk merging.
	Strategy ExcerptStrategy

	// MaxChars is the whole-excerpt budget handed to the model.
	MaxChars int

	// TitleMax caps the title field.
	TitleMax int

	// AuthorMax caps the author field.
	AuthorMax int

	// AffiliationMax caps the affiliation field.
	AffiliationMax int

	// AbstractMax caps the abstract field. Values above 1500 are
	// clamped when settings are normalised.
	AbstractMax int

	// ChunkSize is the window size for the chunks strategy.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive windows.
	ChunkOverlap int

	// MinTextThreshold is the minimum extracted-text length below
	// which a document counts as non-extractable.
	MinTextThreshold int
}

// PromptSettings holds prompt assembly configuration.
type PromptSettings struct {
	// MaxPromptChars bounds system + user text per request.
	MaxPromptChars int

	// SystemPrompt overrides the built-in system instruction when
	// non-empty. Only its length is validated.
	SystemPrompt string
}

// ScanSettings holds corpus discovery configuration.
type ScanSettings struct {
	// Directories are the literature folders to walk.
	Directories []string

	// Extensions are the file extensions to ingest (with leading dot).
	Extensions []string

	// MaxPages bounds how many pages the text source reads per file.
	MaxPages int
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// DatabasePath is the SQLite file location.
	DatabasePath string
}

// WatchSettings holds directory watching configuration.
type WatchSettings struct {
	// Debounce is how long a changed file must stay quiet before it is
	// classified. Coalesces editor save bursts and partial copies.
	Debounce time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds model backend settings.
	LLM LLMSettings

	// Excerpt holds excerpt construction settings.
	Excerpt ExcerptSettings

	// Prompt holds prompt assembly settings.
	Prompt PromptSettings

	// Scan holds corpus discovery settings.
	Scan ScanSettings

	// Storage holds persistence settings.
	Storage StorageSettings

	// Watch holds directory watching settings.
	Watch WatchSettings

	// Vocabulary is the suggested domain label set offered to the
	// model. Empty means the built-in life-science vocabulary.
	Vocabulary []string
}

// Limits the settings normaliser enforces.
const (
	// AbstractMaxCeiling is the largest permitted abstract cap.
	AbstractMaxCeiling = 1500
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM backend points at a local Ollama instance; scan directories
// are left empty and must be supplied by the user or on the command line.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:          AIProviderOllama,
			Model:             "qwen2.5:7b-instruct",
			BaseURL:           "http://localhost:11434",
			MaxTokens:         64,
			Temperature:       0.1,
			RequestTimeout:    180 * time.Second,
			RequestsPerSecond: 1,
		},
		Excerpt: ExcerptSettings{
			Strategy:         ExcerptFields,
			MaxChars:         3000,
			TitleMax:         200,
			AuthorMax:        200,
			AffiliationMax:   300,
			AbstractMax:      600,
			ChunkSize:        800,
			ChunkOverlap:     100,
			MinTextThreshold: 200,
		},
		Prompt: PromptSettings{
			MaxPromptChars: 4000,
		},
		Scan: ScanSettings{
			Extensions: []string{".pdf", ".docx", ".doc", ".txt"},
			MaxPages:   5,
		},
		Storage: StorageSettings{},
		Watch: WatchSettings{
			Debounce: 2 * time.Second,
		},
	}
}

// Normalised returns a copy with invalid or missing values replaced by
// defaults and hard limits applied.
func (s AppSettings) Normalised() AppSettings {
	def := DefaultAppSettings()

	if !s.LLM.Provider.IsValid() {
		s.LLM.Provider = def.LLM.Provider
	}
	if s.LLM.Model == "" {
		s.LLM.Model = DefaultModels()[s.LLM.Provider]
	}
	if s.LLM.BaseURL == "" {
		s.LLM.BaseURL = DefaultBaseURLs()[s.LLM.Provider]
	}
	if s.LLM.MaxTokens <= 0 {
		s.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if s.LLM.RequestTimeout <= 0 {
		s.LLM.RequestTimeout = def.LLM.RequestTimeout
	}
	if s.LLM.RequestsPerSecond < 0 {
		s.LLM.RequestsPerSecond = 0
	}

	if !s.Excerpt.Strategy.IsValid() {
		s.Excerpt.Strategy = def.Excerpt.Strategy
	}
	if s.Excerpt.MaxChars <= 0 {
		s.Excerpt.MaxChars = def.Excerpt.MaxChars
	}
	if s.Excerpt.TitleMax <= 0 {
		s.Excerpt.TitleMax = def.Excerpt.TitleMax
	}
	if s.Excerpt.AuthorMax <= 0 {
		s.Excerpt.AuthorMax = def.Excerpt.AuthorMax
	}
	if s.Excerpt.AffiliationMax <= 0 {
		s.Excerpt.AffiliationMax = def.Excerpt.AffiliationMax
	}
	if s.Excerpt.AbstractMax <= 0 {
		s.Excerpt.AbstractMax = def.Excerpt.AbstractMax
	}
	if s.Excerpt.AbstractMax > AbstractMaxCeiling {
		s.Excerpt.AbstractMax = AbstractMaxCeiling
	}
	if s.Excerpt.ChunkSize <= 0 {
		s.Excerpt.ChunkSize = def.Excerpt.ChunkSize
	}
	if s.Excerpt.ChunkOverlap < 0 {
		s.Excerpt.ChunkOverlap = def.Excerpt.ChunkOverlap
	}
	if s.Excerpt.MinTextThreshold < 0 {
		s.Excerpt.MinTextThreshold = def.Excerpt.MinTextThreshold
	}

	if s.Prompt.MaxPromptChars <= 0 {
		s.Prompt.MaxPromptChars = def.Prompt.MaxPromptChars
	}

	if len(s.Scan.Extensions) == 0 {
		s.Scan.Extensions = append([]string(nil), def.Scan.Extensions...)
	}
	if s.Scan.MaxPages <= 0 {
		s.Scan.MaxPages = def.Scan.MaxPages
	}

	if s.Watch.Debounce <= 0 {
		s.Watch.Debounce = def.Watch.Debounce
	}

	return s
}
