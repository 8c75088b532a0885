package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMMaxTokens   = "llm.max_tokens"
	keyLLMTemperature = "llm.temperature"
	keyLLMTimeout     = "llm.request_timeout"
	keyLLMRate        = "llm.requests_per_second"

	keyExcerptStrategy  = "excerpt.strategy"
	keyExcerptMaxChars  = "excerpt.max_chars"
	keyExcerptTitle     = "excerpt.title_max"
	keyExcerptAuthor    = "excerpt.author_max"
	keyExcerptAffil     = "excerpt.affiliation_max"
	keyExcerptAbstract  = "excerpt.abstract_max"
	keyExcerptChunkSize = "excerpt.chunk_size"
	keyExcerptOverlap   = "excerpt.chunk_overlap"
	keyExcerptMinText   = "excerpt.min_text_threshold"

	keyPromptMaxChars = "prompt.max_chars"
	keyPromptSystem   = "prompt.system"

	keyScanDirs       = "scan.directories"
	keyScanExtensions = "scan.extensions"
	keyScanMaxPages   = "scan.max_pages"

	keyStorageDB     = "storage.database_path"
	keyWatchDebounce = "watch.debounce"
	keyVocabLabels   = "vocabulary.labels"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings. Missing or malformed
// keys fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:          s.getProvider(defaults.LLM.Provider),
			Model:             s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL), // No default here - Normalised fills the provider's endpoint
			APIKey:            s.configStore.GetString(keyLLMAPIKey),
			MaxTokens:         s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
			Temperature:       s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
			RequestTimeout:    s.getDuration(keyLLMTimeout, defaults.LLM.RequestTimeout),
			RequestsPerSecond: s.getFloat(keyLLMRate, defaults.LLM.RequestsPerSecond),
		},
		Excerpt: domain.ExcerptSettings{
			Strategy:         s.getStrategy(defaults.Excerpt.Strategy),
			MaxChars:         s.getInt(keyExcerptMaxChars, defaults.Excerpt.MaxChars),
			TitleMax:         s.getInt(keyExcerptTitle, defaults.Excerpt.TitleMax),
			AuthorMax:        s.getInt(keyExcerptAuthor, defaults.Excerpt.AuthorMax),
			AffiliationMax:   s.getInt(keyExcerptAffil, defaults.Excerpt.AffiliationMax),
			AbstractMax:      s.getInt(keyExcerptAbstract, defaults.Excerpt.AbstractMax),
			ChunkSize:        s.getInt(keyExcerptChunkSize, defaults.Excerpt.ChunkSize),
			ChunkOverlap:     s.getInt(keyExcerptOverlap, defaults.Excerpt.ChunkOverlap),
			MinTextThreshold: s.getInt(keyExcerptMinText, defaults.Excerpt.MinTextThreshold),
		},
		Prompt: domain.PromptSettings{
			MaxPromptChars: s.getInt(keyPromptMaxChars, defaults.Prompt.MaxPromptChars),
			SystemPrompt:   s.configStore.GetString(keyPromptSystem),
		},
		Scan: domain.ScanSettings{
			Directories: s.configStore.GetStringSlice(keyScanDirs),
			Extensions:  s.getStringSlice(keyScanExtensions, defaults.Scan.Extensions),
			MaxPages:    s.getInt(keyScanMaxPages, defaults.Scan.MaxPages),
		},
		Storage: domain.StorageSettings{
			DatabasePath: s.configStore.GetString(keyStorageDB),
		},
		Watch: domain.WatchSettings{
			Debounce: s.getDuration(keyWatchDebounce, defaults.Watch.Debounce),
		},
		Vocabulary: s.configStore.GetStringSlice(keyVocabLabels),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMMaxTokens, settings.LLM.MaxTokens); err != nil {
		return fmt.Errorf("save llm max_tokens: %w", err)
	}
	if err := s.configStore.Set(keyLLMTemperature, settings.LLM.Temperature); err != nil {
		return fmt.Errorf("save llm temperature: %w", err)
	}
	if err := s.configStore.Set(keyLLMTimeout, settings.LLM.RequestTimeout.String()); err != nil {
		return fmt.Errorf("save llm request_timeout: %w", err)
	}
	if err := s.configStore.Set(keyLLMRate, settings.LLM.RequestsPerSecond); err != nil {
		return fmt.Errorf("save llm requests_per_second: %w", err)
	}

	if err := s.configStore.Set(keyExcerptStrategy, settings.Excerpt.Strategy.String()); err != nil {
		return fmt.Errorf("save excerpt strategy: %w", err)
	}
	if err := s.configStore.Set(keyExcerptMaxChars, settings.Excerpt.MaxChars); err != nil {
		return fmt.Errorf("save excerpt max_chars: %w", err)
	}
	if err := s.configStore.Set(keyExcerptTitle, settings.Excerpt.TitleMax); err != nil {
		return fmt.Errorf("save excerpt title_max: %w", err)
	}
	if err := s.configStore.Set(keyExcerptAuthor, settings.Excerpt.AuthorMax); err != nil {
		return fmt.Errorf("save excerpt author_max: %w", err)
	}
	if err := s.configStore.Set(keyExcerptAffil, settings.Excerpt.AffiliationMax); err != nil {
		return fmt.Errorf("save excerpt affiliation_max: %w", err)
	}
	if err := s.configStore.Set(keyExcerptAbstract, settings.Excerpt.AbstractMax); err != nil {
		return fmt.Errorf("save excerpt abstract_max: %w", err)
	}
	if err := s.configStore.Set(keyExcerptChunkSize, settings.Excerpt.ChunkSize); err != nil {
		return fmt.Errorf("save excerpt chunk_size: %w", err)
	}
	if err := s.configStore.Set(keyExcerptOverlap, settings.Excerpt.ChunkOverlap); err != nil {
		return fmt.Errorf("save excerpt chunk_overlap: %w", err)
	}
	if err := s.configStore.Set(keyExcerptMinText, settings.Excerpt.MinTextThreshold); err != nil {
		return fmt.Errorf("save excerpt min_text_threshold: %w", err)
	}

	if err := s.configStore.Set(keyPromptMaxChars, settings.Prompt.MaxPromptChars); err != nil {
		return fmt.Errorf("save prompt max_chars: %w", err)
	}
	if settings.Prompt.SystemPrompt != "" {
		if err := s.configStore.Set(keyPromptSystem, settings.Prompt.SystemPrompt); err != nil {
			return fmt.Errorf("save prompt system: %w", err)
		}
	}

	if err := s.configStore.Set(keyScanDirs, settings.Scan.Directories); err != nil {
		return fmt.Errorf("save scan directories: %w", err)
	}
	if err := s.configStore.Set(keyScanExtensions, settings.Scan.Extensions); err != nil {
		return fmt.Errorf("save scan extensions: %w", err)
	}
	if err := s.configStore.Set(keyScanMaxPages, settings.Scan.MaxPages); err != nil {
		return fmt.Errorf("save scan max_pages: %w", err)
	}

	if err := s.configStore.Set(keyStorageDB, settings.Storage.DatabasePath); err != nil {
		return fmt.Errorf("save storage database_path: %w", err)
	}
	if err := s.configStore.Set(keyWatchDebounce, settings.Watch.Debounce.String()); err != nil {
		return fmt.Errorf("save watch debounce: %w", err)
	}
	if len(settings.Vocabulary) > 0 {
		if err := s.configStore.Set(keyVocabLabels, settings.Vocabulary); err != nil {
			return fmt.Errorf("save vocabulary labels: %w", err)
		}
	}

	return nil
}

// SetLLMProvider configures the model backend. An empty model picks
// the provider's default; switching providers resets the base URL to
// the provider's canonical endpoint.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	switched := settings.LLM.Provider != provider
	settings.LLM.Provider = provider

	if model != "" {
		settings.LLM.Model = model
	} else if switched || settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultModels()[provider]
	}

	if switched || settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = domain.DefaultBaseURLs()[provider]
	}

	// OpenAI-compatible local gateways accept any key; mirror their
	// convention rather than rejecting an empty one.
	if apiKey == "" && provider == domain.AIProviderOpenAI {
		apiKey = "not-needed"
	}
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetScanDirectories replaces the configured literature roots.
func (s *SettingsService) SetScanDirectories(dirs []string) error {
	cleaned := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			return fmt.Errorf("%w: blank scan directory", domain.ErrInvalidInput)
		}
		cleaned = append(cleaned, d)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Scan.Directories = cleaned
	return s.Save(settings)
}

// SetExcerptStrategy switches between field extraction and chunk
// merging.
func (s *SettingsService) SetExcerptStrategy(strategy domain.ExcerptStrategy) error {
	if !strategy.IsValid() {
		return fmt.Errorf("invalid excerpt strategy: %s", strategy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Excerpt.Strategy = strategy
	return s.Save(settings)
}

// Validate checks whether current settings are internally consistent.
// Provider and base URL always have runnable defaults, so only the
// cross-field constraints can fail here; connectivity is checked
// separately by ValidateLLMConfig.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	ex := settings.Normalised().Excerpt
	if ex.Strategy == domain.ExcerptChunks && ex.ChunkOverlap >= ex.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", ex.ChunkOverlap, ex.ChunkSize)
	}

	if sp := settings.Prompt.SystemPrompt; sp != "" {
		budget := settings.Normalised().Prompt.MaxPromptChars
		if n := utf8.RuneCountInString(sp); n >= budget {
			return fmt.Errorf("system prompt is %d runes, leaving no room in the %d-rune prompt budget", n, budget)
		}
	}

	for _, label := range settings.Vocabulary {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			return fmt.Errorf("%w: blank label", domain.ErrVocabularyInvalid)
		}
		if utf8.RuneCountInString(trimmed) > 50 {
			return fmt.Errorf("%w: label %q exceeds 50 runes", domain.ErrVocabularyInvalid, trimmed)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging
// the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	llm := settings.Normalised().LLM
	return s.aiValidator.ValidateLLM(&llm)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat64(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyLLMProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getStrategy(defaultVal domain.ExcerptStrategy) domain.ExcerptStrategy {
	val := s.configStore.GetString(keyExcerptStrategy)
	if val == "" {
		return defaultVal
	}
	strategy := domain.ExcerptStrategy(val)
	if !strategy.IsValid() {
		return defaultVal
	}
	return strategy
}
