package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files in the config directory,
// falling back to the built-in defaults when a template is absent.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If no customised template exists, implementations return the
	// built-in default for that name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when templates may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptClassifySystem is the system prompt for domain
	// classification. It constrains the model to a single line of JSON
	// and suppresses visible reasoning. No format placeholders.
	PromptClassifySystem = "classify_system"
)
