// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TextSource: Extracts the text layer from document files
//   - TextSourceResolver: Selects the TextSource for a file
//   - LLMGateway: Sends classification prompts to a language model
//   - RecordStore: Classification record persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PromptStore: User-customisable prompt templates. Without it, the
//     built-in classification prompts are used.
//   - FileWatcher: Filesystem change notification. Only the watch
//     command needs it.
//   - Exporter: Record export to interchange formats.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driven
