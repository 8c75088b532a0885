// Package services implements the driving port interfaces.
// Services hold the classification pipeline's business logic and
// orchestrate calls to driven ports: text sources, the LLM gateway,
// the record store and exporters.
package services
