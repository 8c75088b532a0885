package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension no text source handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrToolNotFound indicates a required external tool is not installed.
	ErrToolNotFound = errors.New("external tool not found")

	// ErrStoreClosed indicates the record store has been closed.
	ErrStoreClosed = errors.New("store closed")

	// ErrLLMUnavailable indicates the model backend is not configured
	// or cannot be reached. Classification is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrScanInProgress indicates a scan is already running.
	ErrScanInProgress = errors.New("scan in progress")

	// ErrWatchInProgress indicates the directory watcher is already
	// running.
	ErrWatchInProgress = errors.New("watch in progress")

	// ErrNoDirectories indicates no literature directories were supplied,
	// neither in configuration nor on the command line.
	ErrNoDirectories = errors.New("no literature directories configured")

	// ErrVocabularyInvalid indicates a user vocabulary file failed
	// schema validation.
	ErrVocabularyInvalid = errors.New("vocabulary file invalid")
)
