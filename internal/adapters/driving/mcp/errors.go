// Package mcp provides an MCP (Model Context Protocol) server adapter for Taxa.
// It lets AI assistants like Claude browse and extend the classified corpus.
package mcp

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")
