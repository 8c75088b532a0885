package driven

import "context"

// CommandRunner abstracts subprocess execution so adapters that shell
// out to external tools (pdftotext) can be tested without the binaries
// installed.
type CommandRunner interface {
	// Run executes the named command and returns its combined stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
