// Package cli provides the cobra command tree for taxa.
// It is a driving adapter: commands translate flags and arguments into
// calls on the core's driving ports and render the results.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// Build information, overridden via ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// verbose enables debug logging.
var verbose bool

// Injected services. Set once from main before Execute; commands guard
// against nil so partial wiring (tests) fails with a clear error.
var (
	settingsService driving.SettingsService
	libraryService  driving.LibraryService
	scanFactory     ScanFactory
	watchFactory    WatchFactory
)

// ScanFactory builds a scan service for one invocation. mock swaps the
// configured gateway for the offline keyword classifier; dryRun swaps
// the SQLite store for an in-memory one so nothing is persisted.
// The returned closer releases the gateway and any ephemeral store.
type ScanFactory func(mock, dryRun bool) (driving.ScanService, func(), error)

// WatchFactory builds a watch service. initialScan classifies every
// matching file already present before processing live events.
type WatchFactory func(initialScan bool) (driving.WatchService, func(), error)

// Services aggregates the core services the CLI depends on.
type Services struct {
	Settings driving.SettingsService
	Library  driving.LibraryService
	NewScan  ScanFactory
	NewWatch WatchFactory
}

// SetServices injects the core services. Called once from main.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	settingsService = s.Settings
	libraryService = s.Library
	scanFactory = s.NewScan
	watchFactory = s.NewWatch
}

// SetVersionInfo sets the build information printed by the version
// command.
func SetVersionInfo(v, c, d string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	if d != "" {
		date = d
	}
}

var rootCmd = &cobra.Command{
	Use:   "taxa",
	Short: "Classify academic literature by domain",
	Long: `Taxa assigns a single academic-domain label to each document in a
literature folder. It extracts a compact excerpt (title, author,
affiliation, abstract) from each file, asks a local language model to
classify it, and stores the (document, domain) record in SQLite.

Start with 'taxa settings wizard' to configure the model backend, then
'taxa scan <dir>' to classify a folder.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		configureLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// configureLogging installs the process-wide slog handler. Logs go to
// stderr so command output stays pipeable.
func configureLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
