package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchInitialScan bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch literature directories and classify new documents",
	Long: `Watches the configured scan directories and classifies documents as
they appear or change. Rapid write bursts for the same file are
coalesced, so a document is classified once its copy settles.

Runs until interrupted with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", false,
		"classify existing files before watching for changes")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if watchFactory == nil {
		return errors.New("watch service not configured")
	}

	watcher, closeWatch, err := watchFactory(watchInitialScan)
	if err != nil {
		return err
	}
	defer closeWatch()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Println("Watching for documents. Press Ctrl-C to stop.")
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Println("Watch stopped.")
	return nil
}
