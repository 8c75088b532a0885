package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
)

// summaryRounding keeps the elapsed time in the summary readable.
const summaryRounding = 100 * time.Millisecond

var (
	scanMock   bool
	scanDryRun bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dirs...]",
	Short: "Classify documents in literature directories",
	Long: `Walks the given directories (or the configured scan directories when
none are given), extracts an excerpt from each supported document and
asks the language model for a domain label. Results are stored in
SQLite, keyed by file path; re-scanning a file replaces its record.

Use --mock to classify offline with keyword rules, and --dry-run to
see what would be classified without persisting anything.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanMock, "mock", false, "use the offline keyword classifier instead of the LLM")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "classify without persisting records")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanFactory == nil {
		return errors.New("scan service not configured")
	}

	scanner, closeScan, err := scanFactory(scanMock, scanDryRun)
	if err != nil {
		return err
	}
	defer closeScan()

	if scanDryRun {
		cmd.Println("Dry run: records will not be persisted.")
	}

	summary, err := scanner.Scan(cmd.Context(), args, func(p driving.ScanProgress) {
		printProgress(cmd, p)
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	cmd.Println()
	cmd.Printf("Scanned %d files: %d classified (%d uncategorised), %d failed in %s.\n",
		summary.Discovered, summary.Classified, summary.Uncategorised,
		summary.Failed, summary.Elapsed.Round(summaryRounding))
	return nil
}

// printProgress renders one per-document progress line.
func printProgress(cmd *cobra.Command, p driving.ScanProgress) {
	name := filepath.Base(p.Path)
	if p.Err != nil {
		cmd.Printf("[%d/%d] %s → error: %v\n", p.Index, p.Total, name, p.Err)
		return
	}
	if p.Record == nil {
		return
	}
	if p.Record.DomainCN == p.Record.DomainEN {
		cmd.Printf("[%d/%d] %s → %s\n", p.Index, p.Total, name, p.Record.DomainCN)
		return
	}
	cmd.Printf("[%d/%d] %s → %s | %s\n", p.Index, p.Total, name,
		p.Record.DomainCN, p.Record.DomainEN)
}
