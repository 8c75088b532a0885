package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter <domain>",
	Short: "List records classified under a domain",
	Long: `Lists every record whose Chinese domain label matches the argument.
When nothing matches, the English labels are tried instead, so both
'taxa filter 病毒学' and 'taxa filter Virology' work.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	records, err := libraryService.RecordsByDomain(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("filtering records: %w", err)
	}

	if len(records) == 0 {
		cmd.Printf("No records for domain %q.\n", args[0])
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s\n    %s\n", rec.FileName, rec.FilePath)
	}
	cmd.Printf("\n%d records.\n", len(records))
	return nil
}
