package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

var (
	exportCSVPath  string
	exportXLSXPath string
	exportDomain   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to CSV or XLSX",
	Long: `Writes classification records to an interchange file.

The CSV variant carries a UTF-8 byte-order mark so spreadsheet
programs detect the encoding; when the target file is locked by
another program the export falls back to a sibling '.new' file and
reports the path actually written.`,
	Example: `  taxa export --csv domains.csv
  taxa export --xlsx domains.xlsx --domain 病毒学`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "write a CSV file to this path")
	exportCmd.Flags().StringVar(&exportXLSXPath, "xlsx", "", "write an XLSX workbook to this path")
	exportCmd.Flags().StringVar(&exportDomain, "domain", "", "export only records under this domain")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	format, path, err := exportTarget()
	if err != nil {
		return err
	}

	written, err := libraryService.Export(cmd.Context(), format, path, exportDomain)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Exported to %s\n", written)
	return nil
}

// exportTarget resolves the format and path from the mutually
// exclusive --csv/--xlsx flags.
func exportTarget() (domain.ExportFormat, string, error) {
	switch {
	case exportCSVPath != "" && exportXLSXPath != "":
		return "", "", errors.New("choose one of --csv or --xlsx")
	case exportCSVPath != "":
		return domain.ExportCSV, exportCSVPath, nil
	case exportXLSXPath != "":
		return domain.ExportXLSX, exportXLSXPath, nil
	default:
		// Default to CSV next to the working directory.
		return domain.ExportCSV, "", nil
	}
}
