package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List classified domains with record counts",
	RunE:  runDomains,
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}

func runDomains(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	counts, err := libraryService.Domains(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing domains: %w", err)
	}

	if len(counts) == 0 {
		cmd.Println("No records yet. Run 'taxa scan <dir>' first.")
		return nil
	}

	total := 0
	for _, c := range counts {
		label := c.DomainCN
		if c.DomainEN != "" && c.DomainEN != c.DomainCN {
			label = fmt.Sprintf("%s | %s", c.DomainCN, c.DomainEN)
		}
		cmd.Printf("%5d  %s\n", c.Count, label)
		total += c.Count
	}
	cmd.Printf("\n%d records across %d domains.\n", total, len(counts))
	return nil
}
