package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the model backend, excerpt strategy and scan
directories.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider",
	Long:  `Configure the language-model backend used for classification.`,
	RunE:  runSettingsLLM,
}

var settingsDirsCmd = &cobra.Command{
	Use:   "dirs [dir...]",
	Short: "Set the literature directories to scan",
	RunE:  runSettingsDirs,
}

var settingsStrategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Set the excerpt strategy",
	Long: `Set how a document body is reduced to the excerpt sent to the model.

Available strategies:
  fields - extract title / author / affiliation / abstract spans (default)
  chunks - split into overlapping windows and merge under the budget`,
	RunE: runSettingsStrategy,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsDirsCmd)
	settingsCmd.AddCommand(settingsStrategyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if !settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Excerpt]")
	cmd.Printf("  Strategy: %s\n", settings.Excerpt.Strategy.Description())
	cmd.Printf("  Budget: %d chars\n", settings.Excerpt.MaxChars)
	cmd.Printf("  Field caps: title %d, author %d, affiliation %d, abstract %d\n",
		settings.Excerpt.TitleMax, settings.Excerpt.AuthorMax,
		settings.Excerpt.AffiliationMax, settings.Excerpt.AbstractMax)
	if settings.Excerpt.Strategy == domain.ExcerptChunks {
		cmd.Printf("  Chunks: size %d, overlap %d\n",
			settings.Excerpt.ChunkSize, settings.Excerpt.ChunkOverlap)
	}
	cmd.Println()

	cmd.Println("[Scan]")
	if len(settings.Scan.Directories) == 0 {
		cmd.Println("  Directories: (none)")
	} else {
		cmd.Println("  Directories:")
		for _, dir := range settings.Scan.Directories {
			cmd.Printf("    %s\n", dir)
		}
	}
	cmd.Printf("  Extensions: %s\n", strings.Join(settings.Scan.Extensions, " "))
	cmd.Printf("  Max pages: %d\n", settings.Scan.MaxPages)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'taxa settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Taxa Settings Wizard")
	cmd.Println("====================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	// Step 1: LLM provider
	cmd.Println("Step 1: Configure LLM Provider")
	cmd.Println("------------------------------")
	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	// Step 2: Excerpt strategy
	cmd.Println("Step 2: Select Excerpt Strategy")
	cmd.Println("-------------------------------")
	strategies := []domain.ExcerptStrategy{domain.ExcerptFields, domain.ExcerptChunks}
	for i, s := range strategies {
		cmd.Printf("  %d. %s\n", i+1, s.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(strategies), 1)
	selected := strategies[idx-1]
	if err := settingsService.SetExcerptStrategy(selected); err != nil {
		return fmt.Errorf("failed to set excerpt strategy: %w", err)
	}
	cmd.Printf("Set excerpt strategy to: %s\n\n", selected.Description())

	// Step 3: Scan directories
	cmd.Println("Step 3: Literature Directories")
	cmd.Println("------------------------------")
	cmd.Print("Enter directories to scan, separated by commas (empty to skip): ")
	input = readLine(reader)
	if input != "" {
		var dirs []string
		for _, dir := range strings.Split(input, ",") {
			if dir = strings.TrimSpace(dir); dir != "" {
				dirs = append(dirs, dir)
			}
		}
		if err := settingsService.SetScanDirectories(dirs); err != nil {
			return fmt.Errorf("failed to set scan directories: %w", err)
		}
		cmd.Printf("Set %d scan directories.\n", len(dirs))
	}
	cmd.Println()

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureLLMProvider(cmd, reader)
}

func runSettingsDirs(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if len(args) == 0 {
		return errors.New("provide at least one directory")
	}
	if err := settingsService.SetScanDirectories(args); err != nil {
		return fmt.Errorf("failed to set scan directories: %w", err)
	}
	cmd.Printf("Set %d scan directories.\n", len(args))
	return nil
}

func runSettingsStrategy(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Excerpt Strategy")
	cmd.Println("-----------------------")
	strategies := []domain.ExcerptStrategy{domain.ExcerptFields, domain.ExcerptChunks}
	for i, s := range strategies {
		cmd.Printf("  %d. %s\n", i+1, s.Description())
	}
	cmd.Print("\nEnter choice: ")
	input := readLine(reader)
	idx := parseChoice(input, len(strategies), 0)
	if idx == 0 {
		return errors.New("invalid selection")
	}

	selected := strategies[idx-1]
	if err := settingsService.SetExcerptStrategy(selected); err != nil {
		return fmt.Errorf("failed to set excerpt strategy: %w", err)
	}
	cmd.Printf("Excerpt strategy set to: %s\n", selected.Description())
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllAIProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key (empty for local servers): ")
		apiKey = readPassword()
		cmd.Println()
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// maskAPIKey obscures an API key for display.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
