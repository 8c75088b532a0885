// Command taxa classifies academic literature into domains with a
// local or hosted language model and lets you browse, export and watch
// the resulting corpus.
package main

import (
	"fmt"
	"os"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/ai"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/config/file"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/export"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/fswatch"
	mockllm "github.com/taxa-labs/taxa-cli/internal/adapters/driven/llm/mock"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/storage/memory"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driven/textsource"
	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/cli"
	"github.com/taxa-labs/taxa-cli/internal/core/domain"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driven"
	"github.com/taxa-labs/taxa-cli/internal/core/ports/driving"
	"github.com/taxa-labs/taxa-cli/internal/core/services"
)

// Build information, injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taxa: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settings := current.Normalised()

	// A system prompt saved in settings wins; otherwise the prompt
	// store supplies the user-editable template (or its built-in
	// default) from ~/.taxa/prompts.
	if settings.Prompt.SystemPrompt == "" {
		prompts, err := file.NewPromptStore("")
		if err == nil {
			if tmpl, err := prompts.Load(driven.PromptClassifySystem); err == nil {
				settings.Prompt.SystemPrompt = tmpl
			}
		}
	}

	store, err := sqlite.NewStore(settings.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	defer store.Close()

	exporters := map[domain.ExportFormat]driven.Exporter{
		domain.ExportCSV:  export.NewCSVExporter(),
		domain.ExportXLSX: export.NewXLSXExporter(),
	}
	libraryService := services.NewLibraryService(store, exporters)

	resolver := textsource.NewDefaultResolver(nil)

	// Each scan builds its own gateway so --mock needs no configured
	// provider and a closed gateway never leaks into the next run.
	newScan := func(mock, dryRun bool) (driving.ScanService, func(), error) {
		gateway, err := buildGateway(&settings, mock)
		if err != nil {
			return nil, nil, err
		}

		var recordStore driven.RecordStore = store
		if dryRun {
			recordStore = memory.NewRecordStore()
		}

		classifier := services.NewClassifierService(gateway, settings)
		scan := services.NewScanService(resolver, classifier, recordStore, gateway, settings)
		closer := func() { _ = gateway.Close() }
		return scan, closer, nil
	}

	newWatch := func(initialScan bool) (driving.WatchService, func(), error) {
		scan, scanCloser, err := newScan(false, false)
		if err != nil {
			return nil, nil, err
		}

		watcher := fswatch.New()
		watch := services.NewWatchService(watcher, scan, settings, initialScan)
		return watch, scanCloser, nil
	}

	cli.SetVersionInfo(version, commit, date)
	cli.SetServices(&cli.Services{
		Settings: settingsService,
		Library:  libraryService,
		NewScan:  newScan,
		NewWatch: newWatch,
	})

	return cli.Execute()
}

// buildGateway creates the LLM gateway for one scan. mock forces the
// offline keyword classifier regardless of the configured provider.
func buildGateway(settings *domain.AppSettings, mock bool) (driven.LLMGateway, error) {
	if mock || settings.LLM.Provider == domain.AIProviderMock {
		return mockllm.NewGateway(), nil
	}

	gateway, err := ai.CreateAndValidateGateway(&settings.LLM)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", settings.LLM.Provider, err)
	}
	return gateway, nil
}
