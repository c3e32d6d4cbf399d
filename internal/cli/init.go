// Package cli provides common initialization shared by cmd/tally and
// cmd/tally-worker.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"tally/internal/config"
	"tally/internal/log"
	"tally/internal/services"
	"tally/internal/source/csvfile"
	"tally/internal/source/google"
	"tally/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes the component logger from a LOG_LEVEL value.
// Unknown levels fall back to info with a warning.
func SetupLogger(level, component string) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = slog.LevelInfo
	}
	logger := log.New(parsed, component)
	slog.SetDefault(logger.Logger)
	if err != nil {
		logger.Warn("Unknown log level, using info", "value", level)
	}
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// BuildPipelineInputs wires each pipeline to its dataset source and
// report path according to the configured backend. Exits the process
// when a remote backend cannot be initialized.
func BuildPipelineInputs(ctx context.Context, logger *log.Logger, cfg *config.Config) (budget, election services.PipelineInput) {
	switch cfg.DataBackend {
	case "sheets":
		budgetSource, err := google.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleBudgetRange)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets budget source", "error", err)
			os.Exit(1)
		}
		electionSource, err := google.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleElectionRange)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets election source", "error", err)
			os.Exit(1)
		}
		budget = services.PipelineInput{
			Source:      budgetSource,
			SourceLabel: fmt.Sprintf("sheets:%s", cfg.GoogleBudgetRange),
			ReportPath:  cfg.BudgetReportPath,
		}
		election = services.PipelineInput{
			Source:      electionSource,
			SourceLabel: fmt.Sprintf("sheets:%s", cfg.GoogleElectionRange),
			ReportPath:  cfg.ElectionReportPath,
		}
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		budget = services.PipelineInput{
			Source:      csvfile.New(cfg.BudgetDataPath),
			SourceLabel: fmt.Sprintf("csv:%s", cfg.BudgetDataPath),
			ReportPath:  cfg.BudgetReportPath,
		}
		election = services.PipelineInput{
			Source:      csvfile.New(cfg.ElectionDataPath),
			SourceLabel: fmt.Sprintf("csv:%s", cfg.ElectionDataPath),
			ReportPath:  cfg.ElectionReportPath,
		}
		logger.Info("Initialized CSV backend",
			"budget_data", cfg.BudgetDataPath,
			"election_data", cfg.ElectionDataPath)
	}
	return budget, election
}

// InitRunRepository opens the run-history repository.
// Returns the repository or exits the process on failure.
func InitRunRepository(logger *log.Logger, dbPath string) *storage.RunRepository {
	repo, err := storage.NewRunRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize run repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
