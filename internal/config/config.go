package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Dataset inputs
	BudgetDataPath   string
	ElectionDataPath string

	// Report outputs
	BudgetReportPath   string
	ElectionReportPath string

	// Source backend selection
	DataBackend string

	// Run history (empty path disables it)
	SQLiteDBPath string

	// AMQP (empty URL disables it)
	AMQPURL          string
	AMQPExchange     string
	AMQPRequestQueue string
	AMQPEventQueue   string

	// Google Sheets backend
	GoogleSpreadsheetID string
	GoogleBudgetRange   string
	GoogleElectionRange string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		BudgetDataPath:   getEnv("BUDGET_DATA_PATH", filepath.Join("Resources", "budget_data.csv")),
		ElectionDataPath: getEnv("ELECTION_DATA_PATH", filepath.Join("Resources", "election_data.csv")),

		BudgetReportPath:   getEnv("BUDGET_REPORT_PATH", filepath.Join("analysis", "budget_data_analysis.txt")),
		ElectionReportPath: getEnv("ELECTION_REPORT_PATH", filepath.Join("analysis", "election_data_analysis.txt")),

		DataBackend: getEnv("DATA_BACKEND", "csv"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", ""),

		AMQPURL:          getEnv("AMQP_URL", ""),
		AMQPExchange:     getEnv("AMQP_EXCHANGE", "tally"),
		AMQPRequestQueue: getEnv("AMQP_REQUEST_QUEUE", "run_requests"),
		AMQPEventQueue:   getEnv("AMQP_EVENT_QUEUE", "run_events"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleBudgetRange:   getEnv("GOOGLE_BUDGET_RANGE", ""),
		GoogleElectionRange: getEnv("GOOGLE_ELECTION_RANGE", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{"csv", "sheets"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate file paths for the csv backend
	if c.DataBackend == "csv" {
		if c.BudgetDataPath == "" {
			errors = append(errors, "budget data path cannot be empty when using csv backend")
		}
		if c.ElectionDataPath == "" {
			errors = append(errors, "election data path cannot be empty when using csv backend")
		}
	}

	if c.BudgetReportPath == "" {
		errors = append(errors, "budget report path cannot be empty")
	}
	if c.ElectionReportPath == "" {
		errors = append(errors, "election report path cannot be empty")
	}

	// Validate Google Sheets configuration if backend is sheets
	if c.DataBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleBudgetRange == "" {
			errors = append(errors, "Google budget range is required when using sheets backend")
		}
		if c.GoogleElectionRange == "" {
			errors = append(errors, "Google election range is required when using sheets backend")
		}
	}

	// Validate SQLite directory if run history is enabled
	if c.SQLiteDBPath != "" {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRequestQueue == "" {
			errors = append(errors, "AMQP request queue name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPEventQueue == "" {
			errors = append(errors, "AMQP event queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate log level
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
