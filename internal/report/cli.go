package report

import (
	"fmt"
	"os"

	"github.com/okian/lmi/pkg/logger"
)

// SetupLogging initializes the global logger for the CLI.
func SetupLogging(format string, verbose bool) error {
	if err := logger.InitWithFormat(format); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the report tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`LMI Report Tool
===============

Generates the synthetic labor-market dataset and offline dashboard reports.

Usage:
  go run ./cmd/lmi-report [options]

Options:
  -data string
        Dataset CSV to read, or to write with -generate (default "data/labor_market.csv")
  -generate
        Write a synthetic dataset to -data before reporting
  -seed int
        Generator seed (default 42)
  -start-year int
        First generated year (default 2020)
  -end-year int
        Last generated year (default 2024)
  -xlsx string
        Workbook output path (empty skips the workbook)
  -charts string
        Directory for PNG charts (empty skips charts)
  -threshold float
        Early-warning threshold in percentage points (default 1.0)
  -log-format string
        text or json (default "text")
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate the default dataset
  go run ./cmd/lmi-report -generate

  # Full offline report
  go run ./cmd/lmi-report -generate -xlsx out/lmi.xlsx -charts out/charts
`)
}
