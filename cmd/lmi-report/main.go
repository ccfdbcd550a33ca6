package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/lmi/internal/report"
)

// Default configuration constants.
const (
	defaultDataPath  = "data/labor_market.csv"
	defaultSeed      = 42
	defaultStartYear = 2020
	defaultEndYear   = 2024
	defaultThreshold = 1.0
	defaultTimeout   = 5 * time.Minute
)

func main() {
	var (
		dataPath  = flag.String("data", defaultDataPath, "Dataset CSV to read, or to write with -generate")
		generate  = flag.Bool("generate", false, "Write a synthetic dataset to -data before reporting")
		seed      = flag.Int64("seed", defaultSeed, "Generator seed")
		startYear = flag.Int("start-year", defaultStartYear, "First generated year")
		endYear   = flag.Int("end-year", defaultEndYear, "Last generated year")
		xlsxPath  = flag.String("xlsx", "", "Workbook output path (empty skips the workbook)")
		chartsDir = flag.String("charts", "", "Directory for PNG charts (empty skips charts)")
		threshold = flag.Float64("threshold", defaultThreshold, "Early-warning threshold in percentage points")
		logFormat = flag.String("log-format", "text", "Log format: text or json")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		report.ShowHelp()
		return
	}

	if err := report.SetupLogging(*logFormat, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)

	config := &report.Config{
		DataPath:  *dataPath,
		Generate:  *generate,
		Seed:      *seed,
		StartYear: *startYear,
		EndYear:   *endYear,
		XLSXPath:  *xlsxPath,
		ChartsDir: *chartsDir,
		Threshold: *threshold,
		Verbose:   *verbose,
	}

	_, err := report.Run(ctx, config)
	cancel()
	stop()
	if err != nil {
		os.Stderr.WriteString("Report failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
