// Package report runs the offline reporting pipeline: optional synthetic
// dataset generation, dataset validation, workbook export and chart rendering.
package report

import "time"

// Config holds configuration for a report run.
type Config struct {
	DataPath  string  // Dataset CSV to read, or to write when Generate is set
	Generate  bool    // Write a synthetic dataset to DataPath first
	Seed      int64   // Generator seed
	StartYear int     // First generated year
	EndYear   int     // Last generated year
	XLSXPath  string  // Workbook output; empty skips the workbook
	ChartsDir string  // PNG output directory; empty skips charts
	Threshold float64 // Early-warning threshold for the alert sheet
	Verbose   bool    // Enable debug logging
}

// Stats summarizes a report run.
type Stats struct {
	RunID         string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	Generated     bool
	Observations  int
	Periods       int
	Provinces     int
	Alerts        int
	WorkbookPath  string
	ChartsWritten []string
}
