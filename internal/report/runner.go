package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/lmi/internal/adapters/chart"
	"github.com/okian/lmi/internal/adapters/export"
	"github.com/okian/lmi/internal/adapters/repository"
	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
	"github.com/okian/lmi/internal/domain/scoring"
	"github.com/okian/lmi/internal/synth"
	"github.com/okian/lmi/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run executes the report pipeline described by config.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	log := logger.Get().Named("report")
	log.Info(ctx, "starting report run",
		logger.String("runID", stats.RunID),
		logger.String("data", config.DataPath),
		logger.Bool("generate", config.Generate),
		logger.String("xlsx", config.XLSXPath),
		logger.String("charts", config.ChartsDir))

	// Step 1: Generate the synthetic dataset
	if config.Generate {
		if err := generateDataset(ctx, config); err != nil {
			return nil, fmt.Errorf("dataset generation failed: %w", err)
		}
		stats.Generated = true
	}

	// Step 2: Load and validate
	obs, err := repository.NewLoader().Load(ctx, config.DataPath)
	if err != nil {
		return nil, fmt.Errorf("dataset load failed: %w", err)
	}
	national, err := aggregate.ComputeNational(obs)
	if err != nil {
		return nil, fmt.Errorf("national series failed: %w", err)
	}
	stats.Observations = len(obs)
	stats.Periods = len(national)
	stats.Provinces = len(aggregate.Provinces(obs))

	// Step 3: Derived views
	sd, err := scoring.BuildSupplyDemandReport(obs)
	if err != nil {
		return nil, fmt.Errorf("supply-demand report failed: %w", err)
	}
	ews, err := aggregate.EarlyWarning(obs, national, threshold(config.Threshold))
	switch {
	case errors.Is(err, aggregate.ErrInsufficientHistory):
		log.Warn(ctx, "skipping early warning", logger.Error(err))
	case err != nil:
		return nil, fmt.Errorf("early warning failed: %w", err)
	default:
		stats.Alerts = len(ews.Alerts)
	}

	// Step 4: Workbook
	if config.XLSXPath != "" {
		latest, err := aggregate.LatestSnapshot(obs)
		if err != nil {
			return nil, err
		}
		wb := export.Workbook{
			National: national,
			Snapshot: latest,
			Profiles: sd.Profiles,
			Alerts:   ews.Alerts,
			Training: reference.TrainingCenters,
		}
		if err := writeFile(config.XLSXPath, func(f *os.File) error { return export.WriteXLSX(f, wb) }); err != nil {
			return nil, fmt.Errorf("workbook export failed: %w", err)
		}
		stats.WorkbookPath = config.XLSXPath
		log.Info(ctx, "workbook written", logger.String("path", config.XLSXPath))
	}

	// Step 5: Charts
	if config.ChartsDir != "" {
		written, err := writeCharts(config.ChartsDir, national, sd)
		if err != nil {
			return nil, fmt.Errorf("chart rendering failed: %w", err)
		}
		stats.ChartsWritten = written
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

func threshold(t float64) float64 {
	if t == 0 {
		return aggregate.DefaultEWSThreshold
	}
	return t
}

func generateDataset(ctx context.Context, config *Config) error {
	g := synth.NewGenerator(
		synth.WithSeed(config.Seed),
		synth.WithYears(config.StartYear, config.EndYear),
	)
	var rows int
	err := writeFile(config.DataPath, func(f *os.File) error {
		n, err := g.WriteCSV(ctx, f)
		rows = n
		return err
	})
	if err != nil {
		return err
	}
	logger.Get().Info(ctx, "synthetic dataset written",
		logger.String("path", config.DataPath),
		logger.Int("rows", rows))
	return nil
}

func writeCharts(dir string, national []model.NationalPoint, sd scoring.SupplyDemandReport) ([]string, error) {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	proj, err := scoring.NewGTCIProjector().Project(nil)
	if err != nil {
		return nil, err
	}

	in := chart.Inputs{
		National: national,
		Profiles: sd.Profiles,
		Ranking:  proj.Ranking,
		Subject:  proj.Country,
	}
	r := chart.NewRenderer()
	written := make([]string, 0, len(chart.Names))
	for _, name := range chart.Names {
		p, err := chart.Build(name, in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		path := filepath.Join(dir, name+".png")
		if err := writeFile(path, func(f *os.File) error { return r.WritePNG(f, p) }); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// writeFile creates path and its directory, then hands the file to write.
func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission) //nolint:gosec // output path comes from CLI flags
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// displayFinalStats logs the run summary.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.String("runID", stats.RunID),
		logger.Bool("generated", stats.Generated),
		logger.Int("observations", stats.Observations),
		logger.Int("periods", stats.Periods),
		logger.Int("provinces", stats.Provinces),
		logger.Int("alerts", stats.Alerts),
		logger.Int("charts", len(stats.ChartsWritten)),
		logger.String("duration", stats.Duration.String()))
}
