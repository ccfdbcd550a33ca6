// Package service provides the dashboard service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/okian/lmi/internal/adapters/chart"
	"github.com/okian/lmi/internal/adapters/export"
	"github.com/okian/lmi/internal/adapters/repository"
	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/internal/domain/demand"
	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/readiness"
	"github.com/okian/lmi/internal/domain/reference"
	"github.com/okian/lmi/internal/domain/scoring"
	"github.com/okian/lmi/internal/domain/training"
	"github.com/okian/lmi/internal/domain/types"
	"github.com/okian/lmi/pkg/logger"
	"github.com/okian/lmi/pkg/metrics"
)

// Defaults.
const (
	DefaultDataPath        = "data/labor_market.csv"
	DefaultMaxRankingLimit = 34
)

// Service implements the API dependencies for the labor-market dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	renderer  *chart.Renderer
	projector *scoring.GTCIProjector
	tracker   *demand.Tracker

	// Configuration
	dataPath        string
	ewsThreshold    float64
	maxRankingLimit int

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the dataset store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataPath sets the dataset file served by the dashboard.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEWSThreshold sets the default early-warning threshold in percentage points.
func WithEWSThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.ewsThreshold = threshold
		}
	}
}

// WithMaxRankingLimit caps the limit a ranking request may ask for.
func WithMaxRankingLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxRankingLimit = limit
		}
	}
}

// WithChartRenderer sets the PNG renderer used for chart downloads.
func WithChartRenderer(r *chart.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithDemandTracker sets the demand tracker.
func WithDemandTracker(t *demand.Tracker) Option {
	return func(s *Service) {
		if t != nil {
			s.tracker = t
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:           repository.NewCachedStore(),
		renderer:        chart.NewRenderer(),
		projector:       scoring.NewGTCIProjector(),
		tracker:         demand.NewTracker(),
		dataPath:        DefaultDataPath,
		ewsThreshold:    aggregate.DefaultEWSThreshold,
		maxRankingLimit: DefaultMaxRankingLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates the configuration and preloads the dataset.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting dashboard service...", logger.String("data", s.dataPath))

	if err := aggregate.ValidateThreshold(s.ewsThreshold); err != nil {
		return fmt.Errorf("service config: %w", err)
	}

	ds, err := s.store.Get(ctx, s.dataPath)
	if err != nil {
		s.logger.Error(ctx, "dataset preload failed", logger.Error(err))
		return fmt.Errorf("preload dataset: %w", err)
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("observations", len(ds.Observations)),
		logger.Int("periods", len(ds.National)),
		logger.Float64("ewsThreshold", s.ewsThreshold),
		logger.Int("maxRankingLimit", s.maxRankingLimit),
	)

	return nil
}

// Stop releases the cached datasets.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping dashboard service...")
	s.store.Reset()
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Started reports whether Start succeeded and Stop has not been called.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// observe records latency and failure kind of one computation.
func observe(op string, start time.Time, err error) {
	metrics.RecordComputation(op, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordComputationError(op, Kind(err))
	}
}

// Dataset returns the current version of the dataset file.
func (s *Service) Dataset(ctx context.Context) (*repository.Dataset, error) {
	s.mu.RLock()
	store, path := s.store, s.dataPath
	s.mu.RUnlock()
	if store == nil {
		return nil, ErrNoStore
	}
	return store.Get(ctx, path)
}

// Reload drops the cached dataset and parses the file again.
func (s *Service) Reload(ctx context.Context) (ds *repository.Dataset, err error) {
	defer func(start time.Time) { observe("reload", start, err) }(time.Now())
	s.mu.RLock()
	s.store.Invalidate(s.dataPath)
	s.mu.RUnlock()
	return s.Dataset(ctx)
}

// Observations returns every row of the dataset in period then province order.
func (s *Service) Observations(ctx context.Context) ([]model.Observation, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Observations, nil
}

// National returns the national series.
func (s *Service) National(ctx context.Context) ([]model.NationalPoint, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.National, nil
}

// Overview returns the macro headline cards.
func (s *Service) Overview(ctx context.Context) (out aggregate.Overview, err error) {
	defer func(start time.Time) { observe("overview", start, err) }(time.Now())
	ds, err := s.Dataset(ctx)
	if err != nil {
		return aggregate.Overview{}, err
	}
	return aggregate.BuildOverview(ds.National)
}

// Ranking ranks the latest snapshot on indicator. A zero limit returns every province.
func (s *Service) Ranking(ctx context.Context, indicator string, limit int) (out aggregate.Ranking, err error) {
	defer func(start time.Time) { observe("ranking", start, err) }(time.Now())
	ind, err := model.ParseIndicator(indicator)
	if err != nil {
		return aggregate.Ranking{}, err
	}
	s.mu.RLock()
	maxLimit := s.maxRankingLimit
	s.mu.RUnlock()
	if limit < 0 || limit > maxLimit {
		return aggregate.Ranking{}, fmt.Errorf("%w: %d not in [0, %d]", ErrLimitRange, limit, maxLimit)
	}
	ds, err := s.Dataset(ctx)
	if err != nil {
		return aggregate.Ranking{}, err
	}
	return aggregate.RankProvinces(ds.Observations, ind, limit)
}

// Series returns the explorer series of indicator for provinces, all of them when empty.
func (s *Service) Series(ctx context.Context, indicator string, provinces []string) (out []aggregate.ProvinceSeries, err error) {
	defer func(start time.Time) { observe("series", start, err) }(time.Now())
	ind, err := model.ParseIndicator(indicator)
	if err != nil {
		return nil, err
	}
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.BuildProvinceSeries(ds.Observations, ind, provinces)
}

// Benchmark returns the regional scorecards and sector structure of provinces.
func (s *Service) Benchmark(ctx context.Context, provinces []string) (out BenchmarkView, err error) {
	defer func(start time.Time) { observe("benchmark", start, err) }(time.Now())
	ds, err := s.Dataset(ctx)
	if err != nil {
		return BenchmarkView{}, err
	}
	rep, err := aggregate.Benchmark(ds.Observations, ds.National, provinces)
	if err != nil {
		return BenchmarkView{}, err
	}
	sectors, err := aggregate.SectorStructure(ds.Observations, provinces)
	if err != nil {
		return BenchmarkView{}, err
	}
	return BenchmarkView{BenchmarkReport: rep, Sectors: sectors}, nil
}

// Profiles returns the supply-demand report of the latest period.
func (s *Service) Profiles(ctx context.Context) (out ProfilesView, err error) {
	defer func(start time.Time) { observe("profiles", start, err) }(time.Now())
	ds, err := s.Dataset(ctx)
	if err != nil {
		return ProfilesView{}, err
	}
	rep, err := scoring.BuildSupplyDemandReport(ds.Observations)
	if err != nil {
		return ProfilesView{}, err
	}
	radars := make(map[string][]scoring.RadarAxis, len(rep.Profiles))
	for _, p := range rep.Profiles {
		radars[p.Province] = scoring.SkillGapRadar(p)
	}
	return ProfilesView{SupplyDemandReport: rep, Radars: radars}, nil
}

// EarlyWarning compares the latest two periods. A zero threshold uses the configured default.
func (s *Service) EarlyWarning(ctx context.Context, threshold float64) (out aggregate.EWSReport, err error) {
	defer func(start time.Time) { observe("ews", start, err) }(time.Now())
	if threshold == 0 {
		s.mu.RLock()
		threshold = s.ewsThreshold
		s.mu.RUnlock()
	}
	ds, err := s.Dataset(ctx)
	if err != nil {
		return aggregate.EWSReport{}, err
	}
	return aggregate.EarlyWarning(ds.Observations, ds.National, threshold)
}

// Policy returns the RPJMN target gauges and the international benchmark.
func (s *Service) Policy(ctx context.Context) (out aggregate.PolicyLab, err error) {
	defer func(start time.Time) { observe("policy", start, err) }(time.Now())
	ds, err := s.Dataset(ctx)
	if err != nil {
		return out, err
	}
	return aggregate.BuildPolicyLab(ds.National)
}

// GTCI returns the talent competitiveness reference data.
func (s *Service) GTCI() GTCIView {
	return GTCIView{
		Subject:        reference.GTCISubject,
		Baseline:       s.projector.Baseline(),
		Years:          reference.GTCIYears,
		Trends:         reference.GTCITrends,
		Weights:        reference.GTCIWeights,
		Pillars:        reference.IndonesiaPillars,
		Breakdown:      reference.GTCIBreakdown,
		GaugeThreshold: reference.PillarGaugeThreshold,
	}
}

// Project simulates the GTCI score after pillar improvements.
func (s *Service) Project(_ context.Context, improvements map[string]float64) (out types.Projection, err error) {
	defer func(start time.Time) { observe("gtci_projection", start, err) }(time.Now())
	return s.projector.Project(improvements)
}

// Salary estimates the monthly entry salary of sector in province from its latest row.
func (s *Service) Salary(ctx context.Context, province, sector string, experienceYears float64) (out types.SalaryEstimate, err error) {
	defer func(start time.Time) { observe("salary", start, err) }(time.Now())
	ds, err := s.Dataset(ctx)
	if err != nil {
		return types.SalaryEstimate{}, err
	}
	snap, err := aggregate.LatestSnapshot(ds.Observations)
	if err != nil {
		return types.SalaryEstimate{}, err
	}
	row, err := aggregate.FindProvince(snap, province)
	if err != nil {
		return types.SalaryEstimate{}, err
	}
	idr, err := scoring.EstimateSalary(row.Indicators, sector, experienceYears)
	if err != nil {
		return types.SalaryEstimate{}, err
	}
	return types.SalaryEstimate{
		Province:        row.Province,
		PeriodLabel:     row.PeriodLabel,
		Sector:          sector,
		ExperienceYears: experienceYears,
		MonthlyIDR:      idr,
	}, nil
}

// Digital returns the digital readiness map.
func (s *Service) Digital() readiness.Report {
	return readiness.Build(reference.DigitalReadinessTable)
}

// DigitalRadar returns the literacy radar of province against the table average.
func (s *Service) DigitalRadar(_ context.Context, province string) (out readiness.Radar, err error) {
	defer func(start time.Time) { observe("digital_radar", start, err) }(time.Now())
	return readiness.BuildRadar(reference.DigitalReadinessTable, province)
}

// Demand returns the demand tracker with the vocational programs it can compare.
func (s *Service) Demand() DemandView {
	start := time.Now()
	rep := s.tracker.Build()
	observe("demand", start, nil)
	return DemandView{Report: rep, Programs: demand.Programs()}
}

// Mismatch returns the curriculum gap of a vocational program.
func (s *Service) Mismatch(_ context.Context, program string) (out demand.MismatchView, err error) {
	defer func(start time.Time) { observe("mismatch", start, err) }(time.Now())
	return demand.Mismatch(program)
}

// Training filters the BLK directory by provinces and focus-skill query.
func (s *Service) Training(provinces []string, query string) TrainingView {
	return TrainingView{
		Provinces: training.Provinces(reference.TrainingCenters),
		Centers:   training.Filter(reference.TrainingCenters, provinces, query),
	}
}

// WriteTrainingCSV writes the filtered BLK directory as CSV.
func (s *Service) WriteTrainingCSV(w io.Writer, provinces []string, query string) error {
	if err := export.WriteTrainingCSV(w, training.Filter(reference.TrainingCenters, provinces, query)); err != nil {
		return err
	}
	metrics.RecordExport("training_csv")
	return nil
}

// WriteWorkbook writes the XLSX download. Early-warning alerts are empty
// when the dataset has a single period.
func (s *Service) WriteWorkbook(ctx context.Context, w io.Writer) (err error) {
	defer func(start time.Time) { observe("workbook", start, err) }(time.Now())
	ds, err := s.Dataset(ctx)
	if err != nil {
		return err
	}
	snap, err := aggregate.LatestSnapshot(ds.Observations)
	if err != nil {
		return err
	}
	sd, err := scoring.BuildSupplyDemandReport(ds.Observations)
	if err != nil {
		return err
	}
	s.mu.RLock()
	threshold := s.ewsThreshold
	s.mu.RUnlock()
	ews, err := aggregate.EarlyWarning(ds.Observations, ds.National, threshold)
	if err != nil && !errors.Is(err, aggregate.ErrInsufficientHistory) {
		return err
	}
	wb := export.Workbook{
		National: ds.National,
		Snapshot: snap,
		Profiles: sd.Profiles,
		Alerts:   ews.Alerts,
		Training: reference.TrainingCenters,
	}
	if err := export.WriteXLSX(w, wb); err != nil {
		return err
	}
	metrics.RecordExport("xlsx")
	return nil
}

// WriteChart renders the chart called name as PNG.
func (s *Service) WriteChart(ctx context.Context, w io.Writer, name string) (err error) {
	defer func(start time.Time) { observe("chart", start, err) }(time.Now())
	if !slices.Contains(chart.Names, name) {
		return fmt.Errorf("%w: %q", chart.ErrUnknownChart, name)
	}
	ds, err := s.Dataset(ctx)
	if err != nil {
		return err
	}
	in := chart.Inputs{National: ds.National, Subject: reference.GTCISubject}
	switch name {
	case chart.MismatchGapChart:
		sd, err := scoring.BuildSupplyDemandReport(ds.Observations)
		if err != nil {
			return err
		}
		in.Profiles = sd.Profiles
	case chart.GTCIRankingChart:
		proj, err := s.projector.Project(nil)
		if err != nil {
			return err
		}
		in.Ranking, in.Subject = proj.Ranking, proj.Country
	}
	p, err := chart.Build(name, in)
	if err != nil {
		return err
	}
	if err := s.renderer.WritePNG(w, p); err != nil {
		return err
	}
	metrics.RecordExport("png")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	stats := map[string]interface{}{
		"started":         s.started,
		"dataPath":        s.dataPath,
		"ewsThreshold":    s.ewsThreshold,
		"maxRankingLimit": s.maxRankingLimit,
	}
	started, startedAt := s.started, s.startedAt
	s.mu.RUnlock()

	if !started {
		return stats
	}
	stats["uptimeSeconds"] = time.Since(startedAt).Seconds()

	ds, err := s.Dataset(context.Background())
	if err != nil {
		stats["datasetError"] = err.Error()
		return stats
	}
	provinces := len(aggregate.Provinces(ds.Observations))
	stats["observations"] = len(ds.Observations)
	stats["periods"] = len(ds.National)
	stats["provinces"] = provinces
	stats["loadedAt"] = ds.LoadedAt
	stats["modTime"] = ds.ModTime

	// Update metrics
	metrics.UpdateDatasetShape(len(ds.Observations), len(ds.National), provinces)

	return stats
}
