// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	service "github.com/okian/lmi/internal/app"
	"github.com/okian/lmi/internal/adapters/repository"
	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/internal/domain/demand"
	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/readiness"
	"github.com/okian/lmi/internal/domain/types"
	"github.com/okian/lmi/pkg/logger"
	"github.com/okian/lmi/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Dataset(ctx context.Context) (*repository.Dataset, error)
	Reload(ctx context.Context) (*repository.Dataset, error)

	// Province panel views.
	Observations(ctx context.Context) ([]model.Observation, error)
	National(ctx context.Context) ([]model.NationalPoint, error)
	Overview(ctx context.Context) (aggregate.Overview, error)
	Ranking(ctx context.Context, indicator string, limit int) (aggregate.Ranking, error)
	Series(ctx context.Context, indicator string, provinces []string) ([]aggregate.ProvinceSeries, error)
	Benchmark(ctx context.Context, provinces []string) (service.BenchmarkView, error)
	Profiles(ctx context.Context) (service.ProfilesView, error)
	EarlyWarning(ctx context.Context, threshold float64) (aggregate.EWSReport, error)
	Policy(ctx context.Context) (aggregate.PolicyLab, error)
	Salary(ctx context.Context, province, sector string, experienceYears float64) (types.SalaryEstimate, error)

	// Reference views.
	GTCI() service.GTCIView
	Project(ctx context.Context, improvements map[string]float64) (types.Projection, error)
	Digital() readiness.Report
	DigitalRadar(ctx context.Context, province string) (readiness.Radar, error)
	Demand() service.DemandView
	Mismatch(ctx context.Context, program string) (demand.MismatchView, error)
	Training(provinces []string, query string) service.TrainingView

	// Downloads.
	WriteTrainingCSV(w io.Writer, provinces []string, query string) error
	WriteWorkbook(ctx context.Context, w io.Writer) error
	WriteChart(ctx context.Context, w io.Writer, name string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps     Dependencies
	validate *validator.Validate
	limiter  *rate.Limiter
	maxBody  int64
	logger   logger.Logger

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:             deps,
		validate:         newValidator(),
		maxBody:          defaultMaxBody,
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: newdashboardHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Use(RequestIDMiddleware)
	r.Use(s.recoverMiddleware)
	if s.limiter != nil {
		r.Use(RateLimitMiddleware(s.limiter))
	}

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/dashboard", s.dashboardHandler.HandleDashboard)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/observations", MetricsMiddleware(s.handleObservations, "observations"))
		r.Get("/national", MetricsMiddleware(s.handleNational, "national"))
		r.Get("/overview", MetricsMiddleware(s.handleOverview, "overview"))
		r.Get("/rankings/{indicator}", MetricsMiddleware(s.handleRanking, "rankings"))
		r.Get("/series/{indicator}", MetricsMiddleware(s.handleSeries, "series"))
		r.Get("/benchmark", MetricsMiddleware(s.handleBenchmark, "benchmark"))
		r.Get("/profiles", MetricsMiddleware(s.handleProfiles, "profiles"))
		r.Get("/ews", MetricsMiddleware(s.handleEarlyWarning, "ews"))
		r.Get("/policy", MetricsMiddleware(s.handlePolicy, "policy"))
		r.Post("/reload", MetricsMiddleware(s.handleReload, "reload"))

		r.Get("/gtci", MetricsMiddleware(s.handleGTCI, "gtci"))
		r.Post("/gtci/projection", MetricsMiddleware(s.handleProjection, "gtci_projection"))
		r.Post("/salary", MetricsMiddleware(s.handleSalary, "salary"))
		r.Get("/digital", MetricsMiddleware(s.handleDigital, "digital"))
		r.Get("/digital/{province}", MetricsMiddleware(s.handleDigitalRadar, "digital_radar"))
		r.Get("/demand", MetricsMiddleware(s.handleDemand, "demand"))
		r.Get("/demand/mismatch/{program}", MetricsMiddleware(s.handleMismatch, "demand_mismatch"))
		r.Get("/training", MetricsMiddleware(s.handleTraining, "training"))

		r.Get("/training.csv", MetricsMiddleware(s.handleTrainingCSV, "training_csv"))
		r.Get("/export.xlsx", MetricsMiddleware(s.handleWorkbook, "export_xlsx"))
		r.Get("/charts/{name}.png", MetricsMiddleware(s.handleChart, "charts"))
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// writeError maps err to a status and renders it as {code, message}.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("requestID", RequestIDFrom(r.Context())),
			logger.Error(err),
		)
	}
	writeJSON(w, r, status, errorResponse{Code: code, Message: err.Error()})
}
