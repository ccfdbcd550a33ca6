package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/lmi/internal/config"
	"github.com/okian/lmi/internal/synth"
	"github.com/okian/lmi/pkg/logger"
	"github.com/okian/lmi/pkg/metrics"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labor_market.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create dataset: %v", err)
	}
	defer f.Close()
	if _, err := synth.NewGenerator(synth.WithYears(2021, 2022)).WriteCSV(context.Background(), f); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When configuration comes from the environment", func() {
			t.Setenv("LMI_ADDR", ":8088")
			t.Setenv("LMI_EWS_THRESHOLD", "1.5")
			t.Setenv("LMI_RATE_LIMIT_BURST", "7")

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8088")
			convey.So(cfg.EWSThreshold, convey.ShouldEqual, 1.5)
			convey.So(cfg.RateLimitBurst, convey.ShouldEqual, 7)
		})

		convey.Convey("When the service and router are wired from config", func() {
			cfg := config.New()
			cfg.DataPath = writeDataset(t)
			ctx := context.Background()

			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			h := newRouter(ctx, cfg, svc, logger.Get())

			convey.Convey("Then every surface is mounted", func() {
				for _, target := range []string{
					"/",
					"/healthz",
					"/stats",
					"/metrics",
					"/dashboard",
					"/api-docs",
					"/openapi.yaml",
					"/api/v1/overview",
					"/api/v1/rankings/TPT?limit=5",
				} {
					w := httptest.NewRecorder()
					h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})

		convey.Convey("When the dataset is missing", func() {
			cfg := config.New()
			cfg.DataPath = filepath.Join(t.TempDir(), "missing.csv")
			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(context.Background()), convey.ShouldNotBeNil)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the runtime metric updater", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)

		families, err := metrics.GetRegistry().Gather()
		convey.So(err, convey.ShouldBeNil)
		names := make(map[string]bool, len(families))
		for _, f := range families {
			names[f.GetName()] = true
		}
		convey.So(names["lmi_dashboard_system_goroutine_count"], convey.ShouldBeTrue)
	})

	convey.Convey("Given a canceled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
	})
}
