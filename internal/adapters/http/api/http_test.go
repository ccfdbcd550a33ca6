package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/lmi/internal/app"
	"github.com/okian/lmi/internal/adapters/http/api"
	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/synth"
	"github.com/okian/lmi/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

func datasetPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labor_market.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create dataset: %v", err)
	}
	defer f.Close()
	if _, err := synth.NewGenerator(synth.WithYears(2020, 2021)).WriteCSV(context.Background(), f); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func newRouter(svc *service.Service, opts ...api.Option) http.Handler {
	r := chi.NewRouter()
	api.NewServer(svc, svc, opts...).Register(context.Background(), r)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestServer_Register(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		svc := service.New(service.WithDataPath(datasetPath(t)), service.WithMaxRankingLimit(20))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		h := newRouter(svc)

		Convey("And health endpoint reports the dataset", func() {
			w := do(h, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(decode(w, &body), ShouldBeNil)
			So(body["status"], ShouldEqual, "ok")
			So(body["observations"], ShouldEqual, 136.0)
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("And an incoming request id is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})

		Convey("And stats endpoint should be accessible", func() {
			w := do(h, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(decode(w, &body), ShouldBeNil)
			So(body["started"], ShouldBeTrue)
			So(body["periods"], ShouldEqual, 4.0)
		})

		Convey("And metrics are exposed", func() {
			do(h, http.MethodGet, "/api/v1/national", "")
			w := do(h, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "lmi_dashboard_")
		})

		Convey("And dashboard endpoint should serve HTML with refresh control", func() {
			w := do(h, http.MethodGet, "/dashboard", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := w.Body.String()
			So(body, ShouldContainSubstring, "id=\"refresh-interval\"")
			So(body, ShouldContainSubstring, "id=\"refresh-control\"")
		})

		Convey("And unknown routes are 404", func() {
			w := do(h, http.MethodGet, "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestPanelEndpoints(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		svc := service.New(service.WithDataPath(datasetPath(t)), service.WithMaxRankingLimit(20))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		h := newRouter(svc)

		Convey("When listing observations and the national series", func() {
			w := do(h, http.MethodGet, "/api/v1/observations", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var obs []model.Observation
			So(decode(w, &obs), ShouldBeNil)
			So(len(obs), ShouldEqual, 136)

			w = do(h, http.MethodGet, "/api/v1/national", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var national []model.NationalPoint
			So(decode(w, &national), ShouldBeNil)
			So(len(national), ShouldEqual, 4)
			So(national[3].PeriodLabel, ShouldEqual, "2021:Aug")
		})

		Convey("When reading the overview and policy tracker", func() {
			So(do(h, http.MethodGet, "/api/v1/overview", "").Code, ShouldEqual, http.StatusOK)

			w := do(h, http.MethodGet, "/api/v1/policy", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var lab struct {
				Gauges    []map[string]any `json:"gauges"`
				Benchmark []struct {
					Country      string  `json:"country"`
					Productivity float64 `json:"productivity"`
				} `json:"benchmark"`
			}
			So(decode(w, &lab), ShouldBeNil)
			So(len(lab.Gauges), ShouldEqual, 5)
			So(len(lab.Benchmark), ShouldEqual, 5)
			So(lab.Benchmark[0].Country, ShouldEqual, "Indonesia")
			So(lab.Benchmark[0].Productivity, ShouldEqual, 1.0)
			So(lab.Benchmark[4].Country, ShouldEqual, "Singapura")
		})

		Convey("When ranking provinces", func() {
			w := do(h, http.MethodGet, "/api/v1/rankings/TPT?limit=3", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Ranked []struct {
					Rank     int    `json:"rank"`
					Province string `json:"province"`
				} `json:"ranked"`
			}
			So(decode(w, &body), ShouldBeNil)
			So(len(body.Ranked), ShouldEqual, 3)
			So(body.Ranked[0].Rank, ShouldEqual, 1)
		})

		Convey("When a ranking request is malformed", func() {
			w := do(h, http.MethodGet, "/api/v1/rankings/TPT?limit=ten", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			var e errorBody
			So(decode(w, &e), ShouldBeNil)
			So(e.Code, ShouldEqual, "bad_request")

			So(do(h, http.MethodGet, "/api/v1/rankings/TPT?limit=99", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(h, http.MethodGet, "/api/v1/rankings/happiness", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When exploring series", func() {
			w := do(h, http.MethodGet, "/api/v1/series/TPAK?province=Aceh&province=Bali", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var series []map[string]any
			So(decode(w, &series), ShouldBeNil)
			So(len(series), ShouldEqual, 2)

			So(do(h, http.MethodGet, "/api/v1/series/TPAK?province=Atlantis", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When benchmarking", func() {
			So(do(h, http.MethodGet, "/api/v1/benchmark?province=Aceh", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodGet, "/api/v1/benchmark", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When reading profiles", func() {
			w := do(h, http.MethodGet, "/api/v1/profiles", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(decode(w, &body), ShouldBeNil)
			So(body, ShouldContainKey, "profiles")
			So(body, ShouldContainKey, "radars")
		})

		Convey("When running the early warning", func() {
			So(do(h, http.MethodGet, "/api/v1/ews", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodGet, "/api/v1/ews?threshold=2.5", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodGet, "/api/v1/ews?threshold=9", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(h, http.MethodGet, "/api/v1/ews?threshold=high", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When reloading the dataset", func() {
			w := do(h, http.MethodPost, "/api/v1/reload", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(decode(w, &body), ShouldBeNil)
			So(body["observations"], ShouldEqual, 136.0)
		})
	})

	Convey("Given a single-period dataset", t, func() {
		var buf bytes.Buffer
		_, err := synth.NewGenerator(synth.WithYears(2020, 2020), synth.WithProvinces([]string{"Aceh"})).WriteCSV(context.Background(), &buf)
		So(err, ShouldBeNil)
		lines := strings.SplitN(buf.String(), "\n", 3)
		path := filepath.Join(t.TempDir(), "one.csv")
		So(os.WriteFile(path, []byte(lines[0]+"\n"+lines[1]+"\n"), 0o600), ShouldBeNil)

		svc := service.New(service.WithDataPath(path))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		h := newRouter(svc)

		Convey("Then the early warning conflicts", func() {
			w := do(h, http.MethodGet, "/api/v1/ews", "")
			So(w.Code, ShouldEqual, http.StatusConflict)
			var e errorBody
			So(decode(w, &e), ShouldBeNil)
			So(e.Code, ShouldEqual, "insufficient_history")
		})
	})

	Convey("Given a service whose dataset disappeared", t, func() {
		path := datasetPath(t)
		svc := service.New(service.WithDataPath(path))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		So(os.Remove(path), ShouldBeNil)
		h := newRouter(svc)

		Convey("Then health reports unavailable", func() {
			So(do(h, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("Then views fail with 500", func() {
			w := do(h, http.MethodGet, "/api/v1/overview", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			var e errorBody
			So(decode(w, &e), ShouldBeNil)
			So(e.Code, ShouldEqual, "internal_error")
			So(e.Message, ShouldContainSubstring, "overview")
		})
	})

	Convey("Given a malformed dataset", t, func() {
		path := filepath.Join(t.TempDir(), "bad.csv")
		So(os.WriteFile(path, []byte("province,year\nAceh,2020\n"), 0o600), ShouldBeNil)
		svc := service.New(service.WithDataPath(path))
		h := newRouter(svc)

		Convey("Then views fail with 422", func() {
			w := do(h, http.MethodGet, "/api/v1/national", "")
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})
	})
}

func TestReferenceEndpoints(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		svc := service.New(service.WithDataPath(datasetPath(t)))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		h := newRouter(svc)

		Convey("When reading GTCI data", func() {
			w := do(h, http.MethodGet, "/api/v1/gtci", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(decode(w, &body), ShouldBeNil)
			So(body["subject"], ShouldEqual, "Indonesia")
		})

		Convey("When projecting GTCI improvements", func() {
			w := do(h, http.MethodPost, "/api/v1/gtci/projection", `{"improvements":{"Grow":10,"Enable":5}}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(decode(w, &body), ShouldBeNil)
			So(body["projected_score"], ShouldBeGreaterThan, body["baseline"])
		})

		Convey("When a projection has no improvements", func() {
			for _, body := range []string{`{}`, `{"improvements":{}}`} {
				w := do(h, http.MethodPost, "/api/v1/gtci/projection", body)
				So(w.Code, ShouldEqual, http.StatusOK)
				var proj map[string]any
				So(decode(w, &proj), ShouldBeNil)
				So(proj["projected_score"], ShouldEqual, proj["baseline"])
				So(proj["weighted_delta"], ShouldEqual, 0.0)
				So(proj["rank"], ShouldEqual, 6.0)
			}
		})

		Convey("When a projection body is invalid", func() {
			So(do(h, http.MethodPost, "/api/v1/gtci/projection", `{"improvements":{"Grow":500}}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(h, http.MethodPost, "/api/v1/gtci/projection", `not json`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(h, http.MethodPost, "/api/v1/gtci/projection", `{"improvements":{"Luck":1}}`).Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When estimating a salary", func() {
			w := do(h, http.MethodPost, "/api/v1/salary", `{"province":"Aceh","sector":"Industry","experience_years":2}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(decode(w, &body), ShouldBeNil)
			So(body["monthly_idr"], ShouldBeGreaterThan, 0.0)
			So(body["period_label"], ShouldEqual, "2021:Aug")
		})

		Convey("When a salary body is invalid", func() {
			w := do(h, http.MethodPost, "/api/v1/salary", `{"sector":"Industry"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			var e errorBody
			So(decode(w, &e), ShouldBeNil)
			So(e.Message, ShouldContainSubstring, "province is required")

			So(do(h, http.MethodPost, "/api/v1/salary", `{"province":"Aceh","sector":"Industry","experience_years":-1}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(h, http.MethodPost, "/api/v1/salary", `{"province":"Atlantis","sector":"Industry"}`).Code, ShouldEqual, http.StatusNotFound)
			So(do(h, http.MethodPost, "/api/v1/salary", `{"province":"Aceh","sector":"Mining"}`).Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When reading digital readiness", func() {
			So(do(h, http.MethodGet, "/api/v1/digital", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodGet, "/api/v1/digital/Atlantis", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When reading the demand tracker", func() {
			w := do(h, http.MethodGet, "/api/v1/demand", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Programs []string `json:"programs"`
			}
			So(decode(w, &body), ShouldBeNil)
			So(body.Programs, ShouldNotBeEmpty)

			w = do(h, http.MethodGet, "/api/v1/demand/mismatch/"+url.PathEscape(body.Programs[0]), "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodGet, "/api/v1/demand/mismatch/Alchemy", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When filtering the training directory", func() {
			w := do(h, http.MethodGet, "/api/v1/training?q=zzzz-no-match", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var body struct {
				Provinces []string         `json:"provinces"`
				Centers   []map[string]any `json:"centers"`
			}
			So(decode(w, &body), ShouldBeNil)
			So(body.Centers, ShouldBeEmpty)
			So(body.Provinces, ShouldNotBeEmpty)
		})
	})
}

func TestDownloadEndpoints(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		svc := service.New(service.WithDataPath(datasetPath(t)))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		h := newRouter(svc)

		Convey("When downloading the training directory", func() {
			w := do(h, http.MethodGet, "/api/v1/training.csv", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "text/csv")
			So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "blk_directory.csv")
			So(w.Body.String(), ShouldStartWith, "name,province,specialization,focus_skills,capacity")
		})

		Convey("When downloading the workbook", func() {
			w := do(h, http.MethodGet, "/api/v1/export.xlsx", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "spreadsheetml")
			So(bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), ShouldBeTrue)
		})

		Convey("When downloading a chart", func() {
			w := do(h, http.MethodGet, "/api/v1/charts/national-trend.png", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
			So(bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")), ShouldBeTrue)
		})

		Convey("When the chart is unknown", func() {
			w := do(h, http.MethodGet, "/api/v1/charts/pie.png", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given a router with a one-request budget", t, func() {
		svc := service.New(service.WithDataPath(datasetPath(t)))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		h := newRouter(svc, api.WithRateLimit(0.001, 1))

		Convey("Then the second request is rejected", func() {
			So(do(h, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusOK)
			w := do(h, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			So(w.Header().Get("Retry-After"), ShouldNotBeEmpty)
			var e errorBody
			So(decode(w, &e), ShouldBeNil)
			So(e.Code, ShouldEqual, "rate_limited")
		})
	})

	Convey("Given a router with a tiny body limit", t, func() {
		svc := service.New(service.WithDataPath(datasetPath(t)))
		h := newRouter(svc, api.WithMaxBodyBytes(8))

		Convey("Then large bodies are rejected", func() {
			w := do(h, http.MethodPost, "/api/v1/salary", `{"province":"Aceh","sector":"Industry"}`)
			So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})

	Convey("Given a handler that panics", t, func() {
		svc := service.New(service.WithDataPath(datasetPath(t)))
		r := chi.NewRouter()
		api.NewServer(svc, svc).Register(context.Background(), r)
		r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

		Convey("Then it is turned into a 500", func() {
			w := do(r, http.MethodGet, "/boom", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given tagged errors", t, func() {
		cause := errors.New("disk on fire")

		Convey("When wrapping with an op", func() {
			err := api.Wrap("overview", cause)
			So(err.Error(), ShouldEqual, "overview: disk on fire")
			So(errors.Is(err, cause), ShouldBeTrue)
			So(api.Wrap("overview", nil), ShouldBeNil)
		})

		Convey("When wrapping with a kind", func() {
			err := api.WrapKind("rankings", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "rankings: bad request: disk on fire")
		})

		Convey("When creating a kind", func() {
			kind := api.NewKind("custom")
			So(errors.Is(api.WrapKind("op", kind, nil), kind), ShouldBeTrue)
		})
	})
}
