package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type reloadResponse struct {
	Status       string `json:"status"`
	Observations int    `json:"observations"`
	Periods      int    `json:"periods"`
}

func (s *Server) handleObservations(w http.ResponseWriter, r *http.Request) {
	obs, err := s.deps.Observations(r.Context())
	if err != nil {
		s.writeError(w, r, Wrap("observations", err))
		return
	}
	writeJSON(w, r, http.StatusOK, obs)
}

func (s *Server) handleNational(w http.ResponseWriter, r *http.Request) {
	national, err := s.deps.National(r.Context())
	if err != nil {
		s.writeError(w, r, Wrap("national", err))
		return
	}
	writeJSON(w, r, http.StatusOK, national)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.deps.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, Wrap("overview", err))
		return
	}
	writeJSON(w, r, http.StatusOK, ov)
}

// handleRanking handles GET /api/v1/rankings/{indicator}?limit=N.
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, WrapKind("rankings", ErrBadRequest, fmt.Errorf("limit %q is not an integer", raw)))
			return
		}
		limit = n
	}
	ranking, err := s.deps.Ranking(r.Context(), chi.URLParam(r, "indicator"), limit)
	if err != nil {
		s.writeError(w, r, Wrap("rankings", err))
		return
	}
	writeJSON(w, r, http.StatusOK, ranking)
}

// handleSeries handles GET /api/v1/series/{indicator}?province=a&province=b.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	series, err := s.deps.Series(r.Context(), chi.URLParam(r, "indicator"), r.URL.Query()["province"])
	if err != nil {
		s.writeError(w, r, Wrap("series", err))
		return
	}
	writeJSON(w, r, http.StatusOK, series)
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	b, err := s.deps.Benchmark(r.Context(), r.URL.Query()["province"])
	if err != nil {
		s.writeError(w, r, Wrap("benchmark", err))
		return
	}
	writeJSON(w, r, http.StatusOK, b)
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Profiles(r.Context())
	if err != nil {
		s.writeError(w, r, Wrap("profiles", err))
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

// handleEarlyWarning handles GET /api/v1/ews?threshold=T.
func (s *Server) handleEarlyWarning(w http.ResponseWriter, r *http.Request) {
	var threshold float64
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, r, WrapKind("ews", ErrBadRequest, fmt.Errorf("threshold %q is not a number", raw)))
			return
		}
		threshold = t
	}
	rep, err := s.deps.EarlyWarning(r.Context(), threshold)
	if err != nil {
		s.writeError(w, r, Wrap("ews", err))
		return
	}
	writeJSON(w, r, http.StatusOK, rep)
}

func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	lab, err := s.deps.Policy(r.Context())
	if err != nil {
		s.writeError(w, r, Wrap("policy", err))
		return
	}
	writeJSON(w, r, http.StatusOK, lab)
}

// handleReload handles POST /api/v1/reload.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := s.deps.Reload(r.Context())
	if err != nil {
		s.writeError(w, r, Wrap("reload", err))
		return
	}
	writeJSON(w, r, http.StatusOK, reloadResponse{
		Status:       "reloaded",
		Observations: len(ds.Observations),
		Periods:      len(ds.National),
	})
}
