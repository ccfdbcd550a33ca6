package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGTCI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.deps.GTCI())
}

// handleProjection handles POST /api/v1/gtci/projection.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var req projectionRequest
	if err := s.decode(w, r, "gtci_projection", &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	proj, err := s.deps.Project(r.Context(), req.Improvements)
	if err != nil {
		s.writeError(w, r, Wrap("gtci_projection", err))
		return
	}
	writeJSON(w, r, http.StatusOK, proj)
}

// handleSalary handles POST /api/v1/salary.
func (s *Server) handleSalary(w http.ResponseWriter, r *http.Request) {
	var req salaryRequest
	if err := s.decode(w, r, "salary", &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	est, err := s.deps.Salary(r.Context(), req.Province, req.Sector, req.ExperienceYears)
	if err != nil {
		s.writeError(w, r, Wrap("salary", err))
		return
	}
	writeJSON(w, r, http.StatusOK, est)
}

func (s *Server) handleDigital(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.deps.Digital())
}

func (s *Server) handleDigitalRadar(w http.ResponseWriter, r *http.Request) {
	radar, err := s.deps.DigitalRadar(r.Context(), chi.URLParam(r, "province"))
	if err != nil {
		s.writeError(w, r, Wrap("digital_radar", err))
		return
	}
	writeJSON(w, r, http.StatusOK, radar)
}

func (s *Server) handleDemand(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.deps.Demand())
}

func (s *Server) handleMismatch(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.Mismatch(r.Context(), chi.URLParam(r, "program"))
	if err != nil {
		s.writeError(w, r, Wrap("demand_mismatch", err))
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// handleTraining handles GET /api/v1/training?province=&q=.
func (s *Server) handleTraining(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, r, http.StatusOK, s.deps.Training(q["province"], q.Get("q")))
}
