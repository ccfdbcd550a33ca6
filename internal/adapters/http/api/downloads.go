package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Download content types.
const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePNG  = "image/png"
)

// sendFile writes a download that has already been rendered into body.
func sendFile(w http.ResponseWriter, contentType, filename string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

func (s *Server) handleTrainingCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var buf bytes.Buffer
	if err := s.deps.WriteTrainingCSV(&buf, q["province"], q.Get("q")); err != nil {
		s.writeError(w, r, Wrap("training_csv", err))
		return
	}
	sendFile(w, contentTypeCSV, "blk_directory.csv", &buf)
}

func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.deps.WriteWorkbook(r.Context(), &buf); err != nil {
		s.writeError(w, r, Wrap("export_xlsx", err))
		return
	}
	sendFile(w, contentTypeXLSX, "labor_market_dashboard.xlsx", &buf)
}

// handleChart handles GET /api/v1/charts/{name}.png.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.deps.WriteChart(r.Context(), &buf, chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, Wrap("charts", err))
		return
	}
	sendFile(w, contentTypePNG, "", &buf)
}
