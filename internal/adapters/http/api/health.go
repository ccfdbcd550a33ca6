package api

import (
	"context"
	"net/http"

	"github.com/okian/lmi/internal/adapters/repository"
)

// DatasetProvider exposes the current dataset version.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*repository.Dataset, error)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	datasets DatasetProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(datasets DatasetProvider) *HealthHandler {
	return &HealthHandler{datasets: datasets}
}

type healthResponse struct {
	Status       string `json:"status"`
	Observations int    `json:"observations"`
	Error        string `json:"error,omitempty"`
}

// HandleHealth handles GET /healthz requests. It reports 503 while the
// dataset cannot be loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ds, err := h.datasets.Dataset(r.Context())
	if err != nil {
		writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
		return
	}
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Observations: len(ds.Observations)})
}
