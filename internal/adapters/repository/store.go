// Package repository reads the labor-market dataset and memoizes it per file version.
package repository

import (
	"context"
	"time"

	"github.com/okian/lmi/internal/domain/model"
)

// Dataset is a parsed dataset file plus its national series. Callers treat it as read-only.
type Dataset struct {
	Path         string                `json:"path"`
	ModTime      time.Time             `json:"mod_time"`
	LoadedAt     time.Time             `json:"loaded_at"`
	Observations []model.Observation   `json:"observations"`
	National     []model.NationalPoint `json:"national"`
}

// Store provides access to versioned datasets.
type Store interface {
	// Get returns the dataset at path, parsing it only when the file changed.
	Get(ctx context.Context, path string) (*Dataset, error)
	// Invalidate drops every cached version of path.
	Invalidate(path string)
	// Reset drops the whole cache.
	Reset()
}
