package repository

import (
	"os"

	"github.com/okian/lmi/internal/domain/model"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithRequiredIndicators replaces the indicator columns a dataset must carry.
func WithRequiredIndicators(inds ...model.Indicator) Option {
	return func(l *Loader) {
		if len(inds) > 0 {
			l.required = append([]model.Indicator(nil), inds...)
		}
	}
}

// WithEmploymentRatioFactor sets the TPAK multiplier used when the
// employment-to-population column is absent.
func WithEmploymentRatioFactor(f float64) Option {
	return func(l *Loader) {
		if f > 0 {
			l.eprFactor = f
		}
	}
}

// StoreOption applies a configuration option to the CachedStore.
type StoreOption func(*CachedStore)

// WithLoader sets the loader used on cache misses.
func WithLoader(l *Loader) StoreOption {
	return func(s *CachedStore) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithStat replaces the file stat used to build cache keys.
func WithStat(stat func(string) (os.FileInfo, error)) StoreOption {
	return func(s *CachedStore) {
		if stat != nil {
			s.stat = stat
		}
	}
}
