package scoring

import (
	"github.com/okian/lmi/internal/domain/reference"
	"github.com/okian/lmi/internal/domain/types"
)

// Option applies a configuration option to the GTCIProjector.
type Option func(*GTCIProjector)

// WithPeers replaces the peer table. Insertion order breaks score ties.
func WithPeers(peers []types.CountryScore) Option {
	return func(p *GTCIProjector) {
		if len(peers) > 0 {
			p.peers = append([]types.CountryScore(nil), peers...)
		}
	}
}

// WithWeights replaces the pillar weight table.
func WithWeights(weights []reference.PillarWeight) Option {
	return func(p *GTCIProjector) {
		if len(weights) > 0 {
			p.weights = append([]reference.PillarWeight(nil), weights...)
		}
	}
}

// WithSubject sets the country being projected.
func WithSubject(country string) Option {
	return func(p *GTCIProjector) {
		if country != "" {
			p.subject = country
		}
	}
}

// WithPassThrough sets the share of the weighted pillar delta that reaches the composite.
func WithPassThrough(factor float64) Option {
	return func(p *GTCIProjector) {
		if factor > 0 {
			p.passThrough = factor
		}
	}
}
