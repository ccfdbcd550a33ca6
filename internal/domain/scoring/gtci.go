package scoring

import (
	"fmt"
	"sort"

	"github.com/okian/lmi/internal/domain/reference"
	"github.com/okian/lmi/internal/domain/types"
)

const defaultPassThrough = 0.6

// GTCIProjector simulates the composite score and peer rank of a country
// after pillar improvements.
type GTCIProjector struct {
	subject     string
	passThrough float64
	weights     []reference.PillarWeight
	peers       []types.CountryScore
}

// NewGTCIProjector creates a projector over the reference GTCI tables.
func NewGTCIProjector(opts ...Option) *GTCIProjector {
	p := &GTCIProjector{
		subject:     reference.GTCISubject,
		passThrough: defaultPassThrough,
		weights:     reference.GTCIWeights,
		peers:       reference.PeerBase(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Baseline returns the subject's current score, or 0 when it is not a peer.
func (p *GTCIProjector) Baseline() float64 {
	for _, c := range p.peers {
		if c.Country == p.subject {
			return c.Score
		}
	}
	return 0
}

// Project applies improvements (pillar name to points) to the subject.
// Pillars not named contribute nothing; unknown names are rejected.
// Ranking is descending by score with ties kept in peer order.
func (p *GTCIProjector) Project(improvements map[string]float64) (types.Projection, error) {
	weightOf := make(map[string]float64, len(p.weights))
	for _, w := range p.weights {
		weightOf[string(w.Pillar)] = w.Weight
	}
	for name := range improvements {
		if _, ok := weightOf[name]; !ok {
			return types.Projection{}, fmt.Errorf("%w: %q", ErrUnknownPillar, name)
		}
	}

	var delta float64
	for _, w := range p.weights {
		delta += w.Weight * improvements[string(w.Pillar)]
	}
	baseline := p.Baseline()
	projected := baseline + p.passThrough*delta

	ranking := make([]types.CountryScore, len(p.peers))
	copy(ranking, p.peers)
	for i := range ranking {
		if ranking[i].Country == p.subject {
			ranking[i].Score = projected
		}
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Score > ranking[j].Score })

	rank := len(ranking) + 1
	for i, c := range ranking {
		if c.Country == p.subject {
			rank = i + 1
			break
		}
	}

	return types.Projection{
		Country:       p.subject,
		Baseline:      baseline,
		WeightedDelta: delta,
		Projected:     projected,
		Rank:          rank,
		Ranking:       ranking,
	}, nil
}
