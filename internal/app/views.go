package service

import (
	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/internal/domain/demand"
	"github.com/okian/lmi/internal/domain/reference"
	"github.com/okian/lmi/internal/domain/scoring"
)

// BenchmarkView pairs the scorecards with the sector structure of the same provinces.
type BenchmarkView struct {
	aggregate.BenchmarkReport
	Sectors []aggregate.SectorShare `json:"sectors"`
}

// ProfilesView is the supply-demand report plus each province's skill-gap radar.
type ProfilesView struct {
	scoring.SupplyDemandReport
	Radars map[string][]scoring.RadarAxis `json:"radars"`
}

// GTCIView is the talent competitiveness reference data.
type GTCIView struct {
	Subject        string                      `json:"subject"`
	Baseline       float64                     `json:"baseline"`
	Years          []int                       `json:"years"`
	Trends         []reference.CountryTrend    `json:"trends"`
	Weights        []reference.PillarWeight    `json:"weights"`
	Pillars        []reference.PillarScore     `json:"pillars"`
	Breakdown      []reference.PillarBreakdown `json:"breakdown"`
	GaugeThreshold float64                     `json:"gauge_threshold"`
}

// DemandView is the tracker report and the programs selectable for a mismatch view.
type DemandView struct {
	demand.Report
	Programs []string `json:"programs"`
}

// TrainingView is a filtered BLK directory with every province available to filter on.
type TrainingView struct {
	Provinces []string                   `json:"provinces"`
	Centers   []reference.TrainingCenter `json:"centers"`
}
