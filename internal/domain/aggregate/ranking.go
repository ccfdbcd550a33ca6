package aggregate

import (
	"sort"

	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
)

const podiumSize = 5

// RankedProvince is a province's place on one indicator.
type RankedProvince struct {
	Rank     int     `json:"rank"`
	Province string  `json:"province"`
	Value    float64 `json:"value"`
}

// Ranking orders the latest snapshot best-first on one indicator.
type Ranking struct {
	Indicator    model.Indicator  `json:"indicator"`
	Label        string           `json:"label"`
	BetterHigher bool             `json:"better_higher"`
	PeriodLabel  string           `json:"period_label"`
	Ranked       []RankedProvince `json:"ranked"`
	Top          []RankedProvince `json:"top"`
	Bottom       []RankedProvince `json:"bottom"`
}

// RankProvinces ranks the latest snapshot on ind. Lower values rank first
// unless the indicator is better-higher. Ranked is truncated to limit when
// limit > 0; Top and Bottom always hold up to five provinces, Bottom worst-first.
func RankProvinces(obs []model.Observation, ind model.Indicator, limit int) (Ranking, error) {
	if _, err := model.ParseIndicator(string(ind)); err != nil {
		return Ranking{}, err
	}
	snap, err := LatestSnapshot(obs)
	if err != nil {
		return Ranking{}, err
	}

	higher := reference.BetterHigher(ind)
	rows := make([]RankedProvince, 0, len(snap))
	for i := range snap {
		v, err := snap[i].Indicators.Get(ind)
		if err != nil {
			return Ranking{}, err
		}
		rows = append(rows, RankedProvince{Province: snap[i].Province, Value: v})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if higher {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Value < rows[j].Value
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	n := min(podiumSize, len(rows))
	top := append([]RankedProvince(nil), rows[:n]...)
	bottom := make([]RankedProvince, 0, n)
	for i := len(rows) - 1; i >= len(rows)-n; i-- {
		bottom = append(bottom, rows[i])
	}

	ranked := rows
	if limit > 0 && limit < len(rows) {
		ranked = rows[:limit]
	}
	return Ranking{
		Indicator:    ind,
		Label:        reference.Label(ind),
		BetterHigher: higher,
		PeriodLabel:  snap[0].PeriodLabel,
		Ranked:       ranked,
		Top:          top,
		Bottom:       bottom,
	}, nil
}

// SeriesPoint is one period value of a province series.
type SeriesPoint struct {
	PeriodOrder int     `json:"period_order"`
	PeriodLabel string  `json:"period_label"`
	Value       float64 `json:"value"`
}

// ProvinceSeries is the time series of one indicator for one province.
type ProvinceSeries struct {
	Province string        `json:"province"`
	Points   []SeriesPoint `json:"points"`
}

// BuildProvinceSeries returns the per-province series of ind, provinces sorted
// by name and points in period order. Empty provinces selects all of them.
func BuildProvinceSeries(obs []model.Observation, ind model.Indicator, provinces []string) ([]ProvinceSeries, error) {
	if _, err := model.ParseIndicator(string(ind)); err != nil {
		return nil, err
	}
	rows, err := selectProvinces(obs, provinces)
	if err != nil {
		return nil, err
	}

	byProvince := make(map[string][]SeriesPoint)
	for i := range rows {
		v, err := rows[i].Indicators.Get(ind)
		if err != nil {
			return nil, err
		}
		byProvince[rows[i].Province] = append(byProvince[rows[i].Province], SeriesPoint{
			PeriodOrder: rows[i].PeriodOrder,
			PeriodLabel: rows[i].PeriodLabel,
			Value:       v,
		})
	}

	out := make([]ProvinceSeries, 0, len(byProvince))
	for _, p := range Provinces(rows) {
		pts := byProvince[p]
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].PeriodOrder < pts[j].PeriodOrder })
		out = append(out, ProvinceSeries{Province: p, Points: pts})
	}
	return out, nil
}
