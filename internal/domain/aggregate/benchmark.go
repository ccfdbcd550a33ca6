package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/lmi/internal/domain/model"
)

// BenchmarkIndicators are compared across provinces and against the national mean.
var BenchmarkIndicators = []model.Indicator{
	model.TPAK,
	model.TPT,
	model.InformalEmploymentShare,
	model.UnderemploymentRate,
	model.WageGrowthRate,
	model.DigitalSkillsIndex,
}

// Scorecard is a province's latest KPIs and their gap to the national mean.
type Scorecard struct {
	Province string           `json:"province"`
	Values   model.Indicators `json:"values"`
	Deltas   model.Indicators `json:"deltas"`
}

// BenchmarkReport compares selected provinces in the latest period.
type BenchmarkReport struct {
	PeriodLabel string           `json:"period_label"`
	National    model.Indicators `json:"national"`
	Scorecards  []Scorecard      `json:"scorecards"`
}

// Benchmark builds scorecards for provinces. At least one province is required.
func Benchmark(obs []model.Observation, national []model.NationalPoint, provinces []string) (BenchmarkReport, error) {
	if len(provinces) == 0 {
		return BenchmarkReport{}, ErrNoProvinces
	}
	natLatest, err := Latest(national)
	if err != nil {
		return BenchmarkReport{}, err
	}
	snap, err := LatestSnapshot(obs)
	if err != nil {
		return BenchmarkReport{}, err
	}
	selected, err := selectProvinces(snap, provinces)
	if err != nil {
		return BenchmarkReport{}, err
	}

	nat := make(model.Indicators, len(BenchmarkIndicators))
	for _, ind := range BenchmarkIndicators {
		v, err := natLatest.Indicators.Get(ind)
		if err != nil {
			return BenchmarkReport{}, err
		}
		nat[ind] = v
	}

	report := BenchmarkReport{PeriodLabel: natLatest.PeriodLabel, National: nat}
	for i := range selected {
		card := Scorecard{
			Province: selected[i].Province,
			Values:   make(model.Indicators, len(BenchmarkIndicators)),
			Deltas:   make(model.Indicators, len(BenchmarkIndicators)),
		}
		for _, ind := range BenchmarkIndicators {
			v, err := selected[i].Indicators.Get(ind)
			if err != nil {
				return BenchmarkReport{}, err
			}
			card.Values[ind] = v
			card.Deltas[ind] = v - nat[ind]
		}
		report.Scorecards = append(report.Scorecards, card)
	}
	return report, nil
}

// SectorShare is a province's mean employment share per sector across all periods.
type SectorShare struct {
	Province    string  `json:"province"`
	Agriculture float64 `json:"employment_in_agriculture"`
	Industry    float64 `json:"employment_in_industry"`
	Services    float64 `json:"employment_in_services"`
}

// SectorStructure averages sector shares per province, ordered by industry
// share descending. Empty provinces selects all of them.
func SectorStructure(obs []model.Observation, provinces []string) ([]SectorShare, error) {
	rows, err := selectProvinces(obs, provinces)
	if err != nil {
		return nil, err
	}
	sectors := []model.Indicator{model.EmploymentInAgriculture, model.EmploymentInIndustry, model.EmploymentInServices}

	grouped := make(map[string][][]float64)
	for i := range rows {
		p := rows[i].Province
		if grouped[p] == nil {
			grouped[p] = make([][]float64, len(sectors))
		}
		for s, ind := range sectors {
			v, err := rows[i].Indicators.Get(ind)
			if err != nil {
				return nil, err
			}
			grouped[p][s] = append(grouped[p][s], v)
		}
	}

	out := make([]SectorShare, 0, len(grouped))
	for _, p := range Provinces(rows) {
		g := grouped[p]
		out = append(out, SectorShare{
			Province:    p,
			Agriculture: stat.Mean(g[0], nil),
			Industry:    stat.Mean(g[1], nil),
			Services:    stat.Mean(g[2], nil),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Industry > out[j].Industry })
	return out, nil
}
