// Package scoring computes relative composites over the latest provincial
// snapshot, the GTCI policy-lever projection and salary estimates.
package scoring

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/internal/domain/model"
)

// Composite weights.
const (
	supplyTPAKWeight     = 0.4
	supplyFemaleWeight   = 0.3
	supplyUnderempWeight = 0.3
	demandTPTWeight      = 0.4
	demandWageWeight     = 0.3
	demandDigitalWeight  = 0.3
	focusSize            = 8
	neutralScore         = 0.5
)

// profileIndicators must be present on every latest-period row.
var profileIndicators = []model.Indicator{
	model.TPAK,
	model.TPT,
	model.UnderemploymentRate,
	model.WageGrowthRate,
	model.DigitalSkillsIndex,
	model.FemaleLaborParticipationRate,
}

// Normalize min-max scales values into [0, 1]. A constant input maps every
// element to 0.5 and an empty input yields an empty slice.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		for i := range out {
			out[i] = neutralScore
		}
		return out
	}
	span := hi - lo
	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out
}

// SupplyDemandProfiles scores every province of the latest period. Indices
// are relative to that snapshot and not comparable across datasets.
func SupplyDemandProfiles(obs []model.Observation) ([]model.ProvinceProfile, error) {
	snap, err := aggregate.LatestSnapshot(obs)
	if err != nil {
		return nil, err
	}

	cols := make(map[model.Indicator][]float64, len(profileIndicators))
	for _, ind := range profileIndicators {
		col := make([]float64, len(snap))
		for i := range snap {
			v, err := snap[i].Indicators.Get(ind)
			if err != nil {
				return nil, err
			}
			col[i] = v
		}
		cols[ind] = col
	}

	nTPAK := Normalize(cols[model.TPAK])
	nFemale := Normalize(cols[model.FemaleLaborParticipationRate])
	nUnder := Normalize(cols[model.UnderemploymentRate])
	nTPT := Normalize(cols[model.TPT])
	nWage := Normalize(cols[model.WageGrowthRate])
	nDigital := Normalize(cols[model.DigitalSkillsIndex])

	out := make([]model.ProvinceProfile, len(snap))
	for i := range snap {
		supply := supplyTPAKWeight*nTPAK[i] + supplyFemaleWeight*nFemale[i] + supplyUnderempWeight*(1-nUnder[i])
		demand := demandTPTWeight*(1-nTPT[i]) + demandWageWeight*nWage[i] + demandDigitalWeight*nDigital[i]
		out[i] = model.ProvinceProfile{
			Province:    snap[i].Province,
			PeriodOrder: snap[i].PeriodOrder,
			PeriodLabel: snap[i].PeriodLabel,
			Indicators:  snap[i].Indicators.Clone(),
			SupplyIndex: supply,
			DemandIndex: demand,
			MismatchGap: demand - supply,
		}
	}
	return out, nil
}

// SupplyDemandReport is the supply-demand view of the latest period.
type SupplyDemandReport struct {
	PeriodLabel    string                  `json:"period_label"`
	NationalSupply float64                 `json:"national_supply"`
	NationalDemand float64                 `json:"national_demand"`
	Profiles       []model.ProvinceProfile `json:"profiles"`
	TopFocus       []string                `json:"top_focus"`
	BottomFocus    []string                `json:"bottom_focus"`
	Sectors        []aggregate.SectorShare `json:"sectors"`
}

// BuildSupplyDemandReport orders profiles by gap descending and picks the
// eight largest and eight smallest gaps as focus provinces, whose sector
// structure is averaged over the whole panel.
func BuildSupplyDemandReport(obs []model.Observation) (SupplyDemandReport, error) {
	profiles, err := SupplyDemandProfiles(obs)
	if err != nil {
		return SupplyDemandReport{}, err
	}
	sort.SliceStable(profiles, func(i, j int) bool { return profiles[i].MismatchGap > profiles[j].MismatchGap })

	supply := make([]float64, len(profiles))
	demand := make([]float64, len(profiles))
	for i, p := range profiles {
		supply[i] = p.SupplyIndex
		demand[i] = p.DemandIndex
	}

	n := min(focusSize, len(profiles))
	top := make([]string, 0, n)
	for _, p := range profiles[:n] {
		top = append(top, p.Province)
	}
	bottom := make([]string, 0, n)
	for _, p := range profiles[len(profiles)-n:] {
		bottom = append(bottom, p.Province)
	}

	sectors, err := aggregate.SectorStructure(obs, dedupe(append(append([]string{}, top...), bottom...)))
	if err != nil {
		return SupplyDemandReport{}, err
	}

	return SupplyDemandReport{
		PeriodLabel:    profiles[0].PeriodLabel,
		NationalSupply: stat.Mean(supply, nil),
		NationalDemand: stat.Mean(demand, nil),
		Profiles:       profiles,
		TopFocus:       top,
		BottomFocus:    bottom,
		Sectors:        sectors,
	}, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// RadarAxis is one spoke of the skill-gap radar.
type RadarAxis struct {
	Component string  `json:"component"`
	Value     float64 `json:"value"`
}

// SkillGapRadar spreads a profile over comparable 0-100 axes. Underemployment
// is inverted and the digital index rescaled.
func SkillGapRadar(p model.ProvinceProfile) []RadarAxis {
	in := p.Indicators
	return []RadarAxis{
		{"TPAK", in[model.TPAK]},
		{"Partisipasi Kerja Perempuan", in[model.FemaleLaborParticipationRate]},
		{"Underemployment (dibalik)", 100 - in[model.UnderemploymentRate]},
		{"Wage Growth", in[model.WageGrowthRate]},
		{"Digital Skills", in[model.DigitalSkillsIndex] * 100},
	}
}
