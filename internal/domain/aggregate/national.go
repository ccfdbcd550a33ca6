// Package aggregate derives national and provincial views from the
// observation panel. Every function is pure; inputs are never mutated.
package aggregate

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/lmi/internal/domain/model"
)

// NationalIndicators is the fixed set averaged into the national series.
var NationalIndicators = []model.Indicator{
	model.TPAK,
	model.TPT,
	model.InformalEmploymentShare,
	model.UnderemploymentRate,
	model.YouthNEETRate,
	model.WageGrowthRate,
	model.DigitalSkillsIndex,
	model.FemaleLaborParticipationRate,
	model.EmploymentInAgriculture,
	model.EmploymentInIndustry,
	model.EmploymentInServices,
}

// ComputeNational averages NationalIndicators across provinces for every
// period present in obs, ascending by period order. Periods absent from the
// input are not filled. An indicator missing from every observation is left
// out of the series; one missing from only some rows is a data-format error.
func ComputeNational(obs []model.Observation) ([]model.NationalPoint, error) {
	if len(obs) == 0 {
		return []model.NationalPoint{}, nil
	}

	present := make([]model.Indicator, 0, len(NationalIndicators))
	for _, ind := range NationalIndicators {
		count := 0
		for i := range obs {
			if obs[i].Indicators.Has(ind) {
				count++
			}
		}
		switch {
		case count == len(obs):
			present = append(present, ind)
		case count > 0:
			return nil, fmt.Errorf("%w: %s on %d of %d rows", ErrPartialIndicator, ind, count, len(obs))
		}
	}

	groups := make(map[int][]*model.Observation)
	for i := range obs {
		o := &obs[i]
		groups[o.PeriodOrder] = append(groups[o.PeriodOrder], o)
	}
	orders := make([]int, 0, len(groups))
	for order := range groups {
		orders = append(orders, order)
	}
	sort.Ints(orders)

	out := make([]model.NationalPoint, 0, len(orders))
	values := make([]float64, 0, len(obs))
	for _, order := range orders {
		rows := groups[order]
		point := model.NationalPoint{
			PeriodOrder: order,
			PeriodLabel: rows[0].PeriodLabel,
			PeriodDate:  rows[0].PeriodDate,
			Provinces:   len(rows),
			Indicators:  make(model.Indicators, len(present)),
		}
		for _, ind := range present {
			values = values[:0]
			for _, r := range rows {
				values = append(values, r.Indicators[ind])
			}
			point.Indicators[ind] = stat.Mean(values, nil)
		}
		out = append(out, point)
	}
	return out, nil
}

// Latest returns the last point of a national series.
func Latest(national []model.NationalPoint) (model.NationalPoint, error) {
	if len(national) == 0 {
		return model.NationalPoint{}, model.ErrEmptyDataset
	}
	return national[len(national)-1], nil
}
