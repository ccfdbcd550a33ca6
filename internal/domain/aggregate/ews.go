package aggregate

import (
	"fmt"
	"sort"

	"github.com/okian/lmi/internal/domain/model"
)

// Early-warning threshold bounds in percentage points.
const (
	DefaultEWSThreshold = 1.0
	MinEWSThreshold     = 0.5
	MaxEWSThreshold     = 3.0
)

// Pulse is a province's period-on-period movement on the leading indicators.
type Pulse struct {
	Province              string  `json:"province"`
	TPTPrev               float64 `json:"tpt_prev"`
	TPTLatest             float64 `json:"tpt_latest"`
	TPTChange             float64 `json:"tpt_change"`
	UnderemploymentLatest float64 `json:"underemployment_latest"`
	UnderemploymentChange float64 `json:"underemployment_change"`
	WagePulse             float64 `json:"wage_pulse"`
	DigitalSkillsLatest   float64 `json:"digital_skills_latest"`
}

// EWSReport is the early-warning view of the latest two periods.
type EWSReport struct {
	LatestLabel   string  `json:"latest_label"`
	PreviousLabel string  `json:"previous_label"`
	Threshold     float64 `json:"threshold"`
	Alerts        []Pulse `json:"alerts"`
	Pulse         []Pulse `json:"pulse"`
	VacancyIndex  float64 `json:"vacancy_index"`
}

// ValidateThreshold checks t is within the supported alert range.
func ValidateThreshold(t float64) error {
	if t < MinEWSThreshold || t > MaxEWSThreshold {
		return fmt.Errorf("%w: got %.2f", ErrThresholdRange, t)
	}
	return nil
}

// EarlyWarning compares each province's latest row with the period before.
// Provinces whose TPT rose by at least threshold are alerts, largest rise
// first. Provinces missing either period are skipped.
func EarlyWarning(obs []model.Observation, national []model.NationalPoint, threshold float64) (EWSReport, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return EWSReport{}, err
	}
	latestOrder, err := LatestPeriod(obs)
	if err != nil {
		return EWSReport{}, err
	}
	latest := Snapshot(obs, latestOrder)
	prev := Snapshot(obs, latestOrder-1)
	if len(prev) == 0 {
		return EWSReport{}, fmt.Errorf("%w: no period before %s", ErrInsufficientHistory, latest[0].PeriodLabel)
	}
	if len(national) < 2 {
		return EWSReport{}, fmt.Errorf("%w: national series has %d periods", ErrInsufficientHistory, len(national))
	}

	prevByProvince := make(map[string]model.Indicators, len(prev))
	for i := range prev {
		prevByProvince[prev[i].Province] = prev[i].Indicators
	}

	report := EWSReport{
		LatestLabel:   latest[0].PeriodLabel,
		PreviousLabel: prev[0].PeriodLabel,
		Threshold:     threshold,
		Alerts:        []Pulse{},
		Pulse:         make([]Pulse, 0, len(latest)),
	}
	for i := range latest {
		before, ok := prevByProvince[latest[i].Province]
		if !ok {
			continue
		}
		p, err := pulse(latest[i].Province, latest[i].Indicators, before)
		if err != nil {
			return EWSReport{}, err
		}
		report.Pulse = append(report.Pulse, p)
		if p.TPTChange >= threshold {
			report.Alerts = append(report.Alerts, p)
		}
	}
	sort.SliceStable(report.Alerts, func(i, j int) bool { return report.Alerts[i].TPTChange > report.Alerts[j].TPTChange })

	wNow, err := national[len(national)-1].Indicators.Get(model.WageGrowthRate)
	if err != nil {
		return EWSReport{}, err
	}
	wPrev, err := national[len(national)-2].Indicators.Get(model.WageGrowthRate)
	if err != nil {
		return EWSReport{}, err
	}
	report.VacancyIndex = 100 + (wNow-wPrev)*5
	return report, nil
}

func pulse(province string, now, before model.Indicators) (Pulse, error) {
	need := []model.Indicator{model.TPT, model.UnderemploymentRate, model.WageGrowthRate, model.DigitalSkillsIndex}
	for _, ind := range need {
		if !now.Has(ind) {
			return Pulse{}, fmt.Errorf("%w: %s for %s", model.ErrMissingIndicator, ind, province)
		}
		if ind != model.DigitalSkillsIndex && !before.Has(ind) {
			return Pulse{}, fmt.Errorf("%w: %s for %s", model.ErrMissingIndicator, ind, province)
		}
	}
	return Pulse{
		Province:              province,
		TPTPrev:               before[model.TPT],
		TPTLatest:             now[model.TPT],
		TPTChange:             now[model.TPT] - before[model.TPT],
		UnderemploymentLatest: now[model.UnderemploymentRate],
		UnderemploymentChange: now[model.UnderemploymentRate] - before[model.UnderemploymentRate],
		WagePulse:             now[model.WageGrowthRate] - before[model.WageGrowthRate],
		DigitalSkillsLatest:   now[model.DigitalSkillsIndex],
	}, nil
}
