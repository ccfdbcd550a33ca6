package aggregate

import (
	"fmt"

	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
)

// Card is one headline figure with its comparison.
type Card struct {
	Indicator      model.Indicator `json:"indicator"`
	Title          string          `json:"title"`
	Value          float64         `json:"value"`
	Reference      float64         `json:"reference"`
	ReferenceLabel string          `json:"reference_label"`
	Delta          string          `json:"delta"`
}

// Overview summarises the national series into the macro headline cards.
type Overview struct {
	PeriodLabel string `json:"period_label"`
	Cards       []Card `json:"cards"`
}

// BuildOverview compares the latest national TPT with its peak, and TPAK,
// underemployment and informality with the first period.
func BuildOverview(national []model.NationalPoint) (Overview, error) {
	latest, err := Latest(national)
	if err != nil {
		return Overview{}, err
	}
	first := national[0]

	peak := national[0]
	for _, p := range national[1:] {
		if p.Indicators[model.TPT] > peak.Indicators[model.TPT] {
			peak = p
		}
	}

	specs := []struct {
		ind   model.Indicator
		title string
		ref   model.NationalPoint
	}{
		{model.TPT, "TPT Nasional", peak},
		{model.TPAK, "TPAK Nasional", first},
		{model.UnderemploymentRate, "Underemployment", first},
		{model.InformalEmploymentShare, "Informality", first},
	}

	out := Overview{PeriodLabel: latest.PeriodLabel, Cards: make([]Card, 0, len(specs))}
	for _, s := range specs {
		v, err := latest.Indicators.Get(s.ind)
		if err != nil {
			return Overview{}, err
		}
		r, err := s.ref.Indicators.Get(s.ind)
		if err != nil {
			return Overview{}, err
		}
		out.Cards = append(out.Cards, Card{
			Indicator:      s.ind,
			Title:          s.title,
			Value:          v,
			Reference:      r,
			ReferenceLabel: s.ref.PeriodLabel,
			Delta:          HighlightDelta(v, r),
		})
	}
	return out, nil
}

// Gauge tracks a national indicator against its RPJMN goal.
type Gauge struct {
	Indicator model.Indicator `json:"indicator"`
	Label     string          `json:"label"`
	Value     float64         `json:"value"`
	Reference float64         `json:"reference"`
	Delta     float64         `json:"delta"`
	Target    float64         `json:"target"`
	GaugeMax  float64         `json:"gauge_max"`
}

// PolicyTracker builds one gauge per RPJMN target from the latest national
// value, referenced against the first period.
func PolicyTracker(national []model.NationalPoint) ([]Gauge, error) {
	latest, err := Latest(national)
	if err != nil {
		return nil, err
	}
	first := national[0]

	out := make([]Gauge, 0, len(reference.RPJMNTargets))
	for _, t := range reference.RPJMNTargets {
		v, err := latest.Indicators.Get(t.Indicator)
		if err != nil {
			return nil, fmt.Errorf("policy tracker: %w", err)
		}
		r, err := first.Indicators.Get(t.Indicator)
		if err != nil {
			return nil, fmt.Errorf("policy tracker: %w", err)
		}
		out = append(out, Gauge{
			Indicator: t.Indicator,
			Label:     reference.Label(t.Indicator),
			Value:     v,
			Reference: r,
			Delta:     v - r,
			Target:    t.Value,
			GaugeMax:  max(t.Value*1.2, v*1.1+1),
		})
	}
	return out, nil
}

// PeerBenchmark puts the latest national female participation and digital
// skills next to the international peers. The subject comes first.
func PeerBenchmark(national []model.NationalPoint) ([]reference.PeerPosition, error) {
	latest, err := Latest(national)
	if err != nil {
		return nil, err
	}
	female, err := latest.Indicators.Get(model.FemaleLaborParticipationRate)
	if err != nil {
		return nil, fmt.Errorf("peer benchmark: %w", err)
	}
	digital, err := latest.Indicators.Get(model.DigitalSkillsIndex)
	if err != nil {
		return nil, fmt.Errorf("peer benchmark: %w", err)
	}

	subject := reference.BenchmarkSubject
	subject.FemaleParticipation = female
	subject.DigitalSkills = digital

	out := make([]reference.PeerPosition, 0, len(reference.InternationalPeers)+1)
	out = append(out, subject)
	return append(out, reference.InternationalPeers...), nil
}

// PolicyLab is the RPJMN tracker with its international benchmark.
type PolicyLab struct {
	PeriodLabel string                   `json:"period_label"`
	Gauges      []Gauge                  `json:"gauges"`
	Benchmark   []reference.PeerPosition `json:"benchmark"`
}

// BuildPolicyLab combines PolicyTracker and PeerBenchmark for the latest period.
func BuildPolicyLab(national []model.NationalPoint) (PolicyLab, error) {
	gauges, err := PolicyTracker(national)
	if err != nil {
		return PolicyLab{}, err
	}
	bench, err := PeerBenchmark(national)
	if err != nil {
		return PolicyLab{}, err
	}
	return PolicyLab{
		PeriodLabel: national[len(national)-1].PeriodLabel,
		Gauges:      gauges,
		Benchmark:   bench,
	}, nil
}
