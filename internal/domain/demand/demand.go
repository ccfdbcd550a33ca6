// Package demand builds the real-time demand tracker: synthetic vacancy and
// layoff pulses, skill momentum, curriculum mismatch and the decent-work
// scorecard.
package demand

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
)

// Trend shape constants.
const (
	defaultSeed        = 42
	defaultMonths      = 18
	emergingMonths     = 8
	emergingStep       = 3.0
	vacancyBase        = 200.0
	vacancySectorStep  = 20.0
	vacancyNoise       = 10.0
	vacancyFloor       = 50.0
	vacancyGrowth      = 0.01
	digitalGrowth      = 0.02
	layoffBase         = 80.0
	layoffSectorStep   = 10.0
	layoffNoise        = 5.0
	layoffFloor        = 10.0
	tourismLayoffDrift = 0.015
	digitalSector      = "Digital"
	tourismSector      = "Pariwisata"
)

// ErrUnknownProgram is returned for a vocational program with no mismatch data.
var ErrUnknownProgram = fmt.Errorf("%w: unknown vocational program", model.ErrLookup)

// SectorPoint is one sector's monthly count.
type SectorPoint struct {
	Date   time.Time `json:"date"`
	Sector string    `json:"sector"`
	Value  float64   `json:"value"`
}

// MonthlyTotal sums vacancies and layoffs over sectors for one month.
type MonthlyTotal struct {
	Date      time.Time `json:"date"`
	Vacancies float64   `json:"vacancies"`
	Layoffs   float64   `json:"layoffs"`
}

// EmergingPoint is one month of an emerging skill's growth index.
type EmergingPoint struct {
	Month       time.Time `json:"month"`
	Skill       string    `json:"skill"`
	GrowthIndex float64   `json:"growth_index"`
}

// Report is the tracker view.
type Report struct {
	Vacancies []SectorPoint           `json:"vacancies"`
	Layoffs   []SectorPoint           `json:"layoffs"`
	Totals    []MonthlyTotal          `json:"totals"`
	Skills    []reference.SkillDemand `json:"skills"`
	Emerging  []EmergingPoint         `json:"emerging"`
	Scorecard Scorecard               `json:"scorecard"`
}

// Tracker generates the synthetic demand pulse.
type Tracker struct {
	seed   int64
	months int
	start  time.Time
}

// NewTracker creates a tracker starting January 2024 over 18 months.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		seed:   defaultSeed,
		months: defaultMonths,
		start:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Months returns the first day of every tracked month.
func (t *Tracker) Months() []time.Time {
	out := make([]time.Time, t.months)
	for i := range out {
		out[i] = t.start.AddDate(0, i, 0)
	}
	return out
}

// Build generates every series of the tracker. The result depends only on the options.
func (t *Tracker) Build() Report {
	// One stream feeds both series, vacancies first.
	src := rand.NewPCG(uint64(t.seed), uint64(t.seed))
	vacNoise := distuv.Normal{Mu: 0, Sigma: vacancyNoise, Src: src}
	layNoise := distuv.Normal{Mu: 0, Sigma: layoffNoise, Src: src}
	months := t.Months()

	vac := make([]SectorPoint, 0, len(months)*len(reference.DemandSectors))
	for i, m := range months {
		for idx, o := range reference.VacancyOffsets {
			growth := vacancyGrowth
			if o.Sector == digitalSector {
				growth = digitalGrowth
			}
			v := (vacancyBase + vacancySectorStep*float64(idx) + vacNoise.Rand() + o.Offset) * (1 + growth*float64(i))
			vac = append(vac, SectorPoint{Date: m, Sector: o.Sector, Value: math.Max(vacancyFloor, v)})
		}
	}

	lay := make([]SectorPoint, 0, len(vac))
	for i, m := range months {
		for idx, o := range reference.LayoffOffsets {
			drift := 0.0
			if o.Sector == tourismSector {
				drift = tourismLayoffDrift
			}
			v := (layoffBase + layoffSectorStep*float64(idx) + layNoise.Rand() + o.Offset) * (1 + drift*float64(i))
			lay = append(lay, SectorPoint{Date: m, Sector: o.Sector, Value: math.Max(layoffFloor, v)})
		}
	}

	return Report{
		Vacancies: vac,
		Layoffs:   lay,
		Totals:    Totals(vac, lay),
		Skills:    SkillMomentum(reference.SkillDemandSnapshot),
		Emerging:  t.Emerging(),
		Scorecard: BuildScorecard(),
	}
}

// Totals sums vac and lay per month, in month order.
func Totals(vac, lay []SectorPoint) []MonthlyTotal {
	idx := make(map[time.Time]int)
	out := make([]MonthlyTotal, 0)
	at := func(d time.Time) *MonthlyTotal {
		i, ok := idx[d]
		if !ok {
			i = len(out)
			idx[d] = i
			out = append(out, MonthlyTotal{Date: d})
		}
		return &out[i]
	}
	for _, p := range vac {
		at(p.Date).Vacancies += p.Value
	}
	for _, p := range lay {
		at(p.Date).Layoffs += p.Value
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// SkillMomentum orders skills by month-on-month change, fastest first.
func SkillMomentum(skills []reference.SkillDemand) []reference.SkillDemand {
	out := append([]reference.SkillDemand(nil), skills...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MoMChange > out[j].MoMChange })
	return out
}

// Emerging returns the growth index of each emerging skill over eight months from the start.
func (t *Tracker) Emerging() []EmergingPoint {
	out := make([]EmergingPoint, 0, emergingMonths*len(reference.EmergingSkills))
	for i := 0; i < emergingMonths; i++ {
		m := t.start.AddDate(0, i, 0)
		for _, s := range reference.EmergingSkills {
			out = append(out, EmergingPoint{Month: m, Skill: s.Skill, GrowthIndex: s.Base + emergingStep*float64(i)})
		}
	}
	return out
}

// MismatchView contrasts a program's curriculum with what employers ask for.
type MismatchView struct {
	Program    string                 `json:"program"`
	Curriculum []string               `json:"curriculum"`
	Demand     []reference.SkillCount `json:"demand"`
	Uncovered  []string               `json:"uncovered"`
}

// Mismatch returns the curriculum gap of program, demand sorted by vacancies.
func Mismatch(program string) (MismatchView, error) {
	for _, p := range reference.VocationalMismatch {
		if p.Program != program {
			continue
		}
		taught := make(map[string]struct{}, len(p.Curriculum))
		for _, c := range p.Curriculum {
			taught[c] = struct{}{}
		}
		d := append([]reference.SkillCount(nil), p.Demand...)
		sort.SliceStable(d, func(i, j int) bool { return d[i].Vacancies > d[j].Vacancies })
		uncovered := make([]string, 0, len(d))
		for _, s := range d {
			if _, ok := taught[s.Skill]; !ok {
				uncovered = append(uncovered, s.Skill)
			}
		}
		return MismatchView{
			Program:    p.Program,
			Curriculum: append([]string(nil), p.Curriculum...),
			Demand:     d,
			Uncovered:  uncovered,
		}, nil
	}
	return MismatchView{}, fmt.Errorf("%w: %q", ErrUnknownProgram, program)
}

// Programs lists vocational programs in selector order.
func Programs() []string {
	out := make([]string, 0, len(reference.VocationalMismatch))
	for _, p := range reference.VocationalMismatch {
		out = append(out, p.Program)
	}
	return out
}

// Comparison pairs Indonesia's value with a peer's.
type Comparison struct {
	Value     float64 `json:"value"`
	Peer      string  `json:"peer"`
	PeerValue float64 `json:"peer_value"`
}

// Scorecard is the decent-work and productivity comparison.
type Scorecard struct {
	Productivity        Comparison `json:"productivity"`
	WageSalaried        Comparison `json:"wage_salaried"`
	FemaleLFP           Comparison `json:"female_lfp"`
	InformalWagePenalty Comparison `json:"informal_wage_penalty"`
}

// BuildScorecard compares Indonesia with the regional leader of each metric;
// the informal wage penalty is compared with the peer average.
func BuildScorecard() Scorecard {
	cmp := func(metric, peer string) Comparison {
		v, _ := reference.BenchmarkValue(metric, "Indonesia")
		p, _ := reference.BenchmarkValue(metric, peer)
		return Comparison{Value: v, Peer: peer, PeerValue: p}
	}

	penalties := make([]float64, 0, 3)
	for _, c := range []string{"Malaysia", "Thailand", "Vietnam"} {
		v, _ := reference.BenchmarkValue(reference.MetricInformalWagePenalty, c)
		penalties = append(penalties, v)
	}
	own, _ := reference.BenchmarkValue(reference.MetricInformalWagePenalty, "Indonesia")

	return Scorecard{
		Productivity:        cmp(reference.MetricProductivity, "Malaysia"),
		WageSalaried:        cmp(reference.MetricWageSalaried, "Malaysia"),
		FemaleLFP:           cmp(reference.MetricFemaleLFP, "Thailand"),
		InformalWagePenalty: Comparison{Value: own, Peer: "ASEAN", PeerValue: stat.Mean(penalties, nil)},
	}
}
