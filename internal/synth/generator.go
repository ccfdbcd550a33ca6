// Package synth generates the synthetic province panel the dashboard runs on.
package synth

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/okian/lmi/internal/adapters/export"
	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/pkg/logger"
)

// Provinces are the 34 provinces of the 2020 administrative map.
var Provinces = []string{
	"Aceh", "Sumatera Utara", "Sumatera Barat", "Riau", "Jambi", "Sumatera Selatan",
	"Bengkulu", "Lampung", "Kepulauan Bangka Belitung", "Kepulauan Riau", "DKI Jakarta",
	"Jawa Barat", "Jawa Tengah", "DI Yogyakarta", "Jawa Timur", "Banten", "Bali",
	"Nusa Tenggara Barat", "Nusa Tenggara Timur", "Kalimantan Barat", "Kalimantan Tengah",
	"Kalimantan Selatan", "Kalimantan Timur", "Kalimantan Utara", "Sulawesi Utara",
	"Sulawesi Tengah", "Sulawesi Selatan", "Sulawesi Tenggara", "Gorontalo",
	"Sulawesi Barat", "Maluku", "Maluku Utara", "Papua Barat", "Papua",
}

// Defaults and the pandemic shock period.
const (
	DefaultSeed      = 42
	DefaultStartYear = 2020
	DefaultEndYear   = 2024
	defaultWorkers   = 4

	shockYear     = 2020
	shockSemester = 2
	shockDecay    = 0.5
	seedStride    = 7919
	urbanProvince = "DKI Jakarta"
)

// Generator produces a seeded, deterministic panel of observations.
type Generator struct {
	seed      int64
	startYear int
	endYear   int
	provinces []string
	workers   int
}

// NewGenerator creates a generator over every province from 2020 to 2024.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		seed:      DefaultSeed,
		startYear: DefaultStartYear,
		endYear:   DefaultEndYear,
		provinces: Provinces,
		workers:   defaultWorkers,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns one observation per province and half-year, ordered by
// period then province. The output depends only on the options.
func (g *Generator) Generate(ctx context.Context) ([]model.Observation, error) {
	if g.endYear < g.startYear {
		return nil, fmt.Errorf("%w: %d..%d", ErrYearRange, g.startYear, g.endYear)
	}
	if len(g.provinces) == 0 {
		return nil, ErrNoProvinces
	}
	periods := (g.endYear - g.startYear + 1) * 2
	logger.Get().Info(ctx, "generating synthetic panel",
		logger.Int("provinces", len(g.provinces)),
		logger.Int("periods", periods),
		logger.Any("seed", g.seed))

	results := make([][]model.Observation, len(g.provinces))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, name := range g.provinces {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := uint64(g.seed + int64(i)*seedStride)
			rows, err := g.province(rand.NewPCG(seed, seed), name)
			if err != nil {
				return fmt.Errorf("province %s: %w", name, err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.Observation, 0, len(g.provinces)*periods)
	for _, rows := range results {
		out = append(out, rows...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PeriodOrder != out[j].PeriodOrder {
			return out[i].PeriodOrder < out[j].PeriodOrder
		}
		return out[i].Province < out[j].Province
	})
	return out, nil
}

type profile struct {
	tpak, tpt, informal, under, neet, female, wage, mismatch, digital, agri, industry, hours float64
}

func baseProfile(src rand.Source, province string) profile {
	u := func(lo, hi float64) float64 { return distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand() }
	p := profile{
		tpak:     u(62, 72),
		tpt:      u(3, 8.5),
		informal: u(40, 80),
		under:    u(5, 12),
		neet:     u(15, 28),
		female:   u(45, 60),
		wage:     u(1, 6),
		mismatch: u(0.3, 0.6),
		digital:  u(0.3, 0.65),
		agri:     u(10, 55),
		industry: u(8, 30),
		hours:    u(38, 44),
	}
	if province == urbanProvince {
		p.agri = u(0.5, 2)
		p.digital = u(0.75, 0.85)
		p.informal = u(30, 40)
	}
	return p
}

func (g *Generator) province(src rand.Source, name string) ([]model.Observation, error) {
	base := baseProfile(src, name)
	shockOrder := model.PeriodOrder(shockYear, shockSemester, g.startYear)
	hasShock := g.startYear <= shockYear && shockYear <= g.endYear

	out := make([]model.Observation, 0, (g.endYear-g.startYear+1)*2)
	for year := g.startYear; year <= g.endYear; year++ {
		for sem := 1; sem <= 2; sem++ {
			order := model.PeriodOrder(year, sem, g.startYear)
			shock := 0.0
			if hasShock && order >= shockOrder {
				shock = math.Pow(shockDecay, float64(order-shockOrder))
			}
			o, err := model.NewObservation(name, year, sem, g.startYear, g.indicators(src, base, float64(order), shock))
			if err != nil {
				return nil, err
			}
			out = append(out, o)
		}
	}
	return out, nil
}

func (g *Generator) indicators(src rand.Source, b profile, t, shock float64) model.Indicators {
	n := func(sd float64) float64 { return distuv.Normal{Mu: 0, Sigma: sd, Src: src}.Rand() }

	agri := clamp(b.agri-0.3*t+n(0.4), 0.2, 70)
	industry := clamp(b.industry+0.1*t+n(0.3), 5, 35)
	return model.Indicators{
		model.TPAK:                         pct(b.tpak + 0.1*t - 1.2*shock + n(0.4)),
		model.TPT:                          pct(b.tpt - 0.08*t + 2.0*shock + n(0.25)),
		model.InformalEmploymentShare:      pct(b.informal - 0.2*t + 1.5*shock + n(0.5)),
		model.UnderemploymentRate:          pct(b.under - 0.1*t + 3.0*shock + n(0.3)),
		model.YouthNEETRate:                pct(b.neet - 0.15*t + 2.5*shock + n(0.4)),
		model.FemaleLaborParticipationRate: pct(b.female + 0.15*t - 1.0*shock + n(0.4)),
		model.WageGrowthRate:               round(b.wage+0.05*t-3.0*shock+n(0.3), 2),
		model.EducationMismatchIndex:       round(clamp(b.mismatch-0.004*t+n(0.01), 0, 1), 3),
		model.DigitalSkillsIndex:           round(clamp(b.digital+0.015*t+n(0.01), 0, 1), 3),
		model.EmploymentInAgriculture:      round(agri, 2),
		model.EmploymentInIndustry:         round(industry, 2),
		model.EmploymentInServices:         round(100-round(agri, 2)-round(industry, 2), 2),
		model.AverageWorkingHoursPerWeek:   round(b.hours-2.5*shock+n(0.3), 2),
	}
}

func pct(v float64) float64 { return round(clamp(v, 0, 100), 2) }

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// WriteCSV generates the panel and writes it onto w in the loader's column
// layout. It returns the number of rows written.
func (g *Generator) WriteCSV(ctx context.Context, w io.Writer) (int, error) {
	obs, err := g.Generate(ctx)
	if err != nil {
		return 0, err
	}
	if err := export.WriteObservationsCSV(w, obs); err != nil {
		return 0, err
	}
	return len(obs), nil
}
