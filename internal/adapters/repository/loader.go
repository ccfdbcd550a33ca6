package repository

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/lmi/internal/domain/model"
)

// Dataset column names besides the indicators.
const (
	ColProvince = "province"
	ColYear     = "year"
	ColSemester = "semester"

	defaultEPRFactor = 0.95
)

// DefaultRequired is every catalog indicator except the employment-to-population
// ratio, which is synthesized when absent.
var DefaultRequired = func() []model.Indicator {
	out := make([]model.Indicator, 0, len(model.AllIndicators))
	for _, ind := range model.AllIndicators {
		if ind != model.EmploymentToPopulationRatio {
			out = append(out, ind)
		}
	}
	return out
}()

// Loader parses dataset CSV files into observations.
type Loader struct {
	required  []model.Indicator
	eprFactor float64
}

// NewLoader creates a loader requiring DefaultRequired.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		required:  DefaultRequired,
		eprFactor: defaultEPRFactor,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens path and parses it.
func (l *Loader) Load(ctx context.Context, path string) ([]model.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path) //nolint:gosec // dataset path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDataset, err)
	}
	defer func() { _ = f.Close() }()
	return l.Read(f)
}

// Read parses a dataset from r. Rows come back ordered by period then province.
func (l *Loader) Read(r io.Reader) ([]model.Observation, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// Cells are kept verbatim; "NA" is a value, not a missing marker.
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadCSV, df.Err)
	}

	have := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		have[n] = true
	}
	for _, col := range []string{ColProvince, ColYear, ColSemester} {
		if !have[col] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	for _, ind := range l.required {
		if !have[string(ind)] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ind)
		}
	}

	provinces := df.Col(ColProvince).Records()
	years, err := parseInts(df.Col(ColYear).Records(), ColYear)
	if err != nil {
		return nil, err
	}
	semesters, err := parseInts(df.Col(ColSemester).Records(), ColSemester)
	if err != nil {
		return nil, err
	}

	columns := make(map[model.Indicator][]float64)
	for _, ind := range model.AllIndicators {
		if !have[string(ind)] {
			continue
		}
		vals, err := parseFloats(df.Col(string(ind)).Records(), string(ind))
		if err != nil {
			return nil, err
		}
		columns[ind] = vals
	}
	if _, ok := columns[model.EmploymentToPopulationRatio]; !ok {
		if tpak, ok := columns[model.TPAK]; ok {
			epr := make([]float64, len(tpak))
			for i, v := range tpak {
				epr[i] = l.eprFactor * v
			}
			columns[model.EmploymentToPopulationRatio] = epr
		}
	}

	minYear := math.MaxInt
	for _, y := range years {
		minYear = min(minYear, y)
	}

	type key struct {
		province string
		year     int
		semester int
	}
	seen := make(map[key]int, len(provinces))
	out := make([]model.Observation, 0, len(provinces))
	for i, raw := range provinces {
		row := i + 2
		province := strings.TrimSpace(raw)
		if province == "" {
			return nil, fmt.Errorf("%w: row %d", ErrEmptyProvince, row)
		}
		k := key{province, years[i], semesters[i]}
		if first, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: %s %d/%d on rows %d and %d", ErrDuplicateObservation, province, years[i], semesters[i], first, row)
		}
		seen[k] = row

		ind := make(model.Indicators, len(columns))
		for name, vals := range columns {
			ind[name] = vals[i]
		}
		o, err := model.NewObservation(province, years[i], semesters[i], minYear, ind)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PeriodOrder != out[j].PeriodOrder {
			return out[i].PeriodOrder < out[j].PeriodOrder
		}
		return out[i].Province < out[j].Province
	})
	return out, nil
}

func parseInts(records []string, col string) ([]int, error) {
	out := make([]int, len(records))
	for i, s := range records {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q on row %d", ErrInvalidValue, col, s, i+2)
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(records []string, col string) ([]float64, error) {
	out := make([]float64, len(records))
	for i, s := range records {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s %q on row %d", ErrInvalidValue, col, s, i+2)
		}
		out[i] = v
	}
	return out, nil
}
