// Package readiness maps provincial digital infrastructure against digital
// literacy and flags both kinds of mismatch.
package readiness

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
)

// Mismatch thresholds on the 0-100 IMDI and literacy scales.
const (
	wiredInfraMin    = 70.0
	unskilledLitMax  = 60.0
	unwiredInfraMax  = 60.0
	skilledLitMin    = 70.0
	radiusMultiplier = 1200.0
)

// NationalSeries names the table-average series of a radar.
const NationalSeries = "Rata-rata Nasional"

// Point is one province marker on the readiness map.
type Point struct {
	reference.DigitalReadiness
	Radius float64 `json:"radius"`
}

// Mismatch is a province whose infrastructure and literacy diverge.
type Mismatch struct {
	Province        string  `json:"province"`
	Infrastructure  float64 `json:"imdi_infrastructure"`
	DigitalLiteracy float64 `json:"digital_literacy"`
}

// Report is the full readiness map view.
type Report struct {
	Points         []Point    `json:"points"`
	WiredUnskilled []Mismatch `json:"wired_unskilled"`
	SkilledUnwired []Mismatch `json:"skilled_unwired"`
}

// Build derives the map view of rows, keeping row order.
func Build(rows []reference.DigitalReadiness) Report {
	rep := Report{
		Points:         make([]Point, 0, len(rows)),
		WiredUnskilled: []Mismatch{},
		SkilledUnwired: []Mismatch{},
	}
	for _, r := range rows {
		rep.Points = append(rep.Points, Point{
			DigitalReadiness: r,
			Radius:           (r.IMDIInfrastructure + r.IMDIEmpowerment) * radiusMultiplier,
		})
		m := Mismatch{Province: r.Province, Infrastructure: r.IMDIInfrastructure, DigitalLiteracy: r.DigitalLiteracy}
		if r.IMDIInfrastructure >= wiredInfraMin && r.DigitalLiteracy <= unskilledLitMax {
			rep.WiredUnskilled = append(rep.WiredUnskilled, m)
		}
		if r.IMDIInfrastructure <= unwiredInfraMax && r.DigitalLiteracy >= skilledLitMin {
			rep.SkilledUnwired = append(rep.SkilledUnwired, m)
		}
	}
	return rep
}

// RadarSeries is one closed polygon of a literacy radar.
type RadarSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Radar compares a province's literacy pillars with the table average.
type Radar struct {
	Axes   []string      `json:"axes"`
	Series []RadarSeries `json:"series"`
}

// RadarAxes are the literacy pillars in display order.
var RadarAxes = []string{"Skills", "Ethics", "Culture", "Safety"}

func pillars(r reference.DigitalReadiness) []float64 {
	return []float64{r.PillarSkills, r.PillarEthics, r.PillarCulture, r.PillarSafety}
}

// BuildRadar returns the radar of province within rows.
func BuildRadar(rows []reference.DigitalReadiness, province string) (Radar, error) {
	var (
		found bool
		self  []float64
	)
	cols := make([][]float64, len(RadarAxes))
	for _, r := range rows {
		vals := pillars(r)
		for i, v := range vals {
			cols[i] = append(cols[i], v)
		}
		if r.Province == province {
			found = true
			self = vals
		}
	}
	if !found {
		return Radar{}, fmt.Errorf("%w: %q has no readiness data", model.ErrUnknownProvince, province)
	}

	avg := make([]float64, len(RadarAxes))
	for i := range cols {
		avg[i] = stat.Mean(cols[i], nil)
	}
	return Radar{
		Axes: RadarAxes,
		Series: []RadarSeries{
			{Name: province, Values: self},
			{Name: NationalSeries, Values: avg},
		},
	}, nil
}
