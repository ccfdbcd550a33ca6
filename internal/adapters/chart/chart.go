// Package chart renders dashboard views as PNG images.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
	"github.com/okian/lmi/internal/domain/types"
)

// Chart names served by the API and written by the report CLI.
const (
	NationalTrendChart = "national-trend"
	MismatchGapChart   = "mismatch-gap"
	GTCIRankingChart   = "gtci-ranking"
)

// Names lists every chart in display order.
var Names = []string{NationalTrendChart, MismatchGapChart, GTCIRankingChart}

var (
	barColor       = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	highlightColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Renderer encodes plots as PNG at a fixed canvas size.
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// NewRenderer creates a 10x5 inch renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: 10 * vg.Inch, height: 5 * vg.Inch}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WritePNG renders p onto w.
func (r *Renderer) WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// NationalTrend plots the national mean of each indicator over time.
// With no indicators it plots TPT and underemployment.
func NationalTrend(national []model.NationalPoint, inds ...model.Indicator) (*plot.Plot, error) {
	if len(national) == 0 {
		return nil, fmt.Errorf("%w: empty national series", ErrNoData)
	}
	if len(inds) == 0 {
		inds = []model.Indicator{model.TPT, model.UnderemploymentRate}
	}

	p := plot.New()
	p.Title.Text = "Tren Nasional"
	p.X.Label.Text = "Periode"
	p.Y.Label.Text = "%"
	p.Add(plotter.NewGrid())

	ticks := make([]plot.Tick, len(national))
	for i, pt := range national {
		ticks[i] = plot.Tick{Value: float64(pt.PeriodOrder), Label: pt.PeriodLabel}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	for i, ind := range inds {
		xys := make(plotter.XYs, 0, len(national))
		for _, pt := range national {
			v, err := pt.Indicators.Get(ind)
			if err != nil {
				return nil, err
			}
			xys = append(xys, plotter.XY{X: float64(pt.PeriodOrder), Y: v})
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(reference.Label(ind), line)
	}
	p.Legend.Top = true
	return p, nil
}

// MismatchGap plots each province's demand minus supply index, in the given order.
func MismatchGap(profiles []model.ProvinceProfile) (*plot.Plot, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: no province profiles", ErrNoData)
	}
	values := make(plotter.Values, len(profiles))
	names := make([]string, len(profiles))
	for i, pr := range profiles {
		values[i] = pr.MismatchGap
		names[i] = pr.Province
	}

	p := plot.New()
	p.Title.Text = "Mismatch Gap (Demand - Supply)"
	p.Y.Label.Text = "Gap"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(10))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	rotateLabels(p)
	return p, nil
}

// GTCIRanking plots a peer ranking with subject's bar highlighted.
func GTCIRanking(ranking []types.CountryScore, subject string) (*plot.Plot, error) {
	if len(ranking) == 0 {
		return nil, fmt.Errorf("%w: empty ranking", ErrNoData)
	}
	peers := make(plotter.Values, len(ranking))
	own := make(plotter.Values, len(ranking))
	names := make([]string, len(ranking))
	for i, c := range ranking {
		names[i] = c.Country
		if c.Country == subject {
			own[i] = c.Score
			continue
		}
		peers[i] = c.Score
	}

	p := plot.New()
	p.Title.Text = "GTCI Peer Ranking"
	p.Y.Label.Text = "Skor"
	p.Add(plotter.NewGrid())

	w := vg.Points(24)
	for _, layer := range []struct {
		values plotter.Values
		color  color.Color
	}{{peers, barColor}, {own, highlightColor}} {
		bars, err := plotter.NewBarChart(layer.values, w)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		bars.Color = layer.color
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
	}
	p.NominalX(names...)
	rotateLabels(p)
	return p, nil
}

func rotateLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// Inputs carries the data every named chart is drawn from.
type Inputs struct {
	National []model.NationalPoint
	Profiles []model.ProvinceProfile
	Ranking  []types.CountryScore
	Subject  string
}

// Build draws the chart called name from in.
func Build(name string, in Inputs) (*plot.Plot, error) {
	switch name {
	case NationalTrendChart:
		return NationalTrend(in.National)
	case MismatchGapChart:
		return MismatchGap(in.Profiles)
	case GTCIRankingChart:
		return GTCIRanking(in.Ranking, in.Subject)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
}
