package scoring_test

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/lmi/internal/domain/model"
	scoring "github.com/okian/lmi/internal/domain/scoring"
	"github.com/okian/lmi/internal/domain/types"
)

func TestGTCIProjector(t *testing.T) {
	convey.Convey("Given the reference projector", t, func() {
		p := scoring.NewGTCIProjector()

		convey.Convey("When no improvements are applied", func() {
			proj, err := p.Project(nil)

			convey.Convey("Then the baseline and current rank are reproduced", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(proj.Baseline, convey.ShouldEqual, 55.2)
				convey.So(proj.Projected, convey.ShouldEqual, 55.2)
				convey.So(proj.Rank, convey.ShouldEqual, 6)
				convey.So(proj.Ranking[0].Country, convey.ShouldEqual, "Singapore")
				convey.So(len(proj.Ranking), convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When every pillar gains ten points", func() {
			proj, err := p.Project(map[string]float64{
				"Enable": 10, "Attract": 10, "Grow": 10, "Retain": 10, "VT Skills": 10, "Global Knowledge": 10,
			})

			convey.Convey("Then the composite moves by 0.6 of the weighted delta", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(proj.WeightedDelta, convey.ShouldAlmostEqual, 10, 1e-9)
				convey.So(proj.Projected, convey.ShouldAlmostEqual, 61.2, 1e-9)
				convey.So(proj.Rank, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When a single pillar improves", func() {
			lo, _ := p.Project(map[string]float64{"VT Skills": 2})
			hi, _ := p.Project(map[string]float64{"VT Skills": 5})

			convey.Convey("Then the projection is non-decreasing in that pillar", func() {
				convey.So(hi.Projected, convey.ShouldBeGreaterThan, lo.Projected)
				convey.So(lo.Projected, convey.ShouldAlmostEqual, 55.2+0.6*0.17*2, 1e-9)
			})
		})

		convey.Convey("When a pillar regresses", func() {
			proj, err := p.Project(map[string]float64{"Grow": -3})
			convey.So(err, convey.ShouldBeNil)
			convey.So(proj.Projected, convey.ShouldBeLessThan, 55.2)
		})

		convey.Convey("When an unknown pillar is named", func() {
			_, err := p.Project(map[string]float64{"Innovate": 1})

			convey.Convey("Then it is a lookup error", func() {
				convey.So(errors.Is(err, scoring.ErrUnknownPillar), convey.ShouldBeTrue)
				convey.So(errors.Is(err, model.ErrLookup), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given peers tied on score", t, func() {
		peers := []types.CountryScore{{Country: "X", Score: 50}, {Country: "Y", Score: 50}}

		convey.Convey("Then the first inserted country wins the tie", func() {
			first, _ := scoring.NewGTCIProjector(scoring.WithPeers(peers), scoring.WithSubject("X")).Project(nil)
			second, _ := scoring.NewGTCIProjector(scoring.WithPeers(peers), scoring.WithSubject("Y")).Project(nil)
			convey.So(first.Rank, convey.ShouldEqual, 1)
			convey.So(second.Rank, convey.ShouldEqual, 2)
		})
	})

	convey.Convey("Given a subject absent from the peer table", t, func() {
		proj, err := scoring.NewGTCIProjector(scoring.WithSubject("Brunei")).Project(nil)

		convey.Convey("Then the rank falls back past the last peer", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(proj.Baseline, convey.ShouldEqual, 0.0)
			convey.So(proj.Rank, convey.ShouldEqual, 7)
		})
	})

	convey.Convey("Given a custom pass-through factor", t, func() {
		proj, _ := scoring.NewGTCIProjector(scoring.WithPassThrough(1)).Project(map[string]float64{"Retain": 10})
		convey.So(proj.Projected, convey.ShouldAlmostEqual, 55.2+1.4, 1e-9)
	})
}

func TestEstimateSalary(t *testing.T) {
	convey.Convey("Given province indicators", t, func() {
		in := model.Indicators{model.WageGrowthRate: 10, model.UnderemploymentRate: 5}

		convey.Convey("When estimating an Industry salary with two years", func() {
			got, err := scoring.EstimateSalary(in, "Industry", 2)

			convey.Convey("Then no underemployment penalty applies at the floor", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldEqual, 4_430_800.0)
			})
		})

		convey.Convey("When experience is zero and wage growth is zero", func() {
			got, err := scoring.EstimateSalary(model.Indicators{model.WageGrowthRate: 0, model.UnderemploymentRate: 3}, "Agriculture", 0)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, 2_800_000.0)
		})

		convey.Convey("When underemployment exceeds the floor", func() {
			got, err := scoring.EstimateSalary(model.Indicators{model.WageGrowthRate: 0, model.UnderemploymentRate: 15}, "Services", 0)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, 3_990_000.0)
		})

		convey.Convey("When the result needs rounding", func() {
			got, err := scoring.EstimateSalary(model.Indicators{model.WageGrowthRate: 1.234, model.UnderemploymentRate: 5}, "Industry", 0)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, 3_846_900.0)
		})

		convey.Convey("When the sector is unknown", func() {
			_, err := scoring.EstimateSalary(in, "Mining", 1)
			convey.So(errors.Is(err, scoring.ErrUnknownSector), convey.ShouldBeTrue)
		})

		convey.Convey("When wage growth is missing", func() {
			_, err := scoring.EstimateSalary(model.Indicators{model.UnderemploymentRate: 5}, "Industry", 1)
			convey.So(errors.Is(err, model.ErrMissingIndicator), convey.ShouldBeTrue)
		})

		convey.Convey("When experience is negative", func() {
			_, err := scoring.EstimateSalary(in, "Industry", -1)
			convey.So(errors.Is(err, model.ErrValidation), convey.ShouldBeTrue)
		})
	})
}
