package scoring_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/lmi/internal/domain/model"
	scoring "github.com/okian/lmi/internal/domain/scoring"
)

func row(province string, tpak, female, under, tpt, wage, digital float64) model.Observation {
	o, err := model.NewObservation(province, 2023, 2, 2020, model.Indicators{
		model.TPAK:                         tpak,
		model.FemaleLaborParticipationRate: female,
		model.UnderemploymentRate:          under,
		model.TPT:                          tpt,
		model.WageGrowthRate:               wage,
		model.DigitalSkillsIndex:           digital,
		model.EmploymentInAgriculture:      30,
		model.EmploymentInIndustry:         20,
		model.EmploymentInServices:         50,
	})
	if err != nil {
		panic(err)
	}
	return o
}

func TestNormalize(t *testing.T) {
	Convey("Given a spread of values", t, func() {
		out := scoring.Normalize([]float64{2, 6, 4, 10})

		Convey("Then min maps to 0 and max to 1", func() {
			So(out, ShouldResemble, []float64{0, 0.5, 0.25, 1})
		})

		Convey("Then every value lies in [0, 1]", func() {
			for _, v := range out {
				So(v, ShouldBeBetweenOrEqual, 0.0, 1.0)
			}
		})
	})

	Convey("Given a constant input", t, func() {
		out := scoring.Normalize([]float64{3, 3, 3})
		So(out, ShouldResemble, []float64{0.5, 0.5, 0.5})
	})

	Convey("Given a single value", t, func() {
		So(scoring.Normalize([]float64{7}), ShouldResemble, []float64{0.5})
	})

	Convey("Given an empty input", t, func() {
		So(scoring.Normalize(nil), ShouldBeEmpty)
	})
}

func TestSupplyDemandProfiles(t *testing.T) {
	Convey("Given a latest snapshot of three provinces", t, func() {
		older := row("P1", 50, 40, 12, 9, 1, 0.2)
		older.Semester, older.PeriodOrder, older.PeriodLabel = 1, 6, "2023:Feb"
		data := []model.Observation{
			older,
			row("P1", 60, 50, 10, 8, 2, 0.3),
			row("P2", 70, 60, 5, 4, 6, 0.5),
			row("P3", 65, 55, 7.5, 4, 4, 0.5),
		}

		Convey("When computing profiles", func() {
			profiles, err := scoring.SupplyDemandProfiles(data)

			Convey("Then only the latest period is scored", func() {
				So(err, ShouldBeNil)
				So(len(profiles), ShouldEqual, 3)
				So(profiles[0].PeriodLabel, ShouldEqual, "2023:Aug")
			})

			Convey("Then composites follow the weighted blend", func() {
				So(profiles[0].SupplyIndex, ShouldAlmostEqual, 0.0, 1e-9)
				So(profiles[0].DemandIndex, ShouldAlmostEqual, 0.0, 1e-9)
				So(profiles[1].SupplyIndex, ShouldAlmostEqual, 1.0, 1e-9)
				So(profiles[1].DemandIndex, ShouldAlmostEqual, 1.0, 1e-9)
				So(profiles[2].SupplyIndex, ShouldAlmostEqual, 0.5, 1e-9)
				So(profiles[2].DemandIndex, ShouldAlmostEqual, 0.85, 1e-9)
				So(profiles[2].MismatchGap, ShouldAlmostEqual, 0.35, 1e-9)
			})

			Convey("Then profiles carry a copy of the raw indicators", func() {
				profiles[0].Indicators[model.TPT] = 99
				So(data[1].Indicators[model.TPT], ShouldEqual, 8.0)
			})
		})

		Convey("When building the report", func() {
			rep, err := scoring.BuildSupplyDemandReport(data)

			Convey("Then profiles are ordered by gap and national means are reported", func() {
				So(err, ShouldBeNil)
				So(rep.Profiles[0].Province, ShouldEqual, "P3")
				So(rep.NationalSupply, ShouldAlmostEqual, 0.5, 1e-9)
				So(rep.NationalDemand, ShouldAlmostEqual, 1.85/3, 1e-9)
				So(len(rep.TopFocus), ShouldEqual, 3)
				So(len(rep.BottomFocus), ShouldEqual, 3)
				So(len(rep.Sectors), ShouldEqual, 3)
			})
		})
	})

	Convey("Given a snapshot missing a scored indicator", t, func() {
		o, _ := model.NewObservation("P1", 2023, 1, 2020, model.Indicators{model.TPAK: 60})
		_, err := scoring.SupplyDemandProfiles([]model.Observation{o})

		Convey("Then it fails with ErrMissingIndicator", func() {
			So(errors.Is(err, model.ErrMissingIndicator), ShouldBeTrue)
		})
	})

	Convey("Given identical provinces", t, func() {
		data := []model.Observation{row("A", 60, 50, 5, 5, 3, 0.4), row("B", 60, 50, 5, 5, 3, 0.4)}
		profiles, err := scoring.SupplyDemandProfiles(data)

		Convey("Then every component sits at the neutral midpoint", func() {
			So(err, ShouldBeNil)
			So(profiles[0].SupplyIndex, ShouldAlmostEqual, 0.5, 1e-9)
			So(profiles[1].DemandIndex, ShouldAlmostEqual, 0.5, 1e-9)
			So(profiles[0].MismatchGap, ShouldAlmostEqual, 0, 1e-9)
		})
	})
}

func TestSkillGapRadar(t *testing.T) {
	Convey("Given a profile", t, func() {
		p := model.ProvinceProfile{Indicators: model.Indicators{
			model.TPAK:                         68,
			model.FemaleLaborParticipationRate: 54,
			model.UnderemploymentRate:          8,
			model.WageGrowthRate:               4,
			model.DigitalSkillsIndex:           0.42,
		}}
		axes := scoring.SkillGapRadar(p)

		Convey("Then underemployment is inverted and digital rescaled", func() {
			So(len(axes), ShouldEqual, 5)
			So(axes[2].Value, ShouldEqual, 92.0)
			So(axes[4].Value, ShouldAlmostEqual, 42, 1e-9)
		})
	})
}
