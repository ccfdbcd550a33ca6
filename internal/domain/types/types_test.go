package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/lmi/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProjectionJSON(t *testing.T) {
	Convey("Given a projection", t, func() {
		p := types.Projection{
			Country:   "Indonesia",
			Baseline:  55.2,
			Projected: 56.4,
			Rank:      5,
			Ranking:   []types.CountryScore{{Country: "Singapore", Score: 75.5}},
		}

		Convey("When encoding to JSON", func() {
			b, err := json.Marshal(p)

			Convey("Then it uses snake_case field names", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"projected_score":56.4`)
				So(string(b), ShouldContainSubstring, `"weighted_delta":0`)
				So(string(b), ShouldContainSubstring, `"ranking":[{"country":"Singapore","score":75.5}]`)
			})
		})
	})
}

func TestSalaryEstimate(t *testing.T) {
	Convey("Given a zero-value estimate", t, func() {
		e := types.SalaryEstimate{}

		Convey("Then fields default to zero values", func() {
			So(e.Province, ShouldEqual, "")
			So(e.MonthlyIDR, ShouldEqual, 0.0)
		})
	})
}
