package config_test

import (
	"errors"
	"testing"

	"github.com/okian/lmi/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataPath, convey.ShouldEqual, "data/labor_market.csv")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.EWSThreshold, convey.ShouldEqual, 1.0)
			convey.So(cfg.MaxRankingLimit, convey.ShouldEqual, 34)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad setting", t, func() {
		cases := map[string]func(*config.Config){
			"blank addr":        func(c *config.Config) { c.Addr = " " },
			"blank data path":   func(c *config.Config) { c.DataPath = "" },
			"zero rps":          func(c *config.Config) { c.RateLimitRPS = 0 },
			"zero burst":        func(c *config.Config) { c.RateLimitBurst = 0 },
			"low threshold":     func(c *config.Config) { c.EWSThreshold = 0.4 },
			"high threshold":    func(c *config.Config) { c.EWSThreshold = 3.5 },
			"zero ranking cap":  func(c *config.Config) { c.MaxRankingLimit = 0 },
			"zero chart height": func(c *config.Config) { c.ChartHeightIn = 0 },
		}
		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(name, convey.ShouldNotBeEmpty)
		}
	})

	convey.Convey("Given the threshold bounds", t, func() {
		for _, v := range []float64{0.5, 3.0} {
			cfg := config.New()
			cfg.EWSThreshold = v
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		}
	})
}
