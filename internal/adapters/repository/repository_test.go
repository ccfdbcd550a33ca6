package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

func header() string {
	cols := []string{ColProvince, ColYear, ColSemester}
	for _, ind := range DefaultRequired {
		cols = append(cols, string(ind))
	}
	return strings.Join(cols, ",")
}

// line renders a row whose TPAK and TPT are given and every other indicator is 1.
func line(province string, year, semester int, tpak, tpt float64) string {
	cells := []string{province, fmt.Sprint(year), fmt.Sprint(semester)}
	for _, ind := range DefaultRequired {
		switch ind {
		case model.TPAK:
			cells = append(cells, fmt.Sprint(tpak))
		case model.TPT:
			cells = append(cells, fmt.Sprint(tpt))
		default:
			cells = append(cells, "1")
		}
	}
	return strings.Join(cells, ",")
}

func csvOf(rows ...string) string {
	return header() + "\n" + strings.Join(rows, "\n") + "\n"
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoaderRead(t *testing.T) {
	Convey("Given a well-formed dataset", t, func() {
		body := csvOf(
			line("Jawa Barat", 2021, 1, 60, 8),
			line("Aceh", 2020, 2, 63, 6),
			line("Aceh", 2020, 1, 62, 5.5),
			line("Jawa Barat", 2020, 1, 64, 7),
		)

		Convey("When it is read", func() {
			obs, err := NewLoader().Read(strings.NewReader(body))

			Convey("Then rows are ordered by period then province", func() {
				So(err, ShouldBeNil)
				So(len(obs), ShouldEqual, 4)
				So(obs[0].Province, ShouldEqual, "Aceh")
				So(obs[0].PeriodOrder, ShouldEqual, 0)
				So(obs[1].Province, ShouldEqual, "Jawa Barat")
				So(obs[1].PeriodOrder, ShouldEqual, 0)
				So(obs[2].PeriodLabel, ShouldEqual, "2020:Aug")
				So(obs[3].PeriodOrder, ShouldEqual, 2)
				So(obs[3].PeriodDate, ShouldEqual, time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC))
			})

			Convey("Then the employment ratio is synthesized from TPAK", func() {
				So(obs[0].Indicators[model.EmploymentToPopulationRatio], ShouldAlmostEqual, 0.95*62, 1e-9)
				So(obs[0].Indicators[model.TPT], ShouldEqual, 5.5)
			})
		})

		Convey("When the employment ratio column is present", func() {
			custom := "province,year,semester,TPAK,employment_to_population_ratio\nAceh,2020,1,60,50\n"
			obs, err := NewLoader(WithRequiredIndicators(model.TPAK)).Read(strings.NewReader(custom))

			Convey("Then it is kept as read", func() {
				So(err, ShouldBeNil)
				So(obs[0].Indicators[model.EmploymentToPopulationRatio], ShouldEqual, 50.0)
			})
		})

		Convey("When a custom factor is configured", func() {
			custom := "province,year,semester,TPAK\nAceh,2020,1,60\n"
			obs, err := NewLoader(WithRequiredIndicators(model.TPAK), WithEmploymentRatioFactor(0.5)).Read(strings.NewReader(custom))
			So(err, ShouldBeNil)
			So(obs[0].Indicators[model.EmploymentToPopulationRatio], ShouldEqual, 30.0)
		})
	})

	Convey("Given malformed datasets", t, func() {
		l := NewLoader()

		Convey("When a required column is missing", func() {
			_, err := l.Read(strings.NewReader("province,year,semester\nAceh,2020,1\n"))
			So(errors.Is(err, ErrMissingColumn), ShouldBeTrue)
			So(errors.Is(err, model.ErrDataFormat), ShouldBeTrue)
		})

		Convey("When the year is not a number", func() {
			_, err := l.Read(strings.NewReader(csvOf(strings.Replace(line("Aceh", 2020, 1, 60, 5), "2020", "20x0", 1))))
			So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)
		})

		Convey("When an indicator is not a number", func() {
			_, err := l.Read(strings.NewReader(csvOf(strings.Replace(line("Aceh", 2020, 1, 61, 5), "61", "n/a", 1))))
			So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)
		})

		Convey("When the semester is out of range", func() {
			_, err := l.Read(strings.NewReader(csvOf(line("Aceh", 2020, 3, 60, 5))))
			So(errors.Is(err, model.ErrInvalidSemester), ShouldBeTrue)
		})

		Convey("When a province period repeats", func() {
			_, err := l.Read(strings.NewReader(csvOf(line("Aceh", 2020, 1, 60, 5), line("Aceh", 2020, 1, 61, 6))))
			So(errors.Is(err, ErrDuplicateObservation), ShouldBeTrue)
		})

		Convey("When the province is blank", func() {
			_, err := l.Read(strings.NewReader(csvOf(line(" ", 2020, 1, 60, 5))))
			So(errors.Is(err, ErrEmptyProvince), ShouldBeTrue)
		})

		Convey("When an indicator holds a missing-value token", func() {
			_, err := l.Read(strings.NewReader(csvOf(strings.Replace(line("Aceh", 2020, 1, 61, 5), "61", "NA", 1))))
			So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)
		})
	})

	Convey("Given cells that look like missing-value tokens", t, func() {
		obs, err := NewLoader().Read(strings.NewReader(csvOf(line("NA", 2020, 1, 60, 5))))

		Convey("Then they are read verbatim", func() {
			So(err, ShouldBeNil)
			So(len(obs), ShouldEqual, 1)
			So(obs[0].Province, ShouldEqual, "NA")
		})
	})
}

func TestLoaderLoad(t *testing.T) {
	Convey("Given a loader", t, func() {
		l := NewLoader()

		Convey("When the file does not exist", func() {
			_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
			So(errors.Is(err, ErrOpenDataset), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := l.Load(ctx, "whatever.csv")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestCachedStore(t *testing.T) {
	Convey("Given a dataset file and a cached store", t, func() {
		dir := t.TempDir()
		path := writeFile(t, dir, "data.csv", csvOf(
			line("Aceh", 2020, 1, 60, 5),
			line("Bali", 2020, 1, 70, 3),
		))
		store := NewCachedStore()
		ctx := context.Background()

		Convey("When it is read twice", func() {
			a, err := store.Get(ctx, path)
			So(err, ShouldBeNil)
			b, err := store.Get(ctx, path)
			So(err, ShouldBeNil)

			Convey("Then the same version is served", func() {
				So(a, ShouldPointTo, b)
				So(len(a.Observations), ShouldEqual, 2)
				So(len(a.National), ShouldEqual, 1)
				So(a.National[0].Indicators[model.TPAK], ShouldEqual, 65.0)
				So(store.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the file changes", func() {
			a, _ := store.Get(ctx, path)
			writeFile(t, dir, "data.csv", csvOf(line("Aceh", 2020, 1, 50, 5)))
			later := a.ModTime.Add(time.Minute)
			So(os.Chtimes(path, later, later), ShouldBeNil)
			b, err := store.Get(ctx, path)

			Convey("Then the new version is parsed", func() {
				So(err, ShouldBeNil)
				So(b, ShouldNotPointTo, a)
				So(len(b.Observations), ShouldEqual, 1)
			})
		})

		Convey("When invalidated or reset", func() {
			a, _ := store.Get(ctx, path)
			store.Invalidate(path)
			So(store.Len(), ShouldEqual, 0)
			b, _ := store.Get(ctx, path)
			So(b, ShouldNotPointTo, a)
			store.Reset()
			So(store.Len(), ShouldEqual, 0)
		})

		Convey("When the file is malformed", func() {
			bad := writeFile(t, dir, "bad.csv", "province,year\nAceh,2020\n")
			_, err := store.Get(ctx, bad)
			So(errors.Is(err, model.ErrDataFormat), ShouldBeTrue)
			So(store.Len(), ShouldEqual, 0)
		})

		Convey("When the file is missing", func() {
			_, err := store.Get(ctx, filepath.Join(dir, "nope.csv"))
			So(errors.Is(err, ErrOpenDataset), ShouldBeTrue)
		})
	})

	Convey("Given concurrent readers of a fresh cache", t, func() {
		dir := t.TempDir()
		path := writeFile(t, dir, "data.csv", csvOf(line("Aceh", 2020, 1, 60, 5)))
		var stats int32
		store := NewCachedStore(WithStat(func(p string) (os.FileInfo, error) {
			atomic.AddInt32(&stats, 1)
			return os.Stat(p)
		}))

		Convey("When they all miss at once", func() {
			var wg sync.WaitGroup
			results := make([]*Dataset, 16)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], _ = store.Get(context.Background(), path)
				}(i)
			}
			wg.Wait()

			Convey("Then every reader gets a dataset and one version is cached", func() {
				for _, r := range results {
					So(r, ShouldNotBeNil)
				}
				So(store.Len(), ShouldEqual, 1)
				So(atomic.LoadInt32(&stats), ShouldEqual, 16)
			})
		})
	})
}
