// Package export renders dashboard views as downloadable CSV files and XLSX workbooks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
	"github.com/okian/lmi/internal/domain/training"
)

// WriteObservationsCSV writes obs in the dataset schema the loader reads:
// province, year, semester, then every catalog indicator the first row carries.
func WriteObservationsCSV(w io.Writer, obs []model.Observation) error {
	cols := []string{"province", "year", "semester"}
	var inds []model.Indicator
	if len(obs) > 0 {
		for _, ind := range model.AllIndicators {
			if obs[0].Indicators.Has(ind) {
				inds = append(inds, ind)
				cols = append(cols, string(ind))
			}
		}
	}

	records := make([][]string, 0, len(obs)+1)
	records = append(records, cols)
	for _, o := range obs {
		rec := make([]string, 0, len(cols))
		rec = append(rec, o.Province, strconv.Itoa(o.Year), strconv.Itoa(o.Semester))
		for _, ind := range inds {
			v, err := o.Indicators.Get(ind)
			if err != nil {
				return fmt.Errorf("%w: %s %s: %w", ErrWriteCSV, o.Province, o.PeriodLabel, err)
			}
			rec = append(rec, formatFloat(v))
		}
		records = append(records, rec)
	}
	return writeRecords(w, records)
}

// WriteNationalCSV writes one row per national period.
func WriteNationalCSV(w io.Writer, national []model.NationalPoint) error {
	cols := []string{"period_order", "period_label", "provinces"}
	var inds []model.Indicator
	if len(national) > 0 {
		for _, ind := range model.AllIndicators {
			if national[0].Indicators.Has(ind) {
				inds = append(inds, ind)
				cols = append(cols, string(ind))
			}
		}
	}
	records := [][]string{cols}
	for _, p := range national {
		rec := []string{strconv.Itoa(p.PeriodOrder), p.PeriodLabel, strconv.Itoa(p.Provinces)}
		for _, ind := range inds {
			rec = append(rec, formatFloat(p.Indicators[ind]))
		}
		records = append(records, rec)
	}
	return writeRecords(w, records)
}

// WriteTrainingCSV writes the BLK directory rows.
func WriteTrainingCSV(w io.Writer, centers []reference.TrainingCenter) error {
	records := [][]string{training.Header}
	for _, c := range centers {
		records = append(records, []string{c.Name, c.Province, c.Specialization, c.FocusSkills, strconv.Itoa(c.Capacity)})
	}
	return writeRecords(w, records)
}

// writeRecords writes records, header first, through a string-typed dataframe.
func writeRecords(w io.Writer, records [][]string) error {
	if len(records) == 1 {
		// dataframe refuses header-only input.
		cw := csv.NewWriter(w)
		if err := cw.Write(records[0]); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteCSV, err)
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteCSV, err)
		}
		return nil
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// Cells are kept verbatim; "NA" is a value, not a missing marker.
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return fmt.Errorf("%w: %v", ErrWriteCSV, df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteCSV, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
