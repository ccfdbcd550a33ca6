package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/lmi/internal/domain/aggregate"
	"github.com/okian/lmi/internal/domain/model"
	"github.com/okian/lmi/internal/domain/reference"
)

// Sheet names of the dashboard workbook, in tab order.
const (
	SheetNational = "Nasional"
	SheetSnapshot = "Provinsi_Terkini"
	SheetProfiles = "Supply_Demand"
	SheetAlerts   = "Early_Warning"
	SheetTraining = "BLK"

	colWidth = 18
)

// Workbook is the content of the XLSX download. Empty sections still get a header row.
type Workbook struct {
	National []model.NationalPoint
	Snapshot []model.Observation
	Profiles []model.ProvinceProfile
	Alerts   []aggregate.Pulse
	Training []reference.TrainingCenter
}

type sheet struct {
	name   string
	header []string
	rows   [][]interface{}
}

// WriteXLSX renders wb as a multi-sheet workbook onto w.
func WriteXLSX(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := []sheet{
		nationalSheet(wb.National),
		snapshotSheet(wb.Snapshot),
		profilesSheet(wb.Profiles),
		alertsSheet(wb.Alerts),
		trainingSheet(wb.Training),
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			return fmt.Errorf("%w: sheet %s: %v", ErrWriteWorkbook, s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]interface{}, len(s.header))
	for i, h := range s.header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(s.name, "A", lastCol, colWidth); err != nil {
		return err
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func indicatorColumns(first model.Indicators) []model.Indicator {
	out := make([]model.Indicator, 0, len(model.AllIndicators))
	for _, ind := range model.AllIndicators {
		if first.Has(ind) {
			out = append(out, ind)
		}
	}
	return out
}

func labels(inds []model.Indicator) []string {
	out := make([]string, len(inds))
	for i, ind := range inds {
		out[i] = reference.Label(ind)
	}
	return out
}

func nationalSheet(national []model.NationalPoint) sheet {
	var inds []model.Indicator
	if len(national) > 0 {
		inds = indicatorColumns(national[0].Indicators)
	}
	s := sheet{name: SheetNational, header: append([]string{"Periode", "Provinsi"}, labels(inds)...)}
	for _, p := range national {
		row := []interface{}{p.PeriodLabel, p.Provinces}
		for _, ind := range inds {
			row = append(row, p.Indicators[ind])
		}
		s.rows = append(s.rows, row)
	}
	return s
}

func snapshotSheet(obs []model.Observation) sheet {
	var inds []model.Indicator
	if len(obs) > 0 {
		inds = indicatorColumns(obs[0].Indicators)
	}
	s := sheet{name: SheetSnapshot, header: append([]string{"Provinsi", "Periode"}, labels(inds)...)}
	for _, o := range obs {
		row := []interface{}{o.Province, o.PeriodLabel}
		for _, ind := range inds {
			row = append(row, o.Indicators[ind])
		}
		s.rows = append(s.rows, row)
	}
	return s
}

func profilesSheet(profiles []model.ProvinceProfile) sheet {
	s := sheet{name: SheetProfiles, header: []string{"Provinsi", "Periode", "Supply Index", "Demand Index", "Mismatch Gap"}}
	for _, p := range profiles {
		s.rows = append(s.rows, []interface{}{p.Province, p.PeriodLabel, p.SupplyIndex, p.DemandIndex, p.MismatchGap})
	}
	return s
}

func alertsSheet(alerts []aggregate.Pulse) sheet {
	s := sheet{name: SheetAlerts, header: []string{
		"Provinsi", "TPT Sebelumnya", "TPT Terkini", "Perubahan TPT",
		"Underemployment", "Perubahan Underemployment", "Wage Pulse", "Digital Skills",
	}}
	for _, a := range alerts {
		s.rows = append(s.rows, []interface{}{
			a.Province, a.TPTPrev, a.TPTLatest, a.TPTChange,
			a.UnderemploymentLatest, a.UnderemploymentChange, a.WagePulse, a.DigitalSkillsLatest,
		})
	}
	return s
}

func trainingSheet(centers []reference.TrainingCenter) sheet {
	s := sheet{name: SheetTraining, header: []string{"Nama", "Provinsi", "Spesialisasi", "Fokus Skill", "Kapasitas"}}
	for _, c := range centers {
		s.rows = append(s.rows, []interface{}{c.Name, c.Province, c.Specialization, c.FocusSkills, c.Capacity})
	}
	return s
}
