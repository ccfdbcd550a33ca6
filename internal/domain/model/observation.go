// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"time"
)

// Indicator names a numeric column of the labor-market panel.
type Indicator string

// Indicator columns as they appear in the dataset header.
const (
	TPAK                         Indicator = "TPAK"
	TPT                          Indicator = "TPT"
	InformalEmploymentShare      Indicator = "informal_employment_share"
	UnderemploymentRate          Indicator = "underemployment_rate"
	YouthNEETRate                Indicator = "youth_NEET_rate"
	FemaleLaborParticipationRate Indicator = "female_labor_participation_rate"
	WageGrowthRate               Indicator = "wage_growth_rate"
	EducationMismatchIndex       Indicator = "education_mismatch_index"
	DigitalSkillsIndex           Indicator = "digital_skills_index"
	EmploymentToPopulationRatio  Indicator = "employment_to_population_ratio"
	EmploymentInAgriculture      Indicator = "employment_in_agriculture"
	EmploymentInIndustry         Indicator = "employment_in_industry"
	EmploymentInServices         Indicator = "employment_in_services"
	AverageWorkingHoursPerWeek   Indicator = "average_working_hours_per_week"
)

// AllIndicators lists every known indicator in display order.
var AllIndicators = []Indicator{
	TPAK,
	TPT,
	InformalEmploymentShare,
	UnderemploymentRate,
	YouthNEETRate,
	FemaleLaborParticipationRate,
	WageGrowthRate,
	EducationMismatchIndex,
	DigitalSkillsIndex,
	EmploymentToPopulationRatio,
	EmploymentInAgriculture,
	EmploymentInIndustry,
	EmploymentInServices,
	AverageWorkingHoursPerWeek,
}

// ParseIndicator returns the Indicator named s or ErrUnknownIndicator.
func ParseIndicator(s string) (Indicator, error) {
	for _, ind := range AllIndicators {
		if string(ind) == s {
			return ind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIndicator, s)
}

// Indicators holds the indicator values of one row. A missing key means the
// column was absent, which is different from a zero value.
type Indicators map[Indicator]float64

// Get returns the value of name or ErrMissingIndicator.
func (in Indicators) Get(name Indicator) (float64, error) {
	v, ok := in[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingIndicator, name)
	}
	return v, nil
}

// Has reports whether name is present.
func (in Indicators) Has(name Indicator) bool {
	_, ok := in[name]
	return ok
}

// Clone returns a copy safe to mutate.
func (in Indicators) Clone() Indicators {
	out := make(Indicators, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Observation is one province row for one half-year period.
type Observation struct {
	Province    string     `json:"province"`
	Year        int        `json:"year"`
	Semester    int        `json:"semester"`
	PeriodOrder int        `json:"period_order"`
	PeriodLabel string     `json:"period_label"`
	PeriodDate  time.Time  `json:"period_date"`
	Indicators  Indicators `json:"indicators"`
}

// ValidateSemester checks that s is 1 (February round) or 2 (August round).
func ValidateSemester(s int) error {
	if s != 1 && s != 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidSemester, s)
	}
	return nil
}

// PeriodOrder returns the zero-based half-year index anchored at minYear.
func PeriodOrder(year, semester, minYear int) int {
	return (year-minYear)*2 + (semester - 1)
}

// PeriodLabel renders "2021:Feb" or "2021:Aug".
func PeriodLabel(year, semester int) (string, error) {
	if err := ValidateSemester(semester); err != nil {
		return "", err
	}
	month := "Feb"
	if semester == 2 {
		month = "Aug"
	}
	return strconv.Itoa(year) + ":" + month, nil
}

// PeriodDate returns the survey reference date, the first of February or August (UTC).
func PeriodDate(year, semester int) (time.Time, error) {
	if err := ValidateSemester(semester); err != nil {
		return time.Time{}, err
	}
	month := time.February
	if semester == 2 {
		month = time.August
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// NewObservation derives the period fields of a row anchored at minYear.
func NewObservation(province string, year, semester, minYear int, ind Indicators) (Observation, error) {
	label, err := PeriodLabel(year, semester)
	if err != nil {
		return Observation{}, err
	}
	date, _ := PeriodDate(year, semester)
	if ind == nil {
		ind = Indicators{}
	}
	return Observation{
		Province:    province,
		Year:        year,
		Semester:    semester,
		PeriodOrder: PeriodOrder(year, semester, minYear),
		PeriodLabel: label,
		PeriodDate:  date,
		Indicators:  ind,
	}, nil
}
