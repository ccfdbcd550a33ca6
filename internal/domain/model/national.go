package model

import "time"

// NationalPoint is the unweighted province mean of each indicator for one period.
type NationalPoint struct {
	PeriodOrder int        `json:"period_order"`
	PeriodLabel string     `json:"period_label"`
	PeriodDate  time.Time  `json:"period_date"`
	Provinces   int        `json:"provinces"`
	Indicators  Indicators `json:"indicators"`
}

// ProvinceProfile carries a province's latest-period indicators plus the
// relative supply and demand composites. Indices are comparable only within
// the snapshot they were computed from.
type ProvinceProfile struct {
	Province    string     `json:"province"`
	PeriodOrder int        `json:"period_order"`
	PeriodLabel string     `json:"period_label"`
	Indicators  Indicators `json:"indicators"`
	SupplyIndex float64    `json:"supply_index"`
	DemandIndex float64    `json:"demand_index"`
	MismatchGap float64    `json:"mismatch_gap"`
}
