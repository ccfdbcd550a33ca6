// Package types contains common types used across the application
package types

// CountryScore is one row of a GTCI peer ranking.
type CountryScore struct {
	Country string  `json:"country"`
	Score   float64 `json:"score"`
}

// Projection is the outcome of a GTCI policy-lever simulation.
type Projection struct {
	Country       string         `json:"country"`
	Baseline      float64        `json:"baseline"`
	WeightedDelta float64        `json:"weighted_delta"`
	Projected     float64        `json:"projected_score"`
	Rank          int            `json:"rank"`
	Ranking       []CountryScore `json:"ranking"`
}

// SalaryEstimate is a monthly salary estimate in rupiah.
type SalaryEstimate struct {
	Province        string  `json:"province"`
	PeriodLabel     string  `json:"period_label"`
	Sector          string  `json:"sector"`
	ExperienceYears float64 `json:"experience_years"`
	MonthlyIDR      float64 `json:"monthly_idr"`
}
