// Package reference holds the immutable lookup tables behind the dashboard:
// indicator metadata, policy targets, GTCI benchmarks, the digital readiness
// table, demand-side snapshots and the BLK training directory.
//
// Tables are ordered slices wherever iteration order reaches the output.
// Callers must treat every exported value as read-only.
package reference

import "github.com/okian/lmi/internal/domain/model"

// IndicatorInfo describes how an indicator is labelled and ranked.
type IndicatorInfo struct {
	Indicator    model.Indicator `json:"indicator"`
	Label        string          `json:"label"`
	BetterHigher bool            `json:"better_higher"`
}

// Catalog lists every indicator in display order.
var Catalog = []IndicatorInfo{
	{model.TPAK, "Labor Force Participation Rate (TPAK)", true},
	{model.TPT, "Open Unemployment Rate (TPT)", false},
	{model.InformalEmploymentShare, "Informal Employment Share", false},
	{model.UnderemploymentRate, "Underemployment Rate", false},
	{model.YouthNEETRate, "Youth NEET Rate", false},
	{model.FemaleLaborParticipationRate, "Female Labor Participation", true},
	{model.WageGrowthRate, "Wage Growth Rate", true},
	{model.EducationMismatchIndex, "Education Mismatch Index", false},
	{model.DigitalSkillsIndex, "Digital Skills Index", true},
	{model.EmploymentToPopulationRatio, "Employment to Population Ratio", true},
	{model.EmploymentInAgriculture, "Employment in Agriculture", false},
	{model.EmploymentInIndustry, "Employment in Industry", false},
	{model.EmploymentInServices, "Employment in Services", true},
	{model.AverageWorkingHoursPerWeek, "Average Working Hours per Week", true},
}

// Label returns the display label of ind, or its raw name when unknown.
func Label(ind model.Indicator) string {
	for _, info := range Catalog {
		if info.Indicator == ind {
			return info.Label
		}
	}
	return string(ind)
}

// BetterHigher reports whether a larger value of ind is the better outcome.
func BetterHigher(ind model.Indicator) bool {
	for _, info := range Catalog {
		if info.Indicator == ind {
			return info.BetterHigher
		}
	}
	return false
}

// Target is a medium-term development plan (RPJMN) goal for an indicator.
type Target struct {
	Indicator model.Indicator `json:"indicator"`
	Value     float64         `json:"value"`
}

// RPJMNTargets lists the tracked policy goals in gauge order.
var RPJMNTargets = []Target{
	{model.TPT, 4.5},
	{model.TPAK, 71.0},
	{model.InformalEmploymentShare, 55.0},
	{model.FemaleLaborParticipationRate, 55.0},
	{model.DigitalSkillsIndex, 0.5},
}

// PeerPosition places a country on relative productivity, female labor
// participation (%) and digital skills (0..1).
type PeerPosition struct {
	Country             string  `json:"country"`
	Productivity        float64 `json:"productivity"`
	FemaleParticipation float64 `json:"female_participation"`
	DigitalSkills       float64 `json:"digital_skills"`
}

// BenchmarkSubject is filled from the national series; its productivity is the unit.
var BenchmarkSubject = PeerPosition{Country: "Indonesia", Productivity: 1.0}

// InternationalPeers are the ASEAN/G20 comparison countries in display order.
var InternationalPeers = []PeerPosition{
	{"Malaysia", 1.15, 55.0, 0.58},
	{"Vietnam", 0.95, 62.0, 0.45},
	{"Thailand", 1.05, 60.0, 0.5},
	{"Singapura", 1.45, 64.0, 0.72},
}

// SectorSalary is the monthly entry salary baseline of a sector, in rupiah.
type SectorSalary struct {
	Sector string  `json:"sector"`
	Base   float64 `json:"base"`
}

// SectorBaseSalaries lists sector baselines in selector order.
var SectorBaseSalaries = []SectorSalary{
	{"Agriculture", 2_800_000},
	{"Industry", 3_800_000},
	{"Services", 4_200_000},
}

// BaseSalary returns the baseline for sector.
func BaseSalary(sector string) (float64, bool) {
	for _, s := range SectorBaseSalaries {
		if s.Sector == sector {
			return s.Base, true
		}
	}
	return 0, false
}
