package reference

// DemandSectors are the vacancy-tracker sectors in chart order.
var DemandSectors = []string{"Manufaktur", "Digital", "Pariwisata", "Konstruksi"}

// SectorOffset is a per-sector level shift applied by the synthetic trackers.
type SectorOffset struct {
	Sector string
	Offset float64
}

// VacancyOffsets and LayoffOffsets shift each sector's synthetic series.
var (
	VacancyOffsets = []SectorOffset{{"Manufaktur", 40}, {"Digital", 80}, {"Pariwisata", 30}, {"Konstruksi", 55}}
	LayoffOffsets  = []SectorOffset{{"Manufaktur", 20}, {"Digital", 5}, {"Pariwisata", 25}, {"Konstruksi", 15}}
)

// SkillDemand is a skill's share of recent postings and its month-on-month change.
type SkillDemand struct {
	Skill     string  `json:"skill"`
	Share     float64 `json:"share"`
	MoMChange float64 `json:"mom_change"`
}

// SkillDemandSnapshot covers the last 30 days of postings.
var SkillDemandSnapshot = []SkillDemand{
	{"Python", 12.4, 2.5},
	{"SQL", 10.1, 1.9},
	{"Data Visualization", 9.5, 2.1},
	{"Project Management", 8.8, 1.3},
	{"AutoCAD", 7.1, 1.7},
	{"Welding", 6.4, 1.1},
	{"Digital Marketing", 5.9, 2.9},
	{"Green Logistics", 4.7, 3.4},
}

// EmergingSkill is the starting growth index of a skill tracked monthly.
type EmergingSkill struct {
	Skill string
	Base  float64
}

// EmergingSkills grow by a fixed step each month from January 2024.
var EmergingSkills = []EmergingSkill{
	{"AI Safety", 40},
	{"Sustainability Reporting", 35},
	{"Robotics Maintenance", 42},
}

// SkillCount is a demanded skill and its posting count.
type SkillCount struct {
	Skill     string `json:"skill"`
	Vacancies int    `json:"vacancies"`
}

// VocationalProgram pairs a curriculum with the skills industry asks for.
type VocationalProgram struct {
	Program    string       `json:"program"`
	Curriculum []string     `json:"curriculum"`
	Demand     []SkillCount `json:"demand"`
}

// VocationalMismatch lists programs in selector order.
var VocationalMismatch = []VocationalProgram{
	{
		Program:    "Teknik Informatika",
		Curriculum: []string{"C Programming", "Database", "Networking", "UI/UX"},
		Demand:     []SkillCount{{"Python", 1200}, {"SQL", 1050}, {"Cybersecurity", 900}, {"Cloud", 850}},
	},
	{
		Program:    "Teknik Mesin",
		Curriculum: []string{"CAD Dasar", "Termodinamika", "Pemeliharaan Mesin"},
		Demand:     []SkillCount{{"AutoCAD", 980}, {"CNC", 920}, {"Predictive Maintenance", 740}},
	},
	{
		Program:    "Hospitality",
		Curriculum: []string{"Front Office", "Housekeeping", "F&B Service"},
		Demand:     []SkillCount{{"Revenue Management", 620}, {"Digital Guest Experience", 560}, {"Barista Specialty", 510}},
	},
	{
		Program:    "Logistik",
		Curriculum: []string{"Warehouse", "Transport Planning", "Customs"},
		Demand:     []SkillCount{{"Green Logistics", 690}, {"ERP", 630}, {"Cold Chain", 580}},
	},
}

// CountryValue is one country's value on a benchmark.
type CountryValue struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// Benchmark is a decent-work metric across countries.
type Benchmark struct {
	Metric string         `json:"metric"`
	Values []CountryValue `json:"values"`
}

// Decent-work benchmark metric names.
const (
	MetricProductivity        = "Produktivitas"
	MetricWageSalaried        = "Wage_Salaried"
	MetricFemaleLFP           = "Female_LFP"
	MetricInformalWagePenalty = "Informal_Wage_Penalty"
)

// DecentWorkBenchmark compares Indonesia against regional peers.
var DecentWorkBenchmark = []Benchmark{
	{MetricProductivity, []CountryValue{{"Indonesia", 28700}, {"Malaysia", 39800}, {"Thailand", 32300}, {"Vietnam", 21900}}},
	{MetricWageSalaried, []CountryValue{{"Indonesia", 45.6}, {"Malaysia", 65.2}, {"Thailand", 52.3}, {"Vietnam", 40.8}}},
	{MetricFemaleLFP, []CountryValue{{"Indonesia", 56.6}, {"Malaysia", 55.2}, {"Thailand", 61.0}, {"Vietnam", 62.5}}},
	{MetricInformalWagePenalty, []CountryValue{{"Indonesia", 36.0}, {"Malaysia", 18.0}, {"Thailand", 24.0}, {"Vietnam", 29.0}}},
}

// BenchmarkValue looks up metric for country.
func BenchmarkValue(metric, country string) (float64, bool) {
	for _, b := range DecentWorkBenchmark {
		if b.Metric != metric {
			continue
		}
		for _, v := range b.Values {
			if v.Country == country {
				return v.Value, true
			}
		}
	}
	return 0, false
}
