package reference

import "github.com/okian/lmi/internal/domain/types"

// Pillar is one of the six Global Talent Competitiveness Index pillars.
type Pillar string

// GTCI pillars.
const (
	PillarEnable          Pillar = "Enable"
	PillarAttract         Pillar = "Attract"
	PillarGrow            Pillar = "Grow"
	PillarRetain          Pillar = "Retain"
	PillarVTSkills        Pillar = "VT Skills"
	PillarGlobalKnowledge Pillar = "Global Knowledge"
)

// GTCISubject is the country whose score the policy simulator projects.
const GTCISubject = "Indonesia"

// PillarWeight is the share of a pillar in the composite score.
type PillarWeight struct {
	Pillar Pillar  `json:"pillar"`
	Weight float64 `json:"weight"`
}

// GTCIWeights sums to 1.0.
var GTCIWeights = []PillarWeight{
	{PillarEnable, 0.16},
	{PillarAttract, 0.18},
	{PillarGrow, 0.18},
	{PillarRetain, 0.14},
	{PillarVTSkills, 0.17},
	{PillarGlobalKnowledge, 0.17},
}

// GTCIYears are the editions covered by GTCITrends.
var GTCIYears = []int{2019, 2020, 2021, 2022, 2023, 2024}

// CountryTrend is a country's composite score per edition in GTCIYears order.
type CountryTrend struct {
	Country string    `json:"country"`
	Scores  []float64 `json:"scores"`
}

// GTCITrends lists ASEAN peers; the subject country comes first.
var GTCITrends = []CountryTrend{
	{"Indonesia", []float64{51.6, 52.1, 52.9, 53.7, 54.4, 55.2}},
	{"Malaysia", []float64{60.4, 60.9, 61.2, 61.5, 62.0, 62.4}},
	{"Thailand", []float64{58.1, 58.0, 58.3, 58.8, 59.5, 60.1}},
	{"Philippines", []float64{54.2, 54.5, 54.8, 55.0, 55.3, 55.6}},
	{"Singapore", []float64{73.4, 73.8, 74.1, 74.6, 75.0, 75.5}},
	{"Vietnam", []float64{55.0, 55.3, 55.8, 56.4, 57.1, 57.9}},
}

// PeerBase returns each country's latest score in GTCITrends order.
func PeerBase() []types.CountryScore {
	out := make([]types.CountryScore, 0, len(GTCITrends))
	for _, t := range GTCITrends {
		out = append(out, types.CountryScore{Country: t.Country, Score: t.Scores[len(t.Scores)-1]})
	}
	return out
}

// PillarScore is the subject country's current score on a pillar.
type PillarScore struct {
	Pillar  Pillar  `json:"pillar"`
	Score   float64 `json:"score"`
	Insight string  `json:"insight"`
}

// IndonesiaPillars lists gauge values and the policy note of each pillar.
var IndonesiaPillars = []PillarScore{
	{PillarEnable, 49.2, "Memperkuat institusi pasar tenaga kerja, reformasi perizinan, dan digitalisasi layanan publik."},
	{PillarAttract, 45.5, "Tarik investasi SDM, buka jalur talent visa, dan kembangkan insentif untuk sektor bernilai tambah."},
	{PillarGrow, 60.1, "Percepat re-skilling dan kemitraan industri-universitas untuk mendongkrak produktivitas."},
	{PillarRetain, 48.7, "Perbaiki sistem proteksi sosial, fleksibilitas kerja, dan benefit lintas sektor."},
	{PillarVTSkills, 58.3, "Skalakan sertifikasi vokasi, BLK 4.0, dan link & match dengan kebutuhan industri."},
	{PillarGlobalKnowledge, 51.5, "Dorong R&D, adopsi teknologi frontier, dan kolaborasi riset dengan global tech hubs."},
}

// PillarGaugeThreshold marks the target line on pillar gauges.
const PillarGaugeThreshold = 65.0

// Component is one sub-score of a pillar breakdown.
type Component struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// PillarBreakdown is the deconstruction of one pillar.
type PillarBreakdown struct {
	Pillar     Pillar      `json:"pillar"`
	Components []Component `json:"components"`
}

// GTCIBreakdown lists pillar components in pillar order.
var GTCIBreakdown = []PillarBreakdown{
	{PillarEnable, []Component{{"Institusi Pasar Kerja", 56}, {"Regulasi Bisnis", 49}, {"Adopsi Digital Pemerintah", 42}}},
	{PillarAttract, []Component{{"FDI Human Capital", 44}, {"Talent Visa", 32}, {"Inklusi Tenaga Kerja", 47}}},
	{PillarGrow, []Component{{"Universitas Top 500", 58}, {"Lifelong Learning", 64}, {"Kemitraan Industri", 63}}},
	{PillarRetain, []Component{{"Proteksi Sosial", 46}, {"Kesehatan & Wellbeing", 52}, {"Fleksibilitas Kerja", 48}}},
	{PillarVTSkills, []Component{{"Sertifikasi Vokasi", 55}, {"Output BLK", 61}, {"SMK-Industry Link", 59}}},
	{PillarGlobalKnowledge, []Component{{"R&D Spending", 48}, {"Ekspor High-Tech", 52}, {"Global Innovation Link", 54}}},
}
