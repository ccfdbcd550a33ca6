package reference

// DigitalReadiness combines IMDI sub-pillars and digital literacy scores of a province.
type DigitalReadiness struct {
	Province           string  `json:"province"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	IMDIInfrastructure float64 `json:"imdi_infrastructure"`
	IMDIEmpowerment    float64 `json:"imdi_empowerment"`
	IMDIJob            float64 `json:"imdi_job"`
	DigitalLiteracy    float64 `json:"digital_literacy"`
	PillarSkills       float64 `json:"pillar_skills"`
	PillarEthics       float64 `json:"pillar_ethics"`
	PillarCulture      float64 `json:"pillar_culture"`
	PillarSafety       float64 `json:"pillar_safety"`
}

// DigitalReadinessTable is the map layer data set.
var DigitalReadinessTable = []DigitalReadiness{
	{"DKI Jakarta", -6.2, 106.82, 86, 78, 74, 82, 80, 76, 84, 75},
	{"Banten", -6.12, 106.15, 74, 63, 58, 60, 59, 55, 61, 54},
	{"DI Yogyakarta", -7.8, 110.37, 69, 81, 65, 78, 79, 74, 83, 72},
	{"Jawa Barat", -6.9, 107.6, 71, 68, 61, 62, 63, 58, 65, 57},
	{"Jawa Tengah", -7.15, 110.14, 66, 59, 52, 55, 54, 50, 58, 51},
	{"Bali", -8.34, 115.09, 73, 76, 72, 77, 75, 73, 82, 74},
	{"Sulawesi Selatan", -5.15, 119.41, 62, 58, 55, 53, 52, 49, 55, 48},
	{"Papua", -2.53, 140.71, 45, 38, 32, 36, 34, 30, 37, 28},
	{"Kalimantan Timur", -0.51, 117.15, 68, 64, 69, 58, 57, 53, 61, 52},
	{"Nusa Tenggara Timur", -8.65, 121.08, 51, 46, 40, 44, 42, 39, 47, 38},
}
