package reference

// TrainingCenter is a public vocational training centre (BLK).
type TrainingCenter struct {
	Name           string `json:"name"`
	Province       string `json:"province"`
	Specialization string `json:"specialization"`
	FocusSkills    string `json:"focus_skills"`
	Capacity       int    `json:"capacity"`
}

// TrainingCenters is the BLK directory.
var TrainingCenters = []TrainingCenter{
	{"BBPLK Bekasi", "Jawa Barat", "Manufaktur & Otomasi", "Welding, CNC, Industrial Robotics", 1200},
	{"BBPLK Serang", "Banten", "Pariwisata & Hospitality", "Front Office, F&B Service, Housekeeping", 950},
	{"BBPLK Makassar", "Sulawesi Selatan", "Maritime & Logistik", "Port Management, Welding, Electrical", 780},
	{"BBPLK Medan", "Sumatera Utara", "Digital & Kreatif", "Data Analytics, UI/UX, Digital Marketing", 880},
	{"BBPLK Jayapura", "Papua", "Pertanian Berkelanjutan", "Agri-Tech, Hydroponics, Cold Chain", 520},
}
