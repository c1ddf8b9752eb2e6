package catalog

// PriceItem is one line of a service price breakdown.
type PriceItem struct {
	Item  string `json:"item"`
	Price string `json:"price"`
}

// DiagnosticService is a public-facing offering of the lab, with an estimated
// price range, itemized pricing, and client preparation instructions.
type DiagnosticService struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	PriceRange       string      `json:"price_range"`
	PrepInstructions []string    `json:"prep_instructions"`
	FullPriceList    []PriceItem `json:"full_price_list"`
}

var services = []DiagnosticService{
	{
		ID:          "1",
		Title:       "Advanced MRI & CT",
		Description: "High-resolution neurological and orthopedic imaging for precise internal assessments.",
		PriceRange:  "$500 - $1,200",
		PrepInstructions: []string{
			"Fast your pet for 12 hours prior to arrival (no food, water is okay).",
			"Arrive 30 minutes early for sedation assessment.",
			"Bring previous medical records and current medication list.",
		},
		FullPriceList: []PriceItem{
			{Item: "Brain MRI (Complete)", Price: "$850"},
			{Item: "Spinal Series CT", Price: "$650"},
			{Item: "Abdominal CT with Contrast", Price: "$750"},
			{Item: "General Anesthesia Service", Price: "$250"},
		},
	},
	{
		ID:          "2",
		Title:       "Digital Radiography",
		Description: "Instant X-rays for bone fractures, organ evaluation, and dental health screenings.",
		PriceRange:  "$150 - $400",
		PrepInstructions: []string{
			"Minimal preparation required for most cases.",
			"Calming medication may be administered for anxious pets.",
			"Remove collars or harnesses before the procedure.",
		},
		FullPriceList: []PriceItem{
			{Item: "Thoracic X-ray (2 Views)", Price: "$180"},
			{Item: "Orthopedic Series", Price: "$220"},
			{Item: "Dental Radiography (Full Mouth)", Price: "$250"},
		},
	},
	{
		ID:          "3",
		Title:       "Ultrasound Imaging",
		Description: "Non-invasive soft tissue assessment including echocardiograms and abdominal scans.",
		PriceRange:  "$250 - $600",
		PrepInstructions: []string{
			"Fasting for 8 hours is recommended for abdominal scans.",
			"Small areas of fur may need to be shaved for optimal image quality.",
			"Full bladder often required for urinary tract scans.",
		},
		FullPriceList: []PriceItem{
			{Item: "Complete Abdominal Ultrasound", Price: "$350"},
			{Item: "Echocardiogram (Cardiac)", Price: "$450"},
			{Item: "Pregnancy Confirmation", Price: "$150"},
		},
	},
	{
		ID:          "4",
		Title:       "Clinical Pathology",
		Description: "Comprehensive blood panels, urinalysis, and endocrinology testing with rapid results.",
		PriceRange:  "$80 - $300",
		PrepInstructions: []string{
			"Morning samples are preferred for most endocrine tests.",
			"Fasted blood work provides the most accurate lipid results.",
			"Inform staff if your pet is on any specific vitamins or supplements.",
		},
		FullPriceList: []PriceItem{
			{Item: "Comprehensive Metabolic Panel", Price: "$95"},
			{Item: "Complete Blood Count (CBC)", Price: "$65"},
			{Item: "Urinalysis with Sediments", Price: "$45"},
		},
	},
	{
		ID:          "5",
		Title:       "Histopathology",
		Description: "Cellular level analysis of biopsies and masses for cancer screening.",
		PriceRange:  "$200 - $500",
		PrepInstructions: []string{
			"Biopsy sites should be kept clean and dry.",
			"Previous cytology reports are helpful for context.",
			"Allow 3-5 business days for expert pathologist review.",
		},
		FullPriceList: []PriceItem{
			{Item: "Small Tissue Biopsy", Price: "$180"},
			{Item: "Large Mass Histopathology", Price: "$350"},
			{Item: "Fine Needle Aspirate (FNA)", Price: "$110"},
		},
	},
	{
		ID:          "6",
		Title:       "Allergy & Immunology",
		Description: "Identifying underlying environmental and food triggers for chronic skin conditions.",
		PriceRange:  "$120 - $450",
		PrepInstructions: []string{
			"Stop antihistamines 7 days before testing.",
			"Bring current diet brand and ingredient list.",
			"Best performed during a non-flare state if possible.",
		},
		FullPriceList: []PriceItem{
			{Item: "Regional Allergy Panel (Blood)", Price: "$280"},
			{Item: "Intradermal Skin Testing", Price: "$420"},
			{Item: "Food Elimination Consultation", Price: "$95"},
		},
	},
}

// Services returns the public diagnostic-service list in display order.
func Services() []DiagnosticService {
	out := make([]DiagnosticService, len(services))
	copy(out, services)
	return out
}

// Service looks up an offering by id.
func Service(id string) (*DiagnosticService, bool) {
	for i := range services {
		if services[i].ID == id {
			s := services[i]
			return &s, true
		}
	}
	return nil, false
}
