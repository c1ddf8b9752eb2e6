package catalog

// TemplateRow is one pre-defined parameter of a test panel: what is measured,
// its unit, and the reference interval (or qualitative expectation) printed on
// the report.
type TemplateRow struct {
	Parameter   string `json:"parameter"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normal_range"`
}

// TestTemplate is a compiled-in test panel. Selecting one seeds a draft with
// its rows and sample type.
type TestTemplate struct {
	Name       string        `json:"name"`
	SampleType string        `json:"sample_type"`
	Rows       []TemplateRow `json:"rows"`
}

var templates = []TestTemplate{
	{
		Name:       "Complete Blood Picture (CBP)",
		SampleType: "Whole Blood (EDTA)",
		Rows: []TemplateRow{
			{Parameter: "Hemoglobin", Unit: "g/dL", NormalRange: "12.0 - 18.0"},
			{Parameter: "Total WBC Count", Unit: "cells/mm3", NormalRange: "6,000 - 17,000"},
			{Parameter: "RBC Count", Unit: "million/mm3", NormalRange: "5.5 - 8.5"},
			{Parameter: "Platelet Count", Unit: "lakhs/mm3", NormalRange: "2.0 - 5.0"},
			{Parameter: "PCV", Unit: "%", NormalRange: "37 - 55"},
			{Parameter: "Neutrophils", Unit: "%", NormalRange: "60 - 77"},
			{Parameter: "Lymphocytes", Unit: "%", NormalRange: "12 - 30"},
		},
	},
	{
		Name:       "Liver Function Test (LFT)",
		SampleType: "Serum",
		Rows: []TemplateRow{
			{Parameter: "ALT (SGPT)", Unit: "U/L", NormalRange: "10 - 100"},
			{Parameter: "AST (SGOT)", Unit: "U/L", NormalRange: "10 - 50"},
			{Parameter: "ALP", Unit: "U/L", NormalRange: "20 - 150"},
			{Parameter: "Total Bilirubin", Unit: "mg/dL", NormalRange: "0.1 - 0.4"},
			{Parameter: "Total Protein", Unit: "g/dL", NormalRange: "5.2 - 8.2"},
			{Parameter: "Albumin", Unit: "g/dL", NormalRange: "2.3 - 4.0"},
			{Parameter: "Globulin", Unit: "g/dL", NormalRange: "2.5 - 4.5"},
		},
	},
	{
		Name:       "Renal Function Test (RFT)",
		SampleType: "Serum",
		Rows: []TemplateRow{
			{Parameter: "BUN", Unit: "mg/dL", NormalRange: "7 - 27"},
			{Parameter: "Serum Creatinine", Unit: "mg/dL", NormalRange: "0.5 - 1.8"},
			{Parameter: "Urea", Unit: "mg/dL", NormalRange: "10 - 45"},
			{Parameter: "Calcium", Unit: "mg/dL", NormalRange: "9.0 - 11.3"},
			{Parameter: "Phosphorus", Unit: "mg/dL", NormalRange: "2.5 - 6.8"},
		},
	},
	{
		Name:       "Biochemistry Profile",
		SampleType: "Serum",
		Rows: []TemplateRow{
			{Parameter: "Glucose", Unit: "mg/dL", NormalRange: "70 - 143"},
			{Parameter: "Cholesterol", Unit: "mg/dL", NormalRange: "110 - 320"},
			{Parameter: "Amylase", Unit: "U/L", NormalRange: "500 - 1500"},
			{Parameter: "Lipase", Unit: "U/L", NormalRange: "200 - 1800"},
			{Parameter: "CPK", Unit: "U/L", NormalRange: "10 - 200"},
		},
	},
	{
		Name:       "Microbiology (Culture & Sensitivity)",
		SampleType: "Swab / Fluid",
		Rows: []TemplateRow{
			{Parameter: "Specimen Type", Unit: "", NormalRange: "Varies"},
			{Parameter: "Gram Stain", Unit: "", NormalRange: "No Pathogenic Organisms"},
			{Parameter: "Growth after 24h", Unit: "", NormalRange: "Sterile"},
			{Parameter: "Antibiotic Sensitivity", Unit: "", NormalRange: "As observed"},
		},
	},
	{
		Name:       "Faecal Examination",
		SampleType: "Faeces",
		Rows: []TemplateRow{
			{Parameter: "Color & Consistency", Unit: "", NormalRange: "Brown/Formed"},
			{Parameter: "Mucus/Blood", Unit: "", NormalRange: "Absent"},
			{Parameter: "Ova/Cysts", Unit: "", NormalRange: "Not Detected"},
			{Parameter: "Protozoal Findings", Unit: "", NormalRange: "Not Detected"},
		},
	},
	{
		Name:       "Skin Scraping Examination",
		SampleType: "Skin Scraping",
		Rows: []TemplateRow{
			{Parameter: "Mites (Demodex/Sarcoptes)", Unit: "", NormalRange: "Not Detected"},
			{Parameter: "Fungal Hyphae/Spores", Unit: "", NormalRange: "Not Detected"},
			{Parameter: "Bacterial Findings", Unit: "", NormalRange: "Normal Flora Only"},
			{Parameter: "Cellular Findings", Unit: "", NormalRange: "Varies"},
		},
	},
	{
		Name:       "Milk Test (Mastitis Screen)",
		SampleType: "Milk",
		Rows: []TemplateRow{
			{Parameter: "Appearance", Unit: "", NormalRange: "Normal White"},
			{Parameter: "Somatic Cell Count", Unit: "cells/ml", NormalRange: "< 2,00,000"},
			{Parameter: "pH", Unit: "", NormalRange: "6.5 - 6.7"},
			{Parameter: "CMT (California Mastitis Test)", Unit: "", NormalRange: "Negative"},
		},
	},
}

// Templates returns every built-in test panel in catalog order.
func Templates() []TestTemplate {
	out := make([]TestTemplate, len(templates))
	copy(out, templates)
	return out
}

// Template looks up a panel by its exact name.
func Template(name string) (*TestTemplate, bool) {
	for i := range templates {
		if templates[i].Name == name {
			t := templates[i]
			return &t, true
		}
	}
	return nil, false
}
