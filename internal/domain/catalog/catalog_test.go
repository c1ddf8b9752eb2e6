package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestTemplates_AllPanelsPresent(t *testing.T) {
	want := []string{
		"Complete Blood Picture (CBP)",
		"Liver Function Test (LFT)",
		"Renal Function Test (RFT)",
		"Biochemistry Profile",
		"Microbiology (Culture & Sensitivity)",
		"Faecal Examination",
		"Skin Scraping Examination",
		"Milk Test (Mastitis Screen)",
	}
	got := Templates()
	if len(got) != len(want) {
		t.Fatalf("expected %d templates, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("template %d: expected %q, got %q", i, name, got[i].Name)
		}
	}
}

func TestTemplate_Lookup(t *testing.T) {
	tpl, ok := Template("Complete Blood Picture (CBP)")
	if !ok {
		t.Fatal("expected CBP template to exist")
	}
	if tpl.SampleType != "Whole Blood (EDTA)" {
		t.Errorf("unexpected sample type %q", tpl.SampleType)
	}
	if len(tpl.Rows) != 7 {
		t.Errorf("expected 7 rows, got %d", len(tpl.Rows))
	}
	if tpl.Rows[0].Parameter != "Hemoglobin" || tpl.Rows[0].NormalRange != "12.0 - 18.0" {
		t.Errorf("unexpected first row %+v", tpl.Rows[0])
	}

	if _, ok := Template("Nope"); ok {
		t.Error("expected lookup miss for unknown template")
	}
}

func TestTemplates_ReturnsCopy(t *testing.T) {
	first := Templates()
	first[0].Name = "mutated"
	if Templates()[0].Name == "mutated" {
		t.Error("Templates() must not expose internal state")
	}
}

func TestServices_List(t *testing.T) {
	got := Services()
	if len(got) != 6 {
		t.Fatalf("expected 6 services, got %d", len(got))
	}
	if got[0].Title != "Advanced MRI & CT" {
		t.Errorf("unexpected first service %q", got[0].Title)
	}
	for _, s := range got {
		if s.PriceRange == "" {
			t.Errorf("service %q has no price range", s.Title)
		}
		if len(s.FullPriceList) == 0 {
			t.Errorf("service %q has no price list", s.Title)
		}
	}
}

func TestHandler_ListServices(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/services", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHandler()
	if err := h.ListServices(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out []DiagnosticService
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 6 {
		t.Errorf("expected 6 services in body, got %d", len(out))
	}
}

func TestHandler_GetTemplateNotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("Unknown Panel")

	h := NewHandler()
	err := h.GetTemplate(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}
