package cases

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(repo CaseRepository) (*Handler, *echo.Echo) {
	svc := NewService(repo, NewDraftManager(), testLetterhead())
	return NewHandler(svc), echo.New()
}

func TestLookupReport_EmptyStoreMessage(t *testing.T) {
	h, e := newTestHandler(newMockCaseRepo())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/reports?query=REP-AAA111", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.LookupReport(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if he.Message != MsgStoreEmpty {
		t.Errorf("expected %q, got %v", MsgStoreEmpty, he.Message)
	}
}

func TestLookupReport_NoMatchMessage(t *testing.T) {
	repo := newMockCaseRepo()
	repo.cases = []*DiagnosticCase{{ID: "REP-AAA111", Mobile: "9876543210"}}
	h, e := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/reports?query=REP-ZZZ999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.LookupReport(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if he.Message != MsgNoReportFound {
		t.Errorf("expected %q, got %v", MsgNoReportFound, he.Message)
	}
}

func TestLookupReport_Match(t *testing.T) {
	repo := newMockCaseRepo()
	repo.cases = []*DiagnosticCase{{ID: "REP-AAA111", Mobile: "9876543210", OwnerName: "Ravi Kumar"}}
	h, e := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/reports?query=9876543210", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.LookupReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out DiagnosticCase
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.ID != "REP-AAA111" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestLookupReport_MobileResolvesToLatestCase(t *testing.T) {
	repo := newMockCaseRepo()
	repo.cases = []*DiagnosticCase{
		{ID: "REP-NEW222", Mobile: "9876543210", PetName: "Bruno"},
		{ID: "REP-OLD111", Mobile: "9876543210", PetName: "Bruno"},
	}
	h, e := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/reports?query=9876543210", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.LookupReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The body is a single case, not a list of every report under the number.
	var out DiagnosticCase
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("expected a single case body: %v (%s)", err, rec.Body.String())
	}
	if out.ID != "REP-NEW222" {
		t.Errorf("expected the most recent case, got %s", out.ID)
	}
}

func TestDraftWorkflow_OverHTTP(t *testing.T) {
	repo := newMockCaseRepo()
	h, e := newTestHandler(repo)

	// Create a draft.
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	if err := h.NewDraft(e.NewContext(req, rec)); err != nil {
		t.Fatalf("new draft: %v", err)
	}
	var d Draft
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	do := func(method, body string, handler echo.HandlerFunc, names []string, values []string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames(names...)
		c.SetParamValues(values...)
		return rec, handler(c)
	}

	if _, err := do(http.MethodPut, `{"name":"Complete Blood Picture (CBP)"}`, h.SelectTemplate, []string{"id"}, []string{d.ID}); err != nil {
		t.Fatalf("select template: %v", err)
	}
	for _, body := range []string{
		`{"field":"owner_name","value":"Ravi Kumar"}`,
		`{"field":"mobile","value":"9876543210"}`,
		`{"field":"pet_name","value":"Bruno"}`,
	} {
		if _, err := do(http.MethodPut, body, h.SetField, []string{"id"}, []string{d.ID}); err != nil {
			t.Fatalf("set field: %v", err)
		}
	}
	if _, err := do(http.MethodPut, `{"value":"10.0"}`, h.SetResultValue, []string{"id", "row"}, []string{d.ID, "0"}); err != nil {
		t.Fatalf("set result value: %v", err)
	}
	if _, err := do(http.MethodPost, "", h.Review, []string{"id"}, []string{d.ID}); err != nil {
		t.Fatalf("review: %v", err)
	}

	// Edits are rejected while confirming.
	_, err := do(http.MethodPut, `{"field":"owner_name","value":"x"}`, h.SetField, []string{"id"}, []string{d.ID})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409 while confirming, got %v", err)
	}

	rec, err = do(http.MethodPost, "", h.Commit, []string{"id"}, []string{d.ID})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var dc DiagnosticCase
	if err := json.Unmarshal(rec.Body.Bytes(), &dc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.HasPrefix(dc.ID, "REP-") {
		t.Errorf("unexpected report id %q", dc.ID)
	}

	// Second commit conflicts.
	_, err = do(http.MethodPost, "", h.Commit, []string{"id"}, []string{d.ID})
	he, ok = err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409 on double commit, got %v", err)
	}
}

func TestGetDraft_NotFound(t *testing.T) {
	h, e := newTestHandler(newMockCaseRepo())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.GetDraft(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestGetReport_IncludesLetterhead(t *testing.T) {
	repo := newMockCaseRepo()
	repo.cases = []*DiagnosticCase{{ID: "REP-AAA111"}}
	h, e := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("REP-AAA111")

	if err := h.GetReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rep Report
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rep.Letterhead.Pathologist != "Dr. Sarah Wilson" {
		t.Errorf("letterhead missing: %+v", rep.Letterhead)
	}
}
