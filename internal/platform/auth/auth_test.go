package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func testConfig() Config {
	return Config{
		SigningKey: []byte("test-signing-key"),
		Username:   "admin_01",
		Password:   "hunter2",
	}
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, UserFromContext(c.Request().Context()))
}

func TestIssueToken(t *testing.T) {
	cfg := testConfig()

	if _, err := cfg.IssueToken("admin_01", "wrong"); err == nil {
		t.Error("expected error for wrong password")
	}
	if _, err := cfg.IssueToken("someone", "hunter2"); err == nil {
		t.Error("expected error for wrong username")
	}

	token, err := cfg.IssueToken("admin_01", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
}

func TestStaffRequired_ValidToken(t *testing.T) {
	cfg := testConfig()
	token, err := cfg.IssueToken("admin_01", "hunter2")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := StaffRequired(cfg)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Body.String() != "admin_01" {
		t.Errorf("expected username in context, got %q", rec.Body.String())
	}
}

func TestStaffRequired_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := StaffRequired(testConfig())(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestStaffRequired_ForgedToken(t *testing.T) {
	other := testConfig()
	other.SigningKey = []byte("different-key")
	token, err := other.IssueToken("admin_01", "hunter2")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err = StaffRequired(testConfig())(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %v", err)
	}
}

func TestStaffRequired_DevBypass(t *testing.T) {
	cfg := testConfig()
	cfg.DevBypass = true

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := StaffRequired(cfg)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Body.String() != "dev-staff" {
		t.Errorf("expected dev-staff user, got %q", rec.Body.String())
	}
}

func TestLogin_HTTP(t *testing.T) {
	e := echo.New()
	h := NewHandler(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"admin_01","password":"hunter2"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out["token"] == "" {
		t.Error("expected a token in response")
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	e := echo.New()
	h := NewHandler(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"admin_01","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
