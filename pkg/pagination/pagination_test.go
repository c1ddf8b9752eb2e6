package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, target string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "/")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("unexpected defaults %+v", p)
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := paramsFor(t, "/?limit=5&offset=10")
	if p.Limit != 5 || p.Offset != 10 {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestFromContext_ClampsLimit(t *testing.T) {
	p := paramsFor(t, "/?limit=5000")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	p = paramsFor(t, "/?limit=-1&offset=-5")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("negative params not normalized: %+v", p)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	r := NewResponse(nil, 50, 20, 0)
	if !r.HasMore {
		t.Error("expected has_more on first page")
	}
	r = NewResponse(nil, 50, 20, 40)
	if r.HasMore {
		t.Error("expected no more results on last page")
	}
}

func TestParams_NextOffset(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if !p.HasNext(100) {
		t.Error("expected next page")
	}
	if p.NextOffset() != 60 {
		t.Errorf("expected 60, got %d", p.NextOffset())
	}
}
