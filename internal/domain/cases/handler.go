package cases

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetiscan/vetiscan/pkg/pagination"
)

// User-facing lookup failure messages. The owner portal renders these
// verbatim, so the wording is fixed.
const (
	MsgNoReportFound  = "No report found for the provided ID or Mobile Number."
	MsgStoreEmpty     = "System database is currently empty."
	MsgStoreUnhealthy = "System database is currently unavailable."
)

// Handler provides HTTP handlers for the diagnostic-case domain.
type Handler struct {
	svc *Service
}

// NewHandler creates a new case domain handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the public lookup route and the staff workflow
// routes.
func (h *Handler) RegisterRoutes(public, staff *echo.Group) {
	public.GET("/reports", h.LookupReport)

	staff.POST("/drafts", h.NewDraft)
	staff.GET("/drafts/:id", h.GetDraft)
	staff.PUT("/drafts/:id/template", h.SelectTemplate)
	staff.PUT("/drafts/:id/fields", h.SetField)
	staff.PUT("/drafts/:id/results/:row/value", h.SetResultValue)
	staff.PUT("/drafts/:id/results/:row/range", h.SetResultRange)
	staff.POST("/drafts/:id/review", h.Review)
	staff.POST("/drafts/:id/edit", h.Edit)
	staff.POST("/drafts/:id/commit", h.Commit)
	staff.DELETE("/drafts/:id", h.Discard)

	staff.GET("/cases", h.ListCases)
	staff.GET("/cases/:id", h.GetCase)
	staff.GET("/cases/:id/report", h.GetReport)
}

// -- Public lookup --

func (h *Handler) LookupReport(c echo.Context) error {
	query := c.QueryParam("query")
	dc, err := h.svc.Lookup(c.Request().Context(), query)
	switch {
	case errors.Is(err, ErrStoreEmpty):
		return echo.NewHTTPError(http.StatusNotFound, MsgStoreEmpty)
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, MsgNoReportFound)
	case errors.Is(err, ErrStoreCorrupt):
		return echo.NewHTTPError(http.StatusInternalServerError, MsgStoreUnhealthy)
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dc)
}

// -- Draft workflow --

func (h *Handler) NewDraft(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.svc.NewDraft(c.Request().Context()))
}

func (h *Handler) GetDraft(c echo.Context) error {
	d, err := h.svc.GetDraft(c.Request().Context(), c.Param("id"))
	if err != nil {
		return draftError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) SelectTemplate(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.SelectTemplate(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return draftError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) SetField(c echo.Context) error {
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.SetField(c.Request().Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		return draftError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) SetResultValue(c echo.Context) error {
	row, err := rowParam(c)
	if err != nil {
		return err
	}
	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.SetResultValue(c.Request().Context(), c.Param("id"), row, req.Value)
	if err != nil {
		return draftError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) SetResultRange(c echo.Context) error {
	row, err := rowParam(c)
	if err != nil {
		return err
	}
	var req struct {
		NormalRange string `json:"normal_range"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.SetResultRange(c.Request().Context(), c.Param("id"), row, req.NormalRange)
	if err != nil {
		return draftError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Review(c echo.Context) error {
	d, err := h.svc.Review(c.Request().Context(), c.Param("id"))
	if err != nil {
		return draftError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Edit(c echo.Context) error {
	d, err := h.svc.Edit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return draftError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Commit(c echo.Context) error {
	dc, err := h.svc.CommitDraft(c.Request().Context(), c.Param("id"))
	if err != nil {
		return draftError(err)
	}
	return c.JSON(http.StatusCreated, dc)
}

func (h *Handler) Discard(c echo.Context) error {
	if err := h.svc.Discard(c.Request().Context(), c.Param("id")); err != nil {
		return draftError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Staff case access --

func (h *Handler) ListCases(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.Search(c.Request().Context(), c.QueryParam("query"), pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrStoreCorrupt) {
			return echo.NewHTTPError(http.StatusInternalServerError, MsgStoreUnhealthy)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetCase(c echo.Context) error {
	dc, err := h.svc.GetCase(c.Request().Context(), c.Param("id"))
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, dc)
}

func (h *Handler) GetReport(c echo.Context) error {
	rep, err := h.svc.Report(c.Request().Context(), c.Param("id"))
	if err != nil {
		return caseError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

func rowParam(c echo.Context) (int, error) {
	var row int
	if err := echo.PathParamsBinder(c).Int("row", &row).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid row index")
	}
	return row, nil
}

func draftError(err error) error {
	switch {
	case errors.Is(err, ErrDraftNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "draft not found")
	case errors.Is(err, ErrAlreadyCommitted):
		return echo.NewHTTPError(http.StatusConflict, "draft already committed")
	case errors.Is(err, ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrMissingTemplate):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func caseError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrStoreEmpty):
		return echo.NewHTTPError(http.StatusNotFound, "case not found")
	case errors.Is(err, ErrStoreCorrupt):
		return echo.NewHTTPError(http.StatusInternalServerError, MsgStoreUnhealthy)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
