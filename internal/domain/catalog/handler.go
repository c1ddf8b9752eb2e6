package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the compiled-in catalog data.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes registers catalog routes. Templates are a staff concern,
// services are public marketing data.
func (h *Handler) RegisterRoutes(public, staff *echo.Group) {
	public.GET("/services", h.ListServices)
	public.GET("/services/:id", h.GetService)
	staff.GET("/templates", h.ListTemplates)
	staff.GET("/templates/:name", h.GetTemplate)
}

func (h *Handler) ListTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, Templates())
}

func (h *Handler) GetTemplate(c echo.Context) error {
	t, ok := Template(c.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "test template not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ListServices(c echo.Context) error {
	return c.JSON(http.StatusOK, Services())
}

func (h *Handler) GetService(c echo.Context) error {
	s, ok := Service(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	return c.JSON(http.StatusOK, s)
}
