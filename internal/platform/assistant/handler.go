package assistant

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Handler exposes the public symptom-analysis endpoint.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(public *echo.Group) {
	public.POST("/assistant", h.Analyze)
}

func (h *Handler) Analyze(c echo.Context) error {
	var req struct {
		Description string `json:"description"`
		ImageData   string `json:"image_data"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Description) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}

	text, err := h.client.Analyze(c.Request().Context(), req.Description, req.ImageData)
	if err != nil {
		if errors.Is(err, ErrAnalysisFailed) {
			return echo.NewHTTPError(http.StatusBadGateway, ErrAnalysisFailed.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"analysis": text})
}
