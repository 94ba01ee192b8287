package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/monsite/console-api/internal/core/ports"
)

type MetricsHandler struct {
	metrics ports.MetricsService
}

func NewMetricsHandler(metrics ports.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Dashboard returns the aggregate numbers for the admin landing page.
//
// @Summary      Console dashboard metrics
// @Tags         metrics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ConsoleMetrics
// @Failure      403  {object}  map[string]string
// @Router       /v1/metrics/dashboard [get]
func (h *MetricsHandler) Dashboard(c echo.Context) error {
	snapshot, err := h.metrics.ConsoleMetrics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}
