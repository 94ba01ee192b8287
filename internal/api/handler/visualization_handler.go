package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

type VisualizationHandler struct {
	visualizations ports.VisualizationService
}

func NewVisualizationHandler(visualizations ports.VisualizationService) *VisualizationHandler {
	return &VisualizationHandler{visualizations: visualizations}
}

type visualizationRequest struct {
	Query  string `json:"query"  validate:"required"`
	Schema string `json:"schema" validate:"required"`
}

// Generate turns a natural-language question into a chart specification.
// When the workflow engine is unreachable the response carries a locally
// generated fallback with `fallback` set to true.
//
// @Summary      Generate visualization
// @Tags         visualizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      visualizationRequest  true  "Question and schema description"
// @Success      200   {object}  domain.VisualizationResult
// @Failure      400   {object}  map[string]string
// @Router       /v1/visualizations [post]
func (h *VisualizationHandler) Generate(c echo.Context) error {
	var req visualizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.visualizations.Generate(c.Request().Context(), domain.VisualizationRequest{
		Query:  req.Query,
		Schema: req.Schema,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
