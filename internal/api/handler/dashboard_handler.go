package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/monsite/console-api/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

type dashboardRequest struct {
	Name        string `json:"name"     validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Active      bool   `json:"active"`
	URL         string `json:"url"       validate:"required,url"`
	EmbedURL    string `json:"embed_url" validate:"omitempty,url"`
}

func (r dashboardRequest) toInput() ports.DashboardInput {
	return ports.DashboardInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Active:      r.Active,
		URL:         r.URL,
		EmbedURL:    r.EmbedURL,
	}
}

// Create registers a new dashboard in the catalog.
//
// @Summary      Create dashboard
// @Tags         dashboards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dashboardRequest  true  "Dashboard fields"
// @Success      201   {object}  domain.Dashboard
// @Failure      403   {object}  map[string]string
// @Router       /v1/dashboards [post]
func (h *DashboardHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req dashboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dashboard, err := h.dashboards.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dashboard)
}

// Get returns one dashboard with its embed URL resolved.
//
// @Summary      Get dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Dashboard id"
// @Success      200  {object}  domain.Dashboard
// @Failure      404  {object}  map[string]string
// @Router       /v1/dashboards/{id} [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	dashboard, err := h.dashboards.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

// List returns the catalog. Actors without dashboard:manage only see active
// dashboards.
//
// @Summary      List dashboards
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Dashboard
// @Router       /v1/dashboards [get]
func (h *DashboardHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	dashboards, err := h.dashboards.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboards)
}

// Update replaces the writable fields of a dashboard.
//
// @Summary      Update dashboard
// @Tags         dashboards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Dashboard id"
// @Param        body  body      dashboardRequest  true  "Dashboard fields"
// @Success      200   {object}  domain.Dashboard
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/dashboards/{id} [put]
func (h *DashboardHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req dashboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dashboard, err := h.dashboards.Update(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Delete removes a dashboard from the catalog.
//
// @Summary      Delete dashboard
// @Tags         dashboards
// @Security     BearerAuth
// @Param        id  path  string  true  "Dashboard id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/dashboards/{id} [delete]
func (h *DashboardHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.dashboards.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
