package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

const defaultAuditLimit = 50

type AuditHandler struct {
	audit ports.AuditRepository
}

func NewAuditHandler(audit ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListByActor returns the most recent audit events recorded for an actor,
// newest first.
//
// @Summary      List audit events for an actor
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        actor  path      string  true   "Actor email"
// @Param        limit  query     int     false  "Maximum events returned (default 50)"
// @Success      200    {array}   domain.AuditEvent
// @Failure      403    {object}  map[string]string
// @Router       /v1/audit/{actor} [get]
func (h *AuditHandler) ListByActor(c echo.Context) error {
	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	events, err := h.audit.ListByActor(c.Request().Context(), c.Param("actor"), limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []domain.AuditEvent{}
	}
	return c.JSON(http.StatusOK, events)
}
