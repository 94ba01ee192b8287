package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

type SchemaHandler struct {
	schemas ports.SchemaRepository
}

func NewSchemaHandler(schemas ports.SchemaRepository) *SchemaHandler {
	return &SchemaHandler{schemas: schemas}
}

// Tables describes every table of the named analytics schema: columns,
// primary keys and outbound foreign keys.
//
// @Summary      Introspect analytics schema
// @Tags         schema
// @Produce      json
// @Security     BearerAuth
// @Param        schema  path      string  true  "Schema name"
// @Success      200     {array}   domain.SchemaTable
// @Failure      503     {object}  map[string]string
// @Router       /v1/schema/{schema} [get]
func (h *SchemaHandler) Tables(c echo.Context) error {
	if h.schemas == nil {
		return domain.ErrSchemaUnavailable
	}

	tables, err := h.schemas.Tables(c.Request().Context(), c.Param("schema"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tables)
}
