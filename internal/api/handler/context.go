package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/monsite/console-api/internal/core/domain"
)

// ctxActor rebuilds the caller's identity from the claims injected by the
// Auth middleware, with permissions derived from the role. Handlers pass the
// actor explicitly into every permission-gated service call — authorization
// never reads ambient state.
func ctxActor(c echo.Context) (domain.Identity, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	name, _ := c.Get("name").(string)
	uid, _ := c.Get("uid").(string)

	r := domain.NormalizeRole(role)
	return domain.Identity{
		ID:          uid,
		Name:        name,
		Email:       email,
		Role:        r,
		Permissions: domain.PermissionsFor(r),
	}, nil
}
