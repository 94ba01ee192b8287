package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

type PreferencesHandler struct {
	store ports.PreferenceStore
}

func NewPreferencesHandler(store ports.PreferenceStore) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

type preferencesRequest struct {
	Language string `json:"language" validate:"required,oneof=fr en"`
	Theme    string `json:"theme"    validate:"required,oneof=light dark"`
}

// Get returns the caller's UI preferences, defaulting to French and the light
// theme when none are stored.
//
// @Summary      Get preferences
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Preferences
// @Router       /v1/preferences [get]
func (h *PreferencesHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	prefs, err := h.store.Get(c.Request().Context(), actor.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// Put replaces the caller's UI preferences.
//
// @Summary      Update preferences
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      preferencesRequest  true  "Language and theme"
// @Success      200   {object}  domain.Preferences
// @Failure      400   {object}  map[string]string
// @Router       /v1/preferences [put]
func (h *PreferencesHandler) Put(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req preferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prefs := domain.Preferences{
		Language: req.Language,
		Theme:    req.Theme,
	}
	if err := h.store.Put(c.Request().Context(), actor.Email, prefs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs.Normalize())
}
