package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/monsite/console-api/internal/core/domain"
)

func newErrorTestServer(t *testing.T, err error) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.POST("/boom", func(c echo.Context) error {
		return err
	})
	return e
}

func TestErrorHandler_SentinelMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"invalid reset token", domain.ErrInvalidResetToken, http.StatusBadRequest, "invalid or expired reset token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newErrorTestServer(t, tc.err)
			req := httptest.NewRequest(http.MethodPost, "/boom", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body["error"])
			}
		})
	}
}

func TestErrorHandler_WrappedResetTokenError(t *testing.T) {
	// Services wrap sentinels; the mapping must survive the wrapping.
	wrapped := errors.Join(errors.New("confirm reset"), domain.ErrInvalidResetToken)
	e := newErrorTestServer(t, wrapped)
	req := httptest.NewRequest(http.MethodPost, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a wrapped reset-token error, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid or expired reset token") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestErrorHandler_LockedErrorCarriesRemaining(t *testing.T) {
	locked := &domain.LockedError{Form: domain.FormLogin, Remaining: 90 * time.Second}
	e := newErrorTestServer(t, locked)
	req := httptest.NewRequest(http.MethodPost, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}
