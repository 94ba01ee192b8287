package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	changeFn   func(ctx context.Context, email, currentPassword, newPassword string) error
	requestFn  func(ctx context.Context, email string) (string, error)
	confirmFn  func(ctx context.Context, token, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangeOwnPassword(ctx context.Context, email, currentPassword, newPassword string) error {
	return s.changeFn(ctx, email, currentPassword, newPassword)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return s.requestFn(ctx, email)
}

func (s *stubAuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return s.confirmFn(ctx, token, newPassword)
}

type stubDirectory struct {
	getFn func(ctx context.Context, email string) (*domain.Identity, error)
}

func (s *stubDirectory) ResolveRole(ctx context.Context, email string) domain.Role {
	return domain.RoleUser
}

func (s *stubDirectory) GetIdentity(ctx context.Context, email string) (*domain.Identity, error) {
	return s.getFn(ctx, email)
}

func (s *stubDirectory) GetIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubDirectory) ListIdentities(ctx context.Context, actor domain.Identity) ([]domain.Identity, error) {
	return []domain.Identity{}, nil
}

func (s *stubDirectory) UpdateRole(ctx context.Context, actor domain.Identity, id string, role domain.Role) (*domain.Identity, error) {
	return nil, domain.ErrForbidden
}

func (s *stubDirectory) UpdateProfile(ctx context.Context, actor domain.Identity, id, name, email string) (*domain.Identity, error) {
	return nil, domain.ErrForbidden
}

func (s *stubDirectory) SetPassword(ctx context.Context, actor domain.Identity, id, newPassword string) error {
	return domain.ErrForbidden
}

func (s *stubDirectory) DeleteIdentity(ctx context.Context, actor domain.Identity, id string) error {
	return domain.ErrForbidden
}

func (s *stubDirectory) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			if email != "alice@monsite.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return &domain.User{ID: "42", Name: name, Email: email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@monsite.com","password":"longenough"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@monsite.com" || resp["role"] != "user" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@monsite.com","password":"short"}`)

	err := handler.Register(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@monsite.com","password":"longenough"}`)

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			identity := domain.Identity{
				ID:          "1",
				Name:        "Admin",
				Email:       email,
				Role:        domain.RoleAdmin,
				Permissions: domain.PermissionsFor(domain.RoleAdmin),
			}
			return &ports.LoginResult{
				Token:    "token123",
				Identity: identity,
				Redirect: domain.RouteAdminLanding,
			}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"admin@monsite.com","password":"secret"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if resp["redirect"] != domain.RouteAdminLanding {
		t.Fatalf("expected admin redirect, got %v", resp["redirect"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@monsite.com","password":"bad"}`)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_Locked(t *testing.T) {
	locked := &domain.LockedError{Form: domain.FormLogin, Remaining: 0}
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, locked
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@monsite.com","password":"whatever"}`)

	if err := handler.Login(c); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected lockout error, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", "{")

	err := handler.Login(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestAuthHandler_Me_RefreshesFromDirectory(t *testing.T) {
	directory := &stubDirectory{
		getFn: func(ctx context.Context, email string) (*domain.Identity, error) {
			// Role was promoted since the token was issued.
			return &domain.Identity{
				ID:          "7",
				Name:        "Zeineb",
				Email:       email,
				Role:        domain.RoleAdmin,
				Permissions: domain.PermissionsFor(domain.RoleAdmin),
			}, nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, directory)

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set("email", "zeineb@monsite.com")
	c.Set("uid", "7")
	c.Set("name", "Zeineb")
	c.Set("role", "user")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "admin" {
		t.Fatalf("expected refreshed role, got %v", resp["role"])
	}
}

func TestAuthHandler_RequestReset_ReturnsToken(t *testing.T) {
	stub := &stubAuthService{
		requestFn: func(ctx context.Context, email string) (string, error) {
			return "reset-token", nil
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/reset-password",
		`{"email":"alice@monsite.com"}`)

	if err := handler.RequestReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["reset_token"] != "reset-token" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_ConfirmReset_NoContent(t *testing.T) {
	stub := &stubAuthService{
		confirmFn: func(ctx context.Context, token, newPassword string) error {
			if token != "reset-token" {
				t.Fatalf("unexpected token: %s", token)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub, &stubDirectory{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/reset-password/confirm",
		`{"token":"reset-token","new_password":"longenough"}`)

	if err := handler.ConfirmReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
