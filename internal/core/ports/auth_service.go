package ports

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
)

// LoginResult is the session handed back on successful authentication: the
// bearer token, the identity enriched with permissions, and the role-based
// redirect the frontend is expected to navigate to.
type LoginResult struct {
	Token    string
	Identity domain.Identity
	Redirect string
}

// AuthService implements registration, login, and password lifecycle.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ChangeOwnPassword(ctx context.Context, email, currentPassword, newPassword string) error

	// RequestPasswordReset issues a short-lived reset token for a known email.
	// The request path is guarded by its own lockout (3 attempts).
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ConfirmPasswordReset consumes a reset token and sets the new password.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}
