package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/monsite/console-api/internal/api/metrics"
	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

const (
	defaultTokenTTL = 24 * time.Hour
	resetTokenTTL   = 15 * time.Minute

	claimPurposeReset = "password_reset"
)

// AuthService implements registration, login, and the password lifecycle.
// It is backend-authoritative: the repository is the credential oracle, and
// the directory's static fallback only covers unprovisioned demo accounts
// when demoFallback is enabled.
type AuthService struct {
	repo         ports.UserRepository
	directory    ports.DirectoryService
	loginGuard   *LockoutGuard
	resetGuard   *LockoutGuard
	recorder     ports.AuditRecorder
	jwtSecret    string
	tokenTTL     time.Duration
	demoFallback bool
	log          zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	directory ports.DirectoryService,
	loginGuard, resetGuard *LockoutGuard,
	recorder ports.AuditRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	demoFallback bool,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:         repo,
		directory:    directory,
		loginGuard:   loginGuard,
		resetGuard:   resetGuard,
		recorder:     recorder,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		demoFallback: demoFallback,
		log:          log,
	}
}

// Register creates a new user account. The role is resolved through the
// directory so that administrative emails are provisioned as admin.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if name == "" {
		name = domain.DisplayNameFromEmail(email)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		Role:         s.directory.ResolveRole(ctx, email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UserOperationsTotal.WithLabelValues("register").Inc()
	s.record(domain.AuditUserRegistered, email, created.ID, "")
	return created, nil
}

// Login authenticates a credential submission. The brute-force guard is
// consulted before any credential resolution; while locked the submission is
// rejected with the remaining time and no role check is performed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.loginGuard.Check(ctx, email); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if password == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, s.failLogin(ctx, email, "wrong password")
		}
		return s.openSession(ctx, user.Identity())

	case errors.Is(err, domain.ErrUserNotFound):
		if !s.demoFallback {
			return nil, s.failLogin(ctx, email, "unknown email")
		}
		// Demo fallback: unprovisioned emails resolve through the static
		// directory and the admin heuristic, with no password check.
		identity, dirErr := s.directory.GetIdentity(ctx, email)
		if dirErr != nil {
			return nil, dirErr
		}
		s.log.Warn().Str("email", email).Str("role", string(identity.Role)).Msg("demo fallback login without credential check")
		return s.openSession(ctx, *identity)

	default:
		return nil, err
	}
}

// ChangeOwnPassword verifies the current password before setting a new one.
func (s *AuthService) ChangeOwnPassword(ctx context.Context, email, currentPassword, newPassword string) error {
	email = domain.NormalizeEmail(email)
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.record(domain.AuditPasswordChanged, email, user.ID, "self")
	return nil
}

// RequestPasswordReset issues a short-lived reset token for a known email.
// Unknown emails count as failed attempts against the reset guard.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)

	if err := s.resetGuard.Check(ctx, email); err != nil {
		return "", err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.resetGuard.RecordFailure(ctx, email)
		}
		return "", err
	}

	claims := jwt.MapClaims{
		"sub":     user.Email,
		"uid":     user.ID,
		"purpose": claimPurposeReset,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	s.resetGuard.Reset(ctx, email)
	s.record(domain.AuditPasswordReset, email, user.ID, "requested")
	return token, nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidResetToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != claimPurposeReset {
		return domain.ErrInvalidResetToken
	}

	email, _ := claims["sub"].(string)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.record(domain.AuditPasswordReset, email, user.ID, "confirmed")
	return nil
}

// failLogin records the failure against the login guard and returns the
// credential error. When this failure crosses the threshold the lockout is
// already persisted, so the next submission is rejected before any check.
func (s *AuthService) failLogin(ctx context.Context, email, reason string) error {
	metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
	s.record(domain.AuditLoginFailure, email, "", reason)

	locked, _ := s.loginGuard.RecordFailure(ctx, email)
	if locked {
		s.record(domain.AuditLockoutTriggered, email, "", domain.FormLogin)
	}
	return domain.ErrInvalidCredentials
}

func (s *AuthService) openSession(ctx context.Context, identity domain.Identity) (*ports.LoginResult, error) {
	token, err := s.generateToken(identity)
	if err != nil {
		s.log.Error().Err(err).Msg("token generation failed")
		return nil, err
	}

	s.loginGuard.Reset(ctx, identity.Email)
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.record(domain.AuditLoginSuccess, identity.Email, identity.ID, string(identity.Role))

	return &ports.LoginResult{
		Token:    token,
		Identity: identity,
		Redirect: domain.RedirectRouteFor(identity.Role),
	}, nil
}

func (s *AuthService) generateToken(identity domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":  identity.Email,
		"uid":  identity.ID,
		"name": identity.Name,
		"role": string(identity.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) record(action, actor, target, detail string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(domain.AuditEvent{
		Actor:  actor,
		Action: action,
		Target: target,
		Detail: detail,
	})
}
