package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/monsite/console-api/internal/api/metrics"
	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

// DirectoryService is the Role Directory. The Mongo-backed repository is the
// canonical identity store; a static in-process fallback covers the demo
// accounts that predate provisioning, and a content heuristic covers
// everything else.
type DirectoryService struct {
	repo     ports.UserRepository
	fallback []domain.Identity
	recorder ports.AuditRecorder
	log      zerolog.Logger
}

// DefaultFallbackDirectory returns the built-in demo identities. They are
// never written to the canonical store; they only resolve logins for
// unprovisioned emails.
func DefaultFallbackDirectory() []domain.Identity {
	mk := func(id, name, email string, role domain.Role) domain.Identity {
		return domain.Identity{
			ID:          id,
			Name:        name,
			Email:       email,
			Role:        role,
			Permissions: domain.PermissionsFor(role),
		}
	}
	return []domain.Identity{
		mk("1", "Admin", "admin@monsite.com", domain.RoleAdmin),
		mk("2", "Administrateur", "administrateur@monsite.com", domain.RoleAdmin),
		mk("3", "Utilisateur", "user@monsite.com", domain.RoleUser),
		mk("4", "Zeineb", "zeineb@monsite.com", domain.RoleUser),
	}
}

func NewDirectoryService(repo ports.UserRepository, fallback []domain.Identity, recorder ports.AuditRecorder, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, fallback: fallback, recorder: recorder, log: log}
}

// ResolveRole resolves a role for any email. Resolution order: canonical
// store, static fallback, admin-email heuristic, else user.
func (s *DirectoryService) ResolveRole(ctx context.Context, email string) domain.Role {
	email = domain.NormalizeEmail(email)

	if user, err := s.repo.FindByEmail(ctx, email); err == nil {
		return user.Role
	}
	if fb := s.findFallback(email); fb != nil {
		return fb.Role
	}
	if domain.AdminEmailHeuristic(email) {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

// GetIdentity returns the stored identity if present, else synthesizes one
// with a display name derived from the email's local part and the resolved
// role's permission set. Synthesized identities are not persisted.
func (s *DirectoryService) GetIdentity(ctx context.Context, email string) (*domain.Identity, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		id := user.Identity()
		return &id, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if fb := s.findFallback(email); fb != nil {
		id := *fb
		return &id, nil
	}

	role := domain.RoleUser
	if domain.AdminEmailHeuristic(email) {
		role = domain.RoleAdmin
	}
	return &domain.Identity{
		Name:        domain.DisplayNameFromEmail(email),
		Email:       email,
		Role:        role,
		Permissions: domain.PermissionsFor(role),
	}, nil
}

// GetIdentityByID returns the canonical identity for a stored id. It never
// synthesizes; unknown ids yield ErrUserNotFound.
func (s *DirectoryService) GetIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	identity := user.Identity()
	return &identity, nil
}

// ListIdentities fails closed: callers without users:manage receive an empty
// sequence.
func (s *DirectoryService) ListIdentities(ctx context.Context, actor domain.Identity) ([]domain.Identity, error) {
	if !actor.HasPermission(domain.PermUsersManage) {
		return []domain.Identity{}, nil
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Identity, 0, len(users))
	for i := range users {
		out = append(out, users[i].Identity())
	}
	return out, nil
}

// UpdateRole replaces the role of the identified user. Permissions are derived
// from role at read time, so role and permission set can never diverge.
func (s *DirectoryService) UpdateRole(ctx context.Context, actor domain.Identity, id string, role domain.Role) (*domain.Identity, error) {
	if !actor.HasPermission(domain.PermUsersManage) {
		return nil, domain.ErrForbidden
	}

	role = domain.NormalizeRole(string(role))
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	metrics.UserOperationsTotal.WithLabelValues("update_role").Inc()
	s.record(domain.AuditRoleUpdated, actor.Email, id, string(role))
	return s.GetIdentityByID(ctx, id)
}

// UpdateProfile changes name and email of the identified user.
func (s *DirectoryService) UpdateProfile(ctx context.Context, actor domain.Identity, id, name, email string) (*domain.Identity, error) {
	if !actor.HasPermission(domain.PermUsersManage) {
		return nil, domain.ErrForbidden
	}
	if err := s.repo.UpdateProfile(ctx, id, name, domain.NormalizeEmail(email)); err != nil {
		return nil, err
	}

	metrics.UserOperationsTotal.WithLabelValues("update_profile").Inc()
	s.record(domain.AuditProfileUpdated, actor.Email, id, "")
	return s.GetIdentityByID(ctx, id)
}

// SetPassword replaces the password of the identified user with a fresh hash.
func (s *DirectoryService) SetPassword(ctx context.Context, actor domain.Identity, id, newPassword string) error {
	if !actor.HasPermission(domain.PermUsersManage) {
		return domain.ErrForbidden
	}
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("update_password").Inc()
	s.record(domain.AuditPasswordChanged, actor.Email, id, "")
	return nil
}

// DeleteIdentity removes the canonical record.
func (s *DirectoryService) DeleteIdentity(ctx context.Context, actor domain.Identity, id string) error {
	if !actor.HasPermission(domain.PermUsersManage) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("delete").Inc()
	s.record(domain.AuditUserDeleted, actor.Email, id, "")
	return nil
}

// EmailExists probes both the canonical store and the fallback directory.
func (s *DirectoryService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = domain.NormalizeEmail(email)

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}
	return s.findFallback(email) != nil, nil
}

func (s *DirectoryService) findFallback(email string) *domain.Identity {
	for i := range s.fallback {
		if domain.NormalizeEmail(s.fallback[i].Email) == email {
			return &s.fallback[i]
		}
	}
	return nil
}

func (s *DirectoryService) record(action, actor, target, detail string) {
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
