package ports

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
)

// DirectoryService is the Role Directory: the sole authority for canonical
// identity records and the role-to-permission table.
//
// Every permission-gated operation takes the caller's identity explicitly —
// authorization is decided from the actor argument, never from ambient state.
type DirectoryService interface {
	// ResolveRole resolves a role for any email: canonical store first, then
	// the static fallback directory, then the admin-email heuristic.
	ResolveRole(ctx context.Context, email string) domain.Role

	// GetIdentity returns the stored identity enriched with permissions, or a
	// synthesized one for unseen emails. Synthesis is never persisted.
	GetIdentity(ctx context.Context, email string) (*domain.Identity, error)

	// GetIdentityByID returns the canonical identity for a stored id. Unlike
	// GetIdentity it never synthesizes.
	GetIdentityByID(ctx context.Context, id string) (*domain.Identity, error)

	// ListIdentities fails closed: actors without users:manage get an empty
	// sequence, not an error.
	ListIdentities(ctx context.Context, actor domain.Identity) ([]domain.Identity, error)

	// UpdateRole replaces the role of the identified user and returns the
	// refreshed identity; permissions are derived at read time so they can
	// never diverge.
	UpdateRole(ctx context.Context, actor domain.Identity, id string, role domain.Role) (*domain.Identity, error)

	// UpdateProfile changes name and email of the identified user and returns
	// the refreshed identity.
	UpdateProfile(ctx context.Context, actor domain.Identity, id, name, email string) (*domain.Identity, error)

	// SetPassword replaces the password of the identified user.
	SetPassword(ctx context.Context, actor domain.Identity, id, newPassword string) error

	// DeleteIdentity removes the canonical record.
	DeleteIdentity(ctx context.Context, actor domain.Identity, id string) error

	// EmailExists probes for a registered email (used by signup validation).
	EmailExists(ctx context.Context, email string) (bool, error)
}
