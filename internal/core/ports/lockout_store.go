package ports

import (
	"context"
	"time"

	"github.com/monsite/console-api/internal/core/domain"
)

// LockoutStore persists per-form lockout records so a restart (or, in the
// original console, a page reload) cannot bypass an active lockout.
// Implementations may expire records via TTL; the guard still checks the
// stored timestamp lazily so non-TTL stores behave identically.
type LockoutStore interface {
	Get(ctx context.Context, form, key string) (*domain.LockoutRecord, error)
	Put(ctx context.Context, form, key string, record domain.LockoutRecord, ttl time.Duration) error
	Delete(ctx context.Context, form, key string) error
}
