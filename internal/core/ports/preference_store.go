package ports

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
)

// PreferenceStore persists per-user UI preferences under fixed keys.
// A missing record yields the defaults, never an error.
type PreferenceStore interface {
	Get(ctx context.Context, email string) (domain.Preferences, error)
	Put(ctx context.Context, email string, prefs domain.Preferences) error
}
