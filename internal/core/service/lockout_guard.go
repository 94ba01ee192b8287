package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/monsite/console-api/internal/api/metrics"
	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

const (
	LoginMaxAttempts = 5
	ResetMaxAttempts = 3
	LockoutWindow    = 15 * time.Minute
)

// LockoutGuard wraps a credential-submission entry point with a per-key
// attempt counter and a timed lockout. State lives in the LockoutStore so a
// process restart cannot bypass an active lockout. Expiry is checked lazily
// on each access; there is no background timer.
type LockoutGuard struct {
	store       ports.LockoutStore
	form        string
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	log         zerolog.Logger
}

// NewLockoutGuard creates a guard for one form. maxAttempts and window fall
// back to the login defaults when non-positive.
func NewLockoutGuard(store ports.LockoutStore, form string, maxAttempts int, window time.Duration, log zerolog.Logger) *LockoutGuard {
	if maxAttempts <= 0 {
		maxAttempts = LoginMaxAttempts
	}
	if window <= 0 {
		window = LockoutWindow
	}
	return &LockoutGuard{
		store:       store,
		form:        form,
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		log:         log,
	}
}

// WithClock overrides the time source. Tests only.
func (g *LockoutGuard) WithClock(now func() time.Time) *LockoutGuard {
	g.now = now
	return g
}

// Check rejects the submission with a LockedError while the key is locked.
// Stale records (older than the window) are discarded and the counter reset.
// Store failures are logged and treated as open: the guard protects against
// brute force, it must not turn a storage outage into a login outage.
func (g *LockoutGuard) Check(ctx context.Context, key string) error {
	rec, err := g.store.Get(ctx, g.form, key)
	if err != nil {
		g.log.Warn().Err(err).Str("form", g.form).Msg("lockout store read failed, allowing submission")
		return nil
	}
	if rec == nil {
		return nil
	}

	now := g.now()
	if rec.Expired(g.window, now) {
		_ = g.store.Delete(ctx, g.form, key)
		return nil
	}
	if rec.Attempts >= g.maxAttempts {
		return &domain.LockedError{Form: g.form, Remaining: rec.Remaining(g.window, now)}
	}
	return nil
}

// RecordFailure increments the attempt counter and reports whether the
// threshold was reached on this failure. Reaching it persists the lockout
// timestamp; the record naturally expires after the window.
func (g *LockoutGuard) RecordFailure(ctx context.Context, key string) (locked bool, remaining int) {
	now := g.now()

	rec, err := g.store.Get(ctx, g.form, key)
	if err != nil || rec == nil || rec.Expired(g.window, now) {
		rec = &domain.LockoutRecord{}
	}

	rec.Attempts++
	if rec.Attempts >= g.maxAttempts {
		// The lockout window starts at the attempt that crossed the threshold.
		rec.Timestamp = now
		locked = true
	} else if rec.Timestamp.IsZero() {
		rec.Timestamp = now
	}

	if err := g.store.Put(ctx, g.form, key, *rec, g.window); err != nil {
		g.log.Warn().Err(err).Str("form", g.form).Msg("lockout store write failed")
	}
	if locked {
		metrics.LockoutsTotal.WithLabelValues(g.form).Inc()
		g.log.Warn().Str("form", g.form).Str("key", key).Int("attempts", rec.Attempts).Msg("lockout triggered")
	}
	return locked, g.maxAttempts - rec.Attempts
}

// Reset clears the counter and any persisted lockout state, as happens on
// successful authentication.
func (g *LockoutGuard) Reset(ctx context.Context, key string) {
	if err := g.store.Delete(ctx, g.form, key); err != nil {
		g.log.Warn().Err(err).Str("form", g.form).Msg("lockout store delete failed")
	}
}
