package domain

import (
	"errors"
	"fmt"
	"time"
)

// Guarded form names. Each form carries its own independent lockout state.
const (
	FormLogin         = "login"
	FormPasswordReset = "password_reset"
)

var ErrTooManyAttempts = errors.New("too many failed attempts")

// LockoutRecord is the persisted per-form lockout state. While
// now - Timestamp < window, all submissions to the guarded form are rejected
// before any credential resolution.
type LockoutRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Attempts  int       `json:"attempts"`
}

// Expired reports whether the record is older than the lockout window and
// should be discarded. Expiry is evaluated lazily on access; there is no
// background countdown.
func (r LockoutRecord) Expired(window time.Duration, now time.Time) bool {
	return now.Sub(r.Timestamp) >= window
}

// Remaining returns how long the lockout still holds.
func (r LockoutRecord) Remaining(window time.Duration, now time.Time) time.Duration {
	return r.Timestamp.Add(window).Sub(now)
}

// LockedError rejects a submission to a locked form with the remaining time.
type LockedError struct {
	Form      string
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("too many failed attempts, retry in %d seconds", int(e.Remaining.Seconds())+1)
}

func (e *LockedError) Unwrap() error { return ErrTooManyAttempts }
