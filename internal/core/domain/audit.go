package domain

import "time"

// Audit actions recorded by the console.
const (
	AuditLoginSuccess     = "login_success"
	AuditLoginFailure     = "login_failure"
	AuditLockoutTriggered = "lockout_triggered"
	AuditPasswordChanged  = "password_changed"
	AuditPasswordReset    = "password_reset"
	AuditUserRegistered   = "user_registered"
	AuditRoleUpdated      = "role_updated"
	AuditProfileUpdated   = "profile_updated"
	AuditUserDeleted      = "user_deleted"
	AuditDashboardCreated = "dashboard_created"
	AuditDashboardUpdated = "dashboard_updated"
	AuditDashboardDeleted = "dashboard_deleted"
)

// AuditEvent records a single administrative or authentication action.
// Events are written asynchronously; ordering is preserved per actor.
type AuditEvent struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
