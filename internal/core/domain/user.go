package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

// Role is the sole axis of authorization in the console.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Permission names. Permissions are always derived from Role through
// rolePermissions; they are never stored per user.
const (
	PermDashboardManage    = "dashboard:manage"
	PermDashboardView      = "dashboard:view"
	PermDashboardConfigure = "dashboard:configure"
	PermUsersManage        = "users:manage"
	PermSettingsModify     = "settings:modify"
	PermMetricsView        = "metrics:view"
	PermSystemMonitor      = "system:monitor"
)

var rolePermissions = map[Role][]string{
	RoleAdmin: {
		PermDashboardManage,
		PermDashboardView,
		PermDashboardConfigure,
		PermUsersManage,
		PermSettingsModify,
		PermMetricsView,
		PermSystemMonitor,
	},
	RoleUser: {
		PermDashboardView,
		PermMetricsView,
	},
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidResetToken = errors.New("invalid or expired reset token")
var ErrForbidden = errors.New("access forbidden")

// NormalizeRole coerces arbitrary role strings into the closed enum.
// Backend-style values such as "ROLE_ADMIN" or "Admin" map to RoleAdmin;
// everything unrecognised maps to RoleUser.
func NormalizeRole(s string) Role {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "ROLE_"))
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// ValidRole reports whether s is exactly one of the recognised role values.
// Unlike NormalizeRole it does not coerce: the Authorization Gate uses it to
// deny entry on tokens carrying anything outside {admin, user}.
func ValidRole(s string) bool {
	return s == string(RoleAdmin) || s == string(RoleUser)
}

// PermissionsFor returns a copy of the static permission set for role.
func PermissionsFor(role Role) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// RoleHasPermission checks permission membership for a role.
func RoleHasPermission(role Role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// AdminEmailHeuristic reports whether an unprovisioned email should resolve to
// the admin role: the local part contains "admin" or "administrateur"
// (case-insensitive). This is a deliberate fallback for demo accounts.
func AdminEmailHeuristic(email string) bool {
	local := emailLocalPart(email)
	return strings.Contains(local, "admin") || strings.Contains(local, "administrateur")
}

// DisplayNameFromEmail derives a display name from the email's local part,
// capitalized ("zeineb@monsite.com" -> "Zeineb").
func DisplayNameFromEmail(email string) string {
	local := emailLocalPart(email)
	if local == "" {
		return ""
	}
	runes := []rune(local)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// NormalizeEmail lowercases and trims an email; emails are always compared
// case-insensitively and used as the natural identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(NormalizeEmail(email), "@")
	return local
}

// User is the canonical identity record owned by the Role Directory.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is a user profile enriched with the permission set derived from its
// role. This is the denormalized copy handed to sessions at login time.
type Identity struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}

// Identity enriches the user with its derived permission set.
func (u *User) Identity() Identity {
	return Identity{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: PermissionsFor(u.Role),
	}
}

// HasPermission checks the identity's derived permission set.
func (i Identity) HasPermission(permission string) bool {
	return RoleHasPermission(i.Role, permission)
}

// Landing routes per role; login redirects through these, logout goes public.
const (
	RouteAdminLanding = "/admin-welcome"
	RouteUserLanding  = "/user-welcome"
	RoutePublic       = "/landing"
	RouteLogin        = "/login"
)

// RedirectRouteFor returns the landing route for a role after login.
func RedirectRouteFor(role Role) string {
	if role == RoleAdmin {
		return RouteAdminLanding
	}
	return RouteUserLanding
}
