// internal/models/common.go
package models

import "time"

// Millis is a timestamp stored and transmitted as an integer count of
// milliseconds since the Unix epoch, matching what the presentation layer
// expects on the wire.
type Millis int64

func NewMillis(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// Enums

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

// DefaultRole is held by any authenticated identity without an explicit
// assignment. It must stay non-privileged so an empty role mapping is safe.
const DefaultRole = RoleUser

// ParseUserRole maps a wire value onto the closed role set. Unknown values
// are rejected, never defaulted.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleAdmin, RoleUser, RoleGuest:
		return UserRole(s), true
	}
	return "", false
}

// PrivilegeLevel orders roles for authorization decisions: admin > user > guest.
func (r UserRole) PrivilegeLevel() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

func (r UserRole) AtLeast(other UserRole) bool {
	return r.PrivilegeLevel() >= other.PrivilegeLevel()
}

type ApplicationStatus string

// The registry only ever stores pending applications; no operation exposes a
// status transition.
const (
	ApplicationStatusPending ApplicationStatus = "pending"
)
