package domain

import "time"

// UserRole enumerates portal access levels.
type UserRole string

const (
	RoleCitizen       UserRole = "CITIZEN"
	RoleMinistryStaff UserRole = "MINISTRY_STAFF"
	RoleAdmin         UserRole = "ADMIN"
	RoleSuperAdmin    UserRole = "SUPER_ADMIN"
)

// IsPrivileged reports whether the role grants portal-wide administration.
func (r UserRole) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the single account model for citizens, ministry staff and admins.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         UserRole
	MinistryID   *string
	IsActive     bool
	IsPremium    bool
	PhotoURL     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
