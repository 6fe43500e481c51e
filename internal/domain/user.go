package domain

import (
	"strings"
	"time"
)

// RoleName enumerates the closed set of roles known to the system.
type RoleName string

const (
	RoleAdmin   RoleName = "ADMIN"
	RoleManager RoleName = "MANAGER"
	RoleUser    RoleName = "USER"
)

// Authority returns the authority string granted by the role.
func (r RoleName) Authority() string {
	return "ROLE_" + string(r)
}

// Role is immutable reference data shared by many users.
type Role struct {
	ID          int64
	Name        RoleName
	Description string
}

// User is the domain model for credential subjects.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         *Role
	IsActive     bool
	LastLogin    *time.Time
	CreatedBy    *int64
	UpdatedBy    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins the user's names, falling back to the username when both
// are empty.
func (u *User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}

// RoleName returns the name of the user's role, or empty when unassigned.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return string(u.Role.Name)
}
