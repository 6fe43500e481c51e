package dto

import (
	"time"

	"github.com/cashewcorner/backend/internal/domain"
)

// UserResponse carries non-sensitive user details for API responses.
type UserResponse struct {
	UserID    int64      `json:"userId"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
	FullName  string     `json:"fullName"`
	RoleName  string     `json:"roleName,omitempty"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// FromUser maps the domain model to its response shape.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		RoleName:  user.RoleName(),
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}

// CreateUserRequest payload for provisioning accounts.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	RoleName  string `json:"roleName"`
}

// UpdateUserRequest payload for profile updates. Absent fields are left
// unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	RoleName  *string `json:"roleName"`
}

// UserStatusRequest payload for activating or deactivating an account.
type UserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// RoleResponse describes a role.
type RoleResponse struct {
	RoleID      int64  `json:"roleId"`
	RoleName    string `json:"roleName"`
	Description string `json:"description,omitempty"`
}

// FromRole maps the domain role.
func FromRole(role *domain.Role) RoleResponse {
	return RoleResponse{
		RoleID:      role.ID,
		RoleName:    string(role.Name),
		Description: role.Description,
	}
}
