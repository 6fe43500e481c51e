package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cashewcorner/backend/internal/auth"
	"github.com/cashewcorner/backend/internal/config"
	"github.com/cashewcorner/backend/internal/domain"
	"github.com/cashewcorner/backend/internal/repository"
	apperrors "github.com/cashewcorner/backend/pkg/util"
)

// UserService manages user accounts and role assignment.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	bcryptCost int
}

// UserDependencies encapsulates repositories required for user management.
type UserDependencies struct {
	UserRepo repository.UserRepository
	RoleRepo repository.RoleRepository
}

// CreateUserInput holds fields for a new account.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	RoleName  domain.RoleName
}

// UpdateUserInput holds mutable profile fields. Nil pointers leave the
// current value untouched.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	RoleName  *domain.RoleName
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(strconv.FormatInt(id, 10))
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Create provisions a new account with a hashed initial password.
func (s *UserService) Create(ctx context.Context, actorID int64, input CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username, email and password are required", nil)
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("Username already registered", map[string]any{"username": input.Username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	role, err := s.roles.GetByName(ctx, input.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", map[string]any{"role": string(input.RoleName)})
		}
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		IsActive:     true,
		CreatedBy:    &actorID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update applies profile changes to an existing account.
func (s *UserService) Update(ctx context.Context, actorID, id int64, input UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.RoleName != nil {
		role, err := s.roles.GetByName(ctx, *input.RoleName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("role", map[string]any{"role": string(*input.RoleName)})
			}
			return nil, apperrors.MapError(err)
		}
		user.Role = role
	}
	user.UpdatedBy = &actorID

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// SetActive toggles the active flag consumed by login.
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) (*domain.User, error) {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(strconv.FormatInt(id, 10))
		}
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, id)
}

// ListRoles returns the role reference data.
func (s *UserService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return roles, nil
}
