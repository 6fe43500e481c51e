package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashewcorner/backend/internal/auth"
	"github.com/cashewcorner/backend/internal/domain"
	apperrors "github.com/cashewcorner/backend/pkg/util"
)

type fakeRoleRepo struct {
	roles map[domain.RoleName]*domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[domain.RoleName]*domain.Role{
		domain.RoleAdmin:   {ID: 1, Name: domain.RoleAdmin, Description: "Full administrative access"},
		domain.RoleManager: {ID: 2, Name: domain.RoleManager},
		domain.RoleUser:    {ID: 3, Name: domain.RoleUser},
	}}
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	for _, role := range f.roles {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	if role, ok := f.roles[name]; ok {
		return role, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	result := make([]*domain.Role, 0, len(f.roles))
	for _, role := range f.roles {
		result = append(result, role)
	}
	return result, nil
}

func newTestUserService(userRepo *fakeUserRepo) *UserService {
	return NewUserService(testConfig(), UserDependencies{
		UserRepo: userRepo,
		RoleRepo: newFakeRoleRepo(),
	})
}

func TestCreateUserHashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Create(ctx, 7, CreateUserInput{
		Username:  "bob",
		Email:     "bob@x.com",
		Password:  "secret",
		FirstName: "Bob",
		RoleName:  domain.RoleUser,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.True(t, auth.VerifyPassword("secret", user.PasswordHash))
	assert.True(t, user.IsActive)
	assert.Equal(t, "USER", user.RoleName())
	require.NotNil(t, user.CreatedBy)
	assert.Equal(t, int64(7), *user.CreatedBy)
}

func TestCreateUserUnknownRole(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.Create(ctx, 1, CreateUserInput{
		Username: "bob",
		Email:    "bob@x.com",
		Password: "secret",
		RoleName: domain.RoleName("SUPERUSER"),
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	seedUser(t, repo, "bob", "bob@x.com", "pw1", true, nil)
	svc := newTestUserService(repo)

	_, err := svc.Create(ctx, 1, CreateUserInput{
		Username: "bob",
		Email:    "other@x.com",
		Password: "secret",
		RoleName: domain.RoleUser,
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Equal(t, "Username already registered", domainErr.Message)
}

func TestCreateUserMissingFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.Create(ctx, 1, CreateUserInput{Username: "bob"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestSetActiveTogglesLoginEligibility(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "alice@x.com", "pw1", true, nil)
	userSvc := newTestUserService(repo)
	authSvc := newTestAuthService(repo, nil)

	user, err := userSvc.SetActive(ctx, 1, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	_, err = authSvc.Login(ctx, "alice@x.com", "pw1")
	require.Error(t, err)

	_, err = userSvc.SetActive(ctx, 1, true)
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, "alice@x.com", "pw1")
	assert.NoError(t, err)
}

func TestUpdateUserPartialFields(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "alice@x.com", "pw1", true, nil)
	svc := newTestUserService(repo)

	newEmail := "alice@corp.com"
	roleName := domain.RoleManager
	user, err := svc.Update(ctx, 2, 1, UpdateUserInput{Email: &newEmail, RoleName: &roleName})
	require.NoError(t, err)

	assert.Equal(t, "alice@corp.com", user.Email)
	assert.Equal(t, "MANAGER", user.RoleName())
	assert.Equal(t, "Alice", user.FirstName)
}
