package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cashewcorner/backend/internal/domain"
)

// UserRepository defines persistence access for credential subjects.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error
	SetActive(ctx context.Context, userID int64, active bool) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
        u.user_id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
        u.is_active, u.last_login, u.created_by, u.updated_by, u.created_at, u.updated_at,
        r.role_id, r.role_name, r.description`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, password_hash, first_name, last_name, role_id, is_active, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING user_id, created_at, updated_at`

	var roleID *int64
	if user.Role != nil {
		roleID = &user.Role.ID
	}

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		roleID,
		user.IsActive,
		user.CreatedBy,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users
        SET username=$1, email=$2, password_hash=$3, first_name=$4, last_name=$5,
            role_id=$6, is_active=$7, updated_by=$8, updated_at=NOW()
        WHERE user_id=$9`

	var roleID *int64
	if user.Role != nil {
		roleID = &user.Role.ID
	}

	cmd, err := r.pool.Exec(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		roleID,
		user.IsActive,
		user.UpdatedBy,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error {
	const query = `UPDATE users SET last_login=$1, updated_at=NOW() WHERE user_id=$2`

	cmd, err := r.pool.Exec(ctx, query, lastLogin, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	const query = `UPDATE users SET is_active=$1, updated_at=NOW() WHERE user_id=$2`

	cmd, err := r.pool.Exec(ctx, query, active, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users u LEFT JOIN roles r ON r.role_id = u.role_id
        WHERE u.user_id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users u LEFT JOIN roles r ON r.role_id = u.role_id
        WHERE u.username=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users u LEFT JOIN roles r ON r.role_id = u.role_id
        WHERE u.email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users u LEFT JOIN roles r ON r.role_id = u.role_id
        ORDER BY u.user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var (
		user     domain.User
		roleID   *int64
		roleName *string
		roleDesc *string
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedBy,
		&user.UpdatedBy,
		&user.CreatedAt,
		&user.UpdatedAt,
		&roleID,
		&roleName,
		&roleDesc,
	); err != nil {
		return nil, err
	}
	if roleID != nil && roleName != nil {
		role := &domain.Role{ID: *roleID, Name: domain.RoleName(*roleName)}
		if roleDesc != nil {
			role.Description = *roleDesc
		}
		user.Role = role
	}
	return &user, nil
}
