package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthEvent is a persisted audit entry for an authentication event.
type AuthEvent struct {
	ID         string
	EventType  string
	Username   string
	Email      string
	Detail     string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// AuthEventRepository stores the authentication audit trail.
type AuthEventRepository interface {
	Create(ctx context.Context, event *AuthEvent) error
	ListRecent(ctx context.Context, limit int) ([]AuthEvent, error)
}

type authEventRepository struct {
	pool *pgxpool.Pool
}

// NewAuthEventRepository builds repository.
func NewAuthEventRepository(pool *pgxpool.Pool) AuthEventRepository {
	return &authEventRepository{pool: pool}
}

func (r *authEventRepository) Create(ctx context.Context, event *AuthEvent) error {
	const query = `
        INSERT INTO auth_events (id, event_type, username, email, detail, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		event.ID,
		event.EventType,
		event.Username,
		event.Email,
		event.Detail,
		event.OccurredAt,
	).Scan(&event.CreatedAt)
}

func (r *authEventRepository) ListRecent(ctx context.Context, limit int) ([]AuthEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, event_type, username, email, detail, occurred_at, created_at
        FROM auth_events ORDER BY occurred_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AuthEvent
	for rows.Next() {
		var event AuthEvent
		if err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.Username,
			&event.Email,
			&event.Detail,
			&event.OccurredAt,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
