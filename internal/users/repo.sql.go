package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

// Repository exposes user profile persistence.
type Repository interface {
	Find(ctx context.Context, id int64) (*Profile, error)
	UpdateFullName(ctx context.Context, id int64, fullName string) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, limit, offset int) ([]Profile, int, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PGRepository)(nil)

// NewPGRepository builds PGRepository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Find(ctx context.Context, id int64) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT u.user_id, u.email, u.full_name, u.role, u.is_active,
		       COALESCE(array_agg(tm.team_id) FILTER (WHERE tm.team_id IS NOT NULL), '{}') AS team_ids,
		       u.created_at, u.updated_at
		FROM users u
		LEFT JOIN team_members tm ON tm.user_id = u.user_id
		WHERE u.user_id = $1
		GROUP BY u.user_id`, id)
	var p Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.IsActive, &p.TeamIDs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) UpdateFullName(ctx context.Context, id int64, fullName string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET full_name = $2, updated_at = now() WHERE user_id = $1`, id, fullName)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET is_active = $2, updated_at = now() WHERE user_id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) List(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, email, full_name, role, is_active, created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM users
		ORDER BY full_name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var (
		out   []Profile
		total int
	)
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		p.TeamIDs = []int64{}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
