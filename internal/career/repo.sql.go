package career

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

// Repository exposes career persistence.
type Repository interface {
	Create(ctx context.Context, name, description string) (*Career, error)
	// FindByName matches case-insensitively and includes soft-deleted
	// rows so the service can offer revival.
	FindByName(ctx context.Context, name string) (*Career, error)
	FindLive(ctx context.Context, id int64) (*Career, error)
	Update(ctx context.Context, c *Career) error
	Revive(ctx context.Context, id int64, description string) (*Career, error)
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]Career, int, error)
	DepartmentBriefs(ctx context.Context, careerID int64) ([]DepartmentBrief, error)
	CountDepartments(ctx context.Context, careerID int64) (int64, error)
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

const careerColumns = `career_id, name, description, deleted, deleted_at, created_at, updated_at`

func scanCareer(row pgx.Row) (*Career, error) {
	var c Career
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Deleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) Create(ctx context.Context, name, description string) (*Career, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO careers (name, description)
		VALUES ($1, $2)
		RETURNING `+careerColumns, name, description)
	c, err := scanCareer(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, httpx.ErrDuplicate
		}
		return nil, fmt.Errorf("insert career: %w", err)
	}
	return c, nil
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*Career, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+careerColumns+`
		FROM careers
		WHERE LOWER(name) = LOWER($1)`, name)
	c, err := scanCareer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find career by name: %w", err)
	}
	return c, nil
}

func (r *PGRepository) FindLive(ctx context.Context, id int64) (*Career, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+careerColumns+`
		FROM careers
		WHERE career_id = $1 AND deleted = false`, id)
	c, err := scanCareer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find career: %w", err)
	}
	return c, nil
}

func (r *PGRepository) Update(ctx context.Context, c *Career) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE careers
		SET name = $2, description = $3, updated_at = now()
		WHERE career_id = $1 AND deleted = false`,
		c.ID, c.Name, c.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return httpx.ErrDuplicate
		}
		return fmt.Errorf("update career: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) Revive(ctx context.Context, id int64, description string) (*Career, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE careers
		SET deleted = false, deleted_at = NULL, description = $2, updated_at = now()
		WHERE career_id = $1 AND deleted = true
		RETURNING `+careerColumns, id, description)
	c, err := scanCareer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("revive career: %w", err)
	}
	return c, nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE careers
		SET deleted = true, deleted_at = $2, updated_at = now()
		WHERE career_id = $1 AND deleted = false`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete career: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) List(ctx context.Context, limit, offset int) ([]Career, int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+careerColumns+`, COUNT(*) OVER() AS total
		FROM careers
		WHERE deleted = false
		ORDER BY name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list careers: %w", err)
	}
	defer rows.Close()

	var (
		out   []Career
		total int
	)
	for rows.Next() {
		var c Career
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Deleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan career: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PGRepository) DepartmentBriefs(ctx context.Context, careerID int64) ([]DepartmentBrief, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT department_id, name, status
		FROM departments
		WHERE career_id = $1 AND status <> 'DELETED'
		ORDER BY name`, careerID)
	if err != nil {
		return nil, fmt.Errorf("list career departments: %w", err)
	}
	defer rows.Close()

	var out []DepartmentBrief
	for rows.Next() {
		var d DepartmentBrief
		if err := rows.Scan(&d.ID, &d.Name, &d.Status); err != nil {
			return nil, fmt.Errorf("scan department brief: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PGRepository) CountDepartments(ctx context.Context, careerID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM departments
		WHERE career_id = $1 AND status <> 'DELETED'`, careerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count career departments: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
