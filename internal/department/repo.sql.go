package department

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/das-hr/skillmatrix/internal/platform/db"
	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

// Repository exposes department persistence.
type Repository interface {
	Create(ctx context.Context, name, description string, careerID int64) (*Department, error)
	// Find returns a live (ACTIVE or DEACTIVE) department.
	Find(ctx context.Context, id int64) (*Department, error)
	Update(ctx context.Context, d *Department) error
	SetStatus(ctx context.Context, id int64, status string) error
	ReplaceManagers(ctx context.Context, id int64, managerIDs []int64) error
	ListByCareer(ctx context.Context, careerID int64, limit, offset int) ([]Department, int, error)
	TeamBriefs(ctx context.Context, departmentID int64) ([]TeamBrief, error)
	CountTeams(ctx context.Context, departmentID int64) (int64, error)
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

const departmentSelect = `
	SELECT d.department_id, d.name, d.description, d.status, d.career_id,
	       COALESCE(array_agg(m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}') AS manager_ids,
	       d.created_at, d.updated_at
	FROM departments d
	LEFT JOIN department_managers m ON m.department_id = d.department_id`

func scanDepartment(row pgx.Row) (*Department, error) {
	var d Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Status, &d.CareerID, &d.ManagerIDs, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PGRepository) Create(ctx context.Context, name, description string, careerID int64) (*Department, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO departments (name, description, status, career_id)
		VALUES ($1, $2, 'ACTIVE', $3)
		RETURNING department_id, name, description, status, career_id, created_at, updated_at`,
		name, description, careerID)
	var d Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Status, &d.CareerID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, httpx.ErrDuplicate
		}
		return nil, fmt.Errorf("insert department: %w", err)
	}
	d.ManagerIDs = []int64{}
	return &d, nil
}

func (r *PGRepository) Find(ctx context.Context, id int64) (*Department, error) {
	row := r.pool.QueryRow(ctx, departmentSelect+`
		WHERE d.department_id = $1 AND d.status <> 'DELETED'
		GROUP BY d.department_id`, id)
	d, err := scanDepartment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find department: %w", err)
	}
	return d, nil
}

func (r *PGRepository) Update(ctx context.Context, d *Department) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE departments
		SET name = $2, description = $3, career_id = $4, updated_at = now()
		WHERE department_id = $1 AND status <> 'DELETED'`,
		d.ID, d.Name, d.Description, d.CareerID)
	if err != nil {
		if isUniqueViolation(err) {
			return httpx.ErrDuplicate
		}
		return fmt.Errorf("update department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE departments
		SET status = $2, updated_at = now()
		WHERE department_id = $1 AND status <> 'DELETED'`, id, status)
	if err != nil {
		return fmt.Errorf("set department status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// ReplaceManagers swaps the whole manager set in one transaction.
func (r *PGRepository) ReplaceManagers(ctx context.Context, id int64, managerIDs []int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM department_managers WHERE department_id = $1`, id); err != nil {
			return fmt.Errorf("clear department managers: %w", err)
		}
		for _, userID := range managerIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO department_managers (department_id, user_id)
				VALUES ($1, $2)`, id, userID); err != nil {
				return fmt.Errorf("assign department manager %d: %w", userID, err)
			}
		}
		return nil
	})
}

func (r *PGRepository) ListByCareer(ctx context.Context, careerID int64, limit, offset int) ([]Department, int, error) {
	rows, err := r.pool.Query(ctx, departmentSelect+`
		WHERE d.career_id = $1 AND d.status <> 'DELETED'
		GROUP BY d.department_id
		ORDER BY d.name
		LIMIT $2 OFFSET $3`, careerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Status, &d.CareerID, &d.ManagerIDs, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan department: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM departments
		WHERE career_id = $1 AND status <> 'DELETED'`, careerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count departments: %w", err)
	}
	return out, total, nil
}

func (r *PGRepository) TeamBriefs(ctx context.Context, departmentID int64) ([]TeamBrief, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT team_id, name, COALESCE(manager_id, 0)
		FROM teams
		WHERE department_id = $1
		ORDER BY name`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list department teams: %w", err)
	}
	defer rows.Close()

	var out []TeamBrief
	for rows.Next() {
		var t TeamBrief
		if err := rows.Scan(&t.ID, &t.Name, &t.ManagerID); err != nil {
			return nil, fmt.Errorf("scan team brief: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepository) CountTeams(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM teams WHERE department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count department teams: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
