package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

// Repository exposes team persistence.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Team, error)
	Find(ctx context.Context, id int64) (*Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, departmentID int64, limit, offset int) ([]Team, int, error)
	Members(ctx context.Context, teamID int64) ([]Member, error)
	AddMember(ctx context.Context, teamID, userID int64) error
	RemoveMember(ctx context.Context, teamID, userID int64) error
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

const teamSelect = `
	SELECT t.team_id, t.name, t.description, t.department_id, COALESCE(t.manager_id, 0),
	       COALESCE(array_agg(m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}') AS manager_ids,
	       t.created_at, t.updated_at
	FROM teams t
	LEFT JOIN team_managers m ON m.team_id = t.team_id`

func scanTeam(row pgx.Row) (*Team, error) {
	var t Team
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.DepartmentID, &t.ManagerID, &t.ManagerIDs, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) Create(ctx context.Context, in CreateInput) (*Team, error) {
	var managerID any
	if in.ManagerID > 0 {
		managerID = in.ManagerID
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO teams (name, description, department_id, manager_id)
		VALUES ($1, $2, $3, $4)
		RETURNING team_id, name, description, department_id, COALESCE(manager_id, 0), created_at, updated_at`,
		in.Name, in.Description, in.DepartmentID, managerID)
	var t Team
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.DepartmentID, &t.ManagerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, httpx.ErrDuplicate
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}
	t.ManagerIDs = []int64{}
	return &t, nil
}

func (r *PGRepository) Find(ctx context.Context, id int64) (*Team, error) {
	row := r.pool.QueryRow(ctx, teamSelect+`
		WHERE t.team_id = $1
		GROUP BY t.team_id`, id)
	t, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return t, nil
}

func (r *PGRepository) Update(ctx context.Context, t *Team) error {
	var managerID any
	if t.ManagerID > 0 {
		managerID = t.ManagerID
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE teams
		SET name = $2, description = $3, manager_id = $4, updated_at = now()
		WHERE team_id = $1`,
		t.ID, t.Name, t.Description, managerID)
	if err != nil {
		if isUniqueViolation(err) {
			return httpx.ErrDuplicate
		}
		return fmt.Errorf("update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE team_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) List(ctx context.Context, departmentID int64, limit, offset int) ([]Team, int, error) {
	where := ``
	args := []any{limit, offset}
	if departmentID > 0 {
		where = `WHERE t.department_id = $3`
		args = append(args, departmentID)
	}
	rows, err := r.pool.Query(ctx, teamSelect+`
		`+where+`
		GROUP BY t.team_id
		ORDER BY t.name
		LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.DepartmentID, &t.ManagerID, &t.ManagerIDs, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM teams`
	countArgs := []any{}
	if departmentID > 0 {
		countQuery += ` WHERE department_id = $1`
		countArgs = append(countArgs, departmentID)
	}
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count teams: %w", err)
	}
	return out, total, nil
}

func (r *PGRepository) Members(ctx context.Context, teamID int64) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.user_id, u.full_name, u.email, tm.created_at
		FROM team_members tm
		JOIN users u ON u.user_id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY u.full_name`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.FullName, &m.Email, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PGRepository) AddMember(ctx context.Context, teamID, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)`, teamID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return httpx.ErrDuplicate
		}
		return fmt.Errorf("add team member: %w", err)
	}
	return nil
}

func (r *PGRepository) RemoveMember(ctx context.Context, teamID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM team_members
		WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
