package skill

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

// Repository exposes skill persistence.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Skill, error)
	Find(ctx context.Context, id int64) (*Skill, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, s *Skill) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]Skill, int, error)
	CountReferences(ctx context.Context, id int64) (int64, error)
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

const skillColumns = `skill_id, name, category, description, active, created_at, updated_at`

func scanSkill(row pgx.Row) (*Skill, error) {
	var s Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) Create(ctx context.Context, in CreateInput) (*Skill, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO skills (name, category, description, active)
		VALUES ($1, $2, $3, true)
		RETURNING `+skillColumns, in.Name, in.Category, in.Description)
	s, err := scanSkill(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, httpx.ErrDuplicate
		}
		return nil, fmt.Errorf("insert skill: %w", err)
	}
	return s, nil
}

func (r *PGRepository) Find(ctx context.Context, id int64) (*Skill, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+skillColumns+` FROM skills WHERE skill_id = $1`, id)
	s, err := scanSkill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find skill: %w", err)
	}
	return s, nil
}

func (r *PGRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM skills
			WHERE LOWER(name) = LOWER($1) AND skill_id <> $2
		)`, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check skill name: %w", err)
	}
	return exists, nil
}

func (r *PGRepository) Update(ctx context.Context, s *Skill) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE skills
		SET name = $2, category = $3, description = $4, active = $5, updated_at = now()
		WHERE skill_id = $1`,
		s.ID, s.Name, s.Category, s.Description, s.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return httpx.ErrDuplicate
		}
		return fmt.Errorf("update skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE skills SET active = false, updated_at = now() WHERE skill_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE skill_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]Skill, int, error) {
	where := ``
	if activeOnly {
		where = `WHERE active = true`
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+skillColumns+`, COUNT(*) OVER() AS total
		FROM skills `+where+`
		ORDER BY name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var (
		out   []Skill
		total int
	)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.Active, &s.CreatedAt, &s.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan skill: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PGRepository) CountReferences(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM user_skill_evaluations WHERE skill_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count skill references: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
