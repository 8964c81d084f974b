package authz

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed lookups for the evaluator.
// Soft-deleted rows are filtered at the SQL level so a vanished parent
// never grants access through hierarchy ascension.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// FindCareerByID returns a live career with its manager set, or nil.
func (r *Repository) FindCareerByID(ctx context.Context, id int64) (*CareerRecord, error) {
	const q = `
		SELECT c.career_id,
		       COALESCE(array_agg(m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM careers c
		LEFT JOIN career_managers m ON m.career_id = c.career_id
		WHERE c.career_id = $1 AND c.deleted = false
		GROUP BY c.career_id`
	var rec CareerRecord
	if err := r.pool.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.ManagerIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindDepartmentByID returns a visible department with its manager set,
// or nil when it is absent or deleted.
func (r *Repository) FindDepartmentByID(ctx context.Context, id int64) (*DepartmentRecord, error) {
	const q = `
		SELECT d.department_id, d.career_id,
		       COALESCE(array_agg(m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM departments d
		LEFT JOIN department_managers m ON m.department_id = d.department_id
		WHERE d.department_id = $1 AND d.status <> 'DELETED'
		GROUP BY d.department_id, d.career_id`
	var rec DepartmentRecord
	if err := r.pool.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.CareerID, &rec.ManagerIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ExistsManagedDepartment reports whether the user manages any
// department under the career.
func (r *Repository) ExistsManagedDepartment(ctx context.Context, careerID, userID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM departments d
			JOIN department_managers m ON m.department_id = d.department_id
			WHERE d.career_id = $1 AND m.user_id = $2 AND d.status <> 'DELETED'
		)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, careerID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindTeamByID returns a team with its primary manager and manager set,
// or nil.
func (r *Repository) FindTeamByID(ctx context.Context, id int64) (*TeamRecord, error) {
	const q = `
		SELECT t.team_id, t.department_id, COALESCE(t.manager_id, 0),
		       COALESCE(array_agg(m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM teams t
		LEFT JOIN team_managers m ON m.team_id = t.team_id
		WHERE t.team_id = $1
		GROUP BY t.team_id, t.department_id, t.manager_id`
	var rec TeamRecord
	if err := r.pool.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.DepartmentID, &rec.ManagerID, &rec.ManagerIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ExistsTeamMember reports membership in the team junction.
func (r *Repository) ExistsTeamMember(ctx context.Context, teamID, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, teamID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindNotificationByID returns the notification's owner, or nil.
func (r *Repository) FindNotificationByID(ctx context.Context, id int64) (*NotificationRecord, error) {
	const q = `SELECT notification_id, user_id FROM notifications WHERE notification_id = $1`
	var rec NotificationRecord
	if err := r.pool.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindDocumentByID returns the document's uploader, or nil.
func (r *Repository) FindDocumentByID(ctx context.Context, id int64) (*DocumentRecord, error) {
	const q = `SELECT document_id, uploaded_by FROM upskill_documents WHERE document_id = $1`
	var rec DocumentRecord
	if err := r.pool.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.UploadedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindProgressByID returns the progress row's owner, or nil.
func (r *Repository) FindProgressByID(ctx context.Context, id int64) (*ProgressRecord, error) {
	const q = `SELECT progress_id, user_id FROM user_upskill_progress WHERE progress_id = $1`
	var rec ProgressRecord
	if err := r.pool.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindEvaluationByID returns both parties of an evaluation, or nil.
func (r *Repository) FindEvaluationByID(ctx context.Context, id int64) (*EvaluationRecord, error) {
	const q = `SELECT evaluation_id, user_id, evaluator_id FROM user_skill_evaluations WHERE evaluation_id = $1`
	var rec EvaluationRecord
	if err := r.pool.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.UserID, &rec.EvaluatorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
