package upskill

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

// Repository exposes upskill persistence.
type Repository interface {
	ListNotifications(ctx context.Context, userID int64, limit, offset int) ([]Notification, int, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	DeleteNotification(ctx context.Context, id int64) error
	CreateNotification(ctx context.Context, userID int64, title, message string) (*Notification, error)

	CreateDocument(ctx context.Context, uploadedBy int64, in CreateDocumentInput) (*Document, error)
	FindDocument(ctx context.Context, id int64) (*Document, error)
	DeleteDocument(ctx context.Context, id int64) error
	ListDocuments(ctx context.Context, uploadedBy int64, limit, offset int) ([]Document, int, error)

	UpsertProgress(ctx context.Context, userID int64, in UpsertProgressInput) (*Progress, error)
	FindProgress(ctx context.Context, id int64) (*Progress, error)
	ListProgress(ctx context.Context, userID int64) ([]Progress, error)

	CreateEvaluation(ctx context.Context, evaluatorID int64, in CreateEvaluationInput) (*Evaluation, error)
	FindEvaluation(ctx context.Context, id int64) (*Evaluation, error)
	ListEvaluationsForUser(ctx context.Context, userID int64) ([]Evaluation, error)
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

func (r *PGRepository) ListNotifications(ctx context.Context, userID int64, limit, offset int) ([]Notification, int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT notification_id, user_id, title, message, read, created_at,
		       COUNT(*) OVER() AS total
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var (
		out   []Notification
		total int
	)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Read, &n.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PGRepository) MarkNotificationRead(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read = true WHERE notification_id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) DeleteNotification(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE notification_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) CreateNotification(ctx context.Context, userID int64, title, message string) (*Notification, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, message, read)
		VALUES ($1, $2, $3, false)
		RETURNING notification_id, user_id, title, message, read, created_at`,
		userID, title, message)
	var n Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return &n, nil
}

func (r *PGRepository) CreateDocument(ctx context.Context, uploadedBy int64, in CreateDocumentInput) (*Document, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO upskill_documents (title, file_name, content_url, uploaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING document_id, title, file_name, content_url, uploaded_by, created_at`,
		in.Title, in.FileName, in.ContentURL, uploadedBy)
	var d Document
	if err := row.Scan(&d.ID, &d.Title, &d.FileName, &d.ContentURL, &d.UploadedBy, &d.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return &d, nil
}

func (r *PGRepository) FindDocument(ctx context.Context, id int64) (*Document, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT document_id, title, file_name, content_url, uploaded_by, created_at
		FROM upskill_documents
		WHERE document_id = $1`, id)
	var d Document
	if err := row.Scan(&d.ID, &d.Title, &d.FileName, &d.ContentURL, &d.UploadedBy, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return &d, nil
}

func (r *PGRepository) DeleteDocument(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM upskill_documents WHERE document_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PGRepository) ListDocuments(ctx context.Context, uploadedBy int64, limit, offset int) ([]Document, int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT document_id, title, file_name, content_url, uploaded_by, created_at,
		       COUNT(*) OVER() AS total
		FROM upskill_documents
		WHERE uploaded_by = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, uploadedBy, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var (
		out   []Document
		total int
	)
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.FileName, &d.ContentURL, &d.UploadedBy, &d.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpsertProgress keeps one row per user and skill.
func (r *PGRepository) UpsertProgress(ctx context.Context, userID int64, in UpsertProgressInput) (*Progress, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_upskill_progress (user_id, skill_id, percent, note, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id, skill_id)
		DO UPDATE SET percent = EXCLUDED.percent, note = EXCLUDED.note, updated_at = now()
		RETURNING progress_id, user_id, skill_id, percent, note, updated_at`,
		userID, in.SkillID, in.Percent, in.Note)
	var p Progress
	if err := row.Scan(&p.ID, &p.UserID, &p.SkillID, &p.Percent, &p.Note, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) FindProgress(ctx context.Context, id int64) (*Progress, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT progress_id, user_id, skill_id, percent, note, updated_at
		FROM user_upskill_progress
		WHERE progress_id = $1`, id)
	var p Progress
	if err := row.Scan(&p.ID, &p.UserID, &p.SkillID, &p.Percent, &p.Note, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find progress: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) ListProgress(ctx context.Context, userID int64) ([]Progress, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT progress_id, user_id, skill_id, percent, note, updated_at
		FROM user_upskill_progress
		WHERE user_id = $1
		ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.SkillID, &p.Percent, &p.Note, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepository) CreateEvaluation(ctx context.Context, evaluatorID int64, in CreateEvaluationInput) (*Evaluation, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_skill_evaluations (user_id, evaluator_id, skill_id, score, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING evaluation_id, user_id, evaluator_id, skill_id, score, comment, created_at`,
		in.UserID, evaluatorID, in.SkillID, in.Score, in.Comment)
	var e Evaluation
	if err := row.Scan(&e.ID, &e.UserID, &e.EvaluatorID, &e.SkillID, &e.Score, &e.Comment, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert evaluation: %w", err)
	}
	return &e, nil
}

func (r *PGRepository) FindEvaluation(ctx context.Context, id int64) (*Evaluation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT evaluation_id, user_id, evaluator_id, skill_id, score, comment, created_at
		FROM user_skill_evaluations
		WHERE evaluation_id = $1`, id)
	var e Evaluation
	if err := row.Scan(&e.ID, &e.UserID, &e.EvaluatorID, &e.SkillID, &e.Score, &e.Comment, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("find evaluation: %w", err)
	}
	return &e, nil
}

func (r *PGRepository) ListEvaluationsForUser(ctx context.Context, userID int64) ([]Evaluation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT evaluation_id, user_id, evaluator_id, skill_id, score, comment, created_at
		FROM user_skill_evaluations
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var e Evaluation
		if err := rows.Scan(&e.ID, &e.UserID, &e.EvaluatorID, &e.SkillID, &e.Score, &e.Comment, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
