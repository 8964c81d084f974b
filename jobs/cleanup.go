package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CleanupJob hard-deletes hierarchy rows whose soft-delete markers have
// outlived the retention window and delivers queued notifications.
type CleanupJob struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	now    func() time.Time
}

// NewCleanupJob builds CleanupJob.
func NewCleanupJob(pool *pgxpool.Pool, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{pool: pool, logger: logger, now: time.Now}
}

// HandleCareerCleanup reaps careers soft-deleted before the cutoff.
// Manager assignments go first so no orphaned junction rows survive.
func (j *CleanupJob) HandleCareerCleanup(ctx context.Context, t *asynq.Task) error {
	var payload CleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	cutoff := j.now().Add(-payload.Retention)

	if _, err := j.pool.Exec(ctx, `
		DELETE FROM career_managers
		WHERE career_id IN (
			SELECT career_id FROM careers WHERE deleted = true AND deleted_at < $1
		)`, cutoff); err != nil {
		return err
	}
	tag, err := j.pool.Exec(ctx, `
		DELETE FROM careers WHERE deleted = true AND deleted_at < $1`, cutoff)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		j.logger.Info("career cleanup",
			slog.Int64("removed", tag.RowsAffected()),
			slog.Time("cutoff", cutoff))
	}
	return nil
}

// HandleDepartmentCleanup reaps departments marked DELETED before the
// cutoff. Departments parked as DEACTIVE are never touched.
func (j *CleanupJob) HandleDepartmentCleanup(ctx context.Context, t *asynq.Task) error {
	var payload CleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	cutoff := j.now().Add(-payload.Retention)

	if _, err := j.pool.Exec(ctx, `
		DELETE FROM department_managers
		WHERE department_id IN (
			SELECT department_id FROM departments
			WHERE status = 'DELETED' AND updated_at < $1
		)`, cutoff); err != nil {
		return err
	}
	tag, err := j.pool.Exec(ctx, `
		DELETE FROM departments WHERE status = 'DELETED' AND updated_at < $1`, cutoff)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		j.logger.Info("department cleanup",
			slog.Int64("removed", tag.RowsAffected()),
			slog.Time("cutoff", cutoff))
	}
	return nil
}

// HandleNotify inserts the notification row for a queued delivery.
func (j *CleanupJob) HandleNotify(ctx context.Context, t *asynq.Task) error {
	var payload NotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	_, err := j.pool.Exec(ctx, `
		INSERT INTO notifications (user_id, title, message, read)
		VALUES ($1, $2, $3, false)`,
		payload.UserID, payload.Title, payload.Message)
	if err != nil {
		return err
	}
	j.logger.Info("notification delivered", slog.Int64("user_id", payload.UserID))
	return nil
}
