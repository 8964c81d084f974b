// Package jobs holds the background processing layer: hard-delete
// sweeps for soft-deleted hierarchy rows and asynchronous notification
// fan-out, all running on Asynq.
package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCareerCleanup reaps careers soft-deleted longer than the
	// retention window, together with their orphaned manager rows.
	TaskCareerCleanup = "career:cleanup"
	// TaskDepartmentCleanup reaps departments in DELETED status.
	TaskDepartmentCleanup = "department:cleanup"
	// TaskNotifyUser delivers an in-app notification.
	TaskNotifyUser = "notification:send"
)

// CleanupPayload bounds a cleanup sweep.
type CleanupPayload struct {
	Retention time.Duration `json:"retention"`
}

// NotifyPayload describes one in-app notification to deliver.
type NotifyPayload struct {
	UserID  int64  `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NewCareerCleanupTask constructs a career cleanup task.
func NewCareerCleanupTask(retention time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(CleanupPayload{Retention: retention})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCareerCleanup, data), nil
}

// NewDepartmentCleanupTask constructs a department cleanup task.
func NewDepartmentCleanupTask(retention time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(CleanupPayload{Retention: retention})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDepartmentCleanup, data), nil
}

// NewNotifyTask constructs a notification delivery task.
func NewNotifyTask(payload NotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotifyUser, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EvaluationRecorded queues a notification telling a user they were
// evaluated. Satisfies the upskill package's Notifier port.
func (c *Client) EvaluationRecorded(ctx context.Context, userID, skillID int64, score int) error {
	task, err := NewNotifyTask(NotifyPayload{
		UserID:  userID,
		Title:   "New skill evaluation",
		Message: "A manager assessed one of your skills.",
	})
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
