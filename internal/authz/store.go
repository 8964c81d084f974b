package authz

import "context"

// Records are read-only projections of the org hierarchy and owned
// resources, reduced to the fields permission decisions need. Stores
// return (nil, nil) for ids that do not exist or point at soft-deleted
// rows; a vanished parent makes its children unreachable through
// hierarchy checks.

// CareerRecord is a career with its directly assigned managers.
type CareerRecord struct {
	ID         int64
	ManagerIDs []int64
}

// DepartmentRecord is a department, its parent career and its managers.
type DepartmentRecord struct {
	ID         int64
	CareerID   int64
	ManagerIDs []int64
}

// TeamRecord is a team, its parent department, its primary manager and
// its manager set.
type TeamRecord struct {
	ID           int64
	DepartmentID int64
	ManagerID    int64
	ManagerIDs   []int64
}

// NotificationRecord carries the owning user of a notification.
type NotificationRecord struct {
	ID     int64
	UserID int64
}

// DocumentRecord carries the uploader of an upskill document.
type DocumentRecord struct {
	ID         int64
	UploadedBy int64
}

// ProgressRecord carries the owning user of an upskill progress row.
type ProgressRecord struct {
	ID     int64
	UserID int64
}

// EvaluationRecord carries both parties of a skill evaluation.
type EvaluationRecord struct {
	ID          int64
	UserID      int64
	EvaluatorID int64
}

// CareerStore looks up careers for permission checks.
type CareerStore interface {
	FindCareerByID(ctx context.Context, id int64) (*CareerRecord, error)
}

// DepartmentStore looks up departments for permission checks.
type DepartmentStore interface {
	FindDepartmentByID(ctx context.Context, id int64) (*DepartmentRecord, error)
	// ExistsManagedDepartment reports whether the user manages any
	// department under the given career.
	ExistsManagedDepartment(ctx context.Context, careerID, userID int64) (bool, error)
}

// TeamStore looks up teams for permission checks.
type TeamStore interface {
	FindTeamByID(ctx context.Context, id int64) (*TeamRecord, error)
}

// TeamMemberStore answers membership queries against the team junction.
type TeamMemberStore interface {
	ExistsTeamMember(ctx context.Context, teamID, userID int64) (bool, error)
}

// NotificationStore looks up notifications for ownership checks.
type NotificationStore interface {
	FindNotificationByID(ctx context.Context, id int64) (*NotificationRecord, error)
}

// DocumentStore looks up upskill documents for ownership checks.
type DocumentStore interface {
	FindDocumentByID(ctx context.Context, id int64) (*DocumentRecord, error)
}

// ProgressStore looks up upskill progress rows for ownership checks.
type ProgressStore interface {
	FindProgressByID(ctx context.Context, id int64) (*ProgressRecord, error)
}

// EvaluationStore looks up skill evaluations for two-party access checks.
type EvaluationStore interface {
	FindEvaluationByID(ctx context.Context, id int64) (*EvaluationRecord, error)
}

// Store aggregates every lookup port the evaluator needs.
type Store interface {
	CareerStore
	DepartmentStore
	TeamStore
	TeamMemberStore
	NotificationStore
	DocumentStore
	ProgressStore
	EvaluationStore
}
