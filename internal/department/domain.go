// Package department manages departments, the middle tier of the
// organizational hierarchy. Departments belong to a career, carry a
// set of managers, and use a status column instead of a deleted flag
// so a department with live teams can be parked as DEACTIVE.
package department

import "time"

// Department statuses. DELETED rows are invisible to every read path
// and are eventually reaped by the cleanup job.
const (
	StatusActive   = "ACTIVE"
	StatusDeactive = "DEACTIVE"
	StatusDeleted  = "DELETED"
)

// Department is a grouping of teams under a career.
type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CareerID    int64     `json:"careerId"`
	ManagerIDs  []int64   `json:"managerIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TeamBrief is the shallow team view embedded in department detail.
type TeamBrief struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ManagerID int64  `json:"managerId,omitempty"`
}

// Detail is a department together with its teams.
type Detail struct {
	Department Department  `json:"department"`
	Teams      []TeamBrief `json:"teams"`
}

// CreateInput carries the fields accepted when creating a department.
type CreateInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	CareerID    int64  `json:"careerId" validate:"required,gt=0"`
}

// UpdateInput carries the fields accepted when updating a department.
// A CareerID different from the current one moves the department, which
// needs management rights over both careers.
type UpdateInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	CareerID    int64  `json:"careerId" validate:"required,gt=0"`
}

// AssignManagersInput replaces the department's manager set.
type AssignManagersInput struct {
	ManagerIDs []int64 `json:"managerIds" validate:"required,dive,gt=0"`
}
