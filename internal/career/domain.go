// Package career manages the career catalog, the top level of the
// organizational hierarchy. Careers are soft deleted so that historical
// department assignments keep resolving, and a deleted career can be
// revived by creating one with the same name.
package career

import "time"

// Career is a top-level grouping of departments.
type Career struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Deleted     bool       `json:"deleted"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DepartmentBrief is the shallow department view embedded in career
// detail and delete-check responses.
type DepartmentBrief struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Detail is a career together with its live departments.
type Detail struct {
	Career      Career            `json:"career"`
	Departments []DepartmentBrief `json:"departments"`
}

// DeleteCheck reports what a career delete would cascade over. Clients
// surface it as a confirmation prompt before calling the delete
// endpoint with confirm set.
type DeleteCheck struct {
	CareerID        int64             `json:"careerId"`
	DepartmentCount int64             `json:"departmentCount"`
	Departments     []DepartmentBrief `json:"departments"`
	RequireConfirm  bool              `json:"requireConfirm"`
}

// CreateInput carries the fields accepted when creating a career.
type CreateInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateInput carries the fields accepted when updating a career.
type UpdateInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}
