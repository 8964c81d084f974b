// Package team manages teams, the leaf tier of the organizational
// hierarchy. A team has one primary manager, an optional wider manager
// set and a member roster kept in a junction table.
package team

import "time"

// Team is a working group under a department.
type Team struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DepartmentID int64     `json:"departmentId"`
	ManagerID    int64     `json:"managerId,omitempty"`
	ManagerIDs   []int64   `json:"managerIds"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Member is one row of a team roster.
type Member struct {
	UserID   int64     `json:"userId"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CreateInput carries the fields accepted when creating a team.
type CreateInput struct {
	Name         string `json:"name" validate:"required,max=255"`
	Description  string `json:"description" validate:"max=2000"`
	DepartmentID int64  `json:"departmentId" validate:"required,gt=0"`
	ManagerID    int64  `json:"managerId" validate:"omitempty,gt=0"`
}

// UpdateInput carries the fields accepted when updating a team.
type UpdateInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	ManagerID   int64  `json:"managerId" validate:"omitempty,gt=0"`
}

// MemberInput identifies a user joining or leaving the roster.
type MemberInput struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}
