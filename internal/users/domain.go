// Package users exposes employee profiles. Credentials live in the
// auth package; this one only reads and administers accounts.
package users

import "time"

// Profile is the employee view of a user account.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	TeamIDs   []int64   `json:"teamIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileInput carries the self-service editable fields.
type UpdateProfileInput struct {
	FullName string `json:"fullName" validate:"required,max=255"`
}

// SetActiveInput toggles an account.
type SetActiveInput struct {
	IsActive bool `json:"isActive"`
}
