// Package skill manages the skill catalog that evaluations and upskill
// tracks reference. Names are normalized before uniqueness checks so
// "go" and "Go" cannot coexist.
package skill

import "time"

// Skill is one entry of the catalog.
type Skill struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput carries the fields accepted when creating a skill.
type CreateInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Category    string `json:"category" validate:"max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateInput carries the fields accepted when updating a skill.
type UpdateInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Category    string `json:"category" validate:"max=255"`
	Description string `json:"description" validate:"max=2000"`
	Active      bool   `json:"active"`
}
