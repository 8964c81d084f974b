// Package upskill covers the personal development surface: in-app
// notifications, uploaded learning documents, per-skill progress rows
// and manager evaluations. Everything here is owned by a user, so the
// route guards lean on the ownership checks rather than the hierarchy.
package upskill

import "time"

// Notification is an in-app message for one user.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is an uploaded learning resource.
type Document struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	FileName   string    `json:"fileName"`
	ContentURL string    `json:"contentUrl"`
	UploadedBy int64     `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Progress tracks one user's advancement on one skill.
type Progress struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	SkillID   int64     `json:"skillId"`
	Percent   int       `json:"percent"`
	Note      string    `json:"note"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Evaluation is a manager's assessment of a user on one skill. Both
// the subject and the evaluator may read it.
type Evaluation struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	EvaluatorID int64     `json:"evaluatorId"`
	SkillID     int64     `json:"skillId"`
	Score       int       `json:"score"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateDocumentInput carries the fields accepted when registering a
// document upload.
type CreateDocumentInput struct {
	Title      string `json:"title" validate:"required,max=255"`
	FileName   string `json:"fileName" validate:"required,max=255"`
	ContentURL string `json:"contentUrl" validate:"required,url"`
}

// UpsertProgressInput sets the caller's progress on a skill.
type UpsertProgressInput struct {
	SkillID int64  `json:"skillId" validate:"required,gt=0"`
	Percent int    `json:"percent" validate:"min=0,max=100"`
	Note    string `json:"note" validate:"max=2000"`
}

// CreateEvaluationInput records an assessment of a user.
type CreateEvaluationInput struct {
	UserID  int64  `json:"userId" validate:"required,gt=0"`
	SkillID int64  `json:"skillId" validate:"required,gt=0"`
	Score   int    `json:"score" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}
