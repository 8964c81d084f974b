package auth

import (
	"time"

	"github.com/das-hr/skillmatrix/internal/authz"
)

// User represents an authenticated user account.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal projects the account into the authorization layer's view.
func (u *User) Principal() *authz.Principal {
	return &authz.Principal{UserID: u.ID, Email: u.Email, Roles: []string{u.Role}}
}

// TokenPair is the login response payload.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
