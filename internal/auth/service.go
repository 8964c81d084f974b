package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

// Service wraps authentication business rules: credential checks, token
// issuance and refresh rotation. Authorization decisions live in the
// authz package; this service only establishes who the caller is.
type Service struct {
	repo    Repository
	tokens  *TokenManager
	refresh *RefreshStore
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager, refresh *RefreshStore) *Service {
	return &Service{repo: repo, tokens: tokens, refresh: refresh}
}

// Login validates email/password credentials and issues a token pair.
// Unknown accounts, disabled accounts and wrong passwords all collapse
// into the same invalid-credentials error.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, httpx.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httpx.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.refresh.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates the access token for a live refresh token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.refresh.Resolve(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if userID == 0 {
		return "", httpx.ErrInvalidCredentials
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return "", httpx.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.IsActive {
		return "", httpx.ErrInvalidCredentials
	}
	return s.tokens.IssueAccess(user)
}

// Logout revokes the refresh token. The short-lived access token is
// left to expire on its own.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.refresh.Revoke(ctx, refreshToken)
}
