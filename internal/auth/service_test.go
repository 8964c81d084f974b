package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

type stubRepo struct {
	byEmail map[string]*User
	byID    map[int64]*User
}

func newStubRepo(users ...*User) *stubRepo {
	r := &stubRepo{byEmail: make(map[string]*User), byID: make(map[int64]*User)}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, httpx.ErrNotFound
}

func (r *stubRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, httpx.ErrNotFound
}

func testUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{
		ID:           7,
		Email:        "ana@skillmatrix.local",
		FullName:     "Ana Tran",
		PasswordHash: string(hash),
		Role:         "USER",
		IsActive:     true,
	}
}

func newTestService(t *testing.T, users ...*User) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	tokens := NewTokenManager("test-secret", 15*time.Minute)
	refresh := NewRefreshStore(client, time.Hour)
	return NewService(newStubRepo(users...), tokens, refresh), mr
}

func TestLoginIssuesTokenPair(t *testing.T) {
	user := testUser(t, "hunter2")
	svc, _ := newTestService(t, user)

	pair, err := svc.Login(context.Background(), user.Email, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// The refresh token resolves back to the user.
	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	user := testUser(t, "hunter2")
	svc, _ := newTestService(t, user)
	ctx := context.Background()

	_, err := svc.Login(ctx, user.Email, "wrong")
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@skillmatrix.local", "hunter2")
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	user := testUser(t, "hunter2")
	user.IsActive = false
	svc, _ := newTestService(t, user)

	_, err := svc.Login(context.Background(), user.Email, "hunter2")
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	user := testUser(t, "hunter2")
	svc, _ := newTestService(t, user)
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)
}

func TestRefreshExpiresWithTTL(t *testing.T) {
	user := testUser(t, "hunter2")
	svc, mr := newTestService(t, user)
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "hunter2")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)
}
