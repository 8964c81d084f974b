package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/das-hr/skillmatrix/internal/authz"
)

func resolveThrough(t *testing.T, resolver *Resolver, authorization string) *authz.Principal {
	t.Helper()
	var got *authz.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = authz.PrincipalFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/api/careers", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resolver.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestMiddlewareResolvesPrincipal(t *testing.T) {
	user := testUser(t, "pw")
	tm := NewTokenManager("secret", 15*time.Minute)
	raw, err := tm.IssueAccess(user)
	require.NoError(t, err)

	resolver := NewResolver(tm, newStubRepo(user), nil)
	p := resolveThrough(t, resolver, "Bearer "+raw)
	require.NotNil(t, p)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, user.Email, p.Email)
	assert.True(t, p.HasRole("USER"))
}

func TestMiddlewareLeavesAnonymousRequestsAlone(t *testing.T) {
	tm := NewTokenManager("secret", 15*time.Minute)
	resolver := NewResolver(tm, newStubRepo(), nil)

	assert.Nil(t, resolveThrough(t, resolver, ""))
	assert.Nil(t, resolveThrough(t, resolver, "Basic abc"))
	assert.Nil(t, resolveThrough(t, resolver, "Bearer garbage"))
}

func TestMiddlewareRejectsStaleIdentity(t *testing.T) {
	user := testUser(t, "pw")
	tm := NewTokenManager("secret", 15*time.Minute)
	raw, err := tm.IssueAccess(user)
	require.NoError(t, err)

	// Valid token, but the account no longer exists.
	resolver := NewResolver(tm, newStubRepo(), nil)
	assert.Nil(t, resolveThrough(t, resolver, "Bearer "+raw))

	// Valid token, account deactivated in the meantime.
	user.IsActive = false
	resolver = NewResolver(tm, newStubRepo(user), nil)
	assert.Nil(t, resolveThrough(t, resolver, "Bearer "+raw))
}
