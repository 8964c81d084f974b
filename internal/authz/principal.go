// Package authz decides, for an authenticated principal and a concrete
// resource, whether an operation is permitted. It combines role checks,
// direct ownership, manager-set membership and hierarchy ascension
// (career -> department -> team) into one evaluator. Predicates never
// mutate state; they read through narrow store ports.
package authz

import (
	"context"
	"errors"
)

// Role labels carried by a principal. There is no hierarchy between
// labels; ADMIN bypasses resource checks entirely instead.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleUser    = "USER"
)

var (
	// ErrNotAuthenticated indicates no valid principal for the request.
	ErrNotAuthenticated = errors.New("authz: not authenticated")
	// ErrAccessDenied indicates a valid principal without sufficient rights.
	ErrAccessDenied = errors.New("authz: access denied")
)

// Principal is the resolved identity of the caller. It is derived per
// request from the access token and never persisted by this package.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

// HasRole reports whether the principal carries the exact role label.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// IsManager reports whether the principal carries the MANAGER role.
func (p *Principal) IsManager() bool {
	return p.HasRole(RoleManager)
}

type principalContextKey struct{}

// WithPrincipal stores the resolved principal in the request context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal, or nil when the request
// is unauthenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
