package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/platform/httpx"
)

// Resolver turns a bearer token into an authz.Principal for the request
// context. Requests without a usable token pass through unauthenticated
// so guarded predicates surface ErrNotAuthenticated at the call site;
// public endpoints stay reachable either way.
type Resolver struct {
	tokens *TokenManager
	repo   Repository
	logger *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(tokens *TokenManager, repo Repository, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{tokens: tokens, repo: repo, logger: logger}
}

// Middleware resolves the current principal. The claimed identity must
// still resolve to a live user row; a stale token over a deleted or
// deactivated account stays unauthenticated.
func (rs *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := rs.tokens.ParseAccess(raw)
		if err != nil {
			rs.logger.Info("reject access token", slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		user, err := rs.repo.FindByEmail(r.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, httpx.ErrNotFound) {
				rs.logger.Error("resolve principal", slog.Any("error", err))
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		if !user.IsActive {
			next.ServeHTTP(w, r)
			return
		}

		ctx := authz.WithPrincipal(r.Context(), user.Principal())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
