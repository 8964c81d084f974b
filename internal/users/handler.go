package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/platform/httpx"
	"github.com/das-hr/skillmatrix/internal/shared"
)

// Handler exposes user endpoints. A profile is readable and editable by
// its owner (admins pass through the ownership check), account toggles
// and the directory listing are admin only.
type Handler struct {
	logger   *slog.Logger
	repo     Repository
	authz    *authz.Evaluator
	validate *validator.Validate
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, repo Repository, evaluator *authz.Evaluator, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, repo: repo, authz: evaluator, validate: validate}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/users", h.list)
	r.Get("/users/me", h.me)
	r.Get("/users/{id}", h.profile)
	r.Put("/users/{id}", h.updateProfile)
	r.Put("/users/{id}/active", h.setActive)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if err := authz.RequireAdmin(authz.PrincipalFromContext(r.Context())); err != nil {
		httpx.RespondError(w, err)
		return
	}
	page, perPage := shared.PageParams(r, 20, 100)
	items, total, err := h.repo.List(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{
		"users":      items,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if p == nil {
		httpx.RespondError(w, authz.ErrNotAuthenticated)
		return
	}
	profile, err := h.repo.Find(r.Context(), p.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, profile)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireOwner(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	profile, err := h.repo.Find(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireOwner(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in UpdateProfileInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.repo.UpdateFullName(r.Context(), id, shared.NormalizeName(in.FullName)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	profile, err := h.repo.Find(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, profile)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	if err := authz.RequireAdmin(authz.PrincipalFromContext(r.Context())); err != nil {
		httpx.RespondError(w, err)
		return
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in SetActiveInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.repo.SetActive(r.Context(), id, in.IsActive); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("user active toggled", slog.Int64("user_id", id), slog.Bool("is_active", in.IsActive))
	httpx.OK(w, http.StatusOK, map[string]any{"userId": id, "isActive": in.IsActive})
}
