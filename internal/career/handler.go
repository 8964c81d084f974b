package career

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/platform/httpx"
	"github.com/das-hr/skillmatrix/internal/shared"
)

// Handler exposes career endpoints. Every route is admin only.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers career routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/careers", h.list)
	r.Post("/careers", h.create)
	r.Get("/careers/{id}", h.detail)
	r.Put("/careers/{id}", h.update)
	r.Get("/careers/{id}/delete-check", h.deleteCheck)
	r.Delete("/careers/{id}", h.remove)
}

func (h *Handler) guard(w http.ResponseWriter, r *http.Request) bool {
	if err := authz.RequireAdmin(authz.PrincipalFromContext(r.Context())); err != nil {
		httpx.RespondError(w, err)
		return false
	}
	return true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	page, perPage := shared.PageParams(r, 20, 100)
	items, pagination, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"careers": items, "pagination": pagination})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	var in CreateInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, created)
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, detail)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in UpdateInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, updated)
}

func (h *Handler) deleteCheck(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	check, err := h.service.DeleteCheck(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, check)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.service.Delete(r.Context(), id, confirm); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
