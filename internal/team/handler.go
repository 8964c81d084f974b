package team

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/platform/httpx"
	"github.com/das-hr/skillmatrix/internal/shared"
)

// Handler exposes team endpoints. Creation and listing are open to
// admins and managers, everything touching a single team goes through
// the team manager ownership check, and the roster read additionally
// admits members of that team.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	authz    *authz.Evaluator
	validate *validator.Validate
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, service *Service, evaluator *authz.Evaluator, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, authz: evaluator, validate: validate}
}

// MountRoutes registers team routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/teams", h.list)
	r.Post("/teams", h.create)
	r.Get("/teams/{id}", h.detail)
	r.Put("/teams/{id}", h.update)
	r.Delete("/teams/{id}", h.remove)
	r.Get("/teams/{id}/members", h.members)
	r.Post("/teams/{id}/members", h.addMember)
	r.Delete("/teams/{id}/members/{userId}", h.removeMember)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if err := authz.RequireAnyRole(p, authz.RoleAdmin, authz.RoleManager); err != nil {
		httpx.RespondError(w, err)
		return
	}
	var departmentID int64
	if raw := r.URL.Query().Get("departmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		departmentID = id
	}
	page, perPage := shared.PageParams(r, 20, 100)
	items, pagination, err := h.service.List(r.Context(), departmentID, page, perPage)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"teams": items, "pagination": pagination})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if err := authz.RequireAnyRole(p, authz.RoleAdmin, authz.RoleManager); err != nil {
		httpx.RespondError(w, err)
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
	id, ok := h.guardManager(w, r)
	if !ok {
		return
	}
	team, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, team)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.guardManager(w, r)
	if !ok {
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

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.guardManager(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireTeamMemberAccess(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	roster, err := h.service.Members(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"teamId": id, "members": roster})
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.guardManager(w, r)
	if !ok {
		return
	}
	var in MemberInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.AddMember(r.Context(), id, in.UserID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{"teamId": id, "userId": in.UserID})
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.guardManager(w, r)
	if !ok {
		return
	}
	userID, err := httpx.PathID(r, "userId")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.RemoveMember(r.Context(), id, userID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// guardManager parses the team id and checks team manager ownership.
func (h *Handler) guardManager(w http.ResponseWriter, r *http.Request) (int64, bool) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return 0, false
	}
	if err := h.authz.RequireTeamManagerOwner(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return 0, false
	}
	return id, true
}
