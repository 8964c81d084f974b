package department

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

// Handler exposes department endpoints. Each route checks the caller
// against the hierarchy before touching the service.
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

// MountRoutes registers department routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/departments", h.list)
	r.Post("/departments", h.create)
	r.Get("/departments/{id}", h.detail)
	r.Put("/departments/{id}", h.update)
	r.Put("/departments/{id}/managers", h.assignManagers)
	r.Delete("/departments/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	careerID, err := strconv.ParseInt(r.URL.Query().Get("careerId"), 10, 64)
	if err != nil || careerID <= 0 {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.authz.RequireViewDepartmentList(r.Context(), p, careerID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	page, perPage := shared.PageParams(r, 20, 100)
	items, pagination, err := h.service.ListByCareer(r.Context(), careerID, page, perPage)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"departments": items, "pagination": pagination})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	var in CreateInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireCareerAccess(r.Context(), p, in.CareerID); err != nil {
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
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireViewDepartmentDetail(r.Context(), p, id); err != nil {
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
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireDepartmentAccess(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in UpdateInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), p, id, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, updated)
}

func (h *Handler) assignManagers(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireManageDepartment(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in AssignManagersInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.AssignManagers(r.Context(), id, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, updated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireManageDepartment(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	status, err := h.service.Delete(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"departmentId": id, "status": status})
}
