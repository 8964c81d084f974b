package upskill

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/platform/httpx"
	"github.com/das-hr/skillmatrix/internal/shared"
)

// Notifier queues an out-of-band notification for the evaluated user.
// Delivery happens in the background worker.
type Notifier interface {
	EvaluationRecorded(ctx context.Context, userID, skillID int64, score int) error
}

// Handler exposes the upskill endpoints. Listings are implicitly scoped
// to the caller, single-resource routes run the matching ownership
// check first.
type Handler struct {
	logger   *slog.Logger
	repo     Repository
	authz    *authz.Evaluator
	validate *validator.Validate
	notifier Notifier
}

// NewHandler builds Handler. The notifier may be nil when no queue is
// configured.
func NewHandler(logger *slog.Logger, repo Repository, evaluator *authz.Evaluator, validate *validator.Validate, notifier Notifier) *Handler {
	return &Handler{logger: logger, repo: repo, authz: evaluator, validate: validate, notifier: notifier}
}

// MountRoutes registers upskill routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/notifications", h.listNotifications)
	r.Put("/notifications/{id}/read", h.markNotificationRead)
	r.Delete("/notifications/{id}", h.deleteNotification)

	r.Get("/documents", h.listDocuments)
	r.Post("/documents", h.createDocument)
	r.Get("/documents/{id}", h.getDocument)
	r.Delete("/documents/{id}", h.deleteDocument)

	r.Get("/progress", h.listProgress)
	r.Put("/progress", h.upsertProgress)
	r.Get("/progress/{id}", h.getProgress)

	r.Get("/evaluations", h.listEvaluations)
	r.Post("/evaluations", h.createEvaluation)
	r.Get("/evaluations/{id}", h.getEvaluation)
}

// principal returns the caller or writes a 401.
func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (*authz.Principal, bool) {
	p := authz.PrincipalFromContext(r.Context())
	if p == nil {
		httpx.RespondError(w, authz.ErrNotAuthenticated)
		return nil, false
	}
	return p, true
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	page, perPage := shared.PageParams(r, 20, 100)
	items, total, err := h.repo.ListNotifications(r.Context(), p.UserID, perPage, (page-1)*perPage)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{
		"notifications": items,
		"pagination":    shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireNotificationOwner(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.repo.MarkNotificationRead(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"notificationId": id, "read": true})
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireNotificationOwner(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.repo.DeleteNotification(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	page, perPage := shared.PageParams(r, 20, 100)
	items, total, err := h.repo.ListDocuments(r.Context(), p.UserID, perPage, (page-1)*perPage)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{
		"documents":  items,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) createDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var in CreateDocumentInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.repo.CreateDocument(r.Context(), p.UserID, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("document uploaded", slog.Int64("document_id", created.ID), slog.Int64("user_id", p.UserID))
	httpx.OK(w, http.StatusCreated, created)
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireUpskillDocumentOwner(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.repo.FindDocument(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, doc)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireUpskillDocumentOwner(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.repo.DeleteDocument(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listProgress(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	items, err := h.repo.ListProgress(r.Context(), p.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"progress": items})
}

func (h *Handler) upsertProgress(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var in UpsertProgressInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.repo.UpsertProgress(r.Context(), p.UserID, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, updated)
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireUpskillProgressOwner(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	progress, err := h.repo.FindProgress(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, progress)
}

func (h *Handler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	items, err := h.repo.ListEvaluationsForUser(r.Context(), p.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"evaluations": items})
}

func (h *Handler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if err := authz.RequireAnyRole(p, authz.RoleAdmin, authz.RoleManager); err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in CreateEvaluationInput
	if err := httpx.DecodeValid(r, h.validate, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.repo.CreateEvaluation(r.Context(), p.UserID, in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("evaluation recorded",
		slog.Int64("evaluation_id", created.ID),
		slog.Int64("user_id", created.UserID),
		slog.Int64("evaluator_id", created.EvaluatorID))
	if h.notifier != nil {
		if err := h.notifier.EvaluationRecorded(r.Context(), created.UserID, created.SkillID, created.Score); err != nil {
			h.logger.Warn("notification enqueue failed", slog.Any("error", err))
		}
	}
	httpx.OK(w, http.StatusCreated, created)
}

func (h *Handler) getEvaluation(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.authz.RequireUserSkillEvaluationAccess(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	eval, err := h.repo.FindEvaluation(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, eval)
}
