package assignments

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpro/internal/domain/assignment"
	authdomain "smartpro/internal/domain/auth"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/middleware"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	svc     *assignment.Service
	checker middleware.PermissionChecker
}

func New(svc *assignment.Service, checker middleware.PermissionChecker) *Handler {
	return &Handler{svc: svc, checker: checker}
}

func (h *Handler) Routes() chi.Router {
	read := middleware.RequirePermission(h.checker, authdomain.PermAssignmentsRead)
	write := middleware.RequirePermission(h.checker, authdomain.PermAssignmentsWrite)

	r := chi.NewRouter()
	r.With(write).Post("/", h.create)
	r.With(read).Get("/{id}", h.get)
	r.With(write).Patch("/{id}/status", h.updateStatus)
	r.With(read).Get("/project/{projectId}", h.listByProject)
	r.With(read).Get("/employee/{employeeId}", h.listByEmployee)
	return r
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req assignment.CreateInput
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	a, err := h.svc.Create(r.Context(), req)
	switch {
	case errors.Is(err, assignment.ErrInvalidAllocation), errors.Is(err, assignment.ErrInvalidDateRange):
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
	case err != nil:
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
	default:
		api.Created(w, r, a)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid assignment id")
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, assignment.ErrNotFound) {
		api.Fail(w, r, http.StatusNotFound, "not_found", "assignment not found")
		return
	}
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to load assignment")
		return
	}
	api.Success(w, r, a)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid assignment id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	api.Success(w, r, map[string]string{"id": id, "status": req.Status})
}

func (h *Handler) listByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if !shared.ValidUUID(projectID) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}

	out, err := h.svc.ListByProject(r.Context(), projectID)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list assignments")
		return
	}
	api.Success(w, r, out)
}

func (h *Handler) listByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if !shared.ValidUUID(employeeID) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid employee id")
		return
	}

	out, err := h.svc.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list assignments")
		return
	}
	api.Success(w, r, out)
}
