package projects

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authdomain "smartpro/internal/domain/auth"
	"smartpro/internal/domain/core"
	"smartpro/internal/domain/project"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/middleware"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	svc       *project.Service
	employees *core.Store
	checker   middleware.PermissionChecker
}

func New(svc *project.Service, employees *core.Store, checker middleware.PermissionChecker) *Handler {
	return &Handler{svc: svc, employees: employees, checker: checker}
}

func (h *Handler) Routes() chi.Router {
	read := middleware.RequirePermission(h.checker, authdomain.PermProjectsRead)
	write := middleware.RequirePermission(h.checker, authdomain.PermProjectsWrite)

	r := chi.NewRouter()
	r.With(read).Get("/", h.list)
	r.With(write).Post("/", h.create)
	r.With(read).Get("/{id}", h.get)
	r.With(write).Patch("/{id}", h.update)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	limit, offset := shared.Pagination(r)

	employeeID, err := h.employees.EmployeeIDByUserID(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}

	projects, err := h.svc.List(r.Context(), user.UserID, employeeID, limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list projects")
		return
	}
	api.Success(w, r, projects)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req project.CreateInput
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	api.Created(w, r, p)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, project.ErrNotFound) {
		api.Fail(w, r, http.StatusNotFound, "not_found", "project not found")
		return
	}
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to load project")
		return
	}
	api.Success(w, r, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}

	var req project.UpdateInput
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	p, err := h.svc.Update(r.Context(), id, req)
	switch {
	case errors.Is(err, project.ErrNotFound):
		api.Fail(w, r, http.StatusNotFound, "not_found", "project not found")
	case errors.Is(err, project.ErrInvalidStatus), errors.Is(err, project.ErrInvalidDateRange):
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
	case err != nil:
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to update project")
	default:
		api.Success(w, r, p)
	}
}
