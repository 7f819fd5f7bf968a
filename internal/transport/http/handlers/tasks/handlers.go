package tasks

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authdomain "smartpro/internal/domain/auth"
	"smartpro/internal/domain/task"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/middleware"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	svc     *task.Service
	checker middleware.PermissionChecker
}

func New(svc *task.Service, checker middleware.PermissionChecker) *Handler {
	return &Handler{svc: svc, checker: checker}
}

func (h *Handler) Routes() chi.Router {
	read := middleware.RequirePermission(h.checker, authdomain.PermTasksRead)
	write := middleware.RequirePermission(h.checker, authdomain.PermTasksWrite)

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

	projectID := r.URL.Query().Get("projectId")
	if projectID != "" && !shared.ValidUUID(projectID) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}

	out, err := h.svc.List(r.Context(), user.UserID, projectID, limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list tasks")
		return
	}
	api.Success(w, r, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req task.CreateInput
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	t, err := h.svc.Create(r.Context(), req)
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	api.Created(w, r, t)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid task id")
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, task.ErrNotFound) {
		api.Fail(w, r, http.StatusNotFound, "not_found", "task not found")
		return
	}
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to load task")
		return
	}
	api.Success(w, r, t)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid task id")
		return
	}

	var req task.UpdateInput
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	t, err := h.svc.Update(r.Context(), id, req)
	switch {
	case errors.Is(err, task.ErrNotFound):
		api.Fail(w, r, http.StatusNotFound, "not_found", "task not found")
	case errors.Is(err, task.ErrInvalidProgress),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidPriority):
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
	case err != nil:
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to update task")
	default:
		api.Success(w, r, t)
	}
}
