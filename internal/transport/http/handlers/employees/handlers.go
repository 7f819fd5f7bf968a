package employees

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpro/internal/domain/core"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	store *core.Store
}

func New(store *core.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, offset := shared.Pagination(r)
	employees, err := h.store.List(r.Context(), limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list employees")
		return
	}
	api.Success(w, r, employees)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req core.Employee
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.EmployeeName == "" || req.Email == "" {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "employeeName and email are required")
		return
	}

	id, err := h.store.Create(r.Context(), req)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to create employee")
		return
	}
	api.Created(w, r, map[string]string{"id": id})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid employee id")
		return
	}

	employee, err := h.store.Get(r.Context(), id)
	if err != nil {
		api.Fail(w, r, http.StatusNotFound, "not_found", "employee not found")
		return
	}
	api.Success(w, r, employee)
}
