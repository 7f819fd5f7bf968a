package daterequests

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpro/internal/domain/audit"
	authdomain "smartpro/internal/domain/auth"
	"smartpro/internal/domain/core"
	"smartpro/internal/domain/daterequest"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/middleware"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	svc       *daterequest.Service
	employees *core.Store
	auditor   *audit.Recorder
}

func New(svc *daterequest.Service, employees *core.Store, auditor *audit.Recorder) *Handler {
	return &Handler{svc: svc, employees: employees, auditor: auditor}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/pending", h.pending)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/submit", h.submit)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
	return r
}

// moderator reports whether the user may act on any request, not only the
// ones routed to them.
func moderator(user authdomain.UserContext) bool {
	return user.RoleName == authdomain.RoleHR || user.RoleName == authdomain.RoleAdmin
}

func (h *Handler) ownEmployeeID(r *http.Request) (string, error) {
	user, _ := middleware.UserFrom(r.Context())
	return h.employees.EmployeeIDByUserID(r.Context(), user.UserID)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	limit, offset := shared.Pagination(r)

	if r.URL.Query().Get("scope") == "all" {
		if !moderator(user) {
			api.Fail(w, r, http.StatusForbidden, "forbidden", "not allowed to list all requests")
			return
		}
		out, err := h.svc.ListAll(r.Context(), r.URL.Query().Get("status"), limit, offset)
		if err != nil {
			api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list requests")
			return
		}
		api.Success(w, r, out)
		return
	}

	employeeID, err := h.ownEmployeeID(r)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}
	if employeeID == "" {
		api.Success(w, r, []daterequest.DateRequest{})
		return
	}

	out, err := h.svc.ListForEmployee(r.Context(), employeeID, limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list requests")
		return
	}
	api.Success(w, r, out)
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	limit, offset := shared.Pagination(r)

	out, err := h.svc.PendingForApprover(r.Context(), user.UserID, limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list pending requests")
		return
	}
	api.Success(w, r, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	var req daterequest.CreateInput
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	ownID, err := h.ownEmployeeID(r)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}
	if req.EmployeeID == "" {
		req.EmployeeID = ownID
	}
	if req.EmployeeID != ownID && !moderator(user) {
		api.Fail(w, r, http.StatusForbidden, "forbidden", "cannot create requests for other employees")
		return
	}

	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	h.auditor.Record(r.Context(), user.UserID, "date_request.created", "date_request", created.ID, created)
	api.Created(w, r, created)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid request id")
		return
	}

	req, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, daterequest.ErrNotFound) {
		api.Fail(w, r, http.StatusNotFound, "not_found", "request not found")
		return
	}
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to load request")
		return
	}

	user, _ := middleware.UserFrom(r.Context())
	ownID, _ := h.ownEmployeeID(r)
	if req.EmployeeID != ownID && req.ApproverID != user.UserID && !moderator(user) {
		api.Fail(w, r, http.StatusForbidden, "forbidden", "not allowed to view this request")
		return
	}

	api.Success(w, r, req)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid request id")
		return
	}

	var req daterequest.UpdateInput
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	updated, err := h.svc.UpdatePending(r.Context(), user.UserID, id, req)
	if h.writeRequestError(w, r, err) {
		return
	}

	h.auditor.Record(r.Context(), user.UserID, "date_request.updated", "date_request", id, req)
	api.Success(w, r, updated)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid request id")
		return
	}

	submitted, err := h.svc.Submit(r.Context(), user.UserID, id)
	if h.writeRequestError(w, r, err) {
		return
	}

	h.auditor.Record(r.Context(), user.UserID, "date_request.submitted", "date_request", id, nil)
	api.Success(w, r, submitted)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	user, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid request id")
		return
	}

	var req struct {
		Comments string `json:"comments"`
	}
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
	}

	decided, err := h.svc.Decide(r.Context(), user.UserID, moderator(user), id, approve, req.Comments)

	var dep *daterequest.DependencyError
	if errors.As(err, &dep) {
		// The decision itself committed; report the partial failure.
		h.auditor.Record(r.Context(), user.UserID, "date_request.decided", "date_request", id, decided)
		api.FailWithDetails(w, r, http.StatusConflict, "side_effect_failed",
			"request was decided but a follow-up action failed", map[string]string{"stage": dep.Stage})
		return
	}
	if h.writeRequestError(w, r, err) {
		return
	}

	h.auditor.Record(r.Context(), user.UserID, "date_request.decided", "date_request", id, decided)
	api.Success(w, r, decided)
}

// writeRequestError maps engine errors onto HTTP statuses. Returns true when
// it handled an error.
func (h *Handler) writeRequestError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, daterequest.ErrNotFound):
		api.Fail(w, r, http.StatusNotFound, "not_found", "request not found")
	case errors.Is(err, daterequest.ErrForbidden):
		api.Fail(w, r, http.StatusForbidden, "forbidden", "not allowed to act on this request")
	case errors.Is(err, daterequest.ErrInvalidTransition):
		api.Fail(w, r, http.StatusConflict, "conflict", "request is not in a state that allows this transition")
	case errors.Is(err, daterequest.ErrNotEditable):
		api.Fail(w, r, http.StatusConflict, "conflict", "request can no longer be edited")
	case errors.Is(err, daterequest.ErrInvalidType), errors.Is(err, daterequest.ErrInvalidDateRange):
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
	default:
		api.Fail(w, r, http.StatusInternalServerError, "internal", "request operation failed")
	}
	return true
}
