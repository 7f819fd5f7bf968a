package timesheets

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authdomain "smartpro/internal/domain/auth"
	"smartpro/internal/domain/core"
	"smartpro/internal/domain/timesheet"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/middleware"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	svc       *timesheet.Service
	employees *core.Store
	checker   middleware.PermissionChecker
}

func New(svc *timesheet.Service, employees *core.Store, checker middleware.PermissionChecker) *Handler {
	return &Handler{svc: svc, employees: employees, checker: checker}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.log)
	r.Get("/day/{date}", h.dayTotal)
	r.Post("/{id}/submit", h.submit)
	r.Delete("/{id}", h.delete)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(h.checker, authdomain.PermTimesheetsApprove))
		r.Post("/{id}/approve", h.decide(true))
		r.Post("/{id}/reject", h.decide(false))
	})
	return r
}

func (h *Handler) ownEmployeeID(r *http.Request) (string, error) {
	user, _ := middleware.UserFrom(r.Context())
	return h.employees.EmployeeIDByUserID(r.Context(), user.UserID)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.ownEmployeeID(r)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}
	if employeeID == "" {
		api.Success(w, r, []timesheet.Entry{})
		return
	}

	limit, offset := shared.Pagination(r)
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if (from != "" && !shared.ValidDate(from)) || (to != "" && !shared.ValidDate(to)) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid date filter, expected YYYY-MM-DD")
		return
	}

	out, err := h.svc.List(r.Context(), employeeID, from, to, limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list timesheet entries")
		return
	}
	api.Success(w, r, out)
}

func (h *Handler) log(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateInput
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	employeeID, err := h.ownEmployeeID(r)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}
	if employeeID == "" {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "no employee record for this user")
		return
	}
	req.EmployeeID = employeeID

	entry, err := h.svc.Log(r.Context(), req)
	switch {
	case errors.Is(err, timesheet.ErrInvalidHours),
		errors.Is(err, timesheet.ErrInvalidDate),
		errors.Is(err, timesheet.ErrTaskMismatch):
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, timesheet.ErrDuplicate):
		api.Fail(w, r, http.StatusConflict, "conflict", err.Error())
	case err != nil:
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
	default:
		api.Created(w, r, entry)
	}
}

func (h *Handler) dayTotal(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.ownEmployeeID(r)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}
	if employeeID == "" {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "no employee record for this user")
		return
	}

	summary, err := h.svc.DayTotal(r.Context(), employeeID, chi.URLParam(r, "date"))
	if errors.Is(err, timesheet.ErrInvalidDate) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to summarize day")
		return
	}
	api.Success(w, r, summary)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid entry id")
		return
	}

	employeeID, err := h.ownEmployeeID(r)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}

	if err := h.svc.Submit(r.Context(), id, employeeID); err != nil {
		if errors.Is(err, timesheet.ErrNotFound) {
			api.Fail(w, r, http.StatusNotFound, "not_found", "entry not found or already submitted")
			return
		}
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to submit entry")
		return
	}
	api.Success(w, r, map[string]string{"id": id, "status": timesheet.StatusSubmitted})
}

func (h *Handler) decide(approve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !shared.ValidUUID(id) {
			api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid entry id")
			return
		}

		if err := h.svc.Decide(r.Context(), id, approve); err != nil {
			if errors.Is(err, timesheet.ErrNotFound) {
				api.Fail(w, r, http.StatusNotFound, "not_found", "entry not found or not awaiting review")
				return
			}
			api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve entry")
			return
		}
		status := timesheet.StatusRejected
		if approve {
			status = timesheet.StatusApproved
		}
		api.Success(w, r, map[string]string{"id": id, "status": status})
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid entry id")
		return
	}

	employeeID, err := h.ownEmployeeID(r)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}

	if err := h.svc.Delete(r.Context(), id, employeeID); err != nil {
		if errors.Is(err, timesheet.ErrNotFound) {
			api.Fail(w, r, http.StatusNotFound, "not_found", "entry not found or not deletable")
			return
		}
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to delete entry")
		return
	}
	api.Success(w, r, map[string]string{"id": id, "deleted": "true"})
}
