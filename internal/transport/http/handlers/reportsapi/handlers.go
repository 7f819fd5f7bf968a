package reportsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpro/internal/domain/core"
	"smartpro/internal/domain/reports"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/middleware"
)

type Handler struct {
	svc       *reports.Service
	employees *core.Store
	enqueue   func(jobType string)
}

func New(svc *reports.Service, employees *core.Store, enqueue func(jobType string)) *Handler {
	return &Handler{svc: svc, employees: employees, enqueue: enqueue}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard", h.dashboard)
	return r
}

// AdminRoutes expose manual triggers for the scheduled jobs.
func (h *Handler) AdminRoutes(jobTypes ...string) chi.Router {
	r := chi.NewRouter()
	for _, jt := range jobTypes {
		r.Post("/"+jt, func(w http.ResponseWriter, req *http.Request) {
			h.enqueue(jt)
			api.Success(w, req, map[string]string{"enqueued": jt})
		})
	}
	return r
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	employeeID, err := h.employees.EmployeeIDByUserID(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to resolve employee")
		return
	}

	d, err := h.svc.Dashboard(r.Context(), user.UserID, employeeID)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to build dashboard")
		return
	}
	api.Success(w, r, d)
}
