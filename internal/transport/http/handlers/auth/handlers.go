package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authdomain "smartpro/internal/domain/auth"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/middleware"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	svc *authdomain.Service
}

func New(svc *authdomain.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.login)
	return r
}

// AdminRoutes are mounted behind auth plus the admin.system permission.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.createUser)
	return r
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, authdomain.ErrInvalidCredentials) {
		api.Fail(w, r, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "login failed")
		return
	}

	api.Success(w, r, result)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); !ok {
		api.Fail(w, r, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	id, err := h.svc.CreateUser(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	api.Created(w, r, map[string]string{"id": id})
}
