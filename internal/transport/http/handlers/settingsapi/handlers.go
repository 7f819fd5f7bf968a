package settingsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpro/internal/domain/settings"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	store *settings.Store
}

func New(store *settings.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ReadRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.get)
	return r
}

func (h *Handler) WriteRoutes() chi.Router {
	r := chi.NewRouter()
	r.Put("/", h.save)
	r.Put("/access/{userId}", h.setAccess)
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Load(r.Context())
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to load settings")
		return
	}
	api.Success(w, r, cfg)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req settings.Settings
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.ProjectReminderDays < 0 || req.TaskReminderDays < 0 {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "reminder days must not be negative")
		return
	}

	if err := h.store.Save(r.Context(), req); err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to save settings")
		return
	}
	api.Success(w, r, req)
}

func (h *Handler) setAccess(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !shared.ValidUUID(userID) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}

	var req settings.Access
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := h.store.SetUserAccess(r.Context(), userID, req); err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to update access")
		return
	}
	api.Success(w, r, req)
}
