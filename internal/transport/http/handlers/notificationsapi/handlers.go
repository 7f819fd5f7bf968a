package notificationsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpro/internal/domain/notifications"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/middleware"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	svc *notifications.Service
}

func New(svc *notifications.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/unread-count", h.unreadCount)
	r.Post("/{id}/read", h.markRead)
	r.Post("/read-all", h.markAllRead)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	limit, offset := shared.Pagination(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	out, err := h.svc.List(r.Context(), user.UserID, unreadOnly, limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list notifications")
		return
	}
	api.Success(w, r, out)
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	count, err := h.svc.UnreadCount(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to count notifications")
		return
	}
	api.Success(w, r, map[string]int{"unread": count})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	if !shared.ValidUUID(id) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid notification id")
		return
	}

	ok, err := h.svc.MarkRead(r.Context(), user.UserID, id)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to mark notification")
		return
	}
	if !ok {
		api.Fail(w, r, http.StatusNotFound, "not_found", "notification not found or already read")
		return
	}
	api.Success(w, r, map[string]string{"id": id})
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	n, err := h.svc.MarkAllRead(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to mark notifications")
		return
	}
	api.Success(w, r, map[string]int64{"marked": n})
}
