package auditapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpro/internal/domain/audit"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/shared"
)

type Handler struct {
	recorder *audit.Recorder
}

func New(recorder *audit.Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, offset := shared.Pagination(r)

	entityID := r.URL.Query().Get("entityId")
	if entityID != "" && !shared.ValidUUID(entityID) {
		api.Fail(w, r, http.StatusBadRequest, "bad_request", "invalid entity id")
		return
	}

	events, err := h.recorder.List(r.Context(), r.URL.Query().Get("entityType"), entityID, limit, offset)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "internal", "failed to list audit events")
		return
	}
	api.Success(w, r, events)
}
