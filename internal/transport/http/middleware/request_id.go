package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"smartpro/internal/requestctx"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns every request a UUID, honoring one supplied by an
// upstream proxy.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := requestctx.WithRequestID(r.Context(), id)
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
