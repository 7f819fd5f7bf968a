package middleware

import (
	"context"
	"net/http"
	"strings"

	"smartpro/internal/domain/auth"
	"smartpro/internal/transport/http/api"
)

type userCtxKey struct{}

// UserFrom returns the authenticated user stored by Auth, if any.
func UserFrom(ctx context.Context) (auth.UserContext, bool) {
	u, ok := ctx.Value(userCtxKey{}).(auth.UserContext)
	return u, ok
}

// Auth validates the bearer token and stores the user identity in the
// request context.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				api.Fail(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				api.Fail(w, r, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey{}, auth.UserContext{
				UserID:   claims.UserID,
				RoleID:   claims.RoleID,
				RoleName: claims.RoleName,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
