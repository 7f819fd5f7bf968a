package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"smartpro/internal/transport/http/api"
)

// PermissionChecker answers whether a role holds a permission. Backed by the
// role_permissions table.
type PermissionChecker interface {
	HasPermission(ctx context.Context, roleID, permission string) (bool, error)
}

// RequirePermission guards a route subtree with a permission key. Must run
// after Auth.
func RequirePermission(checker PermissionChecker, permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok {
				api.Fail(w, r, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}

			allowed, err := checker.HasPermission(r.Context(), user.RoleID, permission)
			if err != nil {
				slog.Error("permission check failed", "permission", permission, "error", err)
				api.Fail(w, r, http.StatusInternalServerError, "internal", "permission check failed")
				return
			}
			if !allowed {
				api.Fail(w, r, http.StatusForbidden, "forbidden", "missing permission: "+permission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
