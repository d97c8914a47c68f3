package api

import (
	"net/http"

	"github.com/nhalm/canonlog"
	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/auth"
)

// requireAdmin rejects requests without a valid admin bearer token. A nil
// verifier disables writes entirely.
func requireAdmin(v *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v == nil {
				Unauthorized(w, r, apperrors.NewUnauthorizedError("writes are disabled"), "writes are disabled")
				return
			}

			token := auth.GetBearerToken(r)
			if token == "" {
				Unauthorized(w, r, apperrors.NewUnauthorizedError("missing bearer token"), "missing bearer token")
				return
			}

			claims, err := v.ParseToken(token)
			if err != nil {
				Unauthorized(w, r, err, "invalid or expired token")
				return
			}

			if !auth.HasRole(claims.Roles, auth.RoleAdmin) {
				Forbidden(w, r, apperrors.NewUnauthorizedError("admin role required"), "admin role required")
				return
			}

			canonlog.AddRequestFields(r.Context(), map[string]any{
				"subject": claims.Subject,
			})

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
