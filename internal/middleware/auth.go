package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/auth"
)

// UserScopeHeader carries the authenticated user for downstream handlers.
const UserScopeHeader = "X-User-Id"

// UserScopeMiddleware reads the user scope header into the request context.
// Requests without the header pass through unscoped; handlers that require a
// scope enforce it themselves.
func UserScopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserScopeHeader))
		if raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "invalid "+UserScopeHeader+" header", http.StatusBadRequest)
				return
			}
			r = r.WithContext(auth.ContextWithUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
