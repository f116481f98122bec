package chi

import (
	"context"
	"net/http"
	"strings"

	logpkg "github.com/kailas-cloud/jobmatch/internal/logger"
)

// UserHeader carries the authenticated user id, set by the session layer in front of this API.
const UserHeader = "X-User-ID"

type userKey struct{}

// UserMiddleware requires UserHeader on every non-exempt route and stores the id in the context.
func UserMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			userID := strings.TrimSpace(r.Header.Get(UserHeader))
			if userID == "" {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "missing "+UserHeader+" header")
				return
			}
			ctx := context.WithValue(r.Context(), userKey{}, userID)
			ctx = logpkg.WithUser(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user id stored by UserMiddleware.
func UserFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}
