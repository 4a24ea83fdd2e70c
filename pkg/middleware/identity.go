package middleware

import (
	"context"
	"net/http"

	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
	"github.com/base-angewandte/image-backend-sub000/pkg/httputil"
)

type identityContextKey string

const userIDContextKey identityContextKey = "user_id"

// UserIDHeader is the header the SSO gateway sets on every proxied request.
const UserIDHeader = "X-User-ID"

// Identity extracts the acting user from the gateway-set X-User-ID header and
// stores it in the request context. Requests without the header pass through
// anonymously; handlers that need an acting user wrap themselves in RequireUser.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := r.Header.Get(UserIDHeader); userID != "" {
				ctx := context.WithValue(r.Context(), userIDContextKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects requests that carry no acting user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == "" {
			httputil.WriteError(w, r, apperrors.Unauthorized("missing user identity"), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the acting user ID set by Identity, or "".
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDContextKey).(string); ok {
		return id
	}
	return ""
}
