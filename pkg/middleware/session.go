package middleware

import (
	"context"
	"net/http"
	"regexp"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
)

const (
	SessionIDHeader = "X-Session-ID"
	// UserIDHeader is set by the gateway for signed-in shoppers.
	UserIDHeader = "X-User-ID"
)

type sessionKey struct{}

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// SessionIDFromRequest returns the session id header, falling back to the
// gateway's user id header. Malformed ids are ignored.
func SessionIDFromRequest(r *http.Request) string {
	for _, h := range []string{SessionIDHeader, UserIDHeader} {
		if id := r.Header.Get(h); id != "" {
			if sessionIDPattern.MatchString(id) {
				return id
			}
			return ""
		}
	}
	return ""
}

// RequireSession rejects requests without a usable session id with 401
// and otherwise stores the id in the context.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := SessionIDFromRequest(r)
		if id == "" {
			httputil.WriteError(w, r, apperrors.Unauthorized("a session id is required"), nil)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, id)
		ctx = logger.WithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIDFromContext returns the id stored by RequireSession.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
