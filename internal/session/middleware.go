package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/redmonkez12/daily-diet-api/internal/httputil"
	"github.com/redmonkez12/daily-diet-api/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const IdentityContextKey ContextKey = "identity"

// Middleware handles authentication for protected routes
type Middleware struct {
	resolver IdentityResolver
}

func NewMiddleware(resolver IdentityResolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// RequireSession resolves the session cookie into an identity and attaches it
// to the request context. A missing or unknown token yields 401; a resolver
// failure yields 500 and is never reported as an auth failure.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			httputil.RespondErrorWithCode(w, "missing session", httputil.CodeMissingSession, http.StatusUnauthorized)
			return
		}

		identity, err := m.resolver.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, ErrNotAuthenticated) {
				httputil.RespondErrorWithCode(w, "invalid session", httputil.CodeInvalidSession, http.StatusUnauthorized)
				return
			}
			logger := logging.GetLoggerFromContext(r.Context())
			logger.Error("failed to resolve session", "error", err.Error())
			httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext extracts the resolved identity from the request context
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(*Identity)
	return identity, ok
}
