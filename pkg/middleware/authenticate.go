package middleware

import (
	"net/http"
	"realty/pkg/auth"
	apperrors "realty/pkg/errors"
	httputil "realty/pkg/http"
	"realty/pkg/logger"
	"strings"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Principal, error)
}

// Authenticate attaches the bearer token's principal to the request context.
// Requests without an Authorization header pass through anonymously; handlers
// decide whether a principal is required. A malformed or invalid token is
// rejected outright.
func Authenticate(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Authorization header must use the Bearer scheme"))
				return
			}

			principal, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				log.Warn("Rejected bearer token",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				_ = httputil.WriteError(w, apperrors.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}
