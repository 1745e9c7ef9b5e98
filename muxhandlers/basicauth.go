package muxhandlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// BasicAuthConfig configures BasicAuthMiddleware.
//
// See: https://www.rfc-editor.org/rfc/rfc7617
type BasicAuthConfig struct {
	// Realm defaults to "Restricted".
	Realm string

	// Credentials maps user names to passwords.
	Credentials map[string]string

	// Validate checks credentials instead of Credentials when set.
	Validate func(username, password string) bool

	// Logger receives rejected attempts. Nil disables logging.
	Logger logrus.FieldLogger
}

// BasicAuthMiddleware rejects requests without valid Basic credentials with
// 401 and a WWW-Authenticate challenge.
func BasicAuthMiddleware(cfg BasicAuthConfig) (mux.MiddlewareFunc, error) {
	if cfg.Validate == nil && len(cfg.Credentials) == 0 {
		return nil, fmt.Errorf("basic auth: credentials or a validate func are required: %w", errdefs.ErrInvalidArgument)
	}

	realm := cfg.Realm
	if realm == "" {
		realm = "Restricted"
	}
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	validate := cfg.Validate
	if validate == nil {
		creds := cfg.Credentials
		validate = func(username, password string) bool {
			expected, ok := creds[username]
			// compare even for unknown users
			match := constantTimeEqual(password, expected)
			return ok && match
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if ok && validate(username, password) {
				next.ServeHTTP(w, r)
				return
			}

			if cfg.Logger != nil {
				cfg.Logger.WithFields(logrus.Fields{
					"user":       username,
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": RequestIDFromContext(r.Context()),
				}).Warn("rejected basic auth credentials")
			}

			w.Header().Set("WWW-Authenticate", challenge)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		})
	}, nil
}

// constantTimeEqual compares the SHA-256 digests of a and b, so neither
// content nor length leaks through timing.
func constantTimeEqual(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}
