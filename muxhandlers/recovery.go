package muxhandlers

import (
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RecoveryConfig configures RecoveryMiddleware.
type RecoveryConfig struct {
	// Logger receives the panic value and stack. Nil disables logging.
	Logger logrus.FieldLogger

	// ErrorFunc writes the response after a panic. Defaults to a plain
	// text 500 Internal Server Error.
	ErrorFunc func(w http.ResponseWriter, r *http.Request, rec any)
}

// RecoveryMiddleware turns panics in downstream handlers into a 500 response.
// http.ErrAbortHandler is re-panicked so the server can abort the connection.
func RecoveryMiddleware(cfg RecoveryConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				if cfg.Logger != nil {
					cfg.Logger.WithFields(logrus.Fields{
						"panic":      rec,
						"method":     r.Method,
						"path":       r.URL.Path,
						"request_id": RequestIDFromContext(r.Context()),
						"stack":      string(debug.Stack()),
					}).Error("recovered from panic")
				}

				if cfg.ErrorFunc != nil {
					cfg.ErrorFunc(w, r, rec)
					return
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
