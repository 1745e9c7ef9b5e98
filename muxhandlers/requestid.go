package muxhandlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DefaultRequestIDHeader carries the request ID when no header is configured.
const DefaultRequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by RequestIDMiddleware,
// or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDConfig configures RequestIDMiddleware.
type RequestIDConfig struct {
	// HeaderName defaults to DefaultRequestIDHeader.
	HeaderName string

	// Generate returns a new ID. Defaults to a random UUID v4.
	Generate func(r *http.Request) string

	// TrustIncoming reuses the ID sent by the client when present.
	TrustIncoming bool
}

// RequestIDMiddleware tags every request with an ID. The ID is stored in the
// request context and echoed in the response header.
func RequestIDMiddleware(cfg RequestIDConfig) mux.MiddlewareFunc {
	header := cfg.HeaderName
	if header == "" {
		header = DefaultRequestIDHeader
	}

	generate := cfg.Generate
	if generate == nil {
		generate = func(*http.Request) string { return uuid.NewString() }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cfg.TrustIncoming {
				id = r.Header.Get(header)
			}
			if id == "" {
				id = generate(r)
			}

			if id != "" {
				w.Header().Set(header, id)
				r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
			}

			next.ServeHTTP(w, r)
		})
	}
}
