package muxhandlers

import (
	"fmt"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/gorilla/mux"
)

// RequestBodyConfig configures RequestBodyMiddleware.
type RequestBodyConfig struct {
	// AllowedTypes lists the accepted media types, compared without
	// parameters and case-insensitively. Empty accepts any type.
	AllowedTypes []string

	// MaxBytes caps the body size. Zero disables the limit.
	MaxBytes int64

	// Methods are checked. Nil means POST, PUT and PATCH.
	Methods []string
}

var bodyMethods = []string{http.MethodPost, http.MethodPut, http.MethodPatch}

// RequestBodyMiddleware answers 415 when the Content-Type of a request with
// a body is not allowed, and limits the body to MaxBytes. Reading past the
// limit fails and the server answers 413.
func RequestBodyMiddleware(cfg RequestBodyConfig) (mux.MiddlewareFunc, error) {
	if cfg.MaxBytes < 0 {
		return nil, fmt.Errorf("request body: negative size limit %d: %w", cfg.MaxBytes, errdefs.ErrInvalidArgument)
	}

	methods := cfg.Methods
	if methods == nil {
		methods = bodyMethods
	}

	allowed := make([]string, 0, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed = append(allowed, strings.ToLower(strings.TrimSpace(t)))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(methods, r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if len(allowed) > 0 {
				mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
				if err != nil || !slices.Contains(allowed, strings.ToLower(mediaType)) {
					http.Error(w, http.StatusText(http.StatusUnsupportedMediaType), http.StatusUnsupportedMediaType)
					return
				}
			}

			if cfg.MaxBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBytes)
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
