package muxhandlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/gorilla/mux"
)

// CORSConfig configures CORSMiddleware for read-only endpoints such as API
// documents fetched by a Swagger UI hosted elsewhere.
//
// See: https://fetch.spec.whatwg.org/#http-cors-protocol
type CORSConfig struct {
	// AllowedOrigins holds exact origins, "*", or subdomain patterns like
	// "https://*.example.com". Matching is case-insensitive.
	AllowedOrigins []string

	// MaxAge is the preflight cache lifetime in seconds. Zero omits it.
	MaxAge int
}

type originPattern struct {
	prefix string
	suffix string
}

type originMatcher struct {
	any      bool
	exact    map[string]struct{}
	patterns []originPattern
}

func newOriginMatcher(origins []string) (*originMatcher, error) {
	m := &originMatcher{exact: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if o == "*" {
			m.any = true
			continue
		}

		lower := strings.ToLower(strings.TrimSpace(o))
		prefix, suffix, wildcard := strings.Cut(lower, "*")
		switch {
		case !wildcard:
			m.exact[lower] = struct{}{}
		case strings.Contains(suffix, "*"):
			return nil, fmt.Errorf("cors: origin %q has more than one wildcard: %w", o, errdefs.ErrInvalidArgument)
		default:
			m.patterns = append(m.patterns, originPattern{prefix: prefix, suffix: suffix})
		}
	}
	return m, nil
}

func (m *originMatcher) match(origin string) bool {
	if m.any {
		return true
	}

	lower := strings.ToLower(origin)
	if _, ok := m.exact[lower]; ok {
		return true
	}
	for _, p := range m.patterns {
		if len(lower) > len(p.prefix)+len(p.suffix) &&
			strings.HasPrefix(lower, p.prefix) &&
			strings.HasSuffix(lower, p.suffix) {
			return true
		}
	}
	return false
}

// CORSMiddleware allows cross-origin GET and HEAD requests from the
// configured origins and answers their preflight requests. Requests from
// other origins pass through without CORS headers.
func CORSMiddleware(cfg CORSConfig) (mux.MiddlewareFunc, error) {
	if len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("cors: at least one allowed origin is required: %w", errdefs.ErrInvalidArgument)
	}

	matcher, err := newOriginMatcher(cfg.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !matcher.match(origin) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if matcher.any {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", reqHeaders)
				}
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			h.Set("Access-Control-Expose-Headers", DefaultRequestIDHeader)
			next.ServeHTTP(w, r)
		})
	}, nil
}
