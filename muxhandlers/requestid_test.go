package muxhandlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

var uuidV4Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		config        RequestIDConfig
		incoming      string
		wantID        string
		wantGenerated bool
	}{
		{
			name:          "generates UUID v4 by default",
			wantGenerated: true,
		},
		{
			name:          "ignores incoming by default",
			incoming:      "client-id",
			wantGenerated: true,
		},
		{
			name:     "trusts incoming when configured",
			config:   RequestIDConfig{TrustIncoming: true},
			incoming: "client-id",
			wantID:   "client-id",
		},
		{
			name:          "generates when trusted header is missing",
			config:        RequestIDConfig{TrustIncoming: true},
			wantGenerated: true,
		},
		{
			name:   "custom generator",
			config: RequestIDConfig{Generate: func(*http.Request) string { return "custom-id" }},
			wantID: "custom-id",
		},
		{
			name: "custom header",
			config: RequestIDConfig{
				HeaderName: "X-Trace-ID",
				Generate:   func(*http.Request) string { return "trace-123" },
			},
			wantID: "trace-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.config.HeaderName
			if header == "" {
				header = DefaultRequestIDHeader
			}

			var fromContext string
			r := mux.NewRouter()
			r.HandleFunc("/test", func(_ http.ResponseWriter, req *http.Request) {
				fromContext = RequestIDFromContext(req.Context())
			}).Methods(http.MethodGet)
			r.Use(RequestIDMiddleware(tt.config))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(header, tt.incoming)
			}
			r.ServeHTTP(w, req)

			got := w.Header().Get(header)
			if tt.wantGenerated {
				assert.Regexp(t, uuidV4Regex, got)
			} else {
				assert.Equal(t, tt.wantID, got)
			}
			assert.Equal(t, got, fromContext)
		})
	}

	t.Run("unique per request", func(t *testing.T) {
		r := mux.NewRouter()
		r.HandleFunc("/test", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Use(RequestIDMiddleware(RequestIDConfig{}))

		w1 := httptest.NewRecorder()
		r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/test", nil))
		w2 := httptest.NewRecorder()
		r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.NotEqual(t, w1.Header().Get(DefaultRequestIDHeader), w2.Header().Get(DefaultRequestIDHeader))
	})

	t.Run("empty generated id is not stored", func(t *testing.T) {
		var fromContext = "unset"
		r := mux.NewRouter()
		r.HandleFunc("/test", func(_ http.ResponseWriter, req *http.Request) {
			fromContext = RequestIDFromContext(req.Context())
		})
		r.Use(RequestIDMiddleware(RequestIDConfig{Generate: func(*http.Request) string { return "" }}))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Empty(t, fromContext)
		assert.Empty(t, w.Header().Get(DefaultRequestIDHeader))
	})
}
