package muxhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSMiddlewareConfig(t *testing.T) {
	_, err := CORSMiddleware(CORSConfig{})
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))

	_, err = CORSMiddleware(CORSConfig{AllowedOrigins: []string{"https://*.*.example.com"}})
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestCORSMiddleware(t *testing.T) {
	newRouter := func(cfg CORSConfig) *mux.Router {
		mw, err := CORSMiddleware(cfg)
		require.NoError(t, err)

		r := mux.NewRouter()
		r.Use(mw)
		r.HandleFunc("/swagger.json", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodGet, http.MethodOptions)
		return r
	}

	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantOrigin string
		wantVary   bool
	}{
		{"exact match", []string{"https://editor.swagger.io"}, "https://editor.swagger.io", "https://editor.swagger.io", true},
		{"case insensitive", []string{"https://Editor.Swagger.io"}, "https://editor.swagger.io", "https://editor.swagger.io", true},
		{"wildcard", []string{"*"}, "https://anywhere.test", "*", false},
		{"subdomain pattern", []string{"https://*.example.com"}, "https://docs.example.com", "https://docs.example.com", true},
		{"pattern needs a subdomain", []string{"https://*.example.com"}, "https://.example.com", "", false},
		{"unknown origin", []string{"https://editor.swagger.io"}, "https://evil.test", "", false},
		{"no origin", []string{"*"}, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(CORSConfig{AllowedOrigins: tt.origins})

			req := httptest.NewRequest(http.MethodGet, "/swagger.json", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantVary {
				assert.Equal(t, "Origin", w.Header().Get("Vary"))
			} else {
				assert.Empty(t, w.Header().Get("Vary"))
			}
		})
	}

	t.Run("preflight", func(t *testing.T) {
		r := newRouter(CORSConfig{AllowedOrigins: []string{"https://editor.swagger.io"}, MaxAge: 600})

		req := httptest.NewRequest(http.MethodOptions, "/swagger.json", nil)
		req.Header.Set("Origin", "https://editor.swagger.io")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		req.Header.Set("Access-Control-Request-Headers", "X-Request-ID")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "GET, HEAD, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	})
}
