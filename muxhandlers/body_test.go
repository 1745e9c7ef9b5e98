package muxhandlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBodyMiddleware(t *testing.T) {
	t.Run("negative limit", func(t *testing.T) {
		_, err := RequestBodyMiddleware(RequestBodyConfig{MaxBytes: -1})
		require.Error(t, err)
		assert.True(t, errdefs.IsInvalidArgument(err))
	})

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		_, _ = w.Write(data)
	})

	mw, err := RequestBodyMiddleware(RequestBodyConfig{
		AllowedTypes: []string{"Application/JSON"},
		MaxBytes:     16,
	})
	require.NoError(t, err)
	h := mw(echo)

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantCode    int
	}{
		{"allowed type", http.MethodPost, "application/json", `{"a":1}`, http.StatusOK},
		{"type with parameters", http.MethodPut, "application/json; charset=utf-8", `{}`, http.StatusOK},
		{"wrong type", http.MethodPost, "text/plain", "hello", http.StatusUnsupportedMediaType},
		{"missing type", http.MethodPatch, "", "{}", http.StatusUnsupportedMediaType},
		{"unchecked method", http.MethodGet, "", "", http.StatusOK},
		{"too large", http.MethodPost, "application/json", `{"task":"far too long"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}

	t.Run("custom methods", func(t *testing.T) {
		mw, err := RequestBodyMiddleware(RequestBodyConfig{
			AllowedTypes: []string{"application/json"},
			Methods:      []string{http.MethodDelete},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		w := httptest.NewRecorder()
		mw(echo).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
		w = httptest.NewRecorder()
		mw(echo).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
