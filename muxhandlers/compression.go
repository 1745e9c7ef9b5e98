package muxhandlers

import (
	"compress/gzip"
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
)

// CompressionConfig configures CompressionMiddleware.
type CompressionConfig struct {
	// Level is the gzip level. Zero selects gzip.DefaultCompression.
	Level int

	// MinLength is the smallest body, in bytes, worth compressing. Zero
	// keeps the gzhttp default.
	MinLength int
}

// CompressionMiddleware gzips responses for clients that accept it. Small
// bodies and already encoded responses are sent unchanged.
func CompressionMiddleware(cfg CompressionConfig) (mux.MiddlewareFunc, error) {
	level := cfg.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		return nil, fmt.Errorf("compression: invalid level %d: %w", cfg.Level, errdefs.ErrInvalidArgument)
	}

	minSize := gzhttp.DefaultMinSize
	if cfg.MinLength > 0 {
		minSize = cfg.MinLength
	}

	wrap, err := gzhttp.NewWrapper(gzhttp.CompressionLevel(level), gzhttp.MinSize(minSize))
	if err != nil {
		return nil, fmt.Errorf("compression: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return wrap(next)
	}, nil
}
