// Package muxhandlers provides HTTP middleware for gorilla/mux routers.
//
// # Request ID Middleware
//
// RequestIDMiddleware tags every request with an X-Request-ID, generating a
// UUID v4 unless a trusted incoming value is present. Handlers read it with
// RequestIDFromContext.
//
//	r.Use(muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{}))
//
// # Recovery Middleware
//
// RecoveryMiddleware turns handler panics into a 500 response and logs them
// with logrus.
//
// # CORS Middleware
//
// CORSMiddleware lets browsers on other origins read GET and HEAD responses,
// such as a Swagger UI hosted elsewhere loading swagger.json. Origins are
// exact values, "*" or single-wildcard subdomain patterns.
//
//	mw, err := muxhandlers.CORSMiddleware(muxhandlers.CORSConfig{
//	    AllowedOrigins: []string{"https://*.example.com"},
//	    MaxAge:         600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Use(mw)
//
// # Compression Middleware
//
// CompressionMiddleware gzips responses through klauspost/compress gzhttp.
//
// # Basic Auth Middleware
//
// BasicAuthMiddleware implements HTTP Basic Authentication per RFC 7617.
// Credentials are validated by a callback or a static map compared in
// constant time.
//
//	mw, err := muxhandlers.BasicAuthMiddleware(muxhandlers.BasicAuthConfig{
//	    Realm: "My App",
//	    Credentials: map[string]string{
//	        "admin": "secret",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Use(mw)
//
// # Request Body Middleware
//
// RequestBodyMiddleware rejects payloads with a disallowed Content-Type and
// caps their size.
package muxhandlers
