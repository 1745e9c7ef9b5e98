package restdoc

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/swagdoc/muxhandlers"
	"github.com/vitalvas/swagdoc/swagger"
)

// builtSpec is an immutable, published build result.
type builtSpec struct {
	generation uint64
	doc        *swagger.Document
	json       []byte
	yaml       []byte
}

// Spec returns the document, building it on first use and after every
// registration change. Concurrent callers share a single build. The
// returned document must not be modified.
func (a *API) Spec() (*swagger.Document, error) {
	s, err := a.cached()
	if err != nil {
		return nil, err
	}
	return s.doc, nil
}

// WriteSpec writes the document as "json" or "yaml".
func (a *API) WriteSpec(w io.Writer, format string) error {
	s, err := a.cached()
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "json", "":
		_, err = w.Write(s.json)
	case "yaml", "yml":
		_, err = w.Write(s.yaml)
	default:
		return fmt.Errorf("restdoc: unknown format %q: %w", format, errdefs.ErrInvalidArgument)
	}
	return err
}

func (a *API) cached() (*builtSpec, error) {
	gen := a.generation.Load()
	if s := a.cache.Load(); s != nil && s.generation == gen {
		return s, nil
	}

	v, err, _ := a.group.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		return a.rebuild()
	})
	if err != nil {
		return nil, err
	}
	return v.(*builtSpec), nil
}

func (a *API) rebuild() (*builtSpec, error) {
	a.mu.RLock()
	gen := a.generation.Load()
	doc, err := a.build()
	a.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	s := &builtSpec{generation: gen, doc: doc}
	if s.json, err = json.MarshalIndent(doc, "", "  "); err != nil {
		return nil, fmt.Errorf("encode swagger json: %w", err)
	}
	if s.yaml, err = yaml.Marshal(doc); err != nil {
		return nil, fmt.Errorf("encode swagger yaml: %w", err)
	}

	for {
		current := a.cache.Load()
		if current != nil && current.generation >= gen {
			break
		}
		if a.cache.CompareAndSwap(current, s) {
			break
		}
	}

	a.log.WithFields(logrus.Fields{
		"generation":  gen,
		"paths":       doc.Paths.Len(),
		"definitions": definitionsLen(doc),
	}).Debug("built swagger document")

	return s, nil
}

func definitionsLen(doc *swagger.Document) int {
	if doc.Definitions == nil {
		return 0
	}
	return doc.Definitions.Len()
}

func (a *API) serveJSON(w http.ResponseWriter, r *http.Request) {
	a.serveSpec(w, r, MIMEJSON, func(s *builtSpec) []byte { return s.json })
}

func (a *API) serveYAML(w http.ResponseWriter, r *http.Request) {
	a.serveSpec(w, r, MIMEYAML, func(s *builtSpec) []byte { return s.yaml })
}

func (a *API) serveSpec(w http.ResponseWriter, r *http.Request, contentType string, body func(*builtSpec) []byte) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Allow", "GET, HEAD, OPTIONS")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s, err := a.cached()
	if err != nil {
		a.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body(s))
	}
}

// errorBody is the payload of failed document requests.
type errorBody struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// fail logs a build error and answers 500 with a JSON error body.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	id := muxhandlers.RequestIDFromContext(r.Context())

	a.log.WithError(err).WithFields(logrus.Fields{
		"request_id": id,
		"kind":       errorKind(err),
	}).Error("failed to build swagger document")

	JSON(w, http.StatusInternalServerError, errorBody{
		Status:    http.StatusInternalServerError,
		Message:   err.Error(),
		RequestID: id,
	})
}

// recovered answers panics raised by mounted handlers.
func (a *API) recovered(w http.ResponseWriter, r *http.Request, _ any) {
	JSON(w, http.StatusInternalServerError, errorBody{
		Status:    http.StatusInternalServerError,
		Message:   http.StatusText(http.StatusInternalServerError),
		RequestID: muxhandlers.RequestIDFromContext(r.Context()),
	})
}

func errorKind(err error) string {
	switch {
	case errdefs.IsNotFound(err):
		return "not_found"
	case errdefs.IsInvalidArgument(err):
		return "invalid_argument"
	case errdefs.IsConflict(err):
		return "conflict"
	default:
		return "unknown"
	}
}

// registerDocs serves the Swagger UI page at Config.DocPath.
func (a *API) registerDocs(r *mux.Router) {
	specURL := a.cfg.prefix() + "/swagger.json"
	page := []byte(swaggerUIPage(a.cfg.title(), specURL, a.cfg.SwaggerUI))

	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	}

	path := "/" + strings.Trim(a.cfg.DocPath, "/")
	r.HandleFunc(path, handler).Methods(http.MethodGet).Name("doc")
	if path != "/" {
		r.HandleFunc(path+"/", handler).Methods(http.MethodGet)
	}
}

func swaggerUIPage(title, specURL string, config map[string]any) string {
	var extra strings.Builder
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, err := json.Marshal(config[k])
		if err != nil {
			continue
		}
		fmt.Fprintf(&extra, ", %q: %s", k, v)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@3/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@3/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
</script>
</body>
</html>`, html.EscapeString(title), specURL, extra.String())
}
