package restdoc

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/containerd/errdefs"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vitalvas/swagdoc/fields"
	"github.com/vitalvas/swagdoc/muxhandlers"
	"github.com/vitalvas/swagdoc/reqparse"
)

// API is a registry of namespaces, resources and models that documents
// itself as a Swagger 2.0 document. It is safe for concurrent use; every
// registration invalidates the cached document.
type API struct {
	cfg Config
	log logrus.FieldLogger

	mu         sync.RWMutex
	namespaces []*Namespace
	defaultNS  *Namespace
	models     *modelRegistry
	reprs      []representation
	router     *mux.Router

	generation atomic.Uint64
	cache      atomic.Pointer[builtSpec]
	group      singleflight.Group
}

// New creates an API with its default namespace.
func New(cfg Config) *API {
	a := &API{
		cfg:    cfg,
		log:    cfg.logger(),
		models: newModelRegistry(),
		reprs:  []representation{{mime: MIMEJSON, write: JSON}},
	}
	a.defaultNS = &Namespace{
		api:         a,
		name:        cfg.defaultNamespace(),
		description: cfg.defaultLabel(),
		path:        "/",
	}
	a.namespaces = []*Namespace{a.defaultNS}
	return a
}

// update applies a registration change and invalidates the cached document.
func (a *API) update(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
	a.generation.Add(1)
}

// DefaultNamespace returns the namespace used by API.Resource.
func (a *API) DefaultNamespace() *Namespace {
	return a.defaultNS
}

// NamespaceOption configures a namespace.
type NamespaceOption func(*Namespace)

// WithPath mounts the namespace under path instead of "/{name}".
func WithPath(path string) NamespaceOption {
	return func(ns *Namespace) { ns.path = path }
}

// WithDoc attaches a documentation record applied to every operation of
// the namespace.
func WithDoc(d Doc) NamespaceOption {
	return func(ns *Namespace) { ns.doc = d.clone() }
}

// Namespace returns the namespace called name, creating it when needed.
// A non-empty description replaces the current one, which also allows
// relabelling the default namespace.
func (a *API) Namespace(name, description string, opts ...NamespaceOption) *Namespace {
	var ns *Namespace
	a.update(func() {
		for _, existing := range a.namespaces {
			if existing.name == name {
				ns = existing
				break
			}
		}
		if ns == nil {
			ns = &Namespace{api: a, name: name, path: "/" + name}
			a.namespaces = append(a.namespaces, ns)
		}
		if description != "" {
			ns.description = description
		}
		for _, opt := range opts {
			opt(ns)
		}
	})
	return ns
}

// Resource registers a resource on the default namespace.
func (a *API) Resource(name string, urls ...string) *Resource {
	return a.defaultNS.Resource(name, urls...)
}

// Model registers a model built from props under name and returns it.
// Registering a name again replaces the model but keeps its position in
// the definitions.
func (a *API) Model(name string, props ...fields.Property) *fields.Model {
	m := fields.NewModel(name, props...)
	a.RegisterModel(m)
	return m
}

// RegisterModel registers an existing model under its own name.
func (a *API) RegisterModel(m *fields.Model) {
	a.update(func() {
		a.models.register(m)
	})
}

// URL builds the URL of a mounted resource endpoint. Pairs are route
// variable names and values, as for mux.Route.URL.
func (a *API) URL(endpoint string, pairs ...string) (*url.URL, error) {
	a.mu.RLock()
	router := a.router
	a.mu.RUnlock()

	if router == nil {
		return nil, fmt.Errorf("restdoc: API is not mounted: %w", errdefs.ErrFailedPrecondition)
	}
	route := router.Get(endpoint)
	if route == nil {
		return nil, fmt.Errorf("restdoc: endpoint %q: %w", endpoint, errdefs.ErrNotFound)
	}
	return route.URL(pairs...)
}

// Init mounts the document endpoints and every resource on r under
// Config.Prefix. Resources and methods registered later are mounted as
// they are added. Init panics when called twice or when CORSOrigins is
// invalid.
//
//	/swagger.json  - the document as JSON
//	/swagger.yaml  - the document as YAML
//	DocPath        - Swagger UI, when configured
func (a *API) Init(r *mux.Router) {
	a.update(func() {
		if a.router != nil {
			panic("restdoc: API already initialized")
		}

		sub := r
		if prefix := a.cfg.prefix(); prefix != "" {
			sub = r.PathPrefix(prefix).Subrouter()
		}
		sub.Use(
			muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{TrustIncoming: true}),
			muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{
				Logger:    a.log,
				ErrorFunc: a.recovered,
			}),
		)

		wrap, err := a.specMiddleware()
		if err != nil {
			panic(fmt.Sprintf("restdoc: %v", err))
		}
		methods := []string{http.MethodGet, http.MethodHead}
		if len(a.cfg.CORSOrigins) > 0 {
			methods = append(methods, http.MethodOptions)
		}
		sub.Handle("/swagger.json", wrap(http.HandlerFunc(a.serveJSON))).Methods(methods...).Name("specs")
		sub.Handle("/swagger.yaml", wrap(http.HandlerFunc(a.serveYAML))).Methods(methods...).Name("specs_yaml")
		if a.cfg.DocPath != "" {
			a.registerDocs(sub)
		}
		a.router = sub

		for _, ns := range a.namespaces {
			for _, res := range ns.resources {
				for _, m := range res.methods {
					a.mount(m)
				}
			}
		}
	})
}

// specMiddleware compresses the documents and, when origins are
// configured, answers cross-origin requests for them.
func (a *API) specMiddleware() (mux.MiddlewareFunc, error) {
	compress, err := muxhandlers.CompressionMiddleware(muxhandlers.CompressionConfig{})
	if err != nil {
		return nil, err
	}
	if len(a.cfg.CORSOrigins) == 0 {
		return compress, nil
	}

	cors, err := muxhandlers.CORSMiddleware(muxhandlers.CORSConfig{
		AllowedOrigins: a.cfg.CORSOrigins,
		MaxAge:         600,
	})
	if err != nil {
		return nil, err
	}
	return func(next http.Handler) http.Handler {
		return cors(compress(next))
	}, nil
}

// mount registers the routes of m on the router. Callers hold a.mu.
func (a *API) mount(m *Method) {
	if a.router == nil || m.mounted || m.handler == nil {
		return
	}
	m.mounted = true

	res := m.res
	for i, u := range res.urls {
		route := a.router.Handle(routerPath(joinPath(res.ns.path, u)), m).Methods(m.method)
		if i == 0 && !res.named {
			route.Name(res.endpointName())
			res.named = true
		}
	}
}

// Namespace groups resources under a common path and tag.
type Namespace struct {
	api         *API
	name        string
	description string
	path        string
	doc         *Doc
	resources   []*Resource
}

// Name returns the namespace name, used as the operation tag.
func (ns *Namespace) Name() string {
	return ns.name
}

// Resource registers a resource answering on one or more URL templates
// relative to the namespace path. Templates use {name} or
// {name:converter} variables. Resource panics without a name or a URL.
func (ns *Namespace) Resource(name string, urls ...string) *Resource {
	if name == "" || len(urls) == 0 {
		panic("restdoc: resource needs a name and at least one URL")
	}

	res := &Resource{ns: ns, name: name, urls: slices.Clone(urls)}
	ns.api.update(func() {
		ns.resources = append(ns.resources, res)
	})
	return res
}

// Resource is a set of HTTP methods sharing URLs and documentation.
type Resource struct {
	ns       *Namespace
	name     string
	endpoint string
	urls     []string
	routeDoc *Doc
	doc      *Doc
	hidden   bool
	named    bool
	methods  []*Method
}

// Name returns the resource name, used for default operation ids.
func (res *Resource) Name() string {
	return res.name
}

// Doc sets the resource-level documentation record, applied to every method.
func (res *Resource) Doc(d Doc) *Resource {
	res.ns.api.update(func() { res.doc = d.clone() })
	return res
}

// RouteDoc sets the documentation record given at route registration. It
// applies before the resource record.
func (res *Resource) RouteDoc(d Doc) *Resource {
	res.ns.api.update(func() { res.routeDoc = d.clone() })
	return res
}

// Hide removes every method of the resource from the document. The routes
// stay mounted.
func (res *Resource) Hide() *Resource {
	res.ns.api.update(func() { res.hidden = true })
	return res
}

// Endpoint names the mounted route, for API.URL.
func (res *Resource) Endpoint(name string) *Resource {
	res.ns.api.update(func() { res.endpoint = name })
	return res
}

func (res *Resource) endpointName() string {
	if res.endpoint != "" {
		return res.endpoint
	}
	if res.ns == res.ns.api.defaultNS {
		return snakeCase(res.name)
	}
	return res.ns.name + "_" + snakeCase(res.name)
}

// Handle registers h for method. Registering a method again replaces the
// handler and keeps its documentation. A nil handler documents the method
// without mounting it. Handle panics on methods Swagger 2.0 cannot describe.
func (res *Resource) Handle(method string, h http.Handler) *Method {
	method = strings.ToUpper(method)
	if !slices.Contains(knownMethods, method) {
		panic(fmt.Sprintf("restdoc: unsupported HTTP method %q", method))
	}

	var m *Method
	res.ns.api.update(func() {
		for _, existing := range res.methods {
			if existing.method == method {
				m = existing
				break
			}
		}
		if m == nil {
			m = &Method{res: res, method: method}
			res.methods = append(res.methods, m)
		}
		m.handler = h
		res.ns.api.mount(m)
	})
	return m
}

// Get registers the GET handler.
func (res *Resource) Get(h http.HandlerFunc) *Method { return res.Handle(http.MethodGet, handlerOf(h)) }

// Post registers the POST handler.
func (res *Resource) Post(h http.HandlerFunc) *Method { return res.Handle(http.MethodPost, handlerOf(h)) }

// Put registers the PUT handler.
func (res *Resource) Put(h http.HandlerFunc) *Method { return res.Handle(http.MethodPut, handlerOf(h)) }

// Patch registers the PATCH handler.
func (res *Resource) Patch(h http.HandlerFunc) *Method { return res.Handle(http.MethodPatch, handlerOf(h)) }

// Delete registers the DELETE handler.
func (res *Resource) Delete(h http.HandlerFunc) *Method { return res.Handle(http.MethodDelete, handlerOf(h)) }

// Head registers the HEAD handler.
func (res *Resource) Head(h http.HandlerFunc) *Method { return res.Handle(http.MethodHead, handlerOf(h)) }

// Options registers the OPTIONS handler.
func (res *Resource) Options(h http.HandlerFunc) *Method { return res.Handle(http.MethodOptions, handlerOf(h)) }

func handlerOf(h http.HandlerFunc) http.Handler {
	if h == nil {
		return nil
	}
	return h
}

// Method is one HTTP method of a resource.
type Method struct {
	res     *Resource
	method  string
	handler http.Handler
	comment string
	doc     *Doc
	hidden  bool
	marshal *marshalSpec
	mounted bool
}

// ServeHTTP dispatches to the current handler.
func (m *Method) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api := m.res.ns.api
	api.mu.RLock()
	h := m.handler
	api.mu.RUnlock()

	if h == nil {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.ServeHTTP(w, r)
}

func (m *Method) update(fn func()) *Method {
	m.res.ns.api.update(fn)
	return m
}

func (m *Method) ensureDoc() *Doc {
	if m.doc == nil {
		m.doc = &Doc{}
	}
	return m.doc
}

// Doc sets the method documentation record, replacing any record built by
// Expect or Response.
func (m *Method) Doc(d Doc) *Method {
	return m.update(func() { m.doc = d.clone() })
}

// Comment sets the handler comment. Its first sentence becomes the
// operation summary and the remaining text is appended to the description.
func (m *Method) Comment(text string) *Method {
	return m.update(func() { m.comment = text })
}

// Hide removes the method from the document.
func (m *Method) Hide() *Method {
	return m.update(func() { m.hidden = true })
}

// Expect documents the request payload.
func (m *Method) Expect(src fields.Source, description ...string) *Method {
	return m.update(func() {
		m.ensureDoc().Body = &Body{Model: src, Description: strings.Join(description, " ")}
	})
}

// Parser documents the arguments p reads from the request. A copy of p is
// stored: later changes to p need another call to reach the document.
func (m *Method) Parser(p *reqparse.Parser) *Method {
	if p != nil {
		p = p.Copy()
	}
	return m.update(func() { m.ensureDoc().Parser = p })
}

// Response documents a status code, with an optional model.
func (m *Method) Response(code int, description string, src fields.Source) *Method {
	return m.update(func() {
		d := m.ensureDoc()
		if d.Responses == nil {
			d.Responses = make(map[int]Response)
		}
		d.Responses[code] = Response{Description: description, Model: src}
	})
}

// MarshalWith documents the success response as src under code, 200 when
// code is zero.
func (m *Method) MarshalWith(src fields.Source, code int) *Method {
	if code == 0 {
		code = http.StatusOK
	}
	return m.update(func() { m.marshal = &marshalSpec{source: src, code: code} })
}

// MarshalListWith documents the success response as a list of src.
func (m *Method) MarshalListWith(src fields.Source, code int) *Method {
	return m.MarshalWith(fields.ListOf(src), code)
}
