package restdoc

import (
	"fmt"
	"net/http"

	"github.com/vitalvas/swagdoc/swagger"
)

// builder carries the state of a single document build.
type builder struct {
	cfg    *Config
	models *schemaResolver
}

// resourceRoute is one URL template of a resource, converted to a Swagger
// path with its path parameters.
type resourceRoute struct {
	resource *Resource
	path     string
	params   []*swagger.Parameter
}

// Build assembles the document from the current registrations, bypassing
// the cache. Paths follow namespace, resource and URL registration order.
func (a *API) Build() (*swagger.Document, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.build()
}

// build assembles the document. Callers hold a.mu for reading.
func (a *API) build() (*swagger.Document, error) {
	b := &builder{cfg: &a.cfg, models: newSchemaResolver(a.models)}

	paths := swagger.NewPaths()
	visible := make(map[*Namespace]bool, len(a.namespaces))

	for _, ns := range a.namespaces {
		for _, res := range ns.resources {
			for _, u := range res.urls {
				path, params := parsePath(joinPath(ns.path, u))
				rt := &resourceRoute{resource: res, path: path, params: params}

				for _, m := range res.methods {
					op, err := b.operation(rt, m)
					if err != nil {
						return nil, fmt.Errorf("%s %s: %w", m.method, path, err)
					}
					if op == nil {
						continue
					}

					item, ok := paths.Get(path)
					if !ok {
						item = &swagger.PathItem{}
						paths.Set(path, item)
					}
					setOperation(item, m.method, op)
					visible[ns] = true
				}
			}
		}
	}

	doc := &swagger.Document{
		Swagger:     swagger.Version,
		BasePath:    a.cfg.basePath(),
		Paths:       paths,
		Info:        a.cfg.info(),
		Produces:    a.produces(),
		Consumes:    []string{MIMEJSON},
		Security:    a.cfg.Security.Clone(),
		Tags:        a.tags(visible),
		Definitions: b.models.definitions(),
	}
	doc.SecurityDefinitions = swagger.CloneSecuritySchemes(a.cfg.Authorizations)

	return doc, nil
}

// tags lists the default namespace first, then every namespace with at
// least one visible operation.
func (a *API) tags(visible map[*Namespace]bool) []swagger.Tag {
	var tags []swagger.Tag
	for _, ns := range a.namespaces {
		if ns != a.defaultNS && !visible[ns] {
			continue
		}
		tags = append(tags, swagger.Tag{Name: ns.name, Description: ns.description})
	}
	return tags
}

func setOperation(item *swagger.PathItem, method string, op *swagger.Operation) {
	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPost:
		item.Post = op
	case http.MethodDelete:
		item.Delete = op
	case http.MethodOptions:
		item.Options = op
	case http.MethodHead:
		item.Head = op
	case http.MethodPatch:
		item.Patch = op
	}
}
