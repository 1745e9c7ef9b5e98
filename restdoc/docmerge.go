package restdoc

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/containerd/errdefs"
)

var knownMethods = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodPatch,
}

// DocError reports a malformed documentation record.
type DocError struct {
	Scope int
	Field string
	Msg   string
}

func (e *DocError) Error() string {
	return fmt.Sprintf("restdoc: invalid doc in scope %d: %s: %s", e.Scope, e.Field, e.Msg)
}

// Unwrap classifies the error as an invalid argument.
func (e *DocError) Unwrap() error {
	return errdefs.ErrInvalidArgument
}

// Merge computes the effective documentation of one HTTP method from scopes
// ordered from the most general to the most specific, typically namespace,
// route, resource and method records. Inside each scope the general fields
// apply first, then the sub-record for method.
//
// Scalars are replaced, descriptions are joined with newlines, params merge
// by name and responses by status code. Hidden is sticky: the first true
// wins. The result never carries Methods.
func Merge(method string, scopes ...*Doc) (Doc, error) {
	method = strings.ToUpper(method)

	m := merger{}
	for i, scope := range scopes {
		if scope == nil {
			continue
		}
		if err := validateDoc(i, scope, false); err != nil {
			return Doc{}, err
		}
		m.apply(scope)
		if sub := methodDoc(scope, method); sub != nil {
			m.apply(sub)
		}
	}

	return m.result(), nil
}

type merger struct {
	out          Doc
	descriptions []string
	hidden       bool
}

func (m *merger) apply(d *Doc) {
	if d.Description != "" {
		m.descriptions = append(m.descriptions, d.Description)
	}
	if d.ID != "" {
		m.out.ID = d.ID
	}
	if len(d.Params) > 0 {
		m.out.Params = mergeParams(m.out.Params, d.Params)
	}
	if len(d.Responses) > 0 {
		if m.out.Responses == nil {
			m.out.Responses = make(map[int]Response, len(d.Responses))
		}
		for code, resp := range d.Responses {
			m.out.Responses[code] = resp
		}
	}
	if d.Model != nil {
		m.out.Model = d.Model
	}
	if d.Body != nil {
		m.out.Body = d.Body
	}
	if d.Security != nil {
		m.out.Security = d.Security
	}
	if d.Parser != nil {
		m.out.Parser = d.Parser
	}
	if d.IsHidden() {
		m.hidden = true
	}
}

func (m *merger) result() Doc {
	out := m.out
	out.Description = strings.Join(m.descriptions, "\n")
	out.Hidden = Bool(m.hidden)
	return out
}

func methodDoc(d *Doc, method string) *Doc {
	for key, sub := range d.Methods {
		if strings.EqualFold(key, method) {
			return sub
		}
	}
	return nil
}

// mergeParams overlays next onto base. Params with a known name keep their
// position and take every non-zero field of the new entry; new names are
// appended in declaration order.
func mergeParams(base, next []Param) []Param {
	out := make([]Param, len(base), len(base)+len(next))
	copy(out, base)

	for _, p := range next {
		if i := indexParam(out, p.Name); i >= 0 {
			out[i] = overlayParam(out[i], p)
			continue
		}
		out = append(out, p)
	}
	return out
}

func indexParam(params []Param, name string) int {
	for i := range params {
		if params[i].Name == name {
			return i
		}
	}
	return -1
}

func overlayParam(dst, src Param) Param {
	if src.In != "" {
		dst.In = src.In
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.Type != "" {
		dst.Type = src.Type
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Required != nil {
		dst.Required = src.Required
	}
	if src.Default != nil {
		dst.Default = src.Default
	}
	if src.Enum != nil {
		dst.Enum = src.Enum
	}
	if src.Items != nil {
		dst.Items = src.Items
	}
	if src.CollectionFormat != "" {
		dst.CollectionFormat = src.CollectionFormat
	}
	return dst
}

func validateDoc(scope int, d *Doc, nested bool) error {
	for _, p := range d.Params {
		if p.Name == "" {
			return &DocError{Scope: scope, Field: "params", Msg: "parameter without name"}
		}
		switch p.In {
		case "", InPath, InQuery, InHeader, InFormData, InBody:
		default:
			return &DocError{Scope: scope, Field: "params", Msg: fmt.Sprintf("parameter %q has unknown location %q", p.Name, p.In)}
		}
	}

	for code := range d.Responses {
		if code != 0 && (code < 100 || code > 599) {
			return &DocError{Scope: scope, Field: "responses", Msg: fmt.Sprintf("invalid status code %d", code)}
		}
	}

	if d.Body != nil && d.Body.Model == nil {
		return &DocError{Scope: scope, Field: "body", Msg: "body without model"}
	}

	for _, req := range d.Security {
		for name := range req {
			if name == "" {
				return &DocError{Scope: scope, Field: "security", Msg: "requirement with empty scheme name"}
			}
		}
	}

	if len(d.Methods) > 0 && nested {
		return &DocError{Scope: scope, Field: "methods", Msg: "method sub-records cannot be nested"}
	}

	seen := make(map[string]bool, len(d.Methods))
	for key, sub := range d.Methods {
		method := strings.ToUpper(key)
		if !slices.Contains(knownMethods, method) {
			return &DocError{Scope: scope, Field: "methods", Msg: fmt.Sprintf("unknown HTTP method %q", key)}
		}
		if seen[method] {
			return &DocError{Scope: scope, Field: "methods", Msg: fmt.Sprintf("duplicate HTTP method %q", key)}
		}
		seen[method] = true
		if sub == nil {
			continue
		}
		if err := validateDoc(scope, sub, true); err != nil {
			return err
		}
	}

	return nil
}
