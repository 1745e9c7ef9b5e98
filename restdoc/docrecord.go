package restdoc

import (
	"maps"
	"slices"

	"github.com/vitalvas/swagdoc/fields"
	"github.com/vitalvas/swagdoc/reqparse"
	"github.com/vitalvas/swagdoc/swagger"
)

// Parameter locations.
//
// See: https://swagger.io/specification/v2/#parameter-object
const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InFormData = "formData"
	InBody     = "body"
)

// Doc is a documentation record attached to a namespace, a route, a
// resource, or a single method. Records are merged from the most general
// to the most specific scope; see Merge.
type Doc struct {
	// Description lines from every scope are concatenated.
	Description string

	// ID overrides the generated operationId.
	ID string

	// Params are merged by name, field by field.
	Params []Param

	// Responses are merged by status code. Code 0 documents the
	// "default" response.
	Responses map[int]Response

	// Model documents the payload of the implicit 200 response.
	Model fields.Source

	// Body documents the request payload.
	Body *Body

	// Security overrides the root security requirements. Nil inherits,
	// an empty value removes them.
	Security swagger.SecurityRequirements

	// Parser contributes query, form, file and header parameters.
	Parser *reqparse.Parser

	// Hidden removes the operation from the document. Once any scope
	// sets it to true, no later scope can clear it.
	Hidden *bool

	// Methods holds per-method sub-records keyed by HTTP method. They are
	// applied right after the general fields of the same scope.
	Methods map[string]*Doc
}

// IsHidden reports whether the record hides the operation.
func (d Doc) IsHidden() bool {
	return d.Hidden != nil && *d.Hidden
}

// Param documents a single operation parameter. Zero fields leave the value
// inherited from a more general scope, or from the route and parser, intact.
type Param struct {
	Name             string
	In               string
	Description      string
	Type             string
	Format           string
	Required         *bool
	Default          any
	Enum             []any
	Items            *swagger.Items
	CollectionFormat string
}

// Describe is the shorthand for a parameter that only carries a description.
func Describe(name, text string) Param {
	return Param{Name: name, Description: text}
}

// Response documents a single status code.
type Response struct {
	Description string
	Model       fields.Source
}

// Body documents the request payload, emitted as the "payload" parameter.
type Body struct {
	Model       fields.Source
	Description string
}

// Bool returns a pointer to v, for the tri-state fields of Doc and Param.
func Bool(v bool) *bool {
	return &v
}

// Secure returns an explicit list of alternative security requirements.
// Called without arguments it declares the operation public.
func Secure(reqs ...swagger.SecurityRequirement) swagger.SecurityRequirements {
	out := make(swagger.SecurityRequirements, 0, len(reqs))
	return append(out, reqs...)
}

// Public removes inherited security requirements.
func Public() swagger.SecurityRequirements {
	return swagger.SecurityRequirements{}
}

// clone returns a copy of d that shares no slice, map, pointer or parser
// with the caller, so later changes to the caller's values do not reach
// registered records.
func (d Doc) clone() *Doc {
	c := d
	if d.Params != nil {
		c.Params = make([]Param, len(d.Params))
		for i, p := range d.Params {
			p.Enum = slices.Clone(p.Enum)
			if p.Required != nil {
				p.Required = Bool(*p.Required)
			}
			if p.Items != nil {
				items := *p.Items
				p.Items = &items
			}
			c.Params[i] = p
		}
	}
	c.Responses = maps.Clone(d.Responses)
	if d.Body != nil {
		body := *d.Body
		c.Body = &body
	}
	c.Security = d.Security.Clone()
	if d.Parser != nil {
		c.Parser = d.Parser.Copy()
	}
	if d.Hidden != nil {
		c.Hidden = Bool(*d.Hidden)
	}
	if d.Methods != nil {
		c.Methods = make(map[string]*Doc, len(d.Methods))
		for method, sub := range d.Methods {
			if sub != nil {
				sub = sub.clone()
			}
			c.Methods[method] = sub
		}
	}
	return &c
}
