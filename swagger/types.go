package swagger

import (
	"maps"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Version is the value of the root "swagger" field.
const Version = "2.0"

// Paths holds path items keyed by path template, in registration order.
//
// See: https://swagger.io/specification/v2/#paths-object
type Paths = orderedmap.OrderedMap[string, *PathItem]

// Definitions holds named schemas, in registration order.
//
// See: https://swagger.io/specification/v2/#definitions-object
type Definitions = orderedmap.OrderedMap[string, *Schema]

// Properties holds the properties of an object schema, in declaration order.
//
// See: https://swagger.io/specification/v2/#schema-object
type Properties = orderedmap.OrderedMap[string, *Schema]

// NewPaths returns an empty Paths map.
func NewPaths() *Paths {
	return orderedmap.New[string, *PathItem]()
}

// NewDefinitions returns an empty Definitions map.
func NewDefinitions() *Definitions {
	return orderedmap.New[string, *Schema]()
}

// NewProperties returns an empty Properties map.
func NewProperties() *Properties {
	return orderedmap.New[string, *Schema]()
}

// Document represents the root of a Swagger 2.0 document.
//
// See: https://swagger.io/specification/v2/#swagger-object
type Document struct {
	Swagger             string                     `json:"swagger" yaml:"swagger"`
	BasePath            string                     `json:"basePath" yaml:"basePath"`
	Paths               *Paths                     `json:"paths" yaml:"paths"`
	Info                Info                       `json:"info" yaml:"info"`
	Produces            []string                   `json:"produces,omitempty" yaml:"produces,omitempty"`
	Consumes            []string                   `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme `json:"securityDefinitions,omitempty" yaml:"securityDefinitions,omitempty"`
	Security            SecurityRequirements       `json:"security,omitzero" yaml:"security,omitempty"`
	Tags                []Tag                      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Definitions         *Definitions               `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	ExternalDocs        *ExternalDocs              `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://swagger.io/specification/v2/#info-object
type Info struct {
	Title          string   `json:"title" yaml:"title"`
	Version        string   `json:"version" yaml:"version"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License        *License `json:"license,omitempty" yaml:"license,omitempty"`
}

// Contact represents contact information for the API.
//
// See: https://swagger.io/specification/v2/#contact-object
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License represents license information for the API.
//
// See: https://swagger.io/specification/v2/#license-object
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// PathItem describes the operations available on a single path.
//
// See: https://swagger.io/specification/v2/#path-item-object
type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// Operation describes a single API operation on a path.
//
// See: https://swagger.io/specification/v2/#operation-object
type Operation struct {
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string               `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Consumes    []string             `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces    []string             `json:"produces,omitempty" yaml:"produces,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]*Response `json:"responses" yaml:"responses"`
	Deprecated  bool                 `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Security    SecurityRequirements `json:"security,omitzero" yaml:"security,omitempty"`
}

// Parameter describes a single operation parameter.
// The "in" field determines the parameter location: "path", "query",
// "header", "formData", or "body". Body parameters carry a schema, all
// other locations describe their value with type/format.
//
// See: https://swagger.io/specification/v2/#parameter-object
type Parameter struct {
	Name             string  `json:"name" yaml:"name"`
	In               string  `json:"in" yaml:"in"`
	Description      string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required         bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema           *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Type             string  `json:"type,omitempty" yaml:"type,omitempty"`
	Format           string  `json:"format,omitempty" yaml:"format,omitempty"`
	Items            *Items  `json:"items,omitempty" yaml:"items,omitempty"`
	CollectionFormat string  `json:"collectionFormat,omitempty" yaml:"collectionFormat,omitempty"`
	Default          any     `json:"default,omitempty" yaml:"default,omitempty"`
	Enum             []any   `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// Items describes the element type of a non-body array parameter.
//
// See: https://swagger.io/specification/v2/#items-object
type Items struct {
	Type             string `json:"type" yaml:"type"`
	Format           string `json:"format,omitempty" yaml:"format,omitempty"`
	Items            *Items `json:"items,omitempty" yaml:"items,omitempty"`
	CollectionFormat string `json:"collectionFormat,omitempty" yaml:"collectionFormat,omitempty"`
	Enum             []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// Response describes a single response from an API operation.
// The description field is REQUIRED.
//
// See: https://swagger.io/specification/v2/#response-object
type Response struct {
	Description string  `json:"description" yaml:"description"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Schema represents a Swagger 2.0 schema object, a subset of JSON Schema
// Draft 4 extended with readOnly, discriminator and example.
//
// See: https://swagger.io/specification/v2/#schema-object
type Schema struct {
	Ref         string      `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string      `json:"format,omitempty" yaml:"format,omitempty"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any         `json:"default,omitempty" yaml:"default,omitempty"`
	Example     any         `json:"example,omitempty" yaml:"example,omitempty"`
	ReadOnly    bool        `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Enum        []any       `json:"enum,omitempty" yaml:"enum,omitempty"`
	Required    []string    `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *Schema     `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Tag adds metadata to a single tag used by Operation Objects.
//
// See: https://swagger.io/specification/v2/#tag-object
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// ExternalDocs allows referencing external documentation.
//
// See: https://swagger.io/specification/v2/#external-documentation-object
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

// SecurityScheme defines a security scheme used by API operations.
// The "type" field determines the scheme: "basic", "apiKey", or "oauth2".
//
// See: https://swagger.io/specification/v2/#security-scheme-object
type SecurityScheme struct {
	Type             string            `json:"type" yaml:"type" toml:"type"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
	Name             string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name"`
	In               string            `json:"in,omitempty" yaml:"in,omitempty" toml:"in"`
	Flow             string            `json:"flow,omitempty" yaml:"flow,omitempty" toml:"flow"`
	AuthorizationURL string            `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty" toml:"authorizationUrl"`
	TokenURL         string            `json:"tokenUrl,omitempty" yaml:"tokenUrl,omitempty" toml:"tokenUrl"`
	Scopes           map[string]string `json:"scopes,omitempty" yaml:"scopes,omitempty" toml:"scopes"`
}

// CloneSecuritySchemes returns a deep copy of schemes, nil when empty.
func CloneSecuritySchemes(schemes map[string]*SecurityScheme) map[string]*SecurityScheme {
	if len(schemes) == 0 {
		return nil
	}
	out := make(map[string]*SecurityScheme, len(schemes))
	for name, s := range schemes {
		if s == nil {
			out[name] = nil
			continue
		}
		c := *s
		c.Scopes = maps.Clone(s.Scopes)
		out[name] = &c
	}
	return out
}
