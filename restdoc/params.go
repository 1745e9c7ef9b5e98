package restdoc

import (
	"github.com/vitalvas/swagdoc/fields"
	"github.com/vitalvas/swagdoc/reqparse"
	"github.com/vitalvas/swagdoc/swagger"
)

// Request content types implied by form parameters.
const (
	MIMEFormURLEncoded = "application/x-www-form-urlencoded"
	MIMEMultipartForm  = "multipart/form-data"
)

// payloadParam is the name of the body parameter generated from Doc.Body.
const payloadParam = "payload"

// resolveParams builds the parameter list of one operation: path variables
// in template order, then parser arguments, then explicit params (updating
// existing entries in place or appending), then the body payload. It also
// returns the consumes list implied by form parameters, or nil.
func resolveParams(pathParams []*swagger.Parameter, doc Doc, models *schemaResolver) ([]*swagger.Parameter, []string, error) {
	params := make([]*swagger.Parameter, 0, len(pathParams))
	for _, p := range pathParams {
		cp := *p
		params = append(params, &cp)
	}

	for _, arg := range doc.Parser.Args() {
		p := parserParam(arg)
		if i := findParam(params, p.Name, p.In); i >= 0 {
			params[i] = p
			continue
		}
		params = append(params, p)
	}

	for _, ep := range doc.Params {
		if i := findParam(params, ep.Name, ep.In); i >= 0 {
			applyParam(params[i], ep)
			continue
		}
		params = append(params, newParam(ep))
	}

	if doc.Body != nil {
		schema, err := models.source(doc.Body.Model)
		if err != nil {
			return nil, nil, err
		}
		params = append(params, &swagger.Parameter{
			Name:        payloadParam,
			In:          InBody,
			Description: doc.Body.Description,
			Required:    true,
			Schema:      schema,
		})
	}

	if len(params) == 0 {
		return nil, nil, nil
	}
	return params, formConsumes(params), nil
}

// findParam locates a parameter by name and, when given, location.
func findParam(params []*swagger.Parameter, name, in string) int {
	for i, p := range params {
		if p.Name == name && (in == "" || p.In == in) {
			return i
		}
	}
	return -1
}

func parserParam(arg reqparse.Argument) *swagger.Parameter {
	typ, format, ok := fields.TypeOf(arg.Type)
	if !ok {
		typ, format = fields.TypeString, ""
	}

	p := &swagger.Parameter{
		Name:        arg.Name,
		Description: arg.Help,
		Required:    arg.Required,
		Default:     arg.Default,
		Enum:        arg.Choices,
	}

	switch arg.In() {
	case reqparse.Form:
		p.In = InFormData
	case reqparse.Files:
		p.In = InFormData
		if arg.Type == nil {
			typ, format = fields.TypeFile, ""
		}
	case reqparse.Headers:
		p.In = InHeader
	case reqparse.Path:
		p.In = InPath
		p.Required = true
	default:
		p.In = InQuery
	}

	if arg.Append {
		p.Type = fields.TypeArray
		p.Items = &swagger.Items{Type: typ, Format: format}
		p.CollectionFormat = "multi"
		return p
	}

	p.Type = typ
	p.Format = format
	return p
}

func newParam(ep Param) *swagger.Parameter {
	p := &swagger.Parameter{
		Name: ep.Name,
		In:   InQuery,
		Type: fields.TypeString,
	}
	if ep.In == InPath {
		p.Required = true
	}
	applyParam(p, ep)

	if p.In == InBody {
		typ := p.Type
		if ep.Type == "" {
			typ = fields.TypeObject
		}
		p.Schema = &swagger.Schema{Type: typ, Format: p.Format}
		p.Type, p.Format = "", ""
	}
	return p
}

func applyParam(dst *swagger.Parameter, ep Param) {
	if ep.In != "" {
		dst.In = ep.In
	}
	if ep.Description != "" {
		dst.Description = ep.Description
	}
	if ep.Type != "" {
		dst.Type = ep.Type
	}
	if ep.Format != "" {
		dst.Format = ep.Format
	}
	if ep.Required != nil {
		dst.Required = *ep.Required
	}
	if ep.Default != nil {
		dst.Default = ep.Default
	}
	if ep.Enum != nil {
		dst.Enum = ep.Enum
	}
	if ep.Items != nil {
		dst.Items = ep.Items
	}
	if ep.CollectionFormat != "" {
		dst.CollectionFormat = ep.CollectionFormat
	}
}

// formConsumes returns the request content types implied by formData
// parameters: multipart only when a file is uploaded, both form encodings
// otherwise.
func formConsumes(params []*swagger.Parameter) []string {
	var form, file bool
	for _, p := range params {
		if p.In != InFormData {
			continue
		}
		form = true
		if p.Type == fields.TypeFile {
			file = true
		}
	}

	switch {
	case file:
		return []string{MIMEMultipartForm}
	case form:
		return []string{MIMEFormURLEncoded, MIMEMultipartForm}
	default:
		return nil
	}
}
