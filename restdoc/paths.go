package restdoc

import (
	"regexp"
	"strings"

	"github.com/vitalvas/swagdoc/fields"
	"github.com/vitalvas/swagdoc/swagger"
)

// converter describes a path variable converter: {name:converter}.
type converter struct {
	pattern string
	typ     string
	format  string
}

// converters maps converter names to the regular expression mounted on the
// router and to the Swagger type of the variable.
var converters = map[string]converter{
	"int":      {`[0-9]+`, fields.TypeInteger, ""},
	"float":    {`[0-9]*\.?[0-9]+`, fields.TypeNumber, ""},
	"uuid":     {`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`, fields.TypeString, "uuid"},
	"date":     {`[0-9]{4}-[0-9]{2}-[0-9]{2}`, fields.TypeString, "date"},
	"string":   {`[^/]+`, fields.TypeString, ""},
	"path":     {`.+`, fields.TypeString, ""},
	"slug":     {`[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`, fields.TypeString, ""},
	"alpha":    {`[a-zA-Z]+`, fields.TypeString, ""},
	"alphanum": {`[a-zA-Z0-9]+`, fields.TypeString, ""},
	"hex":      {`[0-9a-fA-F]+`, fields.TypeString, ""},
	"domain":   {`(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`, fields.TypeString, "hostname"},
}

// pathVarRegexp matches route variables in the form {name} or
// {name:converter}, allowing one level of nested braces for quantifiers.
var pathVarRegexp = regexp.MustCompile(`\{((?:[^{}]|\{[^{}]*\})+)\}`)

// parsePath converts a route template into a Swagger path and the path
// parameters it declares, in the order they appear. Unknown converters are
// treated as raw regular expressions and documented as strings.
func parsePath(tpl string) (string, []*swagger.Parameter) {
	var params []*swagger.Parameter

	path := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		name, conv, _ := strings.Cut(match[1:len(match)-1], ":")

		param := &swagger.Parameter{
			Name:     name,
			In:       InPath,
			Required: true,
			Type:     fields.TypeString,
		}
		if c, ok := converters[conv]; ok {
			param.Type = c.typ
			param.Format = c.format
		}

		params = append(params, param)
		return "{" + name + "}"
	})

	return path, params
}

// routerPath expands converter names into the regular expressions the
// router matches against.
func routerPath(tpl string) string {
	return pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		name, conv, ok := strings.Cut(match[1:len(match)-1], ":")
		if !ok {
			return match
		}
		if c, found := converters[conv]; found {
			return "{" + name + ":" + c.pattern + "}"
		}
		return match
	})
}

// joinPath joins URL path segments with a single slash between them,
// preserving a trailing slash on the last segment.
func joinPath(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			b.WriteByte('/')
			b.WriteString(trimmed)
		}
	}

	last := parts[len(parts)-1]
	if b.Len() == 0 || strings.HasSuffix(last, "/") {
		b.WriteByte('/')
	}
	return b.String()
}
