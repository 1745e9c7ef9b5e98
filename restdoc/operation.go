package restdoc

import (
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/vitalvas/swagdoc/fields"
	"github.com/vitalvas/swagdoc/swagger"
)

// DefaultOperationID returns "{method}_{resource in snake_case}", for
// example "get_test_resource" for ("TestResource", "get").
func DefaultOperationID(resource, method string) string {
	return method + "_" + snakeCase(resource)
}

var (
	snakeFirst  = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	snakeSecond = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

func snakeCase(name string) string {
	s := snakeFirst.ReplaceAllString(name, "${1}_${2}")
	return strings.ToLower(snakeSecond.ReplaceAllString(s, "${1}_${2}"))
}

// parseComment splits a handler comment into a summary, the first sentence
// of its first line, and the remaining details.
func parseComment(text string) (summary, details string) {
	raw := cleanComment(text)
	if raw == "" {
		return "", ""
	}

	first, _, _ := strings.Cut(raw, "\n")
	summary, _, _ = strings.Cut(first, ".")
	summary = strings.TrimSpace(summary)

	details = strings.Replace(raw, summary, "", 1)
	details = strings.TrimLeft(details, ". \n")
	details = strings.Trim(details, " \n")
	return summary, details
}

// cleanComment strips the first line, removes the common indentation of the
// following lines and drops leading and trailing blank lines.
func cleanComment(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines[0] = strings.TrimLeft(lines[0], " \t")

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, " \t")
		if content == "" {
			continue
		}
		if indent := len(line) - len(content); margin < 0 || indent < margin {
			margin = indent
		}
	}

	for i := 1; i < len(lines); i++ {
		if margin > 0 && len(lines[i]) >= margin {
			lines[i] = lines[i][margin:]
		} else {
			lines[i] = strings.TrimLeft(lines[i], " \t")
		}
		lines[i] = strings.TrimRight(lines[i], " \t")
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// marshalSpec records the response model declared by MarshalWith.
type marshalSpec struct {
	source fields.Source
	code   int
}

// operation builds the operation for one method on one path, or returns
// nil when the method is hidden.
func (b *builder) operation(rt *resourceRoute, m *Method) (*swagger.Operation, error) {
	res := rt.resource
	doc, err := Merge(m.method, res.ns.doc, res.routeDoc, res.doc, m.doc)
	if err != nil {
		return nil, err
	}
	if res.hidden || m.hidden || doc.IsHidden() {
		return nil, nil
	}

	summary, details := parseComment(m.comment)

	op := &swagger.Operation{
		Tags:        []string{res.ns.name},
		Summary:     summary,
		Description: joinNonEmpty("\n", doc.Description, details),
		OperationID: doc.ID,
	}
	if op.OperationID == "" {
		op.OperationID = b.cfg.defaultID()(res.name, strings.ToLower(m.method))
	}

	params, consumes, err := resolveParams(rt.params, doc, b.models)
	if err != nil {
		return nil, err
	}
	op.Parameters = params
	op.Consumes = consumes

	if op.Responses, err = b.responses(doc, m.marshal); err != nil {
		return nil, err
	}

	if doc.Security != nil && !doc.Security.Equal(b.cfg.Security) {
		op.Security = doc.Security.Clone()
	}

	return op, nil
}

// responses documents explicit responses in status code order. Explicit
// responses replace every synthesized one: only without them is the
// MarshalWith declaration, or else an implicit 200 carrying the Model of the
// record, emitted.
func (b *builder) responses(doc Doc, marshal *marshalSpec) (map[string]*swagger.Response, error) {
	if len(doc.Responses) == 0 {
		code, src := http.StatusOK, doc.Model
		if marshal != nil {
			code, src = marshal.code, marshal.source
		}
		schema, err := b.models.source(src)
		if err != nil {
			return nil, fmt.Errorf("response %d: %w", code, err)
		}
		return map[string]*swagger.Response{
			statusKey(code): {Description: successDescription, Schema: schema},
		}, nil
	}

	codes := make([]int, 0, len(doc.Responses))
	for code := range doc.Responses {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	out := make(map[string]*swagger.Response, len(codes))
	for _, code := range codes {
		r := doc.Responses[code]
		schema, err := b.models.source(r.Model)
		if err != nil {
			return nil, fmt.Errorf("response %d: %w", code, err)
		}
		desc := r.Description
		if desc == "" {
			desc = http.StatusText(code)
		}
		out[statusKey(code)] = &swagger.Response{Description: desc, Schema: schema}
	}

	return out, nil
}

const successDescription = "Success"

func statusKey(code int) string {
	if code == 0 {
		return "default"
	}
	return strconv.Itoa(code)
}

func joinNonEmpty(sep string, parts ...string) string {
	parts = slices.DeleteFunc(parts, func(s string) bool { return s == "" })
	return strings.Join(parts, sep)
}
