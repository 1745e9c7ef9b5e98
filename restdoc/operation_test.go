package restdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swagdoc/fields"
	"github.com/vitalvas/swagdoc/swagger"
)

func TestDefaultOperationID(t *testing.T) {
	assert.Equal(t, "get_test_resource", DefaultOperationID("TestResource", "get"))
	assert.Equal(t, "post_todo_list", DefaultOperationID("TodoList", "post"))
	assert.Equal(t, "get_http_client", DefaultOperationID("HTTPClient", "get"))
	assert.Equal(t, "get_todos", DefaultOperationID("todos", "get"))
}

func TestParseComment(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		summary string
		details string
	}{
		{"empty", "", "", ""},
		{"single sentence", "List all todos", "List all todos", ""},
		{"trailing period", "List all todos.", "List all todos", ""},
		{"two sentences", "Create a todo. Returns the stored item.", "Create a todo", "Returns the stored item."},
		{
			"multi line",
			"Fetch a todo.\n\n    The id must exist.\n    Otherwise 404 is returned.\n",
			"Fetch a todo",
			"The id must exist.\nOtherwise 404 is returned.",
		},
		{"leading blank line", "\n  Delete a todo.\n  Irreversible.", "Delete a todo", "Irreversible."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, details := parseComment(tt.text)
			assert.Equal(t, tt.summary, summary)
			assert.Equal(t, tt.details, details)
		})
	}
}

func buildOperation(t *testing.T, a *API, path, method string) *swagger.Operation {
	t.Helper()

	doc, err := a.Build()
	require.NoError(t, err)

	item, ok := doc.Paths.Get(path)
	require.True(t, ok, "path %s", path)

	ops := map[string]*swagger.Operation{
		"get":     item.Get,
		"put":     item.Put,
		"post":    item.Post,
		"delete":  item.Delete,
		"options": item.Options,
		"head":    item.Head,
		"patch":   item.Patch,
	}
	op := ops[method]
	require.NotNil(t, op, "%s %s", method, path)
	return op
}

func TestOperation(t *testing.T) {
	t.Run("summary, description and id", func(t *testing.T) {
		a := New(Config{})
		a.Resource("TestResource", "/test/").
			Doc(Doc{Description: "Resource description."}).
			Get(nil).
			Doc(Doc{Description: "Method description."}).
			Comment("Get a resource. Some details.")

		op := buildOperation(t, a, "/test/", "get")
		assert.Equal(t, "Get a resource", op.Summary)
		assert.Equal(t, "Resource description.\nMethod description.\nSome details.", op.Description)
		assert.Equal(t, "get_test_resource", op.OperationID)
		assert.Equal(t, []string{"default"}, op.Tags)
	})

	t.Run("explicit id", func(t *testing.T) {
		a := New(Config{})
		a.Resource("TestResource", "/test/").Get(nil).Doc(Doc{ID: "fetchIt"})

		op := buildOperation(t, a, "/test/", "get")
		assert.Equal(t, "fetchIt", op.OperationID)
	})

	t.Run("custom default id", func(t *testing.T) {
		a := New(Config{DefaultID: func(resource, method string) string {
			return method + resource
		}})
		a.Resource("TestResource", "/test/").Post(nil)

		op := buildOperation(t, a, "/test/", "post")
		assert.Equal(t, "postTestResource", op.OperationID)
	})

	t.Run("implicit success response", func(t *testing.T) {
		a := New(Config{})
		a.Resource("Todo", "/todo").Get(nil).Doc(Doc{Model: fields.String()})

		op := buildOperation(t, a, "/todo", "get")
		require.Len(t, op.Responses, 1)
		assert.Equal(t, &swagger.Response{Description: "Success", Schema: &swagger.Schema{Type: "string"}}, op.Responses["200"])
	})

	t.Run("explicit responses suppress the implicit one", func(t *testing.T) {
		a := New(Config{})
		a.Resource("Todo", "/todo").Get(nil).
			Response(404, "", nil).
			Response(0, "Unexpected error", nil)

		op := buildOperation(t, a, "/todo", "get")
		assert.Len(t, op.Responses, 2)
		assert.Equal(t, "Not Found", op.Responses["404"].Description)
		assert.Equal(t, "Unexpected error", op.Responses["default"].Description)
		assert.NotContains(t, op.Responses, "200")
	})

	t.Run("marshal with custom code", func(t *testing.T) {
		a := New(Config{})
		todo := a.Model("Todo", fields.Prop("task", fields.String()))
		a.Resource("Todo", "/todo").Delete(nil).MarshalWith(todo, 204)

		op := buildOperation(t, a, "/todo", "delete")
		require.Len(t, op.Responses, 1)
		assert.Equal(t, "#/definitions/Todo", op.Responses["204"].Schema.Ref)
	})

	t.Run("marshal as list", func(t *testing.T) {
		a := New(Config{})
		todo := a.Model("Todo", fields.Prop("task", fields.String()))
		a.Resource("TodoList", "/todos").Get(nil).MarshalListWith(todo, 0)

		op := buildOperation(t, a, "/todos", "get")
		require.Len(t, op.Responses, 1)
		assert.Equal(t, &swagger.Schema{Type: "array", Items: &swagger.Schema{Ref: "#/definitions/Todo"}}, op.Responses["200"].Schema)
	})

	t.Run("explicit responses suppress marshal", func(t *testing.T) {
		a := New(Config{})
		person := a.Model("Person", fields.Prop("name", fields.String()))
		a.Resource("Thing", "/thing/").Get(nil).
			MarshalWith(person, 0).
			Response(404, "Not found", nil)

		op := buildOperation(t, a, "/thing/", "get")
		require.Len(t, op.Responses, 1)
		assert.Equal(t, &swagger.Response{Description: "Not found"}, op.Responses["404"])
		assert.NotContains(t, op.Responses, "200")
	})

	t.Run("explicit responses suppress marshal of inherited scopes", func(t *testing.T) {
		a := New(Config{})
		res := a.Resource("Todo", "/todo").Doc(Doc{
			Responses: map[int]Response{404: {Description: "Todo not found"}},
		})
		res.Get(nil).
			MarshalWith(fields.Integer(), 200).
			Response(200, "Explicit", fields.String())

		op := buildOperation(t, a, "/todo", "get")
		assert.Len(t, op.Responses, 2)
		assert.Equal(t, &swagger.Response{Description: "Explicit", Schema: &swagger.Schema{Type: "string"}}, op.Responses["200"])
		assert.Equal(t, "Todo not found", op.Responses["404"].Description)
	})
}

func TestOperationSecurity(t *testing.T) {
	cfg := Config{
		Authorizations: map[string]*swagger.SecurityScheme{
			"apikey": {Type: "apiKey", In: "header", Name: "X-API-KEY"},
		},
		Security: Secure(swagger.Requirement("apikey")),
	}

	a := New(cfg)
	a.Resource("Inherited", "/inherited").Get(nil)
	a.Resource("Same", "/same").Get(nil).Doc(Doc{Security: Secure(swagger.Requirement("apikey"))})
	a.Resource("Open", "/open").Get(nil).Doc(Doc{Security: Public()})
	a.Resource("Scoped", "/scoped").Get(nil).Doc(Doc{Security: Secure(swagger.Requirement("oauth", "read"))})

	assert.Nil(t, buildOperation(t, a, "/inherited", "get").Security)
	assert.Nil(t, buildOperation(t, a, "/same", "get").Security)

	open := buildOperation(t, a, "/open", "get").Security
	assert.NotNil(t, open)
	assert.Empty(t, open)

	assert.Equal(t, swagger.SecurityRequirements{{"oauth": {"read"}}}, buildOperation(t, a, "/scoped", "get").Security)
}

func TestOperationHidden(t *testing.T) {
	a := New(Config{})
	res := a.Resource("Todo", "/todo")
	res.Get(nil)
	res.Post(nil).Hide()
	res.Put(nil).Doc(Doc{Hidden: Bool(true)})
	a.Resource("Secret", "/secret").Hide().Get(nil)
	partial := a.Resource("Partial", "/partial").
		Doc(Doc{Methods: map[string]*Doc{"delete": {Hidden: Bool(true)}}})
	partial.Get(nil)
	partial.Delete(nil)

	doc, err := a.Build()
	require.NoError(t, err)

	item, ok := doc.Paths.Get("/todo")
	require.True(t, ok)
	assert.NotNil(t, item.Get)
	assert.Nil(t, item.Post)
	assert.Nil(t, item.Put)

	_, ok = doc.Paths.Get("/secret")
	assert.False(t, ok)
	item, ok = doc.Paths.Get("/partial")
	require.True(t, ok)
	assert.NotNil(t, item.Get)
	assert.Nil(t, item.Delete)
}
