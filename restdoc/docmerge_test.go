package restdoc

import (
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/swagdoc/fields"
	"github.com/vitalvas/swagdoc/swagger"
)

func TestMerge(t *testing.T) {
	t.Run("descriptions are joined", func(t *testing.T) {
		ns := &Doc{Description: "Parent description."}
		method := &Doc{Description: "Some details"}

		doc, err := Merge("get", ns, nil, nil, method)
		require.NoError(t, err)
		assert.Equal(t, "Parent description.\nSome details", doc.Description)
	})

	t.Run("method sub-record applies after general fields", func(t *testing.T) {
		res := &Doc{
			ID: "generic",
			Methods: map[string]*Doc{
				"get":  {ID: "get_specific"},
				"POST": {ID: "post_specific"},
			},
		}

		doc, err := Merge("GET", res)
		require.NoError(t, err)
		assert.Equal(t, "get_specific", doc.ID)

		doc, err = Merge("post", res)
		require.NoError(t, err)
		assert.Equal(t, "post_specific", doc.ID)

		doc, err = Merge("delete", res)
		require.NoError(t, err)
		assert.Equal(t, "generic", doc.ID)
	})

	t.Run("hidden is sticky", func(t *testing.T) {
		doc, err := Merge("get", &Doc{Hidden: Bool(true)}, &Doc{Hidden: Bool(false)})
		require.NoError(t, err)
		assert.True(t, doc.IsHidden())

		doc, err = Merge("get", &Doc{Hidden: Bool(false)})
		require.NoError(t, err)
		assert.False(t, doc.IsHidden())
		require.NotNil(t, doc.Hidden)
	})

	t.Run("params merge by name", func(t *testing.T) {
		ns := &Doc{Params: []Param{
			{Name: "id", Description: "An id", Type: "integer"},
			{Name: "q", In: InQuery},
		}}
		method := &Doc{Params: []Param{
			{Name: "id", Required: Bool(true)},
			{Name: "X-Token", In: InHeader},
		}}

		doc, err := Merge("get", ns, method)
		require.NoError(t, err)
		require.Len(t, doc.Params, 3)
		assert.Equal(t, Param{Name: "id", Description: "An id", Type: "integer", Required: Bool(true)}, doc.Params[0])
		assert.Equal(t, "q", doc.Params[1].Name)
		assert.Equal(t, "X-Token", doc.Params[2].Name)

		assert.Len(t, ns.Params, 2, "scopes are not modified")
		assert.Nil(t, ns.Params[0].Required)
	})

	t.Run("responses merge by code", func(t *testing.T) {
		ns := &Doc{Responses: map[int]Response{
			404: {Description: "Not found"},
			500: {Description: "Oops"},
		}}
		method := &Doc{Responses: map[int]Response{
			404: {Description: "Missing item"},
			201: {Description: "Created", Model: fields.String()},
		}}

		doc, err := Merge("post", ns, method)
		require.NoError(t, err)
		assert.Len(t, doc.Responses, 3)
		assert.Equal(t, "Missing item", doc.Responses[404].Description)
		assert.Equal(t, "Oops", doc.Responses[500].Description)
		assert.Len(t, ns.Responses, 2)
	})

	t.Run("scalars are replaced", func(t *testing.T) {
		first := fields.ModelName("First")
		second := fields.ModelName("Second")

		doc, err := Merge("get",
			&Doc{Model: first, Security: Secure(swagger.Requirement("apikey"))},
			&Doc{Model: second, Security: Public()},
		)
		require.NoError(t, err)
		assert.Equal(t, second, doc.Model)
		assert.NotNil(t, doc.Security)
		assert.Empty(t, doc.Security)
	})

	t.Run("nil security inherits", func(t *testing.T) {
		doc, err := Merge("get", &Doc{Security: Secure(swagger.Requirement("apikey"))}, &Doc{})
		require.NoError(t, err)
		assert.Len(t, doc.Security, 1)
	})

	t.Run("result carries no method records", func(t *testing.T) {
		doc, err := Merge("get", &Doc{Methods: map[string]*Doc{"get": {ID: "x"}}})
		require.NoError(t, err)
		assert.Nil(t, doc.Methods)
	})

	t.Run("no scopes", func(t *testing.T) {
		doc, err := Merge("get")
		require.NoError(t, err)
		assert.Empty(t, doc.Description)
		assert.False(t, doc.IsHidden())
	})
}

func TestMergeValidation(t *testing.T) {
	tests := []struct {
		name  string
		doc   *Doc
		field string
	}{
		{"param without name", &Doc{Params: []Param{{In: InQuery}}}, "params"},
		{"unknown location", &Doc{Params: []Param{{Name: "x", In: "cookie"}}}, "params"},
		{"status code too low", &Doc{Responses: map[int]Response{42: {}}}, "responses"},
		{"status code too high", &Doc{Responses: map[int]Response{600: {}}}, "responses"},
		{"body without model", &Doc{Body: &Body{Description: "x"}}, "body"},
		{"empty scheme", &Doc{Security: swagger.SecurityRequirements{{"": nil}}}, "security"},
		{"unknown method", &Doc{Methods: map[string]*Doc{"FETCH": {}}}, "methods"},
		{"duplicate method", &Doc{Methods: map[string]*Doc{"get": {}, "GET": {}}}, "methods"},
		{"nested methods", &Doc{Methods: map[string]*Doc{"get": {Methods: map[string]*Doc{"get": {}}}}}, "methods"},
		{"invalid sub-record", &Doc{Methods: map[string]*Doc{"get": {Params: []Param{{}}}}}, "params"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge("get", &Doc{}, tt.doc)
			require.Error(t, err)
			assert.True(t, errdefs.IsInvalidArgument(err))

			var docErr *DocError
			require.ErrorAs(t, err, &docErr)
			assert.Equal(t, 1, docErr.Scope)
			assert.Equal(t, tt.field, docErr.Field)
		})
	}

	t.Run("default response is valid", func(t *testing.T) {
		_, err := Merge("get", &Doc{Responses: map[int]Response{0: {Description: "Error"}}})
		assert.NoError(t, err)
	})
}
