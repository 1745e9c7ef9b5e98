// Package restdoc builds a Swagger 2.0 document from resources registered
// on a gorilla/mux router and serves it next to the API.
//
// See: https://swagger.io/specification/v2/
//
// # API, Namespaces and Resources
//
// An API owns every registration. Resources live in namespaces; each
// namespace contributes one tag and a path prefix. Resources registered
// directly on the API belong to the default namespace.
//
//	api := restdoc.New(restdoc.Config{Title: "Todo API", Prefix: "/api"})
//	ns := api.Namespace("todos", "TODO operations")
//
//	todo := api.Model("Todo",
//	    fields.Prop("id", fields.Integer(fields.ReadOnly())),
//	    fields.Prop("task", fields.String(fields.Required())),
//	)
//
//	ns.Resource("TodoList", "/").
//	    Get(listTodos).
//	    Comment("List all todos.").
//	    MarshalListWith(todo, 0)
//
//	ns.Resource("Todo", "/{id:int}").
//	    Doc(restdoc.Doc{Params: []restdoc.Param{restdoc.Describe("id", "The task identifier")}}).
//	    Get(getTodo).
//	    MarshalWith(todo, 0)
//
//	r := mux.NewRouter()
//	api.Init(r)
//
// URL templates use {name} or {name:converter} variables. The converters
// int, float, uuid, date, string, path, slug, alpha, alphanum, hex and
// domain select both the router pattern and the documented parameter type.
// Any other converter is passed to the router as a regular expression.
//
// # Documentation Records
//
// A Doc can be attached to a namespace (WithDoc), to a route (RouteDoc), to
// a resource (Doc) and to a method (Method.Doc). The records are merged
// from the most general to the most specific one with Merge. Each record
// may also carry per-method sub-records in Methods.
//
// # Security
//
// Config.Authorizations are published as securityDefinitions and
// Config.Security as the root requirement. An operation inherits the root
// requirement unless its Doc sets Security; Public() publishes an empty
// list that removes it.
//
// # Serving
//
// Init mounts the resources and the document endpoints under Config.Prefix:
//
//	/swagger.json  - the document as JSON
//	/swagger.yaml  - the document as YAML
//	DocPath        - Swagger UI page, when Config.DocPath is set
//
// The document is built on first request and cached until the next
// registration. Build errors, such as a reference to an unregistered model,
// are answered with 500 and a JSON error body.
package restdoc
