// Package fields declares the schema vocabulary used to document payloads:
// primitive fields, nested models, lists, custom field types, and the
// models that group them.
//
//	address := fields.NewModel("Address",
//	    fields.Prop("road", fields.String()),
//	)
//	person := fields.NewModel("Person",
//	    fields.Prop("name", fields.String(fields.Required())),
//	    fields.Prop("birthdate", fields.DateTime()),
//	    fields.Prop("address", fields.NewNested(address)),
//	    fields.Prop("tags", fields.NewList(fields.String())),
//	)
//
// Any Source may be used as a response or body model: a *Model, a
// ModelName resolved at build time, a primitive such as Native[int](), or
// ListOf any of them.
package fields
