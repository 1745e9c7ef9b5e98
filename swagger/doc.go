// Package swagger contains the Swagger 2.0 document model produced by
// package restdoc.
//
// All objects marshal to JSON and YAML with identical keys. Paths,
// definitions and schema properties use insertion-ordered maps, so a
// document built twice from the same registrations encodes to the same
// bytes.
//
// See: https://swagger.io/specification/v2/
package swagger
