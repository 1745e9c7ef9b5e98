package fields

import (
	"github.com/vitalvas/swagdoc/swagger"
)

// Field describes the schema of a single model property. The set of
// implementations is closed: *Primitive, *Nested, *List, *Custom and *Model.
type Field interface {
	field()
}

// Source is anything that can describe a payload: a *Model, a ModelName,
// a *Primitive, or an Array wrapping another Source.
type Source interface {
	source()
}

// ModelRef points at a model either by identity or by registered name.
type ModelRef interface {
	Source
	modelRef()
}

// Attrs holds the attributes shared by every field variant.
type Attrs struct {
	Description string
	Required    bool
	ReadOnly    bool
	Default     any
	Example     any
}

// Apply copies the attributes onto an inline schema.
func (a Attrs) Apply(s *swagger.Schema) {
	if a.Description != "" {
		s.Description = a.Description
	}
	if a.ReadOnly {
		s.ReadOnly = true
	}
	if a.Default != nil {
		s.Default = a.Default
	}
	if a.Example != nil {
		s.Example = a.Example
	}
}

// Option configures field attributes.
type Option func(*Attrs)

// Description sets the field description.
func Description(text string) Option {
	return func(a *Attrs) { a.Description = text }
}

// Required marks the field as required in the enclosing model.
func Required() Option {
	return func(a *Attrs) { a.Required = true }
}

// ReadOnly marks the field as read-only.
func ReadOnly() Option {
	return func(a *Attrs) { a.ReadOnly = true }
}

// Default sets the default value.
func Default(v any) Option {
	return func(a *Attrs) { a.Default = v }
}

// Example sets an example value.
func Example(v any) Option {
	return func(a *Attrs) { a.Example = v }
}

func newAttrs(opts []Option) Attrs {
	var a Attrs
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Primitive is an inline scalar field.
type Primitive struct {
	Type   string
	Format string
	Attrs
}

func (*Primitive) field()  {}
func (*Primitive) source() {}

// Schema returns the inline schema of the primitive.
func (p *Primitive) Schema() *swagger.Schema {
	s := &swagger.Schema{Type: p.Type, Format: p.Format}
	p.Apply(s)
	return s
}

func primitive(typ, format string, opts []Option) *Primitive {
	return &Primitive{Type: typ, Format: format, Attrs: newAttrs(opts)}
}

// String is a string field.
func String(opts ...Option) *Primitive { return primitive(TypeString, "", opts) }

// Integer is an integer field.
func Integer(opts ...Option) *Primitive { return primitive(TypeInteger, "", opts) }

// Float is a floating point number field.
func Float(opts ...Option) *Primitive { return primitive(TypeNumber, "", opts) }

// Arbitrary is a number field of arbitrary precision.
func Arbitrary(opts ...Option) *Primitive { return primitive(TypeNumber, "", opts) }

// Boolean is a boolean field.
func Boolean(opts ...Option) *Primitive { return primitive(TypeBoolean, "", opts) }

// DateTime is an RFC 3339 date-time string field.
func DateTime(opts ...Option) *Primitive { return primitive(TypeString, "date-time", opts) }

// Date is a full-date string field.
func Date(opts ...Option) *Primitive { return primitive(TypeString, "date", opts) }

// URL is a string field holding an absolute URL.
func URL(opts ...Option) *Primitive { return primitive(TypeString, "", opts) }

// Raw is a free-form object field.
func Raw(opts ...Option) *Primitive { return primitive(TypeObject, "", opts) }

// Nested embeds another model. It is emitted as a $ref and always marks the
// containing property as required.
type Nested struct {
	Model ModelRef
	Attrs
}

func (*Nested) field() {}

// NewNested returns a nested field referring to ref.
func NewNested(ref ModelRef, opts ...Option) *Nested {
	return &Nested{Model: ref, Attrs: newAttrs(opts)}
}

// List is an array of another field.
type List struct {
	Item Field
	Attrs
}

func (*List) field() {}

// NewList returns an array field of item.
func NewList(item Field, opts ...Option) *List {
	return &List{Item: item, Attrs: newAttrs(opts)}
}

// Custom is a user-declared field type. When a model is registered under
// Name it is emitted as a $ref, otherwise it is inlined with Type and Format
// and never produces a definition.
type Custom struct {
	Name   string
	Type   string
	Format string
	Attrs
}

func (*Custom) field() {}

// NewCustom declares a custom field type.
func NewCustom(name, typ, format string, opts ...Option) *Custom {
	return &Custom{Name: name, Type: typ, Format: format, Attrs: newAttrs(opts)}
}

// ModelName refers to a model by its registered name. The lookup happens
// when the document is built.
type ModelName string

func (ModelName) source()   {}
func (ModelName) modelRef() {}

// Array is a Source describing a list of another Source.
type Array struct {
	Of Source
}

func (Array) source() {}

// ListOf wraps src as an array source.
func ListOf(src Source) Array {
	return Array{Of: src}
}
