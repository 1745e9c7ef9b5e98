package fields

// Property is a named field of a model.
type Property struct {
	Name  string
	Field Field
}

// Prop returns a property named name.
func Prop(name string, f Field) Property {
	return Property{Name: name, Field: f}
}

// Model is a named, ordered set of properties. It is immutable once
// constructed. A model can be used as a payload Source, as the target of a
// Nested field, or directly as a Field, in which case it is referenced
// without being marked required.
type Model struct {
	name  string
	props []Property
}

func (*Model) field()    {}
func (*Model) source()   {}
func (*Model) modelRef() {}

// NewModel builds a model. A property name declared twice keeps its first
// position and its last field.
func NewModel(name string, props ...Property) *Model {
	m := &Model{name: name}
	index := make(map[string]int, len(props))
	for _, p := range props {
		if i, ok := index[p.Name]; ok {
			m.props[i] = p
			continue
		}
		index[p.Name] = len(m.props)
		m.props = append(m.props, p)
	}
	return m
}

// Name returns the definition name of the model.
func (m *Model) Name() string {
	return m.name
}

// Properties returns a copy of the model properties in declaration order.
func (m *Model) Properties() []Property {
	out := make([]Property, len(m.props))
	copy(out, m.props)
	return out
}
