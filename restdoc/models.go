package restdoc

import (
	"fmt"

	"github.com/containerd/errdefs"

	"github.com/vitalvas/swagdoc/fields"
	"github.com/vitalvas/swagdoc/swagger"
)

const definitionsRef = "#/definitions/"

// modelRegistry maps definition names to models, remembering the order in
// which names were first registered.
type modelRegistry struct {
	order  []string
	models map[string]*fields.Model
}

func newModelRegistry() *modelRegistry {
	return &modelRegistry{models: make(map[string]*fields.Model)}
}

// register stores m under its name. Registering a name again replaces the
// model but keeps the original position.
func (r *modelRegistry) register(m *fields.Model) {
	name := m.Name()
	if _, ok := r.models[name]; !ok {
		r.order = append(r.order, name)
	}
	r.models[name] = m
}

func (r *modelRegistry) lookup(name string) (*fields.Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

// schemaResolver turns field sources into schema fragments during a single
// build and collects the definitions they reference.
type schemaResolver struct {
	registry *modelRegistry
	defs     map[string]*swagger.Schema
	owners   map[string]*fields.Model
	extra    []string
}

func newSchemaResolver(registry *modelRegistry) *schemaResolver {
	return &schemaResolver{
		registry: registry,
		defs:     make(map[string]*swagger.Schema),
		owners:   make(map[string]*fields.Model),
	}
}

// source resolves a payload source into a schema. A nil source yields a
// nil schema.
func (r *schemaResolver) source(src fields.Source) (*swagger.Schema, error) {
	switch s := src.(type) {
	case nil:
		return nil, nil
	case *fields.Model, fields.ModelName:
		return r.modelRef(s.(fields.ModelRef))
	case *fields.Primitive:
		return s.Schema(), nil
	case fields.Array:
		item, err := r.source(s.Of)
		if err != nil {
			return nil, err
		}
		return &swagger.Schema{Type: fields.TypeArray, Items: item}, nil
	default:
		return nil, fmt.Errorf("unsupported model source %T: %w", src, errdefs.ErrInvalidArgument)
	}
}

// field resolves a model property. The boolean reports whether the property
// belongs in the model's required list.
func (r *schemaResolver) field(f fields.Field) (*swagger.Schema, bool, error) {
	switch f := f.(type) {
	case *fields.Primitive:
		return f.Schema(), f.Required, nil

	case *fields.Nested:
		s, err := r.modelRef(f.Model)
		return s, true, err

	case *fields.List:
		item, _, err := r.field(f.Item)
		if err != nil {
			return nil, false, err
		}
		s := &swagger.Schema{Type: fields.TypeArray, Items: item}
		f.Apply(s)
		_, nested := f.Item.(*fields.Nested)
		return s, f.Required || nested, nil

	case *fields.Model:
		s, err := r.modelRef(f)
		return s, false, err

	case *fields.Custom:
		if m, ok := r.registry.lookup(f.Name); ok {
			s, err := r.modelRef(m)
			return s, f.Required, err
		}
		typ := f.Type
		if typ == "" {
			typ = fields.TypeObject
		}
		s := &swagger.Schema{Type: typ, Format: f.Format}
		f.Apply(s)
		return s, f.Required, nil

	default:
		return nil, false, fmt.Errorf("unsupported field %T: %w", f, errdefs.ErrInvalidArgument)
	}
}

func (r *schemaResolver) modelRef(ref fields.ModelRef) (*swagger.Schema, error) {
	var m *fields.Model
	switch ref := ref.(type) {
	case *fields.Model:
		m = ref
	case fields.ModelName:
		found, ok := r.registry.lookup(string(ref))
		if !ok {
			return nil, fmt.Errorf("model %q: %w", string(ref), errdefs.ErrNotFound)
		}
		m = found
	default:
		return nil, fmt.Errorf("unsupported model reference %T: %w", ref, errdefs.ErrInvalidArgument)
	}

	if err := r.define(m); err != nil {
		return nil, err
	}
	return &swagger.Schema{Ref: definitionsRef + m.Name()}, nil
}

// define adds the definition of m once. The placeholder is stored before
// the properties are resolved so that self-referencing models terminate.
func (r *schemaResolver) define(m *fields.Model) error {
	name := m.Name()
	if name == "" {
		return fmt.Errorf("model without name: %w", errdefs.ErrInvalidArgument)
	}

	if owner, ok := r.owners[name]; ok {
		if owner != m {
			return fmt.Errorf("model %q is defined twice: %w", name, errdefs.ErrConflict)
		}
		return nil
	}

	registered, ok := r.registry.lookup(name)
	if ok && registered != m {
		return fmt.Errorf("model %q differs from the registered model: %w", name, errdefs.ErrConflict)
	}
	if !ok {
		r.extra = append(r.extra, name)
	}

	// definitions carry only properties and required, without a type
	schema := &swagger.Schema{Properties: swagger.NewProperties()}
	r.owners[name] = m
	r.defs[name] = schema

	for _, p := range m.Properties() {
		s, required, err := r.field(p.Field)
		if err != nil {
			return fmt.Errorf("model %q field %q: %w", name, p.Name, err)
		}
		schema.Properties.Set(p.Name, s)
		if required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	return nil
}

// definitions returns the referenced models in first-registration order,
// followed by unregistered models in first-reference order, or nil when no
// model was referenced.
func (r *schemaResolver) definitions() *swagger.Definitions {
	if len(r.defs) == 0 {
		return nil
	}

	defs := swagger.NewDefinitions()
	for _, name := range r.registry.order {
		if s, ok := r.defs[name]; ok {
			defs.Set(name, s)
		}
	}
	for _, name := range r.extra {
		defs.Set(name, r.defs[name])
	}
	return defs
}
