package schema

import (
	"fmt"
	"sort"
)

// Registry maps model names to models. It is built once, validated eagerly
// and immutable afterwards, so it may be shared between goroutines.
type Registry struct {
	models map[string]*Model
	order  []string
}

// NewRegistry indexes the models and resolves every relation target.
func NewRegistry(models ...*Model) (*Registry, error) {
	r := &Registry{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		if _, dup := r.models[m.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, m.Name())
		}
		r.models[m.Name()] = m
		r.order = append(r.order, m.Name())
	}

	for _, m := range models {
		for _, f := range m.fields {
			if !f.IsRelation() {
				continue
			}
			if _, ok := r.models[f.Related]; !ok {
				return nil, fmt.Errorf("%w: %s.%s references %q", ErrUnknownModel, m.Name(), f.Name, f.Related)
			}
		}
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(models ...*Model) *Registry {
	r, err := NewRegistry(models...)
	if err != nil {
		panic(err)
	}
	return r
}

// Model looks up a model by name.
func (r *Registry) Model(name string) (*Model, error) {
	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return m, nil
}

// Models returns the models in registration order.
func (r *Registry) Models() []*Model {
	out := make([]*Model, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.models[name])
	}
	return out
}

// Names returns the sorted model names.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Target resolves the model referenced by a relation field of m.
func (r *Registry) Target(m *Model, field string) (*Model, error) {
	f, ok := m.Field(field)
	if !ok || !f.IsRelation() {
		return nil, fmt.Errorf("%w: %s.%s is not a relation", ErrUnknownModel, m.Name(), field)
	}
	return r.Model(f.Related)
}
