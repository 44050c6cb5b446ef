package schema

import "fmt"

// Model is the immutable description of one record type and its table.
type Model struct {
	name   string
	table  string
	fields []Field
	index  map[string]int
	pk     int
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Table returns the table the model maps to.
func (m *Model) Table() string {
	if m == nil {
		return ""
	}
	return m.table
}

// Fields returns a copy of the fields in declaration order.
func (m *Model) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// FieldNames returns the field names in declaration order.
func (m *Model) FieldNames() []string {
	names := make([]string, len(m.fields))
	for i := range m.fields {
		names[i] = m.fields[i].Name
	}
	return names
}

// Field looks up a field by name. A missing field means the name is to be
// used literally (a raw column or SQL expression).
func (m *Model) Field(name string) (*Field, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	f := m.fields[i]
	return &f, true
}

// PrimaryKey returns the primary key field.
func (m *Model) PrimaryKey() Field {
	return m.fields[m.pk]
}

// New creates an empty record of this model with the given attribute values.
func (m *Model) New(values map[string]any) *Record {
	r := &Record{model: m, values: make(map[string]any, len(values))}
	for k, v := range values {
		r.values[k] = v
	}
	return r
}

func (m *Model) String() string {
	return fmt.Sprintf("<Model %s table=%s>", m.name, m.table)
}

// ModelBuilder declares a model. Build validates the declaration.
type ModelBuilder struct {
	name   string
	table  string
	fields []Field
}

// NewModel starts the declaration of a model. The table defaults to the name.
func NewModel(name string) *ModelBuilder {
	return &ModelBuilder{name: name, table: name}
}

// Table sets the table name.
func (b *ModelBuilder) Table(table string) *ModelBuilder {
	b.table = table
	return b
}

// Field appends fields in declaration order.
func (b *ModelBuilder) Field(fields ...Field) *ModelBuilder {
	b.fields = append(b.fields, fields...)
	return b
}

// Build validates the declaration and returns the immutable model.
// A model without a primary key gets an auto-increment "id" key prepended.
func (b *ModelBuilder) Build() (*Model, error) {
	if b.name == "" {
		return nil, ErrNoModelName
	}

	fields := make([]Field, 0, len(b.fields)+1)
	pk := -1
	for _, f := range b.fields {
		if f.PrimaryKey {
			if pk >= 0 {
				return nil, fmt.Errorf("%w: %s.%s and %s.%s", ErrMultiplePrimaryKeys, b.name, b.fields[pk].Name, b.name, f.Name)
			}
			pk = len(fields)
		}
		fields = append(fields, f)
	}
	if pk < 0 {
		fields = append([]Field{PrimaryKey("id")}, fields...)
		pk = 0
	}

	m := &Model{
		name:   b.name,
		table:  b.table,
		fields: fields,
		index:  make(map[string]int, len(fields)),
		pk:     pk,
	}
	columns := make(map[string]string, len(fields))
	for i := range m.fields {
		f := &m.fields[i]
		if f.Column == "" {
			f.Column = f.Name
		}
		if f.IsRelation() {
			switch f.Related {
			case "":
				return nil, fmt.Errorf("%w: %s.%s", ErrMissingRelation, b.name, f.Name)
			case "self":
				f.Related = b.name
			}
		}
		if _, dup := m.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, b.name, f.Name)
		}
		if other, dup := columns[f.Column]; dup {
			return nil, fmt.Errorf("%w: %s.%s and %s.%s both use %q", ErrDuplicateColumn, b.name, other, b.name, f.Name, f.Column)
		}
		m.index[f.Name] = i
		columns[f.Column] = f.Name
	}
	return m, nil
}

// MustBuild is like Build but panics on an invalid declaration.
func (b *ModelBuilder) MustBuild() *Model {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
