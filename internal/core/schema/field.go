// Package schema describes record schemas: fields, models, records and the
// registry that resolves relations between models.
package schema

import (
	"fmt"
	"time"
)

// FieldType is the semantic type of a field.
type FieldType string

const (
	// TypeString is a text column.
	TypeString FieldType = "string"
	// TypeInt is an integer column.
	TypeInt FieldType = "int"
	// TypeFloat is a floating point column.
	TypeFloat FieldType = "float"
	// TypeBool is a boolean column.
	TypeBool FieldType = "bool"
	// TypeDateTime is a timestamp column.
	TypeDateTime FieldType = "datetime"
	// TypeRelation is a foreign key referencing another model's primary key.
	TypeRelation FieldType = "relation"
)

// ParseFieldType maps a type name to a FieldType.
func ParseFieldType(name string) (FieldType, error) {
	switch FieldType(name) {
	case TypeString, TypeInt, TypeFloat, TypeBool, TypeDateTime:
		return FieldType(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// ValueFunc produces a default value for a field.
type ValueFunc func() any

// Value returns a ValueFunc that always yields v.
func Value(v any) ValueFunc {
	return func() any { return v }
}

// Now is a ValueFunc yielding the current UTC time.
func Now() any {
	return time.Now().UTC()
}

// Field describes one column of a model.
type Field struct {
	Name          string
	Column        string
	Type          FieldType
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	// Related names the referenced model for relation fields. "self" refers
	// to the declaring model.
	Related  string
	OnCreate ValueFunc
	OnUpdate ValueFunc
}

// IsRelation reports whether the field references another record.
func (f *Field) IsRelation() bool {
	return f.Type == TypeRelation
}

// ColumnName returns the column, falling back to the field name.
func (f *Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// FieldOption configures a field at declaration time.
type FieldOption func(*Field)

// Column overrides the column name.
func Column(name string) FieldOption {
	return func(f *Field) { f.Column = name }
}

// Nullable marks the field as accepting NULL.
func Nullable() FieldOption {
	return func(f *Field) { f.Nullable = true }
}

// AutoIncrement marks a primary key as assigned by the database.
func AutoIncrement() FieldOption {
	return func(f *Field) { f.AutoIncrement = true }
}

// Primary marks the field as the model's primary key.
func Primary() FieldOption {
	return func(f *Field) { f.PrimaryKey = true }
}

// OnCreate sets the value applied at insert time when the field is empty.
func OnCreate(fn ValueFunc) FieldOption {
	return func(f *Field) { f.OnCreate = fn }
}

// OnUpdate sets the value applied at update time when the field is empty.
func OnUpdate(fn ValueFunc) FieldOption {
	return func(f *Field) { f.OnUpdate = fn }
}

// NewField declares a field of the given type.
func NewField(name string, typ FieldType, opts ...FieldOption) Field {
	f := Field{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// String declares a text field.
func String(name string, opts ...FieldOption) Field {
	return NewField(name, TypeString, opts...)
}

// Int declares an integer field.
func Int(name string, opts ...FieldOption) Field {
	return NewField(name, TypeInt, opts...)
}

// Float declares a floating point field.
func Float(name string, opts ...FieldOption) Field {
	return NewField(name, TypeFloat, opts...)
}

// Bool declares a boolean field.
func Bool(name string, opts ...FieldOption) Field {
	return NewField(name, TypeBool, opts...)
}

// DateTime declares a timestamp field.
func DateTime(name string, opts ...FieldOption) Field {
	return NewField(name, TypeDateTime, opts...)
}

// PrimaryKey declares an auto-increment integer primary key.
func PrimaryKey(name string, opts ...FieldOption) Field {
	f := NewField(name, TypeInt, append([]FieldOption{AutoIncrement()}, opts...)...)
	f.PrimaryKey = true
	return f
}

// Relation declares a foreign key to the model named related. The column
// defaults to "<name>_id".
func Relation(name, related string, opts ...FieldOption) Field {
	f := NewField(name, TypeRelation, opts...)
	f.Related = related
	if f.Column == "" {
		f.Column = name + "_id"
	}
	return f
}
