// Package mapper converts between records and positional SQL values.
//
// Result rows are zipped by position against the field list the SELECT was
// built from, so a row's column order must match that list exactly.
package mapper

import (
	"errors"
	"fmt"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
)

var (
	// ErrColumnMismatch is returned when a row is not as wide as the field list.
	ErrColumnMismatch = errors.New("row width does not match field list")
	// ErrNotFlat is returned by Flat when more than one field was projected.
	ErrNotFlat = errors.New("flat results need exactly one field")
)

// Records reifies rows into records of model.
func Records(model *schema.Model, fields []string, rows [][]any) ([]*schema.Record, error) {
	out := make([]*schema.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(fields) {
			return nil, fmt.Errorf("row %d: %w: %d values for %d fields", i, ErrColumnMismatch, len(row), len(fields))
		}
		values := make(map[string]any, len(fields))
		for j, name := range fields {
			values[name] = row[j]
		}
		out = append(out, model.New(values))
	}
	return out, nil
}

// Flat returns the single projected value of every row.
func Flat(fields []string, rows [][]any) ([]any, error) {
	if len(fields) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNotFlat, len(fields))
	}
	out := make([]any, 0, len(rows))
	for i, row := range rows {
		if len(row) != 1 {
			return nil, fmt.Errorf("row %d: %w", i, ErrColumnMismatch)
		}
		out = append(out, row[0])
	}
	return out, nil
}

// Mappings returns each row as a field name to value map. Used for grouped
// and aggregate results.
func Mappings(fields []string, rows [][]any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(fields) {
			return nil, fmt.Errorf("row %d: %w: %d values for %d fields", i, ErrColumnMismatch, len(row), len(fields))
		}
		m := make(map[string]any, len(fields))
		for j, name := range fields {
			m[name] = row[j]
		}
		out = append(out, m)
	}
	return out, nil
}

// FieldValue returns the value to store for f. A relation stores the primary
// key of its loaded record, or else the raw foreign key.
func FieldValue(rec *schema.Record, f schema.Field) any {
	if f.IsRelation() {
		if rel, ok := rec.Related(f.Name); ok {
			return rel.PK()
		}
	}
	return rec.Get(f.Name)
}

// InsertValues returns the fields and values of an INSERT in declaration
// order. Nil values take the field's create default, which is written back
// to the record. An auto-increment primary key without a value is left out.
func InsertValues(rec *schema.Record) ([]schema.Field, []any) {
	fields := rec.Model().Fields()
	outFields := make([]schema.Field, 0, len(fields))
	values := make([]any, 0, len(fields))
	for _, f := range fields {
		v := FieldValue(rec, f)
		if v == nil && f.OnCreate != nil {
			v = f.OnCreate()
			rec.Set(f.Name, v)
		}
		if v == nil && f.PrimaryKey && f.AutoIncrement {
			continue
		}
		outFields = append(outFields, f)
		values = append(values, v)
	}
	return outFields, values
}

// UpdateValues returns the fields and values of an UPDATE of rec.
//
// With no names, every non-key field is written and nil values take the
// field's update default, written back to the record. With names, exactly
// those fields are written with their current values.
func UpdateValues(rec *schema.Record, names []string) ([]schema.Field, []any, error) {
	model := rec.Model()
	if len(names) > 0 {
		fields := make([]schema.Field, 0, len(names))
		values := make([]any, 0, len(names))
		for _, name := range names {
			f, ok := model.Field(name)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %s.%s", domain.ErrUnknownField, model.Name(), name)
			}
			if f.PrimaryKey {
				return nil, nil, fmt.Errorf("%w: %s.%s", domain.ErrPrimaryKeyUpdate, model.Name(), name)
			}
			fields = append(fields, *f)
			values = append(values, FieldValue(rec, *f))
		}
		return fields, values, nil
	}

	all := model.Fields()
	fields := make([]schema.Field, 0, len(all))
	values := make([]any, 0, len(all))
	for _, f := range all {
		if f.PrimaryKey {
			continue
		}
		v := FieldValue(rec, f)
		if v == nil && f.OnUpdate != nil {
			v = f.OnUpdate()
			rec.Set(f.Name, v)
		}
		fields = append(fields, f)
		values = append(values, v)
	}
	return fields, values, nil
}
