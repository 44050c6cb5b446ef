package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// FromStruct declares a model from the exported fields of a struct, read
// once. Fields are configured with an `orm` tag:
//
//	type Post struct {
//		ID     int64     `orm:"id,pk"`
//		Title  string    `orm:"title"`
//		Author int64     `orm:"author,rel=User,column=author_id"`
//		Draft  bool      `orm:"draft,null"`
//		Skip   string    `orm:"-"`
//	}
//
// The first tag element is the field name (default: lower-cased Go name).
// Options: pk, auto, null, column=<c>, rel=<Model>, type=<type>.
func FromStruct(name, table string, v any) (*Model, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrUnsupportedStruct, v)
	}

	b := NewModel(name)
	if table != "" {
		b.Table(table)
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("orm")
		if tag == "-" {
			continue
		}
		f, err := fieldFromTag(sf, tag)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, sf.Name, err)
		}
		b.Field(f)
	}
	return b.Build()
}

func fieldFromTag(sf reflect.StructField, tag string) (Field, error) {
	parts := strings.Split(tag, ",")
	f := Field{Name: strings.TrimSpace(parts[0])}
	if f.Name == "" {
		f.Name = strings.ToLower(sf.Name)
	}

	for _, opt := range parts[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch key {
		case "pk":
			f.PrimaryKey = true
		case "auto":
			f.AutoIncrement = true
		case "null":
			f.Nullable = true
		case "column":
			f.Column = val
		case "rel":
			f.Type = TypeRelation
			f.Related = val
		case "type":
			typ, err := ParseFieldType(val)
			if err != nil {
				return Field{}, err
			}
			f.Type = typ
		case "":
		default:
			return Field{}, fmt.Errorf("%w: unknown tag option %q", ErrUnsupportedStruct, key)
		}
	}

	if f.Type == "" {
		typ, nullable, err := typeOf(sf.Type)
		if err != nil {
			return Field{}, err
		}
		f.Type = typ
		f.Nullable = f.Nullable || nullable
	}
	if f.Type == TypeRelation && f.Column == "" {
		f.Column = f.Name + "_id"
	}
	if f.PrimaryKey && f.Type == TypeInt {
		f.AutoIncrement = true
	}
	return f, nil
}

func typeOf(t reflect.Type) (FieldType, bool, error) {
	nullable := false
	if t.Kind() == reflect.Ptr {
		nullable = true
		t = t.Elem()
	}
	if t == timeType {
		return TypeDateTime, nullable, nil
	}
	switch t.Kind() {
	case reflect.String:
		return TypeString, nullable, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInt, nullable, nil
	case reflect.Float32, reflect.Float64:
		return TypeFloat, nullable, nil
	case reflect.Bool:
		return TypeBool, nullable, nil
	}
	return "", false, fmt.Errorf("%w: unsupported field type %s", ErrUnsupportedStruct, t)
}
