package mapper

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// timeLayouts are tried in order when a datetime arrives as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ScanStruct copies values into the exported fields of the struct dest
// points to. A struct field is matched by the name of its `orm` tag, then
// its `db` or `json` tag, then its lower-cased Go name.
func ScanStruct(values map[string]any, dest any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct, got %T", dest)
	}
	return scanInto(values, destValue.Elem())
}

// ScanStructs fills the slice dest points to, one element per row.
func ScanStructs(rows []map[string]any, dest any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to slice, got %T", dest)
	}
	destValue = destValue.Elem()

	elemType := destValue.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr
	if isPtr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("dest element must be a struct, got %s", elemType)
	}

	out := reflect.MakeSlice(destValue.Type(), 0, len(rows))
	for i, row := range rows {
		elem := reflect.New(elemType)
		if err := scanInto(row, elem.Elem()); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if isPtr {
			out = reflect.Append(out, elem)
		} else {
			out = reflect.Append(out, elem.Elem())
		}
	}
	destValue.Set(out)
	return nil
}

func scanInto(values map[string]any, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}
		name := columnName(sf)
		if name == "-" {
			continue
		}
		value, ok := values[name]
		if !ok {
			if value, ok = findCaseInsensitive(values, name); !ok {
				continue
			}
		}
		if err := setFieldValue(fv, value); err != nil {
			return fmt.Errorf("failed to set field %s: %w", sf.Name, err)
		}
	}
	return nil
}

func columnName(sf reflect.StructField) string {
	for _, key := range []string{"orm", "db", "json"} {
		tag := sf.Tag.Get(key)
		if tag == "-" {
			return "-"
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return strings.ToLower(sf.Name)
}

func findCaseInsensitive(values map[string]any, key string) (any, bool) {
	for k, v := range values {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// setFieldValue sets a field value with type conversion.
func setFieldValue(field reflect.Value, value any) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	if b, ok := value.([]byte); ok {
		value = string(b)
	}

	valueReflect := reflect.ValueOf(value)
	fieldType := field.Type()

	if valueReflect.Type().AssignableTo(fieldType) {
		field.Set(valueReflect)
		return nil
	}

	if fieldType.Kind() == reflect.Ptr {
		ptr := reflect.New(fieldType.Elem())
		if err := setFieldValue(ptr.Elem(), value); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	switch fieldType.Kind() {
	case reflect.String:
		str, err := cast.ToStringE(value)
		if err != nil {
			return err
		}
		field.SetString(str)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(value)
		if err != nil {
			return err
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("%d overflows %s", n, fieldType)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(value)
		if err != nil {
			return err
		}
		if field.OverflowUint(n) {
			return fmt.Errorf("%d overflows %s", n, fieldType)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Struct:
		if fieldType != reflect.TypeOf(time.Time{}) {
			return fmt.Errorf("unsupported struct type: %s", fieldType)
		}
		t, err := toTime(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(t))

	default:
		return fmt.Errorf("unsupported field type: %s", fieldType)
	}

	return nil
}

// toTime tries the layouts drivers write first, then the formats cast knows.
func toTime(value any) (time.Time, error) {
	if s, ok := value.(string); ok {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return cast.ToTimeE(value)
}
