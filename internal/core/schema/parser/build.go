package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/satishbabariya/ormlite-go/internal/core/schema"
)

// ErrInvalidAttribute is returned for unknown or malformed attributes.
var ErrInvalidAttribute = errors.New("invalid attribute")

// Load reads and parses the declaration file at path and builds a registry.
func Load(fs afero.Fs, path string) (*schema.Registry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema: %w", err)
	}
	defer f.Close()

	file, err := Parse(path, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return file.Registry()
}

// Registry builds and validates the declared models.
func (f *File) Registry() (*schema.Registry, error) {
	models := make([]*schema.Model, 0, len(f.Models))
	for _, decl := range f.Models {
		m, err := decl.build()
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return schema.NewRegistry(models...)
}

func (d *ModelDecl) build() (*schema.Model, error) {
	b := schema.NewModel(d.Name)
	for _, attr := range d.Attributes {
		switch attr.Name {
		case "table":
			table, err := attr.stringArg()
			if err != nil {
				return nil, err
			}
			b.Table(table)
		default:
			return nil, fmt.Errorf("%s: %w: @%s on model %s", attr.Pos, ErrInvalidAttribute, attr.Name, d.Name)
		}
	}

	for _, fd := range d.Fields {
		field, err := fd.build()
		if err != nil {
			return nil, err
		}
		b.Field(field)
	}

	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Pos, err)
	}
	return m, nil
}

func (d *FieldDecl) build() (schema.Field, error) {
	var opts []schema.FieldOption
	if d.Optional {
		opts = append(opts, schema.Nullable())
	}

	var (
		column string
		id     *Attribute
	)
	for _, attr := range d.Attributes {
		switch attr.Name {
		case "id":
			id = attr
		case "auto":
			opts = append(opts, schema.AutoIncrement())
		case "column":
			c, err := attr.stringArg()
			if err != nil {
				return schema.Field{}, err
			}
			column = c
		case "default":
			fn, err := attr.valueArg()
			if err != nil {
				return schema.Field{}, err
			}
			opts = append(opts, schema.OnCreate(fn))
		case "onUpdate":
			fn, err := attr.valueArg()
			if err != nil {
				return schema.Field{}, err
			}
			opts = append(opts, schema.OnUpdate(fn))
		default:
			return schema.Field{}, fmt.Errorf("%s: %w: @%s on field %s", attr.Pos, ErrInvalidAttribute, attr.Name, d.Name)
		}
	}
	if column != "" {
		opts = append(opts, schema.Column(column))
	}

	typ, err := schema.ParseFieldType(d.Type)
	if err != nil {
		// Anything that is not a builtin type names a related model.
		if id != nil {
			return schema.Field{}, fmt.Errorf("%s: %w: @id on relation %s", id.Pos, ErrInvalidAttribute, d.Name)
		}
		return schema.Relation(d.Name, d.Type, opts...), nil
	}
	if id != nil {
		if typ == schema.TypeInt {
			return schema.PrimaryKey(d.Name, opts...), nil
		}
		opts = append(opts, schema.Primary())
	}
	return schema.NewField(d.Name, typ, opts...), nil
}

func (a *Attribute) stringArg() (string, error) {
	if len(a.Args) != 1 || a.Args[0].String == nil {
		return "", fmt.Errorf("%s: %w: @%s takes one string argument", a.Pos, ErrInvalidAttribute, a.Name)
	}
	return *a.Args[0].String, nil
}

func (a *Attribute) valueArg() (schema.ValueFunc, error) {
	if len(a.Args) != 1 {
		return nil, fmt.Errorf("%s: %w: @%s takes one argument", a.Pos, ErrInvalidAttribute, a.Name)
	}
	v := a.Args[0]
	switch {
	case v.String != nil:
		return schema.Value(*v.String), nil
	case v.Number != nil:
		if strings.Contains(*v.Number, ".") {
			n, err := strconv.ParseFloat(*v.Number, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", v.Pos, err)
			}
			return schema.Value(n), nil
		}
		n, err := strconv.ParseInt(*v.Number, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.Pos, err)
		}
		return schema.Value(n), nil
	case v.Call != nil && *v.Call == "now":
		return schema.Now, nil
	case v.Ident != nil && (*v.Ident == "true" || *v.Ident == "false"):
		return schema.Value(*v.Ident == "true"), nil
	case v.Ident != nil && *v.Ident == "null":
		return schema.Value(nil), nil
	}
	return nil, fmt.Errorf("%s: %w: unsupported default in @%s", v.Pos, ErrInvalidAttribute, a.Name)
}
