// Package loader reads statement descriptor files (YAML, JSON or TOML) and
// builds the statements they describe.
//
// A descriptor file lists named statements:
//
//	statements:
//	  - name: adults
//	    kind: select
//	    model: User
//	    fields: [id, name]
//	    where:
//	      or:
//	        - {age__gt: 18}
//	        - {name__in: [al, bo]}
//	    order_by: [-age]
//	    limit: {offset: 0, length: 10}
//	  - name: purge
//	    kind: delete
//	    table: sessions
//	    where: {raw: "expires < CURRENT_TIMESTAMP"}
//
// Keys are read case-insensitively, so field names in descriptor files are
// expected in lower case.
package loader

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
)

// ErrInvalidDescriptor is returned for a malformed statement descriptor.
var ErrInvalidDescriptor = errors.New("invalid statement descriptor")

// Descriptor is one statement as written in a descriptor file.
type Descriptor struct {
	Name     string            `mapstructure:"name"`
	Kind     string            `mapstructure:"kind"`
	Model    string            `mapstructure:"model"`
	Table    string            `mapstructure:"table"`
	Fields   []string          `mapstructure:"fields"`
	Aliases  map[string]string `mapstructure:"aliases"`
	Distinct bool              `mapstructure:"distinct"`
	Where    any               `mapstructure:"where"`
	GroupBy  []string          `mapstructure:"group_by"`
	OrderBy  []string          `mapstructure:"order_by"`
	Limit    *LimitSpec        `mapstructure:"limit"`
	Set      map[string]any    `mapstructure:"set"`
	Values   map[string]any    `mapstructure:"values"`
}

// LimitSpec is either an offset with an optional length, or an index.
type LimitSpec struct {
	Offset int  `mapstructure:"offset"`
	Length *int `mapstructure:"length"`
	Index  *int `mapstructure:"index"`
}

// Named is a built statement with its descriptor name.
type Named struct {
	Name      string
	Statement domain.Statement
}

// Load reads the descriptor file at path and builds its statements. Model
// names are resolved through reg, which may be nil when every descriptor
// names a table.
func Load(fs afero.Fs, path string, reg *schema.Registry) ([]Named, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read descriptors: %w", err)
	}

	var descriptors []Descriptor
	if err := v.UnmarshalKey("statements", &descriptors); err != nil {
		return nil, fmt.Errorf("failed to decode descriptors: %w", err)
	}

	out := make([]Named, 0, len(descriptors))
	for i, d := range descriptors {
		stmt, err := Build(d, reg)
		if err != nil {
			name := d.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("statement %s: %w", name, err)
		}
		out = append(out, Named{Name: d.Name, Statement: stmt})
	}
	return out, nil
}

// Build turns one descriptor into a statement.
func Build(d Descriptor, reg *schema.Registry) (domain.Statement, error) {
	var model *schema.Model
	if d.Model != "" {
		if reg == nil {
			return nil, fmt.Errorf("%w: model %q without a schema", ErrInvalidDescriptor, d.Model)
		}
		m, err := reg.Model(d.Model)
		if err != nil {
			return nil, err
		}
		model = m
	}

	where, err := ParseWhere(d.Where)
	if err != nil {
		return nil, err
	}

	table := d.Table
	if table == "" && model != nil {
		table = model.Table()
	}
	if table == "" {
		return nil, fmt.Errorf("%w: no table or model", ErrInvalidDescriptor)
	}

	switch strings.ToLower(d.Kind) {
	case "select", "":
		q := domain.Select{
			Table:    table,
			Fields:   d.Fields,
			Distinct: d.Distinct,
			Where:    where,
			GroupBy:  d.GroupBy,
			OrderBy:  d.OrderBy,
			Limit:    d.Limit.limit(),
		}
		if model != nil {
			q.Model = model
		}
		for _, name := range sortedKeys(d.Aliases) {
			q.Aliases = append(q.Aliases, domain.As(name, domain.Expr(d.Aliases[name])))
		}
		return q, nil

	case "insert":
		if model == nil {
			return nil, fmt.Errorf("%w: insert needs a model", ErrInvalidDescriptor)
		}
		return domain.Insert{Table: table, Record: model.New(d.Values)}, nil

	case "update":
		u := domain.Update{Table: table, Where: where}
		if model != nil {
			u.Model = model
		}
		for _, name := range sortedKeys(d.Set) {
			u.Set = append(u.Set, domain.Set(name, d.Set[name]))
		}
		return u, nil

	case "delete":
		del := domain.Delete{Table: table, Where: where}
		if model != nil {
			del.Model = model
		}
		return del, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDescriptor, d.Kind)
}

func (l *LimitSpec) limit() *domain.Limit {
	switch {
	case l == nil:
		return nil
	case l.Index != nil:
		return domain.At(*l.Index)
	case l.Length != nil:
		return domain.Slice(l.Offset, *l.Length)
	}
	return domain.SliceFrom(l.Offset)
}

// ParseWhere builds a condition tree from decoded descriptor data:
//
//   - a map of "field__op" keys is a leaf;
//   - {and: [...]} and {or: [...]} join their elements;
//   - {raw: "..."} is a literal SQL fragment;
//   - a list joins its elements with AND.
func ParseWhere(v any) (domain.Node, error) {
	switch w := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return parseList(domain.And, w)
	case map[string]any:
		return parseMap(w)
	case map[any]any:
		m := make(map[string]any, len(w))
		for k, val := range w {
			m[fmt.Sprint(k)] = val
		}
		return parseMap(m)
	}
	return nil, fmt.Errorf("%w: unexpected condition %T", ErrInvalidDescriptor, v)
}

func parseMap(m map[string]any) (domain.Node, error) {
	for _, key := range []string{"and", "or", "raw"} {
		val, ok := m[key]
		if !ok {
			continue
		}
		if len(m) != 1 {
			return nil, fmt.Errorf("%w: %q cannot be mixed with other keys", ErrInvalidDescriptor, key)
		}
		switch key {
		case "raw":
			sql, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("%w: raw condition must be a string", ErrInvalidDescriptor)
			}
			return domain.RawSQL(sql), nil
		default:
			list, ok := val.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: %q needs a list", ErrInvalidDescriptor, key)
			}
			join := domain.And
			if key == "or" {
				join = domain.Or
			}
			return parseList(join, list)
		}
	}
	leaf, err := domain.Lookup(m)
	if err != nil {
		return nil, err
	}
	return leaf, nil
}

func parseList(join func(...domain.Node) domain.Node, list []any) (domain.Node, error) {
	nodes := make([]domain.Node, 0, len(list))
	for _, item := range list {
		n, err := ParseWhere(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return join(nodes...), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
