package domain

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Node is a node of a condition tree: a Leaf, a Group or a Raw fragment.
// Trees are built bottom-up from values, so they are finite and acyclic.
type Node interface {
	// Empty reports whether the node contributes no predicate.
	Empty() bool
	node()
}

// Cond is a single field comparison.
type Cond struct {
	Field  string
	Op     Operator
	Values []any
}

// NewCond builds a condition, checking the operator's arity.
func NewCond(field string, op Operator, values ...any) (Cond, error) {
	arity, ok := arityOf[op]
	if !ok {
		return Cond{}, fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
	}
	if !arity.Check(len(values)) {
		return Cond{}, fmt.Errorf("%w: %s takes %s, got %d values", ErrArity, op, arity, len(values))
	}
	return Cond{Field: field, Op: op, Values: values}, nil
}

// Leaf is an ordered list of comparisons joined with AND.
type Leaf struct {
	Conds []Cond
}

// Empty reports whether the leaf has no comparisons.
func (l Leaf) Empty() bool { return len(l.Conds) == 0 }
func (Leaf) node()         {}

// Logic joins the children of a Group.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Group joins child nodes with a keyword, in order.
type Group struct {
	Logic    Logic
	Children []Node
}

// Empty reports whether every child is empty.
func (g Group) Empty() bool {
	for _, c := range g.Children {
		if c != nil && !c.Empty() {
			return false
		}
	}
	return true
}
func (Group) node() {}

// Raw is a literal SQL fragment inserted verbatim into the WHERE clause.
//
// Raw fragments bypass parameterization: anything interpolated into SQL by
// the caller is not escaped. Only build them from trusted input.
type Raw struct {
	SQL string
}

// Empty reports whether the fragment is blank.
func (r Raw) Empty() bool { return strings.TrimSpace(r.SQL) == "" }
func (Raw) node()         {}

// RawSQL wraps a trusted SQL fragment. See Raw.
func RawSQL(sql string) Raw {
	return Raw{SQL: sql}
}

// Where builds a leaf from comparisons, joined with AND in the given order.
func Where(conds ...Cond) Leaf {
	return Leaf{Conds: conds}
}

// And joins nodes with AND. Empty nodes are dropped and a single remaining
// node is returned as is.
func And(nodes ...Node) Node {
	return combine(LogicAnd, nodes)
}

// Or joins nodes with OR.
func Or(nodes ...Node) Node {
	return combine(LogicOr, nodes)
}

func combine(logic Logic, nodes []Node) Node {
	children := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || n.Empty() {
			continue
		}
		children = append(children, n)
	}
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return Group{Logic: logic, Children: children}
}

// IsEmpty reports whether n is nil or contributes no predicate.
func IsEmpty(n Node) bool {
	return n == nil || n.Empty()
}

// FieldRef starts a fluent comparison on a field.
type FieldRef string

// F names the field of a comparison: F("age").Gt(18).
func F(name string) FieldRef {
	return FieldRef(name)
}

func (f FieldRef) cond(op Operator, values ...any) Cond {
	return Cond{Field: string(f), Op: op, Values: values}
}

func (f FieldRef) Eq(v any) Cond   { return f.cond(OpEq, v) }
func (f FieldRef) Ne(v any) Cond   { return f.cond(OpNe, v) }
func (f FieldRef) Gt(v any) Cond   { return f.cond(OpGt, v) }
func (f FieldRef) Ge(v any) Cond   { return f.cond(OpGe, v) }
func (f FieldRef) Lt(v any) Cond   { return f.cond(OpLt, v) }
func (f FieldRef) Le(v any) Cond   { return f.cond(OpLe, v) }
func (f FieldRef) Like(v any) Cond { return f.cond(OpLike, v) }

// In matches any of the values, in the given order.
func (f FieldRef) In(values ...any) Cond { return f.cond(OpIn, values...) }

// NotIn matches none of the values.
func (f FieldRef) NotIn(values ...any) Cond { return f.cond(OpNotIn, values...) }

// Range matches start <= field <= end.
func (f FieldRef) Range(start, end any) Cond { return f.cond(OpRange, start, end) }

func (f FieldRef) IsNull() Cond  { return f.cond(OpIsNull) }
func (f FieldRef) NotNull() Cond { return f.cond(OpNotNull) }

// ParseKey splits a "field__op" key. A key without a suffix compares for
// equality.
func ParseKey(key string) (string, Operator, error) {
	name, suffix, found := strings.Cut(key, "__")
	if !found || name == "" {
		return key, OpEq, nil
	}
	op, err := ParseOperator(suffix)
	if err != nil {
		return "", "", fmt.Errorf("condition %q: %w", key, err)
	}
	return name, op, nil
}

// Lookup builds a leaf from "field__op" keys. Keys are taken in sorted order
// so that the compiled SQL is stable.
func Lookup(conditions map[string]any) (Leaf, error) {
	keys := make([]string, 0, len(conditions))
	for k := range conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	leaf := Leaf{Conds: make([]Cond, 0, len(keys))}
	for _, key := range keys {
		c, err := condFromKey(key, conditions[key])
		if err != nil {
			return Leaf{}, err
		}
		leaf.Conds = append(leaf.Conds, c)
	}
	return leaf, nil
}

func condFromKey(key string, value any) (Cond, error) {
	name, op, err := ParseKey(key)
	if err != nil {
		return Cond{}, err
	}
	switch arityOf[op] {
	case ArityNone:
		if b, ok := value.(bool); ok && !b {
			op = negateNull(op)
		}
		return NewCond(name, op)
	case ArityList, ArityPair:
		values, ok := listOf(value)
		if !ok {
			return Cond{}, fmt.Errorf("%w: %s requires a list, got %T", ErrArity, key, value)
		}
		return NewCond(name, op, values...)
	default:
		return NewCond(name, op, value)
	}
}

func negateNull(op Operator) Operator {
	if op == OpIsNull {
		return OpNotNull
	}
	return OpIsNull
}

// listOf flattens any slice or array into []any.
func listOf(v any) ([]any, bool) {
	if vs, ok := v.([]any); ok {
		return vs, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	if _, isBytes := v.([]byte); isBytes {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
