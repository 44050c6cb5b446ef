package domain

import "fmt"

// Operator is a comparison operator of a condition.
type Operator string

const (
	OpEq      Operator = "eq"
	OpNe      Operator = "ne"
	OpGt      Operator = "gt"
	OpGe      Operator = "ge"
	OpLt      Operator = "lt"
	OpLe      Operator = "le"
	OpIn      Operator = "in"
	OpNotIn   Operator = "notin"
	OpRange   Operator = "range"
	OpLike    Operator = "like"
	OpIsNull  Operator = "isnull"
	OpNotNull Operator = "notnull"
)

// Arity is the number of values an operator binds.
type Arity int

const (
	// ArityNone binds no value (IS NULL).
	ArityNone Arity = iota
	// ArityOne binds exactly one value.
	ArityOne
	// ArityPair binds exactly two values (BETWEEN).
	ArityPair
	// ArityList binds one value per element of a list (IN).
	ArityList
)

// Check reports whether n values fit the arity.
func (a Arity) Check(n int) bool {
	switch a {
	case ArityNone:
		return n == 0
	case ArityOne:
		return n == 1
	case ArityPair:
		return n == 2
	default:
		return true
	}
}

func (a Arity) String() string {
	switch a {
	case ArityNone:
		return "none"
	case ArityOne:
		return "one"
	case ArityPair:
		return "pair"
	default:
		return "list"
	}
}

// Template is the SQL shape of an operator. SQL holds one %s slot per value
// for ArityOne and ArityPair, a single %s slot for the comma-joined
// placeholder group of ArityList, and none for ArityNone.
type Template struct {
	SQL   string
	Arity Arity
}

// OperatorTable maps operators to their SQL templates.
type OperatorTable map[Operator]Template

// DefaultOperators returns a fresh copy of the standard operator table.
func DefaultOperators() OperatorTable {
	return OperatorTable{
		OpEq:      {SQL: "= %s", Arity: ArityOne},
		OpNe:      {SQL: "!= %s", Arity: ArityOne},
		OpGt:      {SQL: "> %s", Arity: ArityOne},
		OpGe:      {SQL: ">= %s", Arity: ArityOne},
		OpLt:      {SQL: "< %s", Arity: ArityOne},
		OpLe:      {SQL: "<= %s", Arity: ArityOne},
		OpIn:      {SQL: "IN (%s)", Arity: ArityList},
		OpNotIn:   {SQL: "NOT IN (%s)", Arity: ArityList},
		OpRange:   {SQL: "BETWEEN %s AND %s", Arity: ArityPair},
		OpLike:    {SQL: "LIKE %s", Arity: ArityOne},
		OpIsNull:  {SQL: "IS NULL", Arity: ArityNone},
		OpNotNull: {SQL: "IS NOT NULL", Arity: ArityNone},
	}
}

// Lookup returns the template of op.
func (t OperatorTable) Lookup(op Operator) (Template, error) {
	tpl, ok := t[op]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
	}
	return tpl, nil
}

// Clone returns a copy that may be modified independently.
func (t OperatorTable) Clone() OperatorTable {
	out := make(OperatorTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// arityOf is the arity the fluent builders enforce.
var arityOf = map[Operator]Arity{
	OpEq: ArityOne, OpNe: ArityOne, OpGt: ArityOne, OpGe: ArityOne,
	OpLt: ArityOne, OpLe: ArityOne, OpLike: ArityOne,
	OpIn: ArityList, OpNotIn: ArityList,
	OpRange:  ArityPair,
	OpIsNull: ArityNone, OpNotNull: ArityNone,
}

// ParseOperator maps an operator suffix such as "gt" to an Operator.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if _, ok := arityOf[op]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOperator, s)
	}
	return op, nil
}
