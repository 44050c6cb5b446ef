package domain

import (
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
)

// Schema resolves field names. An absent field is passed through literally,
// as a raw column name or SQL expression.
type Schema interface {
	Field(name string) (*schema.Field, bool)
}

// Statement is a descriptor the compiler can turn into SQL.
type Statement interface {
	// Kind names the statement for errors and logs.
	Kind() string
}

// RawStatement is a statement that renders its own SQL. Its output is sent
// as is.
type RawStatement interface {
	Statement
	AsSQL() (string, []any, error)
}

// Compiled is SQL text with its ordered parameters. The i-th placeholder in
// SQL binds Args[i].
type Compiled struct {
	SQL  string
	Args []any
}

// Select describes a SELECT.
type Select struct {
	// Model resolves field names to columns. Optional.
	Model Schema
	// Table defaults to the model's table when Model has one.
	Table    string
	Fields   []string
	Aliases  []Alias
	Distinct bool
	Where    Node
	GroupBy  []string
	// OrderBy entries prefixed with "-" sort descending.
	OrderBy []string
	Limit   *Limit
}

func (Select) Kind() string { return "select" }

// Columns names the result columns in the order they are selected: plain
// fields, then relation fields, then aliases. It is empty for SELECT *.
func (q Select) Columns() []string {
	var plain, related []string
	for _, name := range q.Fields {
		if q.Model != nil {
			if f, ok := q.Model.Field(name); ok && f.IsRelation() {
				related = append(related, name)
				continue
			}
		}
		plain = append(plain, name)
	}
	for _, a := range q.Aliases {
		related = append(related, a.Name)
	}
	return append(plain, related...)
}

// Insert describes an INSERT of one record.
type Insert struct {
	// Table defaults to the record's model table.
	Table  string
	Record *schema.Record
}

func (Insert) Kind() string { return "insert" }

// Update describes an UPDATE.
//
// With a Record, the statement targets that row by primary key and sets
// either Fields or every non-key field. With Set, exactly those assignments
// are made and only Where limits the rows.
//
// WARNING: Set without Where updates every row of the table.
type Update struct {
	Table  string
	Model  Schema
	Record *schema.Record
	Fields []string
	Set    []Assignment
	Where  Node
}

func (Update) Kind() string { return "update" }

// Delete describes a DELETE. Either Record or Where must be set.
type Delete struct {
	Table  string
	Model  Schema
	Record *schema.Record
	Where  Node
}

func (Delete) Kind() string { return "delete" }

// Assignment is one `column = value` of an UPDATE.
type Assignment struct {
	Field string
	Value any
}

// Set builds an assignment.
func Set(field string, value any) Assignment {
	return Assignment{Field: field, Value: value}
}

// Alias is a computed output column `<expr> AS <name>`.
type Alias struct {
	Expr Expression
	Name string
}

// As names an expression in the output.
func As(name string, expr Expression) Alias {
	return Alias{Expr: expr, Name: name}
}

// Expression renders SQL. col resolves a field name to a quoted column.
type Expression interface {
	Render(col func(field string) string) string
}

// Expr is a literal SQL expression.
type Expr string

// Render returns the expression verbatim.
func (e Expr) Render(func(string) string) string { return string(e) }

// Aggregate applies an SQL aggregate function to a field.
type Aggregate struct {
	Func  string
	Field string
}

// Render implements Expression.
func (a Aggregate) Render(col func(string) string) string {
	if a.Field == "*" {
		return a.Func + "(*)"
	}
	return a.Func + "(" + col(a.Field) + ")"
}

func Count(field string) Aggregate { return Aggregate{Func: "COUNT", Field: field} }
func Sum(field string) Aggregate   { return Aggregate{Func: "SUM", Field: field} }
func Avg(field string) Aggregate   { return Aggregate{Func: "AVG", Field: field} }
func Max(field string) Aggregate   { return Aggregate{Func: "MAX", Field: field} }
func Min(field string) Aggregate   { return Aggregate{Func: "MIN", Field: field} }

// Limit is a pagination window. A nil Length means all remaining rows.
type Limit struct {
	Offset int
	Length *int
}

// Slice selects length rows starting at offset.
func Slice(offset, length int) *Limit {
	return &Limit{Offset: offset, Length: &length}
}

// SliceFrom selects every row from offset on.
func SliceFrom(offset int) *Limit {
	return &Limit{Offset: offset}
}

// At selects the single row at index.
func At(index int) *Limit {
	return Slice(index, 1)
}
