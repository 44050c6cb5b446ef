// Package compiler turns statement descriptors into parameterized SQL.
//
// The compiler is pure: it performs no I/O, never mutates a descriptor and
// is safe for concurrent use. Records passed to Insert and Update may have
// their defaults written back, which is the only side effect.
package compiler

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
)

// Compiler compiles statements for one SQL dialect.
type Compiler struct {
	dialect   domain.SQLDialect
	operators domain.OperatorTable
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOperators replaces the operator table.
func WithOperators(table domain.OperatorTable) Option {
	return func(c *Compiler) {
		c.operators = table.Clone()
	}
}

// New creates a compiler for dialect using the default operator table.
func New(dialect domain.SQLDialect, opts ...Option) *Compiler {
	c := &Compiler{
		dialect:   dialect,
		operators: domain.DefaultOperators(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dialect returns the compiler's dialect.
func (c *Compiler) Dialect() domain.SQLDialect {
	return c.dialect
}

// Compile compiles any known statement. A statement implementing
// domain.RawStatement renders itself.
func (c *Compiler) Compile(stmt domain.Statement) (domain.Compiled, error) {
	switch s := stmt.(type) {
	case domain.Select:
		return c.CompileSelect(s)
	case *domain.Select:
		if s == nil {
			return domain.Compiled{}, nilStatement("select", stmt)
		}
		return c.CompileSelect(*s)
	case domain.Insert:
		return c.CompileInsert(s)
	case *domain.Insert:
		if s == nil {
			return domain.Compiled{}, nilStatement("insert", stmt)
		}
		return c.CompileInsert(*s)
	case domain.Update:
		return c.CompileUpdate(s)
	case *domain.Update:
		if s == nil {
			return domain.Compiled{}, nilStatement("update", stmt)
		}
		return c.CompileUpdate(*s)
	case domain.Delete:
		return c.CompileDelete(s)
	case *domain.Delete:
		if s == nil {
			return domain.Compiled{}, nilStatement("delete", stmt)
		}
		return c.CompileDelete(*s)
	case domain.RawStatement:
		sql, args, err := s.AsSQL()
		if err != nil {
			return domain.Compiled{}, domain.NewCompileError(s.Kind(), "", err)
		}
		return domain.Compiled{SQL: sql, Args: args}, nil
	}

	kind := "statement"
	if stmt != nil {
		kind = stmt.Kind()
	}
	return domain.Compiled{}, domain.NewCompileError(kind, "",
		fmt.Errorf("%w: %T", domain.ErrUncompilableStatement, stmt))
}

// nilStatement reports a nil descriptor pointer. Kind cannot be called on it.
func nilStatement(kind string, stmt domain.Statement) error {
	return domain.NewCompileError(kind, "",
		fmt.Errorf("%w: nil %T", domain.ErrUncompilableStatement, stmt))
}

// CompileWhere compiles a condition tree on its own. Field names are quoted
// as given.
func (c *Compiler) CompileWhere(node domain.Node) (string, []any, error) {
	argIndex := 1
	return c.buildWhere(node, nil, &argIndex)
}

// buildWhere compiles node. Placeholders are numbered from *argIndex on.
func (c *Compiler) buildWhere(node domain.Node, s domain.Schema, argIndex *int) (string, []any, error) {
	switch n := node.(type) {
	case nil:
		return "", nil, nil
	case domain.Raw:
		return n.SQL, nil, nil
	case domain.Leaf:
		return c.buildLeaf(n, s, argIndex)
	case domain.Group:
		return c.buildGroup(n, s, argIndex)
	}
	return "", nil, fmt.Errorf("unknown condition node %T", node)
}

func (c *Compiler) buildGroup(g domain.Group, s domain.Schema, argIndex *int) (string, []any, error) {
	children := make([]domain.Node, 0, len(g.Children))
	for _, child := range g.Children {
		if !domain.IsEmpty(child) {
			children = append(children, child)
		}
	}

	var (
		clauses []string
		args    []any
	)
	for _, child := range children {
		clause, childArgs, err := c.buildWhere(child, s, argIndex)
		if err != nil {
			return "", nil, err
		}
		if len(children) > 1 && compound(child) {
			clause = "(" + clause + ")"
		}
		clauses = append(clauses, clause)
		args = append(args, childArgs...)
	}

	logic := domain.LogicAnd
	if g.Logic == domain.LogicOr {
		logic = domain.LogicOr
	}
	return strings.Join(clauses, " "+string(logic)+" "), args, nil
}

// compound reports whether a node renders to more than one predicate and
// needs parentheses when joined with siblings.
func compound(n domain.Node) bool {
	switch v := n.(type) {
	case domain.Leaf:
		return len(v.Conds) > 1
	case domain.Raw:
		return true
	case domain.Group:
		count := 0
		for _, child := range v.Children {
			if !domain.IsEmpty(child) {
				count++
			}
		}
		if count == 1 {
			for _, child := range v.Children {
				if !domain.IsEmpty(child) {
					return compound(child)
				}
			}
		}
		return count > 1
	}
	return false
}

func (c *Compiler) buildLeaf(l domain.Leaf, s domain.Schema, argIndex *int) (string, []any, error) {
	clauses := make([]string, 0, len(l.Conds))
	var args []any
	for _, cond := range l.Conds {
		clause, condArgs, err := c.buildCondition(cond, s, argIndex)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, condArgs...)
	}
	return strings.Join(clauses, " AND "), args, nil
}

// buildCondition builds a single condition.
func (c *Compiler) buildCondition(cond domain.Cond, s domain.Schema, argIndex *int) (string, []any, error) {
	tpl, err := c.operators.Lookup(cond.Op)
	if err != nil {
		return "", nil, err
	}
	if !tpl.Arity.Check(len(cond.Values)) {
		return "", nil, fmt.Errorf("%w: %s on %s takes %s, got %d values",
			domain.ErrArity, cond.Op, cond.Field, tpl.Arity, len(cond.Values))
	}

	column := c.column(s, cond.Field)
	var op string
	switch tpl.Arity {
	case domain.ArityNone:
		op = tpl.SQL
	case domain.ArityOne:
		op = fmt.Sprintf(tpl.SQL, c.placeholder(argIndex))
	case domain.ArityPair:
		op = fmt.Sprintf(tpl.SQL, c.placeholder(argIndex), c.placeholder(argIndex))
	case domain.ArityList:
		if len(cond.Values) == 0 {
			if cond.Op == domain.OpNotIn {
				// Nothing is excluded.
				return "1 = 1", nil, nil
			}
			op = fmt.Sprintf(tpl.SQL, "NULL")
			break
		}
		placeholders := make([]string, len(cond.Values))
		for i := range cond.Values {
			placeholders[i] = c.placeholder(argIndex)
		}
		op = fmt.Sprintf(tpl.SQL, strings.Join(placeholders, ","))
	}

	args := make([]any, len(cond.Values))
	copy(args, cond.Values)
	return column + " " + op, args, nil
}

// placeholder returns the appropriate placeholder for the dialect.
func (c *Compiler) placeholder(argIndex *int) string {
	defer func() { *argIndex++ }()
	return c.dialect.Placeholder(*argIndex)
}

// column resolves a field name to its quoted column. Names unknown to s are
// quoted as given.
func (c *Compiler) column(s domain.Schema, name string) string {
	if s != nil {
		if f, ok := s.Field(name); ok {
			return c.dialect.Quote(f.ColumnName())
		}
	}
	return c.dialect.Quote(name)
}

func (c *Compiler) where(b *strings.Builder, node domain.Node, s domain.Schema, argIndex *int) ([]any, error) {
	if domain.IsEmpty(node) {
		return nil, nil
	}
	clause, args, err := c.buildWhere(node, s, argIndex)
	if err != nil {
		return nil, err
	}
	b.WriteString(" WHERE ")
	b.WriteString(clause)
	return args, nil
}

type tabler interface {
	Table() string
}

func tableOf(table string, s domain.Schema) string {
	if table != "" {
		return table
	}
	if t, ok := s.(tabler); ok && t != nil {
		return t.Table()
	}
	return ""
}
