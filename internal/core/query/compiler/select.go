package compiler

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
)

// CompileSelect compiles a SELECT.
func (c *Compiler) CompileSelect(q domain.Select) (domain.Compiled, error) {
	table := tableOf(q.Table, q.Model)
	compiled, err := c.compileSelect(q, table)
	if err != nil {
		return domain.Compiled{}, domain.NewCompileError(q.Kind(), table, err)
	}
	return compiled, nil
}

func (c *Compiler) compileSelect(q domain.Select, table string) (domain.Compiled, error) {
	if table == "" {
		return domain.Compiled{}, domain.ErrMissingTable
	}

	var sqlBuilder strings.Builder
	var args []any
	argIndex := 1

	sqlBuilder.WriteString("SELECT ")
	if q.Distinct {
		sqlBuilder.WriteString("DISTINCT ")
	}
	sqlBuilder.WriteString(strings.Join(c.projection(q), ", "))

	sqlBuilder.WriteString(" FROM ")
	sqlBuilder.WriteString(c.dialect.Quote(table))

	whereArgs, err := c.where(&sqlBuilder, q.Where, q.Model, &argIndex)
	if err != nil {
		return domain.Compiled{}, err
	}
	args = append(args, whereArgs...)

	if len(q.GroupBy) > 0 {
		groups := make([]string, len(q.GroupBy))
		for i, name := range q.GroupBy {
			groups[i] = c.column(q.Model, name)
		}
		sqlBuilder.WriteString(" GROUP BY ")
		sqlBuilder.WriteString(strings.Join(groups, ", "))
	}

	if len(q.OrderBy) > 0 {
		orders := make([]string, len(q.OrderBy))
		for i, name := range q.OrderBy {
			if desc, ok := strings.CutPrefix(name, "-"); ok {
				orders[i] = c.column(q.Model, desc) + " DESC"
				continue
			}
			orders[i] = c.column(q.Model, name)
		}
		sqlBuilder.WriteString(" ORDER BY ")
		sqlBuilder.WriteString(strings.Join(orders, ", "))
	}

	if q.Limit != nil {
		length := c.dialect.AllRows()
		if q.Limit.Length != nil {
			length = fmt.Sprintf("%d", *q.Limit.Length)
		}
		fmt.Fprintf(&sqlBuilder, " LIMIT %s OFFSET %d", length, q.Limit.Offset)
	}

	sqlBuilder.WriteString(";")
	return domain.Compiled{SQL: sqlBuilder.String(), Args: args}, nil
}

// projection lists plain columns first, then relation columns aliased to
// their field names, then computed aliases.
func (c *Compiler) projection(q domain.Select) []string {
	var columns, aliases []string
	for _, name := range q.Fields {
		if q.Model != nil {
			if f, ok := q.Model.Field(name); ok {
				column := c.dialect.Quote(f.ColumnName())
				if f.IsRelation() {
					aliases = append(aliases, column+" AS "+c.dialect.Quote(f.Name))
					continue
				}
				columns = append(columns, column)
				continue
			}
		}
		columns = append(columns, c.dialect.Quote(name))
	}

	col := func(field string) string { return c.column(q.Model, field) }
	for _, a := range q.Aliases {
		aliases = append(aliases, a.Expr.Render(col)+" AS "+c.dialect.Quote(a.Name))
	}

	columns = append(columns, aliases...)
	if len(columns) == 0 {
		return []string{"*"}
	}
	return columns
}
