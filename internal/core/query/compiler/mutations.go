package compiler

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/query/mapper"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
)

// CompileInsert compiles an INSERT of one record. Missing values take their
// create defaults, which are written back to the record.
func (c *Compiler) CompileInsert(ins domain.Insert) (domain.Compiled, error) {
	if ins.Record == nil {
		return domain.Compiled{}, domain.NewCompileError(ins.Kind(), ins.Table, domain.ErrMissingRecord)
	}
	table := tableOf(ins.Table, ins.Record.Model())

	fields, values := mapper.InsertValues(ins.Record)

	var sqlBuilder strings.Builder
	argIndex := 1
	fmt.Fprintf(&sqlBuilder, "INSERT INTO %s", c.dialect.Quote(table))
	if len(fields) == 0 {
		if c.dialect == domain.MySQL {
			sqlBuilder.WriteString(" () VALUES ();")
		} else {
			sqlBuilder.WriteString(" DEFAULT VALUES;")
		}
		return domain.Compiled{SQL: sqlBuilder.String()}, nil
	}

	columns := make([]string, len(fields))
	placeholders := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = c.dialect.Quote(f.ColumnName())
		placeholders[i] = c.placeholder(&argIndex)
	}
	fmt.Fprintf(&sqlBuilder, " (%s) VALUES (%s);", strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	return domain.Compiled{SQL: sqlBuilder.String(), Args: values}, nil
}

// CompileUpdate compiles an UPDATE.
func (c *Compiler) CompileUpdate(upd domain.Update) (domain.Compiled, error) {
	model := upd.Model
	if model == nil && upd.Record != nil {
		model = upd.Record.Model()
	}
	table := tableOf(upd.Table, model)
	compiled, err := c.compileUpdate(upd, model, table)
	if err != nil {
		return domain.Compiled{}, domain.NewCompileError(upd.Kind(), table, err)
	}
	return compiled, nil
}

func (c *Compiler) compileUpdate(upd domain.Update, model domain.Schema, table string) (domain.Compiled, error) {
	if table == "" {
		return domain.Compiled{}, domain.ErrMissingTable
	}

	var (
		columns []string
		values  []any
		where   = upd.Where
	)

	switch {
	case upd.Record != nil:
		pk, err := pkCondition(upd.Record)
		if err != nil {
			return domain.Compiled{}, err
		}
		where = domain.And(where, pk)

		fields, vs, err := mapper.UpdateValues(upd.Record, upd.Fields)
		if err != nil {
			return domain.Compiled{}, err
		}
		for _, f := range fields {
			columns = append(columns, c.dialect.Quote(f.ColumnName()))
		}
		values = vs

	case len(upd.Set) > 0:
		for _, a := range upd.Set {
			column, err := c.assignable(model, a.Field)
			if err != nil {
				return domain.Compiled{}, err
			}
			columns = append(columns, column)
			values = append(values, a.Value)
		}
	}

	if len(columns) == 0 {
		return domain.Compiled{}, domain.ErrNoUpdateTarget
	}

	var sqlBuilder strings.Builder
	argIndex := 1
	fmt.Fprintf(&sqlBuilder, "UPDATE %s SET ", c.dialect.Quote(table))
	for i, column := range columns {
		if i > 0 {
			sqlBuilder.WriteString(", ")
		}
		sqlBuilder.WriteString(column)
		sqlBuilder.WriteString(" = ")
		sqlBuilder.WriteString(c.placeholder(&argIndex))
	}

	args := append([]any(nil), values...)
	whereArgs, err := c.where(&sqlBuilder, where, model, &argIndex)
	if err != nil {
		return domain.Compiled{}, err
	}
	args = append(args, whereArgs...)
	sqlBuilder.WriteString(";")

	return domain.Compiled{SQL: sqlBuilder.String(), Args: args}, nil
}

// assignable resolves the column of an explicit assignment. Without a
// schema the name is used as the column.
func (c *Compiler) assignable(model domain.Schema, name string) (string, error) {
	if model == nil {
		return c.dialect.Quote(name), nil
	}
	f, ok := model.Field(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
	}
	if f.PrimaryKey {
		return "", fmt.Errorf("%w: %s", domain.ErrPrimaryKeyUpdate, name)
	}
	return c.dialect.Quote(f.ColumnName()), nil
}

// CompileDelete compiles a DELETE. A condition is required.
func (c *Compiler) CompileDelete(del domain.Delete) (domain.Compiled, error) {
	model := del.Model
	if model == nil && del.Record != nil {
		model = del.Record.Model()
	}
	table := tableOf(del.Table, model)
	compiled, err := c.compileDelete(del, model, table)
	if err != nil {
		return domain.Compiled{}, domain.NewCompileError(del.Kind(), table, err)
	}
	return compiled, nil
}

func (c *Compiler) compileDelete(del domain.Delete, model domain.Schema, table string) (domain.Compiled, error) {
	if table == "" {
		return domain.Compiled{}, domain.ErrMissingTable
	}

	where := del.Where
	if del.Record != nil {
		pk, err := pkCondition(del.Record)
		if err != nil {
			return domain.Compiled{}, err
		}
		where = domain.And(where, pk)
	}
	if domain.IsEmpty(where) {
		return domain.Compiled{}, domain.ErrMissingCondition
	}

	var sqlBuilder strings.Builder
	argIndex := 1
	fmt.Fprintf(&sqlBuilder, "DELETE FROM %s", c.dialect.Quote(table))
	args, err := c.where(&sqlBuilder, where, model, &argIndex)
	if err != nil {
		return domain.Compiled{}, err
	}
	sqlBuilder.WriteString(";")

	return domain.Compiled{SQL: sqlBuilder.String(), Args: args}, nil
}

// pkCondition targets rec by primary key.
func pkCondition(rec *schema.Record) (domain.Node, error) {
	pk := rec.PK()
	if pk == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPrimaryKey, rec)
	}
	return domain.Where(domain.F(rec.Model().PrimaryKey().Name).Eq(pk)), nil
}
