// Package executor runs compiled statements against a database adapter.
//
// Every statement runs in its own scope: a transaction is begun, the
// statement runs, and the transaction is committed on success or rolled
// back on error or panic. The scope is always released before returning.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/satishbabariya/ormlite-go/internal/adapters/database"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/debug"
)

// Rows is a fully read result set.
type Rows struct {
	Columns []string
	Values  [][]any
}

// Result reports the effect of a statement that returns no rows.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// QueryExecutor executes compiled statements.
type QueryExecutor struct {
	db         database.Adapter
	logQueries bool
	logger     *slog.Logger
}

// Option configures a QueryExecutor.
type Option func(*QueryExecutor)

// WithQueryLogging logs every statement at debug level.
func WithQueryLogging(enable bool) Option {
	return func(e *QueryExecutor) {
		e.logQueries = enable
	}
}

// WithLogger replaces the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *QueryExecutor) {
		e.logger = l
	}
}

// NewQueryExecutor creates a new query executor.
func NewQueryExecutor(db database.Adapter, opts ...Option) *QueryExecutor {
	e := &QueryExecutor{db: db}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query runs a statement that returns rows and reads them all.
func (e *QueryExecutor) Query(ctx context.Context, stmt domain.Compiled) (*Rows, error) {
	var out *Rows
	err := e.scoped(ctx, stmt, func(tx database.Transaction) error {
		rows, err := tx.Query(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to get columns: %w", err)
		}

		result := &Rows{Columns: columns}
		for rows.Next() {
			values := make([]any, len(columns))
			valuePtrs := make([]any, len(columns))
			for i := range values {
				valuePtrs[i] = &values[i]
			}
			if err := rows.Scan(valuePtrs...); err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}
			// Convert []byte to string for text columns
			for i, v := range values {
				if b, ok := v.([]byte); ok {
					values[i] = string(b)
				}
			}
			result.Values = append(result.Values, values)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating rows: %w", err)
		}
		out = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Exec runs a statement that returns no rows.
func (e *QueryExecutor) Exec(ctx context.Context, stmt domain.Compiled) (Result, error) {
	var out Result
	err := e.scoped(ctx, stmt, func(tx database.Transaction) error {
		res, err := tx.Execute(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return fmt.Errorf("failed to execute statement: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			out.RowsAffected = n
		}
		// Not every driver reports an insert id (lib/pq does not).
		if id, err := res.LastInsertId(); err == nil {
			out.LastInsertID = id
		}
		return nil
	})
	return out, err
}

// scoped runs fn in a transaction that is committed only if fn succeeds.
func (e *QueryExecutor) scoped(ctx context.Context, stmt domain.Compiled, fn func(database.Transaction) error) (err error) {
	if e.db == nil {
		return fmt.Errorf("database adapter not initialized")
	}
	e.log(stmt)

	tx, err := e.db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit: %w", cErr)
		}
	}()

	return fn(tx)
}

func (e *QueryExecutor) log(stmt domain.Compiled) {
	if !e.logQueries {
		return
	}
	l := e.logger
	if l == nil {
		l = debug.Logger()
	}
	l.Debug("executing statement", "sql", stmt.SQL, "args", stmt.Args)
}
