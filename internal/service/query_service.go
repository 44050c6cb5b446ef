// Package service implements the query service.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishbabariya/ormlite-go/internal/core/query/compiler"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/query/executor"
	"github.com/satishbabariya/ormlite-go/internal/core/query/mapper"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
)

var (
	// ErrNotFound is returned when a single record was expected and none matched.
	ErrNotFound = errors.New("record not found")
	// ErrMultipleRecords is returned when a single record was expected and more matched.
	ErrMultipleRecords = errors.New("multiple records found")
	// ErrUnknownRelation is returned when a relation cannot be resolved.
	ErrUnknownRelation = errors.New("unknown relation")
)

// QueryService orchestrates compile, execute and map.
type QueryService struct {
	compiler *compiler.Compiler
	executor *executor.QueryExecutor
	registry *schema.Registry
}

// NewQueryService creates a new query service.
func NewQueryService(
	comp *compiler.Compiler,
	exec *executor.QueryExecutor,
	reg *schema.Registry,
) *QueryService {
	return &QueryService{
		compiler: comp,
		executor: exec,
		registry: reg,
	}
}

// Compiler returns the compiler statements are built with.
func (s *QueryService) Compiler() *compiler.Compiler {
	return s.compiler
}

// Registry returns the model registry.
func (s *QueryService) Registry() *schema.Registry {
	return s.registry
}

// Query compiles and runs a row-returning statement.
func (s *QueryService) Query(ctx context.Context, stmt domain.Statement) (*executor.Rows, error) {
	compiled, err := s.compiler.Compile(stmt)
	if err != nil {
		return nil, err
	}
	return s.executor.Query(ctx, compiled)
}

// Exec compiles and runs a statement that returns no rows.
func (s *QueryService) Exec(ctx context.Context, stmt domain.Statement) (executor.Result, error) {
	compiled, err := s.compiler.Compile(stmt)
	if err != nil {
		return executor.Result{}, err
	}
	return s.executor.Exec(ctx, compiled)
}

// Records runs q and reifies each row as a record of model. With no
// projected fields every field of the model is selected.
func (s *QueryService) Records(ctx context.Context, model *schema.Model, q domain.Select) ([]*schema.Record, error) {
	q.Model = model
	if len(q.Fields) == 0 && len(q.Aliases) == 0 {
		q.Fields = model.FieldNames()
	}
	rows, err := s.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapper.Records(model, projected(q, rows), rows.Values)
}

// One runs q and returns its only record.
func (s *QueryService) One(ctx context.Context, model *schema.Model, q domain.Select) (*schema.Record, error) {
	// Two rows are enough to tell one from many.
	if q.Limit == nil {
		q.Limit = domain.Slice(0, 2)
	}
	records, err := s.Records(ctx, model, q)
	if err != nil {
		return nil, err
	}
	switch len(records) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, model.Name())
	case 1:
		return records[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrMultipleRecords, model.Name())
	}
}

// Flat runs q, which must project exactly one field, and returns its values.
func (s *QueryService) Flat(ctx context.Context, q domain.Select) ([]any, error) {
	rows, err := s.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapper.Flat(projected(q, rows), rows.Values)
}

// Mappings runs q and returns each row keyed by field or alias name.
func (s *QueryService) Mappings(ctx context.Context, q domain.Select) ([]map[string]any, error) {
	rows, err := s.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapper.Mappings(projected(q, rows), rows.Values)
}

// Insert stores rec. A database-assigned primary key is written back.
func (s *QueryService) Insert(ctx context.Context, rec *schema.Record) error {
	res, err := s.Exec(ctx, domain.Insert{Record: rec})
	if err != nil {
		return err
	}
	pk := rec.Model().PrimaryKey()
	// lib/pq reports no insert id, so the key stays unset on PostgreSQL.
	if rec.PK() == nil && pk.AutoIncrement && res.LastInsertID > 0 {
		rec.SetPK(res.LastInsertID)
	}
	return nil
}

// Update runs upd and returns the number of rows changed.
func (s *QueryService) Update(ctx context.Context, upd domain.Update) (int64, error) {
	res, err := s.Exec(ctx, upd)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Delete runs del and returns the number of rows removed.
func (s *QueryService) Delete(ctx context.Context, del domain.Delete) (int64, error) {
	res, err := s.Exec(ctx, del)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// LoadRelation fetches the record a relation field of rec points at and
// caches it on rec. A nil foreign key yields a nil record.
func (s *QueryService) LoadRelation(ctx context.Context, rec *schema.Record, field string) (*schema.Record, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("%w: no registry", ErrUnknownRelation)
	}
	target, err := s.registry.Target(rec.Model(), field)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownRelation, err)
	}
	if cached, ok := rec.Related(field); ok {
		return cached, nil
	}

	fk := rec.Get(field)
	if fk == nil {
		return nil, nil
	}

	related, err := s.One(ctx, target, domain.Select{
		Where: domain.Where(domain.F(target.PrimaryKey().Name).Eq(fk)),
	})
	if err != nil {
		return nil, fmt.Errorf("load %s.%s: %w", rec.Model().Name(), field, err)
	}
	rec.SetRelated(field, related)
	return related, nil
}

// projected names the result columns of q in order. A SELECT * takes the
// names the database reported.
func projected(q domain.Select, rows *executor.Rows) []string {
	if names := q.Columns(); len(names) > 0 {
		return names
	}
	return rows.Columns
}
