package orm

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
)

// countAlias names the count column of Count.
const countAlias = "__count"

// Query is an immutable SELECT over one model. Every builder method returns
// a new Query, so a query can be shared and refined freely.
type Query struct {
	client   *Client
	model    *Model
	where    Node
	order    []string
	distinct bool
	limit    *domain.Limit
}

// Query starts a query over every record of model.
func (c *Client) Query(model *Model) *Query {
	return &Query{client: c, model: model}
}

func (q *Query) clone() *Query {
	c := *q
	c.order = append([]string(nil), q.order...)
	if q.limit != nil {
		l := *q.limit
		c.limit = &l
	}
	return &c
}

// Filter narrows the query to records matching every condition.
func (q *Query) Filter(conds ...Cond) *Query {
	return q.Where(domain.Where(conds...))
}

// FilterBy narrows the query with "field__op" lookups, e.g. {"age__gt": 18}.
func (q *Query) FilterBy(lookups map[string]any) (*Query, error) {
	leaf, err := domain.Lookup(lookups)
	if err != nil {
		return nil, err
	}
	return q.Where(leaf), nil
}

// Where narrows the query by an arbitrary condition tree.
func (q *Query) Where(node Node) *Query {
	c := q.clone()
	c.where = domain.And(q.where, node)
	return c
}

// And keeps the records matched by both queries.
func (q *Query) And(other *Query) *Query {
	c := q.clone()
	c.where = domain.And(q.where, other.where)
	return c
}

// Or keeps the records matched by either query.
func (q *Query) Or(other *Query) *Query {
	c := q.clone()
	c.where = domain.Or(q.where, other.where)
	return c
}

// Sort orders by fields; a "-" prefix sorts descending. It replaces any
// previous ordering.
func (q *Query) Sort(fields ...string) *Query {
	c := q.clone()
	c.order = append([]string(nil), fields...)
	return c
}

// Distinct drops duplicate rows.
func (q *Query) Distinct() *Query {
	c := q.clone()
	c.distinct = true
	return c
}

// Slice limits the query to length records starting at offset.
func (q *Query) Slice(offset, length int) *Query {
	c := q.clone()
	c.limit = domain.Slice(offset, length)
	return c
}

// From skips the first offset records.
func (q *Query) From(offset int) *Query {
	c := q.clone()
	c.limit = domain.SliceFrom(offset)
	return c
}

// At limits the query to the record at index.
func (q *Query) At(index int) *Query {
	c := q.clone()
	c.limit = domain.At(index)
	return c
}

// Select returns the descriptor the query compiles to.
func (q *Query) Select(fields ...string) domain.Select {
	return domain.Select{
		Model:    q.model,
		Fields:   fields,
		Distinct: q.distinct,
		Where:    q.where,
		OrderBy:  q.order,
		Limit:    q.limit,
	}
}

// SQL compiles the query over every field.
func (q *Query) SQL() (Compiled, error) {
	return q.client.Compile(q.Select(q.model.FieldNames()...))
}

// All returns the matching records.
func (q *Query) All(ctx context.Context) ([]*Record, error) {
	return q.client.service.Records(ctx, q.model, q.Select())
}

// Get returns the only matching record. It fails with ErrNotFound or
// ErrMultipleRecords otherwise.
func (q *Query) Get(ctx context.Context) (*Record, error) {
	return q.client.service.One(ctx, q.model, q.Select())
}

// Count returns the number of matching records. A sliced query counts the
// records inside its window.
func (q *Query) Count(ctx context.Context) (int64, error) {
	if q.limit != nil {
		// An aggregate yields a single row, which an offset would skip.
		keys, err := q.Values(ctx, q.model.PrimaryKey().Name)
		if err != nil {
			return 0, err
		}
		return int64(len(keys)), nil
	}

	s := q.Select()
	s.Aliases = []Alias{domain.As(countAlias, domain.Count(q.model.PrimaryKey().Name))}
	s.OrderBy = nil
	rows, err := q.client.service.Mappings(ctx, s)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := cast.ToInt64E(rows[0][countAlias])
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", q.model.Name(), err)
	}
	return n, nil
}

// Values returns the value of one field for every matching record.
func (q *Query) Values(ctx context.Context, field string) ([]any, error) {
	return q.client.service.Flat(ctx, q.Select(field))
}

// Items returns the named fields of every matching record as maps.
func (q *Query) Items(ctx context.Context, fields ...string) ([]map[string]any, error) {
	if len(fields) == 0 {
		fields = q.model.FieldNames()
	}
	return q.client.service.Mappings(ctx, q.Select(fields...))
}

// Group groups the matching records by fields and computes aliases for
// each group.
func (q *Query) Group(ctx context.Context, by []string, aliases ...Alias) ([]map[string]any, error) {
	s := q.Select(by...)
	s.GroupBy = by
	s.Aliases = aliases
	return q.client.service.Mappings(ctx, s)
}

// Update assigns set on every matching record.
func (q *Query) Update(ctx context.Context, set ...Assignment) (int64, error) {
	return q.client.UpdateWhere(ctx, q.model, q.where, set...)
}

// Delete removes every matching record. A query without conditions is
// refused.
func (q *Query) Delete(ctx context.Context) (int64, error) {
	return q.client.DeleteWhere(ctx, q.model, q.where)
}
