package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key       string
		wantField string
		wantOp    domain.Operator
	}{
		{key: "age", wantField: "age", wantOp: domain.OpEq},
		{key: "age__gt", wantField: "age", wantOp: domain.OpGt},
		{key: "name__in", wantField: "name", wantOp: domain.OpIn},
		{key: "created__range", wantField: "created", wantOp: domain.OpRange},
		{key: "deleted__isnull", wantField: "deleted", wantOp: domain.OpIsNull},
		{key: "__count", wantField: "__count", wantOp: domain.OpEq},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			field, op, err := domain.ParseKey(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOp, op)
		})
	}

	_, _, err := domain.ParseKey("age__between")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperator)
}

func TestLookup_SortedKeys(t *testing.T) {
	leaf, err := domain.Lookup(map[string]any{
		"name__in":        []string{"Al", "Bo"},
		"age__gt":         18,
		"deleted__isnull": false,
		"score__range":    [2]int{1, 9},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Cond{
		{Field: "age", Op: domain.OpGt, Values: []any{18}},
		{Field: "deleted", Op: domain.OpNotNull, Values: nil},
		{Field: "name", Op: domain.OpIn, Values: []any{"Al", "Bo"}},
		{Field: "score", Op: domain.OpRange, Values: []any{1, 9}},
	}, leaf.Conds)
}

func TestLookup_Errors(t *testing.T) {
	_, err := domain.Lookup(map[string]any{"age__in": 3})
	assert.ErrorIs(t, err, domain.ErrArity)

	_, err = domain.Lookup(map[string]any{"age__range": []int{1, 2, 3}})
	assert.ErrorIs(t, err, domain.ErrArity)

	_, err = domain.Lookup(map[string]any{"age__nope": 1})
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperator)
}

func TestNewCond(t *testing.T) {
	c, err := domain.NewCond("age", domain.OpRange, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.F("age").Range(1, 2), c)

	_, err = domain.NewCond("age", domain.OpEq)
	assert.ErrorIs(t, err, domain.ErrArity)

	_, err = domain.NewCond("age", domain.Operator("regex"), "x")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperator)
}

func TestCombine(t *testing.T) {
	a := domain.Where(domain.F("a").Eq(1))
	b := domain.Where(domain.F("b").Eq(2))

	assert.Nil(t, domain.And())
	assert.Nil(t, domain.Or(domain.Leaf{}, nil, domain.RawSQL("  ")))
	assert.Equal(t, a, domain.And(nil, a, domain.Leaf{}))

	g, ok := domain.Or(a, b).(domain.Group)
	require.True(t, ok)
	assert.Equal(t, domain.LogicOr, g.Logic)
	assert.Len(t, g.Children, 2)

	assert.True(t, domain.IsEmpty(nil))
	assert.True(t, domain.IsEmpty(domain.Group{Children: []domain.Node{domain.Leaf{}}}))
	assert.False(t, domain.IsEmpty(a))
}

func TestOperatorTable(t *testing.T) {
	ops := domain.DefaultOperators()
	tpl, err := ops.Lookup(domain.OpIn)
	require.NoError(t, err)
	assert.Equal(t, domain.ArityList, tpl.Arity)

	clone := ops.Clone()
	delete(clone, domain.OpLike)
	_, err = clone.Lookup(domain.OpLike)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperator)
	_, err = ops.Lookup(domain.OpLike)
	assert.NoError(t, err)
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "`users`", domain.MySQL.Quote("users"))
	assert.Equal(t, "`we``ird`", domain.SQLite.Quote("we`ird"))
	assert.Equal(t, `"users"`, domain.PostgreSQL.Quote("users"))

	assert.Equal(t, "?", domain.SQLite.Placeholder(3))
	assert.Equal(t, "$3", domain.PostgreSQL.Placeholder(3))

	assert.Equal(t, "-1", domain.SQLite.AllRows())
	assert.Equal(t, "ALL", domain.PostgreSQL.AllRows())

	d, err := domain.ParseDialect("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, domain.PostgreSQL, d)
	_, err = domain.ParseDialect("oracle")
	assert.Error(t, err)
}

func TestLimit(t *testing.T) {
	l := domain.Slice(10, 20)
	assert.Equal(t, 10, l.Offset)
	assert.Equal(t, 20, *l.Length)

	assert.Nil(t, domain.SliceFrom(5).Length)
	assert.Equal(t, 1, *domain.At(3).Length)
}

func TestCompileError(t *testing.T) {
	err := domain.NewCompileError("delete", "users", domain.ErrMissingCondition)
	assert.ErrorIs(t, err, domain.ErrMissingCondition)
	assert.EqualError(t, err, "compile delete on users: missing condition")

	var ce *domain.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "users", ce.Table)

	assert.Same(t, err, domain.NewCompileError("select", "", err))
	assert.NoError(t, domain.NewCompileError("select", "", nil))
}

func TestSelect_Columns(t *testing.T) {
	post := schema.NewModel("Post").Table("posts").Field(
		schema.Relation("author", "User"),
		schema.String("title"),
	).MustBuild()

	q := domain.Select{
		Model:   post,
		Fields:  []string{"author", "title", "id"},
		Aliases: []domain.Alias{domain.As("n", domain.Count("*"))},
	}
	assert.Equal(t, []string{"title", "id", "author", "n"}, q.Columns())

	assert.Empty(t, domain.Select{Table: "posts"}.Columns())
	assert.Equal(t, []string{"author"}, domain.Select{Fields: []string{"author"}}.Columns())
}
