package schema_test

import (
	"testing"
	"time"

	"github.com/satishbabariya/ormlite-go/internal/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userModel(t *testing.T) *schema.Model {
	t.Helper()
	m, err := schema.NewModel("User").Table("users").Field(
		schema.PrimaryKey("id"),
		schema.String("name"),
		schema.Int("age", schema.Nullable(), schema.OnUpdate(schema.Value(0))),
	).Build()
	require.NoError(t, err)
	return m
}

func TestModel_Build(t *testing.T) {
	m := userModel(t)

	assert.Equal(t, "User", m.Name())
	assert.Equal(t, "users", m.Table())
	assert.Equal(t, []string{"id", "name", "age"}, m.FieldNames())
	assert.Equal(t, "id", m.PrimaryKey().Name)

	f, ok := m.Field("age")
	require.True(t, ok)
	assert.Equal(t, "age", f.Column)
	assert.True(t, f.Nullable)

	_, ok = m.Field("COUNT(id)")
	assert.False(t, ok)
}

func TestModel_FieldsAreCopies(t *testing.T) {
	m := userModel(t)

	fields := m.Fields()
	fields[1].Column = "changed"
	f, _ := m.Field("name")
	f.Column = "also changed"

	again, _ := m.Field("name")
	assert.Equal(t, "name", again.Column)
}

func TestModel_ImplicitPrimaryKey(t *testing.T) {
	m, err := schema.NewModel("Tag").Field(schema.String("label")).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "label"}, m.FieldNames())
	pk := m.PrimaryKey()
	assert.True(t, pk.PrimaryKey)
	assert.True(t, pk.AutoIncrement)
	assert.Equal(t, "Tag", m.Table())
}

func TestModel_Validation(t *testing.T) {
	tests := []struct {
		name    string
		builder *schema.ModelBuilder
		wantErr error
	}{
		{
			name:    "missing name",
			builder: schema.NewModel(""),
			wantErr: schema.ErrNoModelName,
		},
		{
			name: "two primary keys",
			builder: schema.NewModel("A").Field(
				schema.PrimaryKey("id"),
				schema.String("code", schema.Primary()),
			),
			wantErr: schema.ErrMultiplePrimaryKeys,
		},
		{
			name:    "duplicate field",
			builder: schema.NewModel("A").Field(schema.String("x"), schema.Int("x")),
			wantErr: schema.ErrDuplicateField,
		},
		{
			name: "duplicate column",
			builder: schema.NewModel("A").Field(
				schema.String("x"),
				schema.String("y", schema.Column("x")),
			),
			wantErr: schema.ErrDuplicateColumn,
		},
		{
			name:    "relation without target",
			builder: schema.NewModel("A").Field(schema.Relation("owner", "")),
			wantErr: schema.ErrMissingRelation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistry_ResolvesRelations(t *testing.T) {
	user := userModel(t)
	post := schema.NewModel("Post").Table("posts").Field(
		schema.String("title"),
		schema.Relation("author", "User"),
		schema.Relation("parent", "self", schema.Nullable()),
	).MustBuild()

	reg, err := schema.NewRegistry(user, post)
	require.NoError(t, err)

	target, err := reg.Target(post, "author")
	require.NoError(t, err)
	assert.Same(t, user, target)

	target, err = reg.Target(post, "parent")
	require.NoError(t, err)
	assert.Same(t, post, target)

	f, _ := post.Field("author")
	assert.Equal(t, "author_id", f.Column)

	assert.Equal(t, []string{"Post", "User"}, reg.Names())
	assert.Len(t, reg.Models(), 2)
}

func TestRegistry_Errors(t *testing.T) {
	post := schema.NewModel("Post").Field(schema.Relation("author", "Ghost")).MustBuild()
	_, err := schema.NewRegistry(post)
	assert.ErrorIs(t, err, schema.ErrUnknownModel)

	a := schema.NewModel("A").MustBuild()
	_, err = schema.NewRegistry(a, schema.NewModel("A").MustBuild())
	assert.ErrorIs(t, err, schema.ErrDuplicateModel)

	reg := schema.MustRegistry(a)
	_, err = reg.Model("B")
	assert.ErrorIs(t, err, schema.ErrUnknownModel)
}

func TestRecord_Attributes(t *testing.T) {
	user := userModel(t)
	post := schema.NewModel("Post").Field(schema.Relation("author", "User")).MustBuild()

	u := user.New(map[string]any{"id": 7, "name": "Al"})
	assert.Equal(t, 7, u.PK())
	assert.Nil(t, u.Get("age"))
	assert.False(t, u.Has("age"))

	p := post.New(nil)
	p.Set("author", u)
	assert.Equal(t, 7, p.Get("author"))
	rel, ok := p.Related("author")
	require.True(t, ok)
	assert.Same(t, u, rel)

	p.Set("author", 9)
	_, ok = p.Related("author")
	assert.False(t, ok, "changing the raw key drops the stale cached record")

	p.SetPK(3)
	assert.Equal(t, 3, p.PK())
	assert.Equal(t, map[string]any{"author": 9, "id": 3}, p.Values())
	assert.Equal(t, "<Post: author:9,id:3>", p.String())
}

type article struct {
	ID        int64      `orm:"id,pk"`
	Title     string     `orm:"title"`
	Body      *string    `orm:"body"`
	Author    int64      `orm:"author,rel=User"`
	Published time.Time  `orm:"published_at"`
	Score     float64    `orm:"score,column=rank"`
	Archived  *time.Time `orm:",null"`
	Internal  string     `orm:"-"`
	hidden    string
}

func TestFromStruct(t *testing.T) {
	m, err := schema.FromStruct("Article", "articles", &article{})
	require.NoError(t, err)

	assert.Equal(t, "articles", m.Table())
	assert.Equal(t, []string{"id", "title", "body", "author", "published_at", "score", "archived"}, m.FieldNames())

	pk := m.PrimaryKey()
	assert.Equal(t, "id", pk.Name)
	assert.True(t, pk.AutoIncrement)

	body, _ := m.Field("body")
	assert.True(t, body.Nullable)
	assert.Equal(t, schema.TypeString, body.Type)

	author, _ := m.Field("author")
	assert.True(t, author.IsRelation())
	assert.Equal(t, "author_id", author.Column)
	assert.Equal(t, "User", author.Related)

	published, _ := m.Field("published_at")
	assert.Equal(t, schema.TypeDateTime, published.Type)

	score, _ := m.Field("score")
	assert.Equal(t, "rank", score.Column)
	assert.Equal(t, schema.TypeFloat, score.Type)
}

func TestFromStruct_Errors(t *testing.T) {
	_, err := schema.FromStruct("X", "", 42)
	assert.ErrorIs(t, err, schema.ErrUnsupportedStruct)

	type bad struct {
		Tags []string `orm:"tags"`
	}
	_, err = schema.FromStruct("Bad", "", bad{})
	assert.ErrorIs(t, err, schema.ErrUnsupportedStruct)

	type badType struct {
		X string `orm:"x,type=blob"`
	}
	_, err = schema.FromStruct("Bad", "", badType{})
	assert.ErrorIs(t, err, schema.ErrUnknownType)
}
