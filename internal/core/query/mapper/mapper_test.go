package mapper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/query/mapper"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
)

func userModel() *schema.Model {
	return schema.NewModel("User").Table("users").Field(
		schema.PrimaryKey("id"),
		schema.String("name", schema.OnCreate(schema.Value("anon"))),
		schema.Int("age", schema.Nullable(), schema.OnUpdate(schema.Value(0))),
		schema.Relation("team", "User"),
	).MustBuild()
}

func TestRecords(t *testing.T) {
	user := userModel()
	fields := []string{"id", "name", "team"}

	recs, err := mapper.Records(user, fields, [][]any{
		{int64(1), "Al", nil},
		{int64(2), "Bo", int64(1)},
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Bo", recs[1].Get("name"))
	assert.Equal(t, int64(2), recs[1].PK())
	assert.Equal(t, int64(1), recs[1].Get("team"))
	assert.False(t, recs[0].Has("age"))

	_, err = mapper.Records(user, fields, [][]any{{int64(1), "Al"}})
	assert.ErrorIs(t, err, mapper.ErrColumnMismatch)
}

func TestFlat(t *testing.T) {
	values, err := mapper.Flat([]string{"name"}, [][]any{{"Al"}, {"Bo"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"Al", "Bo"}, values)

	_, err = mapper.Flat([]string{"id", "name"}, nil)
	assert.ErrorIs(t, err, mapper.ErrNotFlat)

	_, err = mapper.Flat([]string{"id"}, [][]any{{1, 2}})
	assert.ErrorIs(t, err, mapper.ErrColumnMismatch)
}

func TestMappings(t *testing.T) {
	rows, err := mapper.Mappings([]string{"age", "__count"}, [][]any{{int64(20), int64(3)}})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"age": int64(20), "__count": int64(3)}}, rows)

	_, err = mapper.Mappings([]string{"age"}, [][]any{{}})
	assert.ErrorIs(t, err, mapper.ErrColumnMismatch)
}

func TestInsertValues(t *testing.T) {
	user := userModel()
	team := user.New(map[string]any{"id": int64(7)})

	rec := user.New(nil)
	rec.SetRelated("team", team)

	fields, values := mapper.InsertValues(rec)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"name", "age", "team"}, names)
	assert.Equal(t, []any{"anon", nil, int64(7)}, values)
	assert.Equal(t, "anon", rec.Get("name"))
}

func TestUpdateValues(t *testing.T) {
	user := userModel()
	rec := user.New(map[string]any{"id": 1, "name": "Al"})

	fields, values, err := mapper.UpdateValues(rec, nil)
	require.NoError(t, err)
	assert.Len(t, fields, 3)
	assert.Equal(t, []any{"Al", 0, nil}, values)
	assert.Equal(t, 0, rec.Get("age"))

	fields, values, err = mapper.UpdateValues(rec, []string{"name"})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, []any{"Al"}, values)

	_, _, err = mapper.UpdateValues(rec, []string{"id"})
	assert.ErrorIs(t, err, domain.ErrPrimaryKeyUpdate)

	_, _, err = mapper.UpdateValues(rec, []string{"nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

type person struct {
	ID      int64      `orm:"id"`
	Name    string     `db:"name"`
	Age     *int       `json:"age,omitempty"`
	Active  bool       `orm:"active"`
	Score   float64    `orm:"score"`
	Created time.Time  `orm:"created"`
	Updated *time.Time `orm:"updated"`
	Ignored string     `orm:"-"`
	Nick    string
}

func TestScanStruct(t *testing.T) {
	var p person
	err := mapper.ScanStruct(map[string]any{
		"id":      int64(3),
		"name":    []byte("Al"),
		"age":     int64(41),
		"active":  int64(1),
		"score":   "2.5",
		"created": "2024-03-01 10:00:00",
		"updated": nil,
		"Ignored": "x",
		"NICK":    "al",
	}, &p)
	require.NoError(t, err)

	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "Al", p.Name)
	require.NotNil(t, p.Age)
	assert.Equal(t, 41, *p.Age)
	assert.True(t, p.Active)
	assert.Equal(t, 2.5, p.Score)
	assert.Equal(t, 2024, p.Created.Year())
	assert.Nil(t, p.Updated)
	assert.Empty(t, p.Ignored)
	assert.Equal(t, "al", p.Nick)
}

func TestScanStruct_Conversions(t *testing.T) {
	type target struct {
		Score float64   `orm:"score"`
		Ratio float32   `orm:"ratio"`
		N     int64     `orm:"n"`
		Small int16     `orm:"small"`
		Count uint      `orm:"count"`
		Flag  bool      `orm:"flag"`
		Label string    `orm:"label"`
		At    time.Time `orm:"at"`
	}

	tests := []struct {
		name   string
		values map[string]any
		want   target
	}{
		{"int into float", map[string]any{"score": 3}, target{Score: 3}},
		{"int32 into float32", map[string]any{"ratio": int32(2)}, target{Ratio: 2}},
		{"uint32 into int", map[string]any{"n": uint32(7)}, target{N: 7}},
		{"int8 into int", map[string]any{"n": int8(-4)}, target{N: -4}},
		{"int16 into int16", map[string]any{"small": int16(12)}, target{Small: 12}},
		{"text into int", map[string]any{"n": "42"}, target{N: 42}},
		{"int into uint", map[string]any{"count": 9}, target{Count: 9}},
		{"uint32 into uint", map[string]any{"count": uint32(5)}, target{Count: 5}},
		{"int into bool", map[string]any{"flag": 1}, target{Flag: true}},
		{"text into bool", map[string]any{"flag": "true"}, target{Flag: true}},
		{"int into string", map[string]any{"label": 15}, target{Label: "15"}},
		{"unix seconds into time", map[string]any{"at": int64(0)}, target{At: time.Unix(0, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got target
			require.NoError(t, mapper.ScanStruct(tt.values, &got))
			assert.True(t, tt.want.At.Equal(got.At))
			tt.want.At, got.At = time.Time{}, time.Time{}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanStructs(t *testing.T) {
	var people []*person
	err := mapper.ScanStructs([]map[string]any{
		{"id": int64(1), "name": "Al"},
		{"id": int64(2), "name": "Bo"},
	}, &people)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Bo", people[1].Name)

	var plain []person
	require.NoError(t, mapper.ScanStructs([]map[string]any{{"id": int64(1)}}, &plain))
	assert.Equal(t, int64(1), plain[0].ID)
}

func TestScanStruct_Errors(t *testing.T) {
	var p person
	assert.Error(t, mapper.ScanStruct(map[string]any{}, p))
	assert.Error(t, mapper.ScanStruct(map[string]any{"id": "x"}, &p))
	assert.Error(t, mapper.ScanStruct(map[string]any{"created": true}, &p))
	assert.Error(t, mapper.ScanStruct(map[string]any{"created": "yesterday"}, &p))

	var small struct {
		N int8  `orm:"n"`
		U uint8 `orm:"u"`
	}
	assert.Error(t, mapper.ScanStruct(map[string]any{"n": 300}, &small))
	assert.Error(t, mapper.ScanStruct(map[string]any{"u": -1}, &small))
	assert.Error(t, mapper.ScanStruct(map[string]any{"u": int64(256)}, &small))

	var notStructs []int
	assert.Error(t, mapper.ScanStructs(nil, &notStructs))
}
