package executor_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/ormlite-go/internal/adapters/database"
	"github.com/satishbabariya/ormlite-go/internal/adapters/database/sqlite"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/query/executor"
	"github.com/satishbabariya/ormlite-go/internal/debug"
)

func openSQLite(t *testing.T) *sqlite.SQLiteAdapter {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	adapter, err := sqlite.NewSQLiteAdapter(database.Config{
		Provider: "sqlite",
		URL:      "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, adapter.Connect(context.Background()))
	t.Cleanup(func() { _ = adapter.Disconnect(context.Background()) })

	_, err = adapter.Execute(context.Background(),
		"CREATE TABLE `users` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `name` TEXT NOT NULL, `age` INTEGER)")
	require.NoError(t, err)
	return adapter
}

func TestQueryExecutor_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	exec := executor.NewQueryExecutor(openSQLite(t))

	res, err := exec.Exec(ctx, domain.Compiled{
		SQL:  "INSERT INTO `users` (`name`, `age`) VALUES (?, ?);",
		Args: []any{"Al", 30},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.Equal(t, int64(1), res.LastInsertID)

	_, err = exec.Exec(ctx, domain.Compiled{
		SQL:  "INSERT INTO `users` (`name`, `age`) VALUES (?, ?);",
		Args: []any{"Bo", nil},
	})
	require.NoError(t, err)

	rows, err := exec.Query(ctx, domain.Compiled{
		SQL: "SELECT `id`, `name`, `age` FROM `users` ORDER BY `id`;",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "age"}, rows.Columns)
	require.Len(t, rows.Values, 2)
	assert.Equal(t, []any{int64(1), "Al", int64(30)}, rows.Values[0])
	assert.Equal(t, []any{int64(2), "Bo", nil}, rows.Values[1])
}

func TestQueryExecutor_EmptyResult(t *testing.T) {
	exec := executor.NewQueryExecutor(openSQLite(t))

	rows, err := exec.Query(context.Background(), domain.Compiled{
		SQL:  "SELECT `id` FROM `users` WHERE `age` > ?;",
		Args: []any{100},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, rows.Columns)
	assert.Empty(t, rows.Values)
}

func TestQueryExecutor_ErrorRollsBack(t *testing.T) {
	ctx := context.Background()
	exec := executor.NewQueryExecutor(openSQLite(t))

	// NOT NULL violation
	_, err := exec.Exec(ctx, domain.Compiled{
		SQL:  "INSERT INTO `users` (`name`) VALUES (?);",
		Args: []any{nil},
	})
	require.Error(t, err)

	_, err = exec.Query(ctx, domain.Compiled{SQL: "SELECT * FROM `missing`;"})
	require.Error(t, err)

	// The single connection is free again, so the next scope can begin.
	rows, err := exec.Query(ctx, domain.Compiled{SQL: "SELECT COUNT(*) FROM `users`;"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows.Values[0][0])
}

func TestQueryExecutor_NotConnected(t *testing.T) {
	adapter, err := sqlite.NewSQLiteAdapter(database.Config{URL: ":memory:"})
	require.NoError(t, err)

	_, err = executor.NewQueryExecutor(adapter).Exec(context.Background(), domain.Compiled{SQL: "SELECT 1;"})
	assert.ErrorIs(t, err, database.ErrNotConnected)

	_, err = executor.NewQueryExecutor(nil).Query(context.Background(), domain.Compiled{SQL: "SELECT 1;"})
	assert.Error(t, err)
}

func TestQueryExecutor_LogsStatements(t *testing.T) {
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	t.Cleanup(func() { debug.Init(false) })

	exec := executor.NewQueryExecutor(openSQLite(t), executor.WithQueryLogging(true))
	_, err := exec.Query(context.Background(), domain.Compiled{
		SQL:  "SELECT `id` FROM `users` WHERE `id` = ?;",
		Args: []any{7},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "executing statement")
	assert.Contains(t, out, "WHERE `id` = ?;")
	assert.Contains(t, out, "args=[7]")
}

func TestQueryExecutor_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	t.Cleanup(func() { debug.Init(false) })

	exec := executor.NewQueryExecutor(openSQLite(t))
	_, err := exec.Query(context.Background(), domain.Compiled{SQL: "SELECT 1;"})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
