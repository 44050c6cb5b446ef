package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/ormlite-go/internal/config"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
)

const home = "/home/tester"

func setup(t *testing.T) afero.Fs {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", home)
	for _, key := range []string{
		"DATABASE_URL", "ORMLITE_PROVIDER", "ORMLITE_DATABASE_URL",
		"ORMLITE_SCHEMA_PATH", "ORMLITE_LOG_QUERIES", "APP_SECRET",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return afero.NewMemMapFs()
}

func cwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(setup(t))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Provider)
	assert.Equal(t, "schema.orm", cfg.SchemaPath)
	assert.Equal(t, 10, cfg.Database.ConnectTimeout)
	assert.False(t, cfg.LogQueries)
	assert.Empty(t, cfg.Database.URL)

	d, err := cfg.Dialect()
	require.NoError(t, err)
	assert.Equal(t, domain.SQLite, d)
	assert.Error(t, cfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(cwd(t), ".ormlite.yaml"), []byte(`
provider: postgres
database_url: postgres://localhost/app
schema_path: db/app.orm
log_queries: true
connect_timeout: 3
`), 0644))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Provider)
	assert.Equal(t, "postgres://localhost/app", cfg.Database.URL)
	assert.Equal(t, "db/app.orm", cfg.SchemaPath)
	assert.True(t, cfg.LogQueries)
	assert.Equal(t, 3, cfg.Database.ConnectTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_HomeConfig(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(home, ".config", "ormlite", ".ormlite.yaml"),
		[]byte("provider: mysql\n"), 0644))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Provider)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(cwd(t), ".ormlite.yaml"),
		[]byte("provider: postgres\ndatabase_url: postgres://file\n"), 0644))
	t.Setenv("ORMLITE_PROVIDER", "mysql")
	t.Setenv("DATABASE_URL", "user:pw@tcp(db:3306)/app")

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Provider)
	assert.Equal(t, "user:pw@tcp(db:3306)/app", cfg.Database.URL)
}

func TestLoad_EnvFiles(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, ".env",
		[]byte("DATABASE_URL=file:app.db\nAPP_SECRET=base\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, ".env.local",
		[]byte("DATABASE_URL=file:local.db\n"), 0644))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "file:local.db", cfg.Database.URL)
	assert.Equal(t, "base", os.Getenv("APP_SECRET"))
}

func TestLoad_EnvFileKeepsEnvironment(t *testing.T) {
	fs := setup(t)
	t.Setenv("DATABASE_URL", "file:from-env.db")
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("DATABASE_URL=file:app.db\n"), 0644))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "file:from-env.db", cfg.Database.URL)
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(cwd(t), ".ormlite.yaml"),
		[]byte("provider: [unclosed\n"), 0644))

	_, err := config.Load(fs)
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	fs := setup(t)
	cfg := &config.Config{
		Database:   config.DatabaseConfig{Provider: "mysql", URL: "secret", ConnectTimeout: 5},
		SchemaPath: "models.orm",
	}

	path, err := config.Save(fs, cfg, filepath.Join(home, ".config", "ormlite"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "ormlite", ".ormlite.yaml"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider: mysql")
	assert.NotContains(t, string(data), "secret")

	loaded, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "mysql", loaded.Database.Provider)
	assert.Equal(t, "models.orm", loaded.SchemaPath)
	assert.Equal(t, 5, loaded.Database.ConnectTimeout)
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Provider: "oracle", URL: "x"}}
	assert.Error(t, cfg.Validate())
}
