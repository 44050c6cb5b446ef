package container_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/ormlite-go/internal/config"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
	"github.com/satishbabariya/ormlite-go/internal/utils/container"
)

func TestNewContainer_Providers(t *testing.T) {
	tests := []struct {
		provider string
		url      string
		dialect  domain.SQLDialect
	}{
		{"sqlite", ":memory:", domain.SQLite},
		{"postgres", "postgres://localhost/app?sslmode=disable", domain.PostgreSQL},
		{"postgresql", "postgres://localhost/app", domain.PostgreSQL},
		{"mysql", "user:pw@tcp(localhost:3306)/app", domain.MySQL},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c, err := container.NewContainer(&config.Config{
				Database: config.DatabaseConfig{Provider: tt.provider, URL: tt.url},
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, c.Adapter().Dialect())
			assert.Equal(t, tt.dialect, c.QueryService().Compiler().Dialect())
		})
	}
}

func TestNewContainer_Errors(t *testing.T) {
	_, err := container.NewContainer(&config.Config{
		Database: config.DatabaseConfig{Provider: "oracle", URL: "x"},
	}, nil)
	assert.ErrorContains(t, err, "unsupported database provider")

	_, err = container.NewContainer(&config.Config{
		Database: config.DatabaseConfig{Provider: "mysql", URL: "not a dsn"},
	}, nil)
	assert.Error(t, err)
}

func TestContainer_ConnectSQLite(t *testing.T) {
	ctx := context.Background()
	reg := schema.MustRegistry(schema.NewModel("User").Field(schema.String("name")).MustBuild())

	c, err := container.NewContainer(&config.Config{
		Database: config.DatabaseConfig{Provider: "sqlite", URL: "file:container?mode=memory&cache=shared"},
	}, reg)
	require.NoError(t, err)
	require.NoError(t, c.Connect(ctx))
	assert.Same(t, reg, c.Registry())
	assert.NoError(t, c.Adapter().Ping(ctx))
	assert.NoError(t, c.Close(ctx))
}
