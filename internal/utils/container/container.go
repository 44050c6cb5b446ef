// Package container provides dependency injection.
package container

import (
	"context"
	"fmt"

	"github.com/satishbabariya/ormlite-go/internal/adapters/database"
	"github.com/satishbabariya/ormlite-go/internal/adapters/database/mysql"
	"github.com/satishbabariya/ormlite-go/internal/adapters/database/postgres"
	"github.com/satishbabariya/ormlite-go/internal/adapters/database/sqlite"
	"github.com/satishbabariya/ormlite-go/internal/config"
	"github.com/satishbabariya/ormlite-go/internal/core/query/compiler"
	"github.com/satishbabariya/ormlite-go/internal/core/query/executor"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
	"github.com/satishbabariya/ormlite-go/internal/service"
)

// Container holds all application dependencies.
type Container struct {
	config *config.Config

	dbAdapter database.Adapter
	registry  *schema.Registry

	queryService *service.QueryService
}

// NewContainer wires the adapter, compiler, executor and query service for
// cfg. The adapter is not connected until Connect. opts are applied to the
// executor after the configured query logging.
func NewContainer(cfg *config.Config, reg *schema.Registry, opts ...executor.Option) (*Container, error) {
	c := &Container{
		config:   cfg,
		registry: reg,
	}

	var err error
	c.dbAdapter, err = createDatabaseAdapter(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create database adapter: %w", err)
	}

	queryComp := compiler.New(c.dbAdapter.Dialect())
	execOpts := append([]executor.Option{executor.WithQueryLogging(cfg.LogQueries)}, opts...)
	queryExec := executor.NewQueryExecutor(c.dbAdapter, execOpts...)
	c.queryService = service.NewQueryService(queryComp, queryExec, reg)

	return c, nil
}

// Connect opens the database connection.
func (c *Container) Connect(ctx context.Context) error {
	return c.dbAdapter.Connect(ctx)
}

// Adapter returns the database adapter.
func (c *Container) Adapter() database.Adapter {
	return c.dbAdapter
}

// Registry returns the model registry.
func (c *Container) Registry() *schema.Registry {
	return c.registry
}

// QueryService returns the query service.
func (c *Container) QueryService() *service.QueryService {
	return c.queryService
}

// Close cleans up resources.
func (c *Container) Close(ctx context.Context) error {
	if c.dbAdapter != nil {
		return c.dbAdapter.Disconnect(ctx)
	}
	return nil
}

// createDatabaseAdapter creates the appropriate database adapter based on provider.
func createDatabaseAdapter(cfg config.DatabaseConfig) (database.Adapter, error) {
	dbConfig := database.Config{
		Provider:       cfg.Provider,
		URL:            cfg.URL,
		MaxConnections: cfg.MaxConnections,
		MaxIdleTime:    cfg.MaxIdleTime,
		ConnectTimeout: cfg.ConnectTimeout,
	}

	var adapter database.Adapter
	var err error

	switch cfg.Provider {
	case "postgresql", "postgres":
		adapter, err = postgres.NewPostgresAdapter(dbConfig)
	case "mysql":
		adapter, err = mysql.NewMySQLAdapter(dbConfig)
	case "sqlite", "sqlite3":
		adapter, err = sqlite.NewSQLiteAdapter(dbConfig)
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create adapter: %w", err)
	}

	return adapter, nil
}
