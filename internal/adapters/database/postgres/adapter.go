// Package postgres implements PostgreSQL database adapter.
package postgres

import (
	"context"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/satishbabariya/ormlite-go/internal/adapters/database"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
)

// MinVersion is the oldest supported server.
const MinVersion = "9.6"

// PostgresAdapter implements the database.Adapter interface for PostgreSQL.
type PostgresAdapter struct {
	database.Conn
	config database.Config
}

// NewPostgresAdapter creates a new PostgreSQL adapter.
func NewPostgresAdapter(config database.Config) (*PostgresAdapter, error) {
	return &PostgresAdapter{config: config}, nil
}

// Connect establishes a connection to the PostgreSQL database.
func (a *PostgresAdapter) Connect(ctx context.Context) error {
	db, err := database.Open(ctx, "postgres", a.config)
	if err != nil {
		return err
	}

	v, err := database.QueryVersion(ctx, db, "SHOW server_version", MinVersion)
	if err != nil {
		db.Close()
		return err
	}

	a.Attach(db, v)
	return nil
}

// Dialect returns the SQL dialect.
func (a *PostgresAdapter) Dialect() domain.SQLDialect {
	return domain.PostgreSQL
}

// Ensure PostgresAdapter implements Adapter interface.
var _ database.Adapter = (*PostgresAdapter)(nil)
