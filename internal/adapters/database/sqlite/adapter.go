// Package sqlite implements SQLite database adapter.
package sqlite

import (
	"context"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/satishbabariya/ormlite-go/internal/adapters/database"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
)

// MinVersion is the oldest supported SQLite library.
const MinVersion = "3.8.3"

// SQLiteAdapter implements the database.Adapter interface for SQLite.
type SQLiteAdapter struct {
	database.Conn
	config database.Config
}

// NewSQLiteAdapter creates a new SQLite adapter.
func NewSQLiteAdapter(config database.Config) (*SQLiteAdapter, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("sqlite: empty database path")
	}
	return &SQLiteAdapter{config: config}, nil
}

// Connect establishes a connection to the SQLite database.
func (a *SQLiteAdapter) Connect(ctx context.Context) error {
	// A single connection serializes writers and keeps in-memory databases alive.
	cfg := a.config
	cfg.MaxConnections = 1

	db, err := database.Open(ctx, "sqlite3", cfg)
	if err != nil {
		return err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	v, err := database.QueryVersion(ctx, db, "SELECT sqlite_version()", MinVersion)
	if err != nil {
		db.Close()
		return err
	}

	a.Attach(db, v)
	return nil
}

// Dialect returns the SQL dialect.
func (a *SQLiteAdapter) Dialect() domain.SQLDialect {
	return domain.SQLite
}

// Ensure SQLiteAdapter implements Adapter interface.
var _ database.Adapter = (*SQLiteAdapter)(nil)
