// Package mysql implements MySQL database adapter.
package mysql

import (
	"context"
	"fmt"

	driver "github.com/go-sql-driver/mysql"

	"github.com/satishbabariya/ormlite-go/internal/adapters/database"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
)

// MinVersion is the oldest supported server.
const MinVersion = "5.7"

// MySQLAdapter implements the database.Adapter interface for MySQL.
type MySQLAdapter struct {
	database.Conn
	config database.Config
}

// NewMySQLAdapter creates a new MySQL adapter. The DSN is validated and
// parseTime is switched on so DATETIME columns scan into time.Time.
func NewMySQLAdapter(config database.Config) (*MySQLAdapter, error) {
	dsn, err := driver.ParseDSN(config.URL)
	if err != nil {
		return nil, fmt.Errorf("mysql: invalid DSN: %w", err)
	}
	dsn.ParseTime = true
	config.URL = dsn.FormatDSN()
	return &MySQLAdapter{config: config}, nil
}

// Connect establishes a connection to the MySQL database.
func (a *MySQLAdapter) Connect(ctx context.Context) error {
	db, err := database.Open(ctx, "mysql", a.config)
	if err != nil {
		return err
	}

	v, err := database.QueryVersion(ctx, db, "SELECT VERSION()", MinVersion)
	if err != nil {
		db.Close()
		return err
	}

	a.Attach(db, v)
	return nil
}

// Dialect returns the SQL dialect.
func (a *MySQLAdapter) Dialect() domain.SQLDialect {
	return domain.MySQL
}

// Ensure MySQLAdapter implements Adapter interface.
var _ database.Adapter = (*MySQLAdapter)(nil)
