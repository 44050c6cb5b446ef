package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Conn is the database/sql plumbing shared by the adapters. Adapters embed
// it and implement Connect and Dialect.
type Conn struct {
	db      *sql.DB
	version string
}

// Open opens and pings a pool for driver. ConnectTimeout bounds the ping;
// zero means no bound beyond ctx.
func Open(ctx context.Context, driver string, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(max(cfg.MaxConnections/2, 1))
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.ConnectTimeout)*time.Second)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Attach makes db the live connection.
func (c *Conn) Attach(db *sql.DB, version string) {
	c.db = db
	c.version = version
}

// DB returns the underlying pool, or nil before Connect.
func (c *Conn) DB() *sql.DB {
	return c.db
}

// ServerVersion is the version reported by the server on Connect.
func (c *Conn) ServerVersion() string {
	return c.version
}

// Disconnect closes the database connection.
func (c *Conn) Disconnect(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Execute executes a query without returning rows.
func (c *Conn) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	return c.db.ExecContext(ctx, query, args...)
}

// Query executes a query that returns rows.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	return c.db.QueryContext(ctx, query, args...)
}

// Begin starts a new transaction.
func (c *Conn) Begin(ctx context.Context) (Transaction, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Ping checks if the database connection is alive.
func (c *Conn) Ping(ctx context.Context) error {
	if c.db == nil {
		return ErrNotConnected
	}
	return c.db.PingContext(ctx)
}

// Tx implements Transaction over *sql.Tx.
type Tx struct {
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// Execute executes a query within the transaction.
func (t *Tx) Execute(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

// Query executes a query within the transaction.
func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

// Ensure Tx implements Transaction interface.
var _ Transaction = (*Tx)(nil)
