// Package orm provides the public client API.
//
// Models are declared once and collected in a Registry:
//
//	user := orm.NewModel("User").Table("users").Field(
//		orm.String("name"),
//		orm.Int("age", orm.Nullable()),
//	).MustBuild()
//	reg, err := orm.NewRegistry(user)
//
// A Client runs queries for the registry against one database:
//
//	client, err := orm.New(reg, orm.WithDatabaseURL("file:app.db"))
//	err = client.Connect(ctx)
//	adults, err := client.Query(user).Filter(orm.F("age").Ge(18)).Sort("-age").All(ctx)
package orm

import (
	"context"
	"fmt"

	"github.com/satishbabariya/ormlite-go/internal/config"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/query/executor"
	"github.com/satishbabariya/ormlite-go/internal/service"
	"github.com/satishbabariya/ormlite-go/internal/utils/container"
)

// Client runs statements for the models of one registry. It is safe for
// concurrent use once connected.
type Client struct {
	container *container.Container
	service   *service.QueryService
	registry  *Registry
}

// New creates a client. The database is not contacted until Connect.
func New(reg *Registry, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	ApplyOptions(cfg, opts...)

	var execOpts []executor.Option
	if cfg.Logger != nil {
		execOpts = append(execOpts, executor.WithLogger(cfg.Logger))
	}

	c, err := container.NewContainer(&config.Config{
		Database: config.DatabaseConfig{
			Provider:       cfg.Provider,
			URL:            cfg.DatabaseURL,
			MaxConnections: cfg.MaxOpenConnections,
			MaxIdleTime:    int(cfg.ConnMaxIdleTime.Seconds()),
			ConnectTimeout: int(cfg.ConnectTimeout.Seconds()),
		},
		LogQueries: cfg.LogQueries,
	}, reg, execOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		container: c,
		service:   c.QueryService(),
		registry:  reg,
	}, nil
}

// Connect establishes a connection to the database.
func (c *Client) Connect(ctx context.Context) error {
	return c.container.Connect(ctx)
}

// Disconnect closes the database connection.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.container.Close(ctx)
}

// Dialect returns the SQL dialect statements are compiled for.
func (c *Client) Dialect() Dialect {
	return c.container.Adapter().Dialect()
}

// Registry returns the client's models.
func (c *Client) Registry() *Registry {
	return c.registry
}

// Model looks up a registered model by name.
func (c *Client) Model(name string) (*Model, error) {
	return c.registry.Model(name)
}

// Compile compiles a statement without running it.
func (c *Client) Compile(stmt Statement) (Compiled, error) {
	return c.service.Compiler().Compile(stmt)
}

// Save inserts rec. Create defaults and a database-assigned primary key are
// written back to rec.
func (c *Client) Save(ctx context.Context, rec *Record) error {
	return c.service.Insert(ctx, rec)
}

// Update writes rec back by primary key: the named fields, or every
// non-key field when none are named.
func (c *Client) Update(ctx context.Context, rec *Record, fields ...string) error {
	_, err := c.service.Update(ctx, domain.Update{Record: rec, Fields: fields})
	return err
}

// UpdateWhere assigns set on every row of model matching where and returns
// the number of rows changed. A nil where updates every row.
func (c *Client) UpdateWhere(ctx context.Context, model *Model, where Node, set ...Assignment) (int64, error) {
	return c.service.Update(ctx, domain.Update{Model: model, Set: set, Where: where})
}

// Delete removes rec by primary key.
func (c *Client) Delete(ctx context.Context, rec *Record) error {
	_, err := c.service.Delete(ctx, domain.Delete{Record: rec})
	return err
}

// DeleteWhere removes the rows of model matching where. An empty where is
// refused with domain.ErrMissingCondition.
func (c *Client) DeleteWhere(ctx context.Context, model *Model, where Node) (int64, error) {
	return c.service.Delete(ctx, domain.Delete{Model: model, Where: where})
}

// Raw runs a literal SQL query with positional args and returns each row
// keyed by column name. The SQL is sent as is.
func (c *Client) Raw(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := c.service.Query(ctx, rawStatement{sql: query, args: args})
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(rows.Values))
	for _, row := range rows.Values {
		m := make(map[string]any, len(rows.Columns))
		for i, col := range rows.Columns {
			m[col] = row[i]
		}
		out = append(out, m)
	}
	return out, nil
}

// Exec runs a literal SQL statement that returns no rows and reports the
// number of rows affected.
func (c *Client) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.service.Exec(ctx, rawStatement{sql: query, args: args})
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// LoadRelation fetches the record a relation field of rec points at and
// caches it on rec.
func (c *Client) LoadRelation(ctx context.Context, rec *Record, field string) (*Record, error) {
	return c.service.LoadRelation(ctx, rec, field)
}

// rawStatement passes literal SQL through the compiler.
type rawStatement struct {
	sql  string
	args []any
}

func (rawStatement) Kind() string { return "raw" }

func (r rawStatement) AsSQL() (string, []any, error) {
	if r.sql == "" {
		return "", nil, fmt.Errorf("empty raw query")
	}
	return r.sql, r.args, nil
}
