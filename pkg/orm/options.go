package orm

import (
	"log/slog"
	"time"
)

// Config contains all client configuration options.
type Config struct {
	// Provider is one of sqlite, mysql or postgres.
	// Default: sqlite
	Provider string

	// DatabaseURL is the database connection string.
	DatabaseURL string

	// MaxOpenConnections is the maximum number of open connections.
	// SQLite always uses one. Default: driver default
	MaxOpenConnections int

	// ConnMaxIdleTime is the maximum idle time of a connection.
	ConnMaxIdleTime time.Duration

	// ConnectTimeout bounds the initial ping.
	// Default: 10 seconds
	ConnectTimeout time.Duration

	// LogQueries enables statement logging when true.
	// Default: false
	LogQueries bool

	// Logger receives statement logs. Defaults to the debug logger.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:       "sqlite",
		ConnectTimeout: 10 * time.Second,
	}
}

// Option is a function that configures the client.
type Option func(*Config)

// WithProvider sets the database provider.
func WithProvider(provider string) Option {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithDatabaseURL sets the database URL.
func WithDatabaseURL(url string) Option {
	return func(c *Config) {
		c.DatabaseURL = url
	}
}

// WithMaxOpenConnections sets the maximum open connections.
func WithMaxOpenConnections(n int) Option {
	return func(c *Config) {
		c.MaxOpenConnections = n
	}
}

// WithConnMaxIdleTime sets the connection maximum idle time.
func WithConnMaxIdleTime(d time.Duration) Option {
	return func(c *Config) {
		c.ConnMaxIdleTime = d
	}
}

// WithConnectTimeout sets the connect timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ConnectTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithLogQueries enables or disables query logging.
func WithLogQueries(enabled bool) Option {
	return func(c *Config) {
		c.LogQueries = enabled
	}
}

// ApplyOptions applies options to a config.
func ApplyOptions(config *Config, opts ...Option) {
	for _, opt := range opts {
		opt(config)
	}
}
