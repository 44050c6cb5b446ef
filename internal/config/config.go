// Package config provides configuration management.
//
// Settings come from, in increasing priority: defaults, an .ormlite.yaml
// file in the working directory, $HOME or $HOME/.config/ormlite, and
// ORMLITE_* environment variables. A .env file and then .env.local are
// loaded into the environment first. DATABASE_URL, when set, wins over
// every other source of the connection URL.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
)

// AppFs is the filesystem configuration and project files are read from.
var AppFs = afero.NewOsFs()

const (
	configName = ".ormlite"
	configType = "yaml"
	envPrefix  = "ORMLITE"
)

// Config holds the application configuration
type Config struct {
	Database   DatabaseConfig
	SchemaPath string
	LogQueries bool
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	Provider       string
	URL            string
	MaxConnections int
	MaxIdleTime    int // seconds
	ConnectTimeout int // seconds
}

// Dialect returns the SQL dialect of the configured provider.
func (c *Config) Dialect() (domain.SQLDialect, error) {
	return domain.ParseDialect(c.Database.Provider)
}

// Validate checks that the configuration can be used to connect.
func (c *Config) Validate() error {
	if _, err := c.Dialect(); err != nil {
		return err
	}
	if c.Database.URL == "" {
		return errors.New("database url is not set (use DATABASE_URL or database_url)")
	}
	return nil
}

// Load loads configuration from various sources
func Load(fs afero.Fs) (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "ormlite"))

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("provider", string(domain.SQLite))
	v.SetDefault("schema_path", "schema.orm")
	v.SetDefault("log_queries", false)
	v.SetDefault("max_connections", 0)
	v.SetDefault("connect_timeout", 10)
	v.SetDefault("max_idle_time", 0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := loadEnvFile(fs, ".env", false); err != nil {
		return nil, err
	}
	// .env.local has higher priority
	if err := loadEnvFile(fs, ".env.local", true); err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Provider:       v.GetString("provider"),
			URL:            v.GetString("database_url"),
			MaxConnections: v.GetInt("max_connections"),
			MaxIdleTime:    v.GetInt("max_idle_time"),
			ConnectTimeout: v.GetInt("connect_timeout"),
		},
		SchemaPath: v.GetString("schema_path"),
		LogQueries: v.GetBool("log_queries"),
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	return cfg, nil
}

// Save writes cfg as .ormlite.yaml in dir and returns the path written.
// The database URL is left out; it belongs in the environment.
func Save(fs afero.Fs, cfg *Config, dir string) (string, error) {
	v := viper.New()
	v.SetFs(fs)
	v.Set("provider", cfg.Database.Provider)
	v.Set("schema_path", cfg.SchemaPath)
	v.Set("log_queries", cfg.LogQueries)
	v.Set("connect_timeout", cfg.Database.ConnectTimeout)
	v.Set("max_idle_time", cfg.Database.MaxIdleTime)

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, configName+"."+configType)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

// loadEnvFile sets the variables of an env file if it exists. Without
// overload, variables already in the environment are kept.
func loadEnvFile(fs afero.Fs, name string, overload bool) error {
	f, err := fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); set && !overload {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}
