// Package commands implements CLI commands.
package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/ormlite-go/internal/config"
	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/core/query/loader"
	"github.com/satishbabariya/ormlite-go/internal/core/schema"
	"github.com/satishbabariya/ormlite-go/internal/core/schema/parser"
	"github.com/satishbabariya/ormlite-go/internal/debug"
)

// App is the state shared by the commands of one invocation.
type App struct {
	Fs     afero.Fs
	Config *config.Config

	debug      bool
	schemaPath string
	provider   string
}

// NewApp creates an App reading files from fs.
func NewApp(fs afero.Fs) *App {
	return &App{Fs: fs}
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ormlite",
		Short:         "Compile and run ormlite statements",
		Long:          "ormlite compiles statement descriptors against a model schema into parameterised SQL.",
		Version:       Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug.Init(app.debug)
			return app.loadConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flags.StringVarP(&app.schemaPath, "schema", "s", "", "Path to schema file (default from config: schema.orm)")
	flags.StringVarP(&app.provider, "provider", "p", "", "Database provider: sqlite, mysql or postgres")

	rootCmd.AddCommand(NewInitCommand(app))
	rootCmd.AddCommand(NewValidateCommand(app))
	rootCmd.AddCommand(NewCompileCommand(app))
	rootCmd.AddCommand(NewExecCommand(app))
	rootCmd.AddCommand(NewWatchCommand(app))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

func (a *App) loadConfig() error {
	cfg, err := config.Load(a.Fs)
	if err != nil {
		return err
	}
	if a.schemaPath != "" {
		cfg.SchemaPath = a.schemaPath
	}
	if a.provider != "" {
		cfg.Database.Provider = a.provider
	}
	a.Config = cfg
	debug.Debug("configuration loaded", "provider", cfg.Database.Provider, "schema", cfg.SchemaPath)
	return nil
}

func (a *App) dialect() (domain.SQLDialect, error) {
	return a.Config.Dialect()
}

func (a *App) registry() (*schema.Registry, error) {
	reg, err := parser.Load(a.Fs, a.Config.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", a.Config.SchemaPath, err)
	}
	return reg, nil
}

// statements loads the descriptor file against reg and keeps the named
// statements, in file order. With no names every statement is kept.
func (a *App) statements(reg *schema.Registry, path string, names []string) ([]loader.Named, error) {
	all, err := loader.Load(a.Fs, path, reg)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []loader.Named
	for _, s := range all {
		if wanted[s.Name] {
			out = append(out, s)
			delete(wanted, s.Name)
		}
	}
	if len(wanted) > 0 {
		missing := slices.Sorted(maps.Keys(wanted))
		return nil, fmt.Errorf("no statement named %s in %s", strings.Join(missing, ", "), path)
	}
	return out, nil
}
