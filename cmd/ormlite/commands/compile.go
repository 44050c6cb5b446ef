package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/ormlite-go/internal/core/query/compiler"
	"github.com/satishbabariya/ormlite-go/internal/core/query/loader"
	"github.com/satishbabariya/ormlite-go/internal/ui"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand(app *App) *cobra.Command {
	var dialect string

	cmd := &cobra.Command{
		Use:   "compile <statements-file> [name...]",
		Short: "Compile statement descriptors to SQL",
		Long: `Compile the statements of a descriptor file (YAML, JSON or TOML) and print
the SQL with its bound arguments. Nothing is sent to a database.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dialect != "" {
				app.Config.Database.Provider = dialect
			}
			return runCompile(app, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(&dialect, "dialect", "d", "", "SQL dialect to compile for (overrides the provider)")

	return cmd
}

func runCompile(app *App, path string, names []string) error {
	d, err := app.dialect()
	if err != nil {
		return err
	}
	reg, err := app.registry()
	if err != nil {
		return err
	}
	stmts, err := app.statements(reg, path, names)
	if err != nil {
		return err
	}
	return compileAll(compiler.New(d), stmts)
}

// compileAll compiles and prints every statement, reporting failures
// without stopping at the first one.
func compileAll(comp *compiler.Compiler, stmts []loader.Named) error {
	failed := 0
	for _, s := range stmts {
		compiled, err := comp.Compile(s.Statement)
		if err != nil {
			ui.PrintError("%s: %v", s.Name, err)
			failed++
			continue
		}
		ui.PrintStatement(s.Name, compiled.SQL, compiled.Args)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed to compile", failed, len(stmts))
	}
	ui.PrintSuccess("Compiled %d statement(s) for %s", len(stmts), comp.Dialect())
	return nil
}
