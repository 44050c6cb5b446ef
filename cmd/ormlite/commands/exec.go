package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/ormlite-go/internal/core/query/domain"
	"github.com/satishbabariya/ormlite-go/internal/ui"
	"github.com/satishbabariya/ormlite-go/internal/utils/container"
)

// NewExecCommand creates the exec command.
func NewExecCommand(app *App) *cobra.Command {
	var logQueries bool

	cmd := &cobra.Command{
		Use:   "exec <statements-file> [name...]",
		Short: "Run statement descriptors against the database",
		Long: `Compile the statements of a descriptor file and run them in order against
the configured database. Each statement runs in its own transaction; the
first failure stops the run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if logQueries {
				app.Config.LogQueries = true
			}
			return runExec(cmd.Context(), app, args[0], args[1:])
		},
	}

	cmd.Flags().BoolVar(&logQueries, "log-queries", false, "Log every statement (needs --debug)")

	return cmd
}

func runExec(ctx context.Context, app *App, path string, names []string) error {
	if err := app.Config.Validate(); err != nil {
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

	c, err := container.NewContainer(app.Config, reg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer c.Close(ctx)

	svc := c.QueryService()
	for _, s := range stmts {
		if _, isSelect := s.Statement.(domain.Select); isSelect {
			rows, err := svc.Query(ctx, s.Statement)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
			fmt.Fprintln(ui.Out, ui.TitleStyle.Render(s.Name))
			if err := ui.PrintRows(rows.Columns, rows.Values); err != nil {
				return err
			}
			continue
		}

		res, err := svc.Exec(ctx, s.Statement)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		ui.PrintSuccess("%s: %d row(s) affected", s.Name, res.RowsAffected)
	}
	return nil
}
