package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/ormlite-go/internal/core/query/compiler"
	"github.com/satishbabariya/ormlite-go/internal/ui"
	"github.com/satishbabariya/ormlite-go/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <statements-file>",
		Short: "Recompile statements whenever they or the schema change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), app, args[0])
		},
	}
}

func runWatch(ctx context.Context, app *App, path string) error {
	d, err := app.dialect()
	if err != nil {
		return err
	}
	comp := compiler.New(d)

	recompile := func() error {
		ui.PrintSection("Compiling " + path)
		reg, err := app.registry()
		if err != nil {
			ui.PrintError("%v", err)
			return err
		}
		stmts, err := app.statements(reg, path, nil)
		if err != nil {
			ui.PrintError("%v", err)
			return err
		}
		return compileAll(comp, stmts)
	}

	w, err := watch.NewWatcher([]string{app.Config.SchemaPath, path}, recompile,
		watch.WithErrorHandler(func(error) {}))
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(); err != nil {
		return err
	}
	ui.PrintSuccess("Watching %s and %s (Ctrl+C to stop)", app.Config.SchemaPath, path)

	<-ctx.Done()
	return nil
}
