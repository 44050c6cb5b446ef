package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/ormlite-go/internal/core/schema"
	"github.com/satishbabariya/ormlite-go/internal/ui"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [schema-path]",
		Short: "Validate a schema file",
		Long: `Parse a schema file and build its models.

Models must have at most one primary key, no duplicate fields or columns,
and every relation must point at a declared model.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.Config.SchemaPath = args[0]
			}
			return runValidate(app)
		},
	}
}

func runValidate(app *App) error {
	reg, err := app.registry()
	if err != nil {
		ui.PrintError("Schema validation failed")
		return err
	}

	ui.PrintSuccess("Schema is valid: %s", app.Config.SchemaPath)

	rows := make([][]string, 0, len(reg.Models()))
	for _, m := range reg.Models() {
		rows = append(rows, []string{
			m.Name(),
			m.Table(),
			m.PrimaryKey().Name,
			fmt.Sprint(len(m.Fields())),
			relations(m),
		})
	}
	return ui.PrintTable([]string{"Model", "Table", "Key", "Fields", "Relations"}, rows)
}

func relations(m *schema.Model) string {
	var out []string
	for _, f := range m.Fields() {
		if f.IsRelation() {
			out = append(out, fmt.Sprintf("%s -> %s", f.Name, f.Related))
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ", ")
}
