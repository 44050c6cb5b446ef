package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/ormlite-go/internal/config"
	"github.com/satishbabariya/ormlite-go/internal/ui"
)

const defaultSchema = `// Models map to tables. A model without an @id field gets an
// auto-increment "id" key.
model User @table("users") {
  name    string
  email   string
  age     int?
  created datetime @default(now())
}

model Post @table("posts") {
  title  string
  body   string?
  author User
}
`

const defaultStatements = `statements:
  - name: adults
    model: User
    fields: [id, name, age]
    where: {age__ge: 18}
    order_by: [-age]
    limit: {length: 20}
  - name: posts_by_author
    model: Post
    where: {author: 1}
  - name: rename
    kind: update
    model: User
    set: {name: "Al"}
    where: {id: 1}
`

// NewInitCommand creates the init command.
func NewInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a starter schema, statements file and config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(app)
		},
	}
}

func runInit(app *App) error {
	files := []struct {
		path    string
		content string
	}{
		{app.Config.SchemaPath, defaultSchema},
		{"statements.yaml", defaultStatements},
	}
	for _, f := range files {
		if exists, err := afero.Exists(app.Fs, f.path); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("file already exists: %s", f.path)
		}
	}

	for _, f := range files {
		if err := afero.WriteFile(app.Fs, f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", f.path, err)
		}
		ui.PrintSuccess("Created %s", f.path)
	}

	path, err := config.Save(app.Fs, app.Config, ".")
	if err != nil {
		return err
	}
	ui.PrintSuccess("Created %s", path)
	ui.PrintList([]string{
		"Set DATABASE_URL (or add it to .env)",
		"Run: ormlite validate",
		"Run: ormlite compile statements.yaml",
	})
	return nil
}
