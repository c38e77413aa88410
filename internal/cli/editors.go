package cli

import (
	"fmt"

	"github.com/LeLocTai/unityhub-launcher/internal/models"
	"github.com/spf13/cobra"
)

// EditorsCommand handles the editors command
type EditorsCommand struct {
	app *app
}

// EditorsOutput is the JSON shape of the editors command.
type EditorsOutput struct {
	Roots   []string        `json:"roots"`
	Editors []models.Editor `json:"editors"`
}

// NewEditorsCommand creates a new editors command
func NewEditorsCommand(a *app) *cobra.Command {
	cmd := &EditorsCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "editors",
		Short: "List installed Unity editors",
		Long: `Scans the editor install roots and lists every installed version.

The primary root is scanned first, then the Unity Hub secondary install
path, then editors.extra_roots. When a version is installed under more than
one root the first one wins.`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the editors command
func (c *EditorsCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	snap := c.app.plugin.Reload(cmd.Context())
	editors := snap.Registry.Editors()

	out := cmd.OutOrStdout()
	if format == "json" {
		var roots []string
		for _, root := range snap.EditorRoots {
			if root != "" {
				roots = append(roots, root)
			}
		}
		if editors == nil {
			editors = []models.Editor{}
		}
		return outputJSON(out, EditorsOutput{Roots: roots, Editors: editors})
	}

	if len(editors) == 0 {
		fmt.Fprintln(out, "No Unity editors found")
		return nil
	}
	for _, e := range editors {
		fmt.Fprintf(out, "%-14s %s\n", e.Version, e.Path)
	}
	return nil
}
