package cli

import (
	"fmt"
	"strings"

	"github.com/LeLocTai/unityhub-launcher/internal/plugin"
	"github.com/spf13/cobra"
)

// OpenCommand handles the open command
type OpenCommand struct {
	app *app
}

// NewOpenCommand creates a new open command
func NewOpenCommand(a *app) *cobra.Command {
	cmd := &OpenCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "open [query...]",
		Short: "Open the best matching project",
		Long: `Reloads the index and opens the best match for the query with the
editor version the project requires. When that version is not installed,
Unity Hub is started for the project instead.

When several projects share the top score and stdin is a terminal, you are
asked which one to open. --first always opens the first result.`,
		Example: `  # Open a project by name
  unityproj open racing

  # Never prompt
  unityproj open racing --first`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("first", false, "Open the first result without prompting")

	return cobraCmd
}

// Run executes the open command
func (c *OpenCommand) Run(cmd *cobra.Command, args []string) error {
	first, _ := cmd.Flags().GetBool("first")
	text := strings.Join(args, " ")

	ctx := cmd.Context()
	c.app.plugin.Reload(ctx)

	entries := c.app.plugin.Query(ctx, text)
	if len(entries) == 0 {
		return fmt.Errorf("no project matches %q", text)
	}

	chosen := entries[0]
	if tied := topTied(entries); len(tied) > 1 && !first && c.app.interactive() {
		e, ok, err := c.app.choose(tied)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		chosen = e
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Opening %s (%s)\n", chosen.Title, chosen.Ref.Path)
	c.app.plugin.Activate(chosen.Ref)
	return nil
}

// topTied returns the leading entries sharing the best score.
func topTied(entries []plugin.Entry) []plugin.Entry {
	if len(entries) == 0 {
		return nil
	}
	n := 1
	for n < len(entries) && entries[n].Score == entries[0].Score {
		n++
	}
	return entries[:n]
}
