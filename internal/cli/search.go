package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/LeLocTai/unityhub-launcher/internal/plugin"
	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cobra"
)

// SearchCommand handles the search command
type SearchCommand struct {
	app *app
}

// NewSearchCommand creates a new search command
func NewSearchCommand(a *app) *cobra.Command {
	cmd := &SearchCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "List projects matching a query",
		Long: `Reloads the index and prints the projects matching the query, best
match first. An empty query lists every project, favorites and recently
modified projects first.

--template renders each result with a Go template. The sprig functions are
available, and the data is the result entry (.Title, .SubTitle, .Score,
.Ref.Path, .Project.RequiredVersion, .Project.IsFavorite, ...).`,
		Example: `  # Fuzzy search
  unityproj search racing game

  # Output JSON for scripting
  unityproj search --format json

  # Custom line format
  unityproj search --template '{{.Project.RequiredVersion | printf "%-12s"}} {{.Ref.Path}}'`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "text", "Output format: text or json")
	cobraCmd.Flags().String("template", "", "Go template applied to each result")
	cobraCmd.Flags().Int("limit", 0, "Maximum number of results (0 uses the configured limit)")

	return cobraCmd
}

// Run executes the search command
func (c *SearchCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	tmplText, _ := cmd.Flags().GetString("template")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	var tmpl *template.Template
	if tmplText != "" {
		var err error
		tmpl, err = parseEntryTemplate(tmplText)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	c.app.plugin.Reload(ctx)

	entries := c.app.plugin.Query(ctx, strings.Join(args, " "))
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := cmd.OutOrStdout()
	switch {
	case tmpl != nil:
		return outputTemplate(out, tmpl, entries)
	case format == "json":
		return outputJSON(out, entries)
	case format == "text":
		return outputEntries(out, entries)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func parseEntryTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("entry").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

func outputTemplate(out io.Writer, tmpl *template.Template, entries []plugin.Entry) error {
	for _, e := range entries {
		var b strings.Builder
		if err := tmpl.Execute(&b, e); err != nil {
			return fmt.Errorf("failed to render %s: %w", e.Ref.Path, err)
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), "\n"))
	}
	return nil
}

func outputEntries(out io.Writer, entries []plugin.Entry) error {
	for _, e := range entries {
		fmt.Fprintf(out, "%s\n    %s\n", e.Title, strings.ReplaceAll(e.SubTitle, "\t", "  "))
	}
	return nil
}

func outputJSON(out io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(out, string(jsonData))
	return nil
}
