package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigCommand handles the config command
type ConfigCommand struct {
	app *app
}

// NewConfigCommand creates a new config command
func NewConfigCommand(a *app) *cobra.Command {
	cmd := &ConfigCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after defaults, the config file, UNITYPROJ_*
environment variables and flags have been applied. The output is valid
config file YAML.`,
		Example: `  # Start a config file from the current settings
  unityproj config > "$(unityproj config --path)"`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("path", false, "Print the config file path instead")

	return cobraCmd
}

// Run executes the config command
func (c *ConfigCommand) Run(cmd *cobra.Command, args []string) error {
	pathOnly, _ := cmd.Flags().GetBool("path")

	out := cmd.OutOrStdout()
	if pathOnly {
		fmt.Fprintln(out, c.app.configPath)
		return nil
	}

	data, err := c.app.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
