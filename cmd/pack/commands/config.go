package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pack/internal/adapters/config"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or export the build configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("write")
			if path != "" {
				return c.app.WriteConfig(cmd.Context(), path)
			}

			name, _ := cmd.Flags().GetString("format")
			format, err := config.ParseFormat(name)
			if err != nil {
				return err
			}
			return c.app.PrintConfig(cmd.Context(), cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringP("format", "f", string(config.FormatYAML), "Output format: yaml or json")
	cmd.Flags().String("write", "", "Write the configuration to a file instead of stdout (format from extension)")
	return cmd
}
