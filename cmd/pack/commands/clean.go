package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pack/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the build cache and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, _ := cmd.Flags().GetBool("bundle")
			return c.app.Clean(cmd.Context(), app.CleanOptions{Bundle: bundle})
		},
	}
	cmd.Flags().BoolP("bundle", "b", false, "Also remove the generated bundle")
	return cmd
}
