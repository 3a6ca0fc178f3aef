package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pack/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Bundle the entry module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			watch, _ := cmd.Flags().GetBool("watch")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				NoCache: noCache,
				Watch:   watch,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the build cache and force bundling")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild whenever a source file changes")
	return cmd
}
