package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lessc/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the result cache and build output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetBool("output")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{ConfigPath: configPath}
			switch {
			case all:
				opts.Cache = true
				opts.Output = true
			case output:
				opts.Output = true
			default:
				opts.Cache = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("output", "o", false, "Clean the build output instead of the cache")
	cmd.Flags().BoolP("all", "a", false, "Clean both the cache and the build output")

	return cmd
}
