package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lessc/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile every root stylesheet of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			jobs, _ := cmd.Flags().GetInt("jobs")

			_, err := c.app.Build(cmd.Context(), app.BuildOptions{
				ConfigPath: configPath,
				NoCache:    noCache,
				Jobs:       jobs,
			})
			return err
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Ignore cached results and recompile every root")
	cmd.Flags().IntP("jobs", "j", 0, "Number of roots compiled in parallel (0 means one per CPU)")
	return cmd
}
