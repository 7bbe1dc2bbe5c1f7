package main

import (
	"github.com/aretw0/tripwizard/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plan a trip interactively",
	Long:  `Plays the preloader, asks for the trip details and prints the itinerary. The default command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		noColor, _ := cmd.Flags().GetBool("no-color")
		plain, _ := cmd.Flags().GetBool("plain")
		out, _ := cmd.Flags().GetString("out")

		return cli.Execute(cmd.Context(), cli.RunOptions{
			Config:  cfg,
			Debug:   debug,
			NoColor: noColor,
			Plain:   plain,
			OutPath: out,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("debug", false, "Log to stderr while the wizard runs")
	runCmd.Flags().Bool("no-color", false, "Disable colors")
	runCmd.Flags().Bool("plain", false, "Print the itinerary as raw markdown")
	runCmd.Flags().StringP("out", "o", "", "Also write the itinerary markdown to this file")
	runCmd.Flags().Duration("timeout", 0, "Generation timeout (default 30s)")
	runCmd.Flags().Duration("delay", 0, "Simulated generation latency (default 2s)")
	runCmd.Flags().Duration("interval", 0, "Preloader step interval (default 1s)")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
