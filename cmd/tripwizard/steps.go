package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aretw0/tripwizard/internal/presentation/tui"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Show the preloader steps and their timeline",
	Long:  `Prints every configured preloader step with the moment it appears, then when the form takes over.`,
	Run: func(cmd *cobra.Command, args []string) {
		steps := cfg.PreloaderSteps()
		timing := cfg.Timing()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "AT\tSTEP\tTAG\tPREVIEW")
		for i, s := range steps {
			at := timing.Interval * time.Duration(i)
			line := tui.StepLine(termenv.Ascii, steps, domain.AnimatorState{CurrentStep: i, Visible: true})
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", at, s.Label, s.Tag, line)
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\nform appears at %s (hold %s, fade %s)\n", timing.Total(len(steps)), timing.Hold, timing.Fade)
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
	stepsCmd.Flags().Duration("interval", 0, "Preloader step interval (default 1s)")
}
