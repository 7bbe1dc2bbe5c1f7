package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/tripwizard"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tripwizard",
	// Printing the version needs no configuration.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tripwizard version %s\n", strings.TrimSpace(tripwizard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
