package main

import (
	"fmt"

	"github.com/aretw0/tripwizard/internal/presentation/graph"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the screen flow visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the wizard screens and the transitions between them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(domain.Flow, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
