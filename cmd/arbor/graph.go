package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <forest>",
	Short: "Export the forest as a Mermaid diagram",
	Long:  `Outputs a Mermaid diagram (graph TD) of a forest file. Selected and checked keys are highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunGraph(cmd.Context(), cmd.OutOrStdout(), treeOptions(cmd, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addTreeFlags(graphCmd)
}
