package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var showCmd = &cobra.Command{
	Use:   "show <forest>",
	Short: "Print the visible rows of a forest",
	Long:  `Loads a forest file and prints the rows a tree view would render, honoring expansion, selection and checks.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunShow(cmd.Context(), cmd.OutOrStdout(), showOptions(cmd, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	addShowFlags(showCmd)
}
