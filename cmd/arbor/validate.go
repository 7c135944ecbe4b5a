package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <forest>",
	Short: "Check a forest for consistency",
	Long:  `Indexes a forest file and reports malformed nodes, duplicate keys and default keys that name no node.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunValidate(cmd.Context(), cmd.OutOrStdout(), treeOptions(cmd, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addTreeFlags(validateCmd)
}
