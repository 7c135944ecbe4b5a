package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var watchCmd = &cobra.Command{
	Use:   "watch <forest>",
	Short: "Print a forest and reprint it on every change",
	Long:  `Watches a forest file and reprints its visible rows whenever it changes. Expansion, selection and checks survive reloads.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if err := cli.RunWatch(ctx, cmd.OutOrStdout(), showOptions(cmd, args[0])); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			logger.Debug("watch stopped", "signal", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addShowFlags(watchCmd)
}
