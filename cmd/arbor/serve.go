package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve [forest...]",
	Short: "Start the HTTP server",
	Long: `Starts the tree server, exposing a JSON API over HTTP with server-sent events.
Forest files given as arguments are registered as trees at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err := cli.RunServe(ctx, cmd.OutOrStdout(), cli.ServeOptions{
			Config:  cfg,
			Logger:  logger,
			Preload: args,
		})
		if sig := ctx.Signal(); sig != nil {
			logger.Info("shutdown requested", "signal", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
	cobra.CheckErr(v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr")))
	cobra.CheckErr(v.BindPFlag("server.metrics", serveCmd.Flags().Lookup("metrics")))
}
