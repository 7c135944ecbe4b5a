package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp <forest>",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes a forest file as an MCP Server, so agents can expand, select and check nodes as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunMCP(ctx, cmd.ErrOrStderr(), cli.MCPOptions{
			TreeOptions: treeOptions(cmd, args[0]),
			Transport:   transport,
			Addr:        addr,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	addTreeFlags(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
}
