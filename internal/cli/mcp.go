package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/aretw0/arbor/pkg/adapters/mcp"
)

// MCPOptions configures RunMCP.
type MCPOptions struct {
	TreeOptions

	// Transport is "stdio" or "sse".
	Transport string
	// Addr is the SSE listen address. Listener overrides it.
	Addr     string
	Listener net.Listener
}

// RunMCP exposes a forest file as a Model Context Protocol server.
func RunMCP(ctx context.Context, w io.Writer, opts MCPOptions) error {
	tree, _, err := openTree(ctx, opts.TreeOptions)
	if err != nil {
		return err
	}
	defer tree.Close()

	var srvOpts []mcp.Option
	if opts.Logger != nil {
		srvOpts = append(srvOpts, mcp.WithLogger(opts.Logger))
	}
	srv := mcp.NewServer(tree, srvOpts...)

	switch opts.Transport {
	case "", "stdio":
		// Stdout carries JSON-RPC; nothing else may be written to it.
		return srv.ServeStdio()
	case "sse":
		ln := opts.Listener
		if ln == nil {
			ln, err = net.Listen("tcp", opts.Addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
		}
		printSystemMessage(w, "Starting Arbor MCP Server (SSE) on %s", ln.Addr())
		if err := srv.ServeSSE(ctx, ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		printSystemMessage(w, "MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", opts.Transport)
	}
}
