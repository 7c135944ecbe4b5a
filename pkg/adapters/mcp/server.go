package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
)

const forestURI = "arbor://forest"

// MutationResponse is returned by every tool that changes the tree.
type MutationResponse struct {
	Diff     *domain.SnapshotDiff `json:"diff,omitempty" jsonschema_description:"What changed; omitted when nothing did"`
	Snapshot *domain.Snapshot     `json:"snapshot" jsonschema_description:"The state after the change"`
}

// RowsResponse is a window of the visible rows.
type RowsResponse struct {
	Total int          `json:"total" jsonschema_description:"Number of visible rows"`
	Rows  []domain.Row `json:"rows" jsonschema_description:"The requested window"`
}

// Server exposes a single Tree as an MCP server.
type Server struct {
	tree      *arbor.Tree
	logger    *slog.Logger
	mcpServer *server.MCPServer

	// mu makes a mutation and its diff atomic with respect to other tool calls.
	mu sync.Mutex
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance for tree.
func NewServer(tree *arbor.Tree, opts ...Option) *Server {
	s := &Server{
		tree:      tree,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on ln until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, ln net.Listener) error {
	baseURL := "http://" + ln.Addr().String()
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{Handler: mux}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", ln.Addr().String())
		serverErrors <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("snapshot",
		mcp.WithDescription("Get the expanded, selected, checked, loaded and visible keys of the tree."),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleSnapshot))

	s.mcpServer.AddTool(mcp.NewTool("rows",
		mcp.WithDescription("Get a window of the visible rows, in display order."),
		mcp.WithNumber("offset", mcp.Description("First row to return (default 0)")),
		mcp.WithNumber("limit", mcp.Description("Number of rows to return (default: all)")),
		mcp.WithOutputSchema[RowsResponse](),
	), mcp.NewStructuredToolHandler(s.handleRows))

	keyTool := func(name, description string) mcp.Tool {
		return mcp.NewTool(name,
			mcp.WithDescription(description),
			mcp.WithString("key", mcp.Required(), mcp.Description("Node key")),
			mcp.WithBoolean("value", mcp.Description("Target state; omit to toggle")),
			mcp.WithOutputSchema[MutationResponse](),
		)
	}
	s.mcpServer.AddTool(keyTool("expand", "Expand or collapse a node."),
		mcp.NewStructuredToolHandler(s.keyMutation((*arbor.Tree).Expand, (*arbor.Tree).ToggleExpand)))
	s.mcpServer.AddTool(keyTool("select", "Select or deselect a node."),
		mcp.NewStructuredToolHandler(s.keyMutation((*arbor.Tree).Select, (*arbor.Tree).ToggleSelect)))
	s.mcpServer.AddTool(keyTool("check", "Check or uncheck a node, propagating to ancestors and descendants."),
		mcp.NewStructuredToolHandler(s.keyMutation((*arbor.Tree).Check, (*arbor.Tree).ToggleCheck)))

	s.mcpServer.AddTool(mcp.NewTool("load",
		mcp.WithDescription("Load the children of a node and wait for the load to settle."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Node key")),
		mcp.WithOutputSchema[MutationResponse](),
	), mcp.NewStructuredToolHandler(s.handleLoad))

	s.mcpServer.AddTool(mcp.NewTool("graph",
		mcp.WithDescription("Get the forest as a Mermaid diagram with selected and checked nodes highlighted."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out := graph.GenerateMermaid(s.tree.Forest(), graph.OverlayFrom(s.tree.Snapshot()))
		return mcp.NewToolResultText(out), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	return *s.tree.Snapshot(), nil
}

func (s *Server) handleRows(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RowsResponse, error) {
	offset, err := intArg(args, "offset")
	if err != nil {
		return RowsResponse{}, err
	}
	limit, err := intArg(args, "limit")
	if err != nil {
		return RowsResponse{}, err
	}

	rows := s.tree.Rows(offset, limit)
	if rows == nil {
		rows = []domain.Row{}
	}
	return RowsResponse{Total: len(s.tree.Visible()), Rows: rows}, nil
}

func (s *Server) keyMutation(
	set func(*arbor.Tree, domain.Key, bool) error,
	toggle func(*arbor.Tree, domain.Key) error,
) func(context.Context, mcp.CallToolRequest, map[string]interface{}) (MutationResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MutationResponse, error) {
		key, err := keyArg(args)
		if err != nil {
			return MutationResponse{}, err
		}
		return s.mutate(func() error {
			if v, ok := args["value"].(bool); ok {
				return set(s.tree, key, v)
			}
			return toggle(s.tree, key)
		})
	}
}

func (s *Server) handleLoad(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MutationResponse, error) {
	key, err := keyArg(args)
	if err != nil {
		return MutationResponse{}, err
	}
	return s.mutate(func() error {
		select {
		case err := <-s.tree.Load(ctx, key):
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

func (s *Server) mutate(fn func() error) (MutationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.tree.Snapshot()
	if err := fn(); err != nil {
		s.logger.Warn("MCP tool failed", "error", err)
		return MutationResponse{}, err
	}
	after := s.tree.Snapshot()
	return MutationResponse{Diff: domain.Diff(before, after), Snapshot: after}, nil
}

func keyArg(args map[string]interface{}) (domain.Key, error) {
	key, _ := args["key"].(string)
	if key == "" {
		return "", errors.New("key is required")
	}
	return domain.Key(key), nil
}

func intArg(args map[string]interface{}, name string) (int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, nil
	}
	f, ok := raw.(float64)
	if !ok || f < 0 || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid %s: %v", name, raw)
	}
	return int(f), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(forestURI, "Current Forest",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.tree.Forest())
		if err != nil {
			return nil, fmt.Errorf("failed to encode forest: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      forestURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
