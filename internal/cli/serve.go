package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
	httpAdapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures RunServe.
type ServeOptions struct {
	Config *config.Config
	Logger *slog.Logger

	// Preload optionally names forest files registered as trees before the server starts.
	Preload []string

	// Listener overrides Config.Server.Addr, mainly for tests.
	Listener net.Listener
}

// NewServeHandler builds the HTTP handler: the tree API plus /metrics when enabled.
func NewServeHandler(sessions *session.Manager, opts ServeOptions) (http.Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	cfg := opts.Config

	handlerOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if cfg != nil {
		handlerOpts = append(handlerOpts, httpAdapter.WithTreeOptions(
			arbor.WithThresholds(cfg.Drag.Thresholds),
			arbor.WithHoverDelay(cfg.Drag.HoverDelay),
		))
	}

	if cfg == nil || !cfg.Server.Metrics {
		return httpAdapter.NewHandler(sessions, handlerOpts...), nil
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	handlerOpts = append(handlerOpts, httpAdapter.WithTreeOptions(arbor.WithHooks(metrics.Hooks())))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", httpAdapter.NewHandler(sessions, handlerOpts...))
	return mux, nil
}

// RunServe serves the tree API until ctx is done, then shuts down gracefully.
func RunServe(ctx context.Context, w io.Writer, opts ServeOptions) error {
	if opts.Config == nil {
		return errors.New("serve requires a configuration")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	sessions := session.NewManager(session.WithLogger(logger))
	defer sessions.Close()

	for _, path := range opts.Preload {
		tree, _, err := openTree(ctx, TreeOptions{Path: path, Config: opts.Config, Logger: logger})
		if err != nil {
			return err
		}
		id := sessions.Create(tree)
		printSystemMessage(w, "Tree %s loaded from %s", id, path)
	}

	handler, err := NewServeHandler(sessions, opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    opts.Config.Server.Addr,
		Handler: handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		if opts.Listener != nil {
			printSystemMessage(w, "Starting Arbor Server on %s", opts.Listener.Addr())
			serverErrors <- srv.Serve(opts.Listener)
			return
		}
		printSystemMessage(w, "Starting Arbor Server on %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		printSystemMessage(w, "Start shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(w, "Arbor Server stopped gracefully")
		return nil
	}
}
