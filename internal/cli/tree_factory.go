package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
)

// TreeOptions describes how the CLI opens a forest file.
type TreeOptions struct {
	Path   string
	Config *config.Config
	Logger *slog.Logger

	ExpandAll bool
	Expanded  []string
	Selected  []string
	Checked   []string
}

// DiagnosticLog collects the diagnostics a tree reports.
type DiagnosticLog struct {
	mu    sync.Mutex
	items []domain.Diagnostic
}

// Add records d.
func (l *DiagnosticLog) Add(d domain.Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, d)
}

// Items returns the recorded diagnostics in report order.
func (l *DiagnosticLog) Items() []domain.Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Diagnostic(nil), l.items...)
}

// openTree opens the forest file with standard CLI conventions.
func openTree(ctx context.Context, opts TreeOptions, extra ...arbor.Option) (*arbor.Tree, *DiagnosticLog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	diags := &DiagnosticLog{}

	treeOpts := []arbor.Option{
		arbor.WithLogger(logger),
		arbor.WithHooks(createDebugHooks(logger)),
		arbor.WithHooks(domain.Hooks{OnDiagnostic: diags.Add}),
	}
	if opts.Config != nil {
		treeOpts = append(treeOpts, opts.Config.TreeOptions()...)
	}
	if opts.ExpandAll {
		treeOpts = append(treeOpts, arbor.WithDefaultExpandAll(true))
	}
	treeOpts = append(treeOpts,
		arbor.WithDefaultExpandedKeys(keys(opts.Expanded)...),
		arbor.WithDefaultSelectedKeys(keys(opts.Selected)...),
		arbor.WithDefaultCheckedKeys(keys(opts.Checked)...),
	)
	treeOpts = append(treeOpts, extra...)

	tree, err := arbor.Open(ctx, opts.Path, treeOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening tree: %w", err)
	}
	return tree, diags, nil
}

func keys(in []string) []domain.Key {
	out := make([]domain.Key, len(in))
	for i, s := range in {
		out[i] = domain.Key(s)
	}
	return out
}
