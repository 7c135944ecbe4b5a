package arbor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dragdrop"
	"github.com/aretw0/arbor/pkg/entity"
	"github.com/aretw0/arbor/pkg/ports"
)

// Tree is the high-level entry point for the Arbor library.
// It embeds the StateController, so every state operation is available directly.
type Tree struct {
	*runtime.Controller
	loader      ports.ForestLoader
	runtimeOpts []runtime.Option
	hooks       domain.Hooks
	logger      *slog.Logger
	Name        string
}

// Thresholds tune how a row splits into above, inside and below drop bands.
type Thresholds = dragdrop.Thresholds

// Option defines a functional option for configuring the Tree.
type Option func(*Tree)

func withRuntime(opt runtime.Option) Option {
	return func(t *Tree) {
		t.runtimeOpts = append(t.runtimeOpts, opt)
	}
}

// WithHooks registers event callbacks. Repeated calls add to the callbacks already registered.
func WithHooks(hooks domain.Hooks) Option {
	return func(t *Tree) {
		t.hooks = domain.ChainHooks(t.hooks, hooks)
	}
}

// WithLoader injects a custom ForestLoader, bypassing the default file loader.
func WithLoader(l ports.ForestLoader) Option {
	return func(t *Tree) {
		t.loader = l
	}
}

// WithLogger sets a custom structured logger for the tree.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// WithName labels the tree in logs.
func WithName(name string) Option {
	return func(t *Tree) {
		t.Name = name
	}
}

// WithNodeLoader enables async loading of subtrees on first expansion.
func WithNodeLoader(l ports.NodeLoader) Option { return withRuntime(runtime.WithNodeLoader(l)) }

// WithIndexHook attaches an extension hook to every indexing walk.
func WithIndexHook(h entity.Hook) Option { return withRuntime(runtime.WithIndexHook(h)) }

// WithScheduler replaces the timer source used for hover-expansion.
func WithScheduler(s ports.Scheduler) Option { return withRuntime(runtime.WithScheduler(s)) }

// WithHoverDelay sets how long a drag must rest on a row before it expands.
func WithHoverDelay(d time.Duration) Option { return withRuntime(runtime.WithHoverDelay(d)) }

// WithThresholds sets the drop position bands.
func WithThresholds(th dragdrop.Thresholds) Option { return withRuntime(runtime.WithThresholds(th)) }

// WithSelectable toggles selection for the whole tree.
func WithSelectable(v bool) Option { return withRuntime(runtime.WithSelectable(v)) }

// WithCheckable toggles checkboxes for the whole tree.
func WithCheckable(v bool) Option { return withRuntime(runtime.WithCheckable(v)) }

// WithMultiple enables multiple selection.
func WithMultiple(v bool) Option { return withRuntime(runtime.WithMultiple(v)) }

// WithCheckStrictly makes every checkbox independent.
func WithCheckStrictly(v bool) Option { return withRuntime(runtime.WithCheckStrictly(v)) }

// WithAutoExpandParent closes supplied expanded keys over their ancestors.
func WithAutoExpandParent(v bool) Option { return withRuntime(runtime.WithAutoExpandParent(v)) }

// WithDefaultExpandedKeys sets the keys expanded at construction.
func WithDefaultExpandedKeys(keys ...domain.Key) Option {
	return withRuntime(runtime.WithDefaultExpandedKeys(keys...))
}

// WithDefaultExpandAll expands every node at construction.
func WithDefaultExpandAll(v bool) Option { return withRuntime(runtime.WithDefaultExpandAll(v)) }

// WithDefaultExpandParent controls whether default expanded keys also expand their ancestors.
func WithDefaultExpandParent(v bool) Option { return withRuntime(runtime.WithDefaultExpandParent(v)) }

// WithDefaultSelectedKeys sets the selection at construction.
func WithDefaultSelectedKeys(keys ...domain.Key) Option {
	return withRuntime(runtime.WithDefaultSelectedKeys(keys...))
}

// WithDefaultCheckedKeys sets the checked keys at construction.
func WithDefaultCheckedKeys(keys ...domain.Key) Option {
	return withRuntime(runtime.WithDefaultCheckedKeys(keys...))
}

// New builds a Tree over an in-memory forest. The forest is borrowed, not copied.
func New(forest []*domain.Node, opts ...Option) (*Tree, error) {
	t := &Tree{}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.init(forest); err != nil {
		return nil, err
	}
	return t, nil
}

// Open builds a Tree from a forest file at path.
// If WithLoader is provided, path only names the tree and may be empty.
func Open(ctx context.Context, path string, opts ...Option) (*Tree, error) {
	t := &Tree{}
	for _, opt := range opts {
		opt(t)
	}

	if t.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		t.loader = file.New(absPath, file.WithLogger(t.logger))
	}
	if t.Name == "" && path != "" {
		t.Name = filepath.Base(path)
	}

	forest, err := t.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load forest: %w", err)
	}
	if err := t.init(forest); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) init(forest []*domain.Node) error {
	if t.logger == nil {
		t.logger = logging.NewNop()
	}
	if t.Name != "" {
		t.logger = t.logger.With("tree", t.Name)
	}

	opts := []runtime.Option{
		runtime.WithHooks(t.hooks),
		runtime.WithLogger(t.logger),
	}
	opts = append(opts, t.runtimeOpts...)

	c, err := runtime.New(forest, opts...)
	if err != nil {
		return fmt.Errorf("failed to build tree: %w", err)
	}
	t.Controller = c
	return nil
}

// Loader returns the ForestLoader the tree was opened with, if any.
func (t *Tree) Loader() ports.ForestLoader {
	return t.loader
}

// Reload fetches the forest again and replaces the current one.
func (t *Tree) Reload(ctx context.Context) error {
	if t.loader == nil {
		return domain.ErrNoForestLoader
	}
	forest, err := t.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload forest: %w", err)
	}
	t.SetForest(forest)
	t.logger.Debug("forest reloaded")
	return nil
}

// Watch reloads the forest every time the loader reports a change.
// Each reload outcome is sent on the returned channel, which closes when ctx is done.
func (t *Tree) Watch(ctx context.Context) (<-chan error, error) {
	if t.loader == nil {
		return nil, domain.ErrNoForestLoader
	}
	w, ok := t.loader.(ports.Watchable)
	if !ok {
		return nil, domain.ErrNotWatchable
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan error, 1)
	go func() {
		defer close(out)
		for range changes {
			err := t.Reload(ctx)
			if err != nil {
				t.logger.Warn("reload failed", "error", err)
			}
			select {
			case out <- err:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Preload loads several subtrees concurrently and waits for all of them.
// The first failure cancels the loads still in flight.
func (t *Tree) Preload(ctx context.Context, keys ...domain.Key) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, k := range keys {
		g.Go(func() error {
			select {
			case err := <-t.Load(gctx, k):
				return err
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	return g.Wait()
}
