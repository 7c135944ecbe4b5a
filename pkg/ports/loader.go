package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// ForestLoader defines how the engine retrieves the raw forest.
// This allows the source (memory, file, network) to be decoupled.
type ForestLoader interface {
	// Load returns the ordered root nodes. The engine borrows them read-only.
	Load(ctx context.Context) ([]*domain.Node, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload functionality.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying forest changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// NodeLoader fetches the subtree of a node on its first expansion.
// The host is expected to supply the new children through a forest update;
// the engine only tracks the loading/loaded lifecycle.
type NodeLoader interface {
	LoadData(ctx context.Context, node *domain.Node) error
}

// NodeLoaderFunc adapts a function to NodeLoader.
type NodeLoaderFunc func(ctx context.Context, node *domain.Node) error

// LoadData calls f.
func (f NodeLoaderFunc) LoadData(ctx context.Context, node *domain.Node) error {
	return f(ctx, node)
}
