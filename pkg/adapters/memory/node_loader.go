package memory

import (
	"context"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// NodeLoader is a scripted ports.NodeLoader. Each LoadData call blocks until the test
// resolves the node's key or the context is done. Resolving before the call is allowed.
// Safe for concurrent use.
type NodeLoader struct {
	mu      sync.Mutex
	futures map[domain.Key]chan error
	calls   []domain.Key
}

// NewNodeLoader creates a loader with no resolved keys.
func NewNodeLoader() *NodeLoader {
	return &NodeLoader{futures: make(map[domain.Key]chan error)}
}

func (l *NodeLoader) future(key domain.Key) chan error {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.futures[key]
	if !ok {
		f = make(chan error, 1)
		l.futures[key] = f
	}
	return f
}

// LoadData records the call and waits for Resolve.
func (l *NodeLoader) LoadData(ctx context.Context, node *domain.Node) error {
	l.mu.Lock()
	l.calls = append(l.calls, node.Key)
	l.mu.Unlock()

	select {
	case err := <-l.future(node.Key):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resolve completes the pending or next load of key with err.
func (l *NodeLoader) Resolve(key domain.Key, err error) {
	l.future(key) <- err
}

// Calls returns the keys LoadData was called with, in call order.
func (l *NodeLoader) Calls() []domain.Key {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Key, len(l.calls))
	copy(out, l.calls)
	return out
}
