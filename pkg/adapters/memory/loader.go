package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Loader implements ports.ForestLoader and ports.Watchable over an in-memory forest.
// The forest is kept serialized so every Load hands out an independent copy.
type Loader struct {
	mu       sync.Mutex
	data     []byte
	watchers []chan struct{}
}

// NewLoader creates a Loader from a raw JSON forest.
func NewLoader(data []byte) *Loader {
	return &Loader{data: data}
}

// NewFromNodes creates a Loader from domain objects.
// This handles serialization automatically, improving DX for tests.
func NewFromNodes(nodes ...*domain.Node) (*Loader, error) {
	data, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal forest: %w", err)
	}
	return &Loader{data: data}, nil
}

// Load decodes a fresh copy of the forest.
func (l *Loader) Load(ctx context.Context) ([]*domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	data := l.data
	l.mu.Unlock()

	var forest []*domain.Node
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("failed to decode forest: %w", err)
	}
	return forest, nil
}

// Set replaces the forest and signals every watcher.
func (l *Loader) Set(nodes ...*domain.Node) error {
	data, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal forest: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = data
	for _, w := range l.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
	return nil
}

// Watch signals after every Set until ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	l.mu.Lock()
	l.watchers = append(l.watchers, ch)
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, w := range l.watchers {
			if w == ch {
				l.watchers = append(l.watchers[:i], l.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}
