package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager is a registry of live trees addressed by ID.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	mu    sync.Mutex            // Global lock for both maps
	trees map[string]*arbor.Tree
	locks map[string]*lockEntry // Map of active locks

	newID  func() string
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIDGenerator replaces the UUID generator used by Create.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// NewManager creates an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		trees:  make(map[string]*arbor.Tree),
		locks:  make(map[string]*lockEntry),
		newID:  uuid.NewString,
		logger: logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Create registers t and returns its new ID.
func (m *Manager) Create(t *arbor.Tree) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.newID()
	for {
		if _, taken := m.trees[id]; !taken {
			break
		}
		id = m.newID()
	}
	m.trees[id] = t
	m.logger.Debug("tree registered", "tree_id", id)
	return id
}

// Get returns the tree registered under id.
func (m *Manager) Get(id string) (*arbor.Tree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.trees[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTreeNotFound, id)
	}
	return t, nil
}

// List returns the registered IDs in lexical order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.trees))
	for id := range m.trees {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Delete unregisters the tree and closes it once pending operations on it have finished.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(_ context.Context, t *arbor.Tree) error {
		m.mu.Lock()
		delete(m.trees, id)
		m.mu.Unlock()

		t.Close()
		m.logger.Debug("tree deleted", "tree_id", id)
		return nil
	})
}

// WithLock executes fn while holding the lock for the tree.
// Operations composed inside fn are not interleaved with other WithLock calls on the same tree.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context, *arbor.Tree) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	t, err := m.Get(id)
	if err != nil {
		return err
	}
	return fn(ctx, t)
}

// Close deletes every registered tree.
func (m *Manager) Close() {
	for _, id := range m.List() {
		if err := m.Delete(context.Background(), id); err != nil {
			m.logger.Warn("failed to close tree", "tree_id", id, "error", err)
		}
	}
}
