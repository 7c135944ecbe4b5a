package runtime

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

type flight struct {
	done chan struct{}
	err  error
}

func resolved(err error) <-chan error {
	ch := make(chan error, 1)
	ch <- err
	return ch
}

// Load fetches the subtree of key through the configured NodeLoader.
// The returned channel receives the outcome exactly once. A key that is already loaded
// resolves immediately; a key that is loading shares the in-flight load.
func (c *Controller) Load(ctx context.Context, key domain.Key) <-chan error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.entity(key)
	if err != nil {
		return resolved(err)
	}
	return c.startLoad(ctx, e)
}

// Wait blocks until every in-flight load has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// SetLoadedKeys mirrors externally owned loaded keys.
func (c *Controller) SetLoadedKeys(keys []domain.Key) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.loaded.Mirror(slices.Clone(keys))
}

// autoLoad starts the load that follows a node's first expansion.
func (c *Controller) autoLoad(e *domain.Entity) {
	if c.nodeLoader == nil || e.Node.IsLeaf {
		return
	}
	c.startLoad(c.ctx, e)
}

func (c *Controller) startLoad(ctx context.Context, e *domain.Entity) <-chan error {
	if c.nodeLoader == nil {
		return resolved(domain.ErrNoLoader)
	}
	if domain.HasKey(c.loaded.Get(), e.Key) {
		return resolved(nil)
	}

	f, ok := c.inflight[e.Key]
	if !ok {
		f = &flight{done: make(chan struct{})}
		c.inflight[e.Key] = f
		c.loading = domain.AddKey(c.loading, e.Key)
		c.logger.Debug("node load started", "key", e.Key)

		c.wg.Add(1)
		go c.runLoad(ctx, e.Key, e.Node, f)
	}

	out := make(chan error, 1)
	go func() {
		<-f.done
		out <- f.err
	}()
	return out
}

func (c *Controller) runLoad(ctx context.Context, key domain.Key, node *domain.Node, f *flight) {
	defer c.wg.Done()
	err := c.nodeLoader.LoadData(ctx, node)

	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.inflight, key)
	c.loading = domain.RemoveKey(c.loading, key)
	info := domain.LoadInfo{Key: key, Node: node}

	if err != nil {
		err = fmt.Errorf("load %q: %w", key, err)
		c.logger.Warn("node load failed", "key", key, "error", err)
		if h := c.hooks.OnLoadError; h != nil {
			c.emit(func() { h(err, info) })
		}
	} else {
		next := domain.AddKey(c.loaded.Get(), key)
		c.loaded.Commit(next)
		c.logger.Debug("node loaded", "key", key)
		if h := c.hooks.OnLoad; h != nil {
			c.emit(func() { h(next, info) })
		}
	}

	f.err = err
	close(f.done)
}
