package runtime

import (
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/expansion"
)

// Expand sets the expansion of key. Expanding a node that is not loaded yet starts its load.
func (c *Controller) Expand(key domain.Key, expanded bool) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.entity(key)
	if err != nil {
		return err
	}
	c.setExpanded(e, expanded)
	return nil
}

// ToggleExpand flips the expansion of key.
func (c *Controller) ToggleExpand(key domain.Key) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.entity(key)
	if err != nil {
		return err
	}
	c.setExpanded(e, !domain.HasKey(c.expanded.Get(), key))
	return nil
}

func (c *Controller) setExpanded(e *domain.Entity, expanded bool) {
	next := expansion.Toggle(c.expanded.Get(), e.Key, expanded)
	if c.expanded.Commit(next) {
		c.recompute()
	}
	c.logger.Debug("node expansion changed", "key", e.Key, "expanded", expanded)

	if h := c.hooks.OnExpand; h != nil {
		info := domain.ExpandInfo{Key: e.Key, Node: e.Node, Expanded: expanded}
		c.emit(func() { h(next, info) })
	}
	if expanded {
		c.autoLoad(e)
	}
}

// SetExpandedKeys mirrors an externally owned expansion. With auto-expand-parent
// the keys are closed over their ancestors first.
func (c *Controller) SetExpandedKeys(keys []domain.Key) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.autoExpandParent {
		keys = c.closeExpanded(keys)
	} else {
		keys = slices.Clone(keys)
	}
	c.expanded.Mirror(keys)
	c.recompute()
}
