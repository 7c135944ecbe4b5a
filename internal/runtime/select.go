package runtime

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/selection"
)

// Select sets the selection of key. Disabled or non-selectable nodes are ignored.
func (c *Controller) Select(key domain.Key, selected bool) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.entity(key)
	if err != nil {
		return err
	}
	c.setSelected(e, selected)
	return nil
}

// ToggleSelect flips the selection of key.
func (c *Controller) ToggleSelect(key domain.Key) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.entity(key)
	if err != nil {
		return err
	}
	c.setSelected(e, !domain.HasKey(c.selected.Get(), key))
	return nil
}

func (c *Controller) setSelected(e *domain.Entity, selected bool) {
	if !e.Node.CanSelect(c.selectable) {
		c.logger.Debug("selection ignored", "key", e.Key)
		return
	}

	next := selection.Select(c.selected.Get(), e.Key, selected, c.multiple)
	c.selected.Commit(next)

	if h := c.hooks.OnSelect; h != nil {
		info := domain.SelectInfo{
			Key:           e.Key,
			Node:          e.Node,
			Selected:      selected,
			SelectedNodes: c.maps.Nodes(next),
		}
		c.emit(func() { h(next, info) })
	}
}

// SetSelectedKeys mirrors an externally owned selection.
// Without multiple selection only the first key is kept.
func (c *Controller) SetSelectedKeys(keys []domain.Key) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.selectable {
		return
	}
	c.selected.Mirror(selection.Normalize(keys, c.multiple))
}
