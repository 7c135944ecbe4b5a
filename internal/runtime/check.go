package runtime

import (
	"slices"

	"github.com/aretw0/arbor/pkg/conduct"
	"github.com/aretw0/arbor/pkg/domain"
)

// Check sets key to checked or unchecked and conducts the change through the tree,
// unless the tree checks strictly. Nodes whose checkbox is disabled are ignored.
func (c *Controller) Check(key domain.Key, checked bool) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.entity(key)
	if err != nil {
		return err
	}
	c.setChecked(e, checked)
	return nil
}

// ToggleCheck flips the checked state of key.
func (c *Controller) ToggleCheck(key domain.Key) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.entity(key)
	if err != nil {
		return err
	}
	c.setChecked(e, !domain.HasKey(c.checked.Get().Checked, key))
	return nil
}

func (c *Controller) setChecked(e *domain.Entity, checked bool) {
	if !c.checkable || e.Node.CheckDisabled() {
		c.logger.Debug("check ignored", "key", e.Key)
		return
	}

	prev := c.checked.Get()
	var next domain.CheckState
	if c.checkStrictly {
		next = conduct.Strict(e.Key, checked, prev)
	} else {
		next = conduct.Conduct([]domain.Key{e.Key}, checked, c.maps, prev, conduct.WithReporter(c.report))
	}
	c.checked.Commit(next)

	if h := c.hooks.OnCheck; h != nil {
		info := domain.CheckInfo{
			Key:             e.Key,
			Node:            e.Node,
			Checked:         checked,
			CheckedNodes:    c.maps.Nodes(next.Checked),
			HalfCheckedKeys: slices.Clone(next.HalfChecked),
		}
		if !c.checkStrictly {
			info.CheckedNodesPositions = c.positions(next.Checked)
		}
		c.emit(func() { h(next, info) })
	}
}

func (c *Controller) positions(keys []domain.Key) []domain.NodePosition {
	out := make([]domain.NodePosition, 0, len(keys))
	for _, k := range keys {
		if e, ok := c.maps.ByKey(k); ok {
			out = append(out, domain.NodePosition{Node: e.Node, Pos: e.Pos})
		}
	}
	return out
}

// SetCheckedKeys mirrors externally owned checked keys. Outside strict mode the keys are
// conducted, so the stored state always satisfies the tri-state invariant.
func (c *Controller) SetCheckedKeys(keys []domain.Key) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.checkable {
		return
	}
	c.checked.Mirror(c.deriveChecked(keys))
}
