package runtime

import (
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// Snapshot copies every state slice.
func (c *Controller) Snapshot() *domain.Snapshot {
	c.lock.Lock()
	defer c.lock.Unlock()

	checked := c.checked.Get()
	drag := c.drag
	drag.DraggedDescendantKeys = slices.Clone(drag.DraggedDescendantKeys)

	return &domain.Snapshot{
		Expanded:    slices.Clone(c.expanded.Get()),
		Selected:    slices.Clone(c.selected.Get()),
		Checked:     slices.Clone(checked.Checked),
		HalfChecked: slices.Clone(checked.HalfChecked),
		Loaded:      slices.Clone(c.loaded.Get()),
		Loading:     slices.Clone(c.loading),
		Visible:     slices.Clone(c.visible),
		Drag:        drag,
	}
}

// Visible returns the current visible list.
func (c *Controller) Visible() []domain.KeyLevel {
	c.lock.Lock()
	defer c.lock.Unlock()
	return slices.Clone(c.visible)
}

// Entity returns a copy of the entity indexed under key.
func (c *Controller) Entity(key domain.Key) (domain.Entity, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, ok := c.maps.ByKey(key)
	if !ok {
		return domain.Entity{}, false
	}
	out := *e
	out.Children = slices.Clone(e.Children)
	return out, true
}

// Keys returns every indexed key in pre-order.
func (c *Controller) Keys() []domain.Key {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.maps.Keys()
}

// Forest returns the forest the controller currently indexes.
func (c *Controller) Forest() []*domain.Node {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.forest
}

// Rows projects a window of the visible list into render-ready rows.
// A non-positive limit returns every row from offset on.
func (c *Controller) Rows(offset, limit int) []domain.Row {
	c.lock.Lock()
	defer c.lock.Unlock()

	offset = max(offset, 0)
	if offset >= len(c.visible) {
		return nil
	}
	end := len(c.visible)
	if limit > 0 {
		end = min(end, offset+limit)
	}

	checked := c.checked.Get()
	expanded := keySet(c.expanded.Get())
	selected := keySet(c.selected.Get())
	checkedSet := keySet(checked.Checked)
	half := keySet(checked.HalfChecked)
	loaded := keySet(c.loaded.Get())
	loading := keySet(c.loading)

	rows := make([]domain.Row, 0, end-offset)
	for _, kl := range c.visible[offset:end] {
		row := domain.Row{
			Key:         kl.Key,
			Level:       kl.Level,
			Expanded:    expanded[kl.Key],
			Selected:    selected[kl.Key],
			Checked:     checkedSet[kl.Key],
			HalfChecked: half[kl.Key],
			Loaded:      loaded[kl.Key],
			Loading:     loading[kl.Key],
		}
		if e, ok := c.maps.ByKey(kl.Key); ok {
			row.Pos = e.Pos
			row.Node = e.Node
		}
		if c.drag.Dragging() && c.drag.HoverKey == kl.Key {
			row.DragOver = c.drag.DropPosition == domain.DropInside
			row.DragOverGapTop = c.drag.DropPosition == domain.DropAbove
			row.DragOverGapBottom = c.drag.DropPosition == domain.DropBelow
		}
		rows = append(rows, row)
	}
	return rows
}

func keySet(keys []domain.Key) map[domain.Key]bool {
	m := make(map[domain.Key]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
