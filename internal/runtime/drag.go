package runtime

import (
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dragdrop"
	"github.com/aretw0/arbor/pkg/expansion"
)

// DragStart begins a gesture on key. The dragged node collapses and its subtree becomes
// an invalid drop target.
func (c *Controller) DragStart(key domain.Key) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.entity(key)
	if err != nil {
		return err
	}

	c.hover.CancelAll()
	c.drag = domain.DragState{
		DraggedKey:            key,
		DraggedDescendantKeys: dragdrop.CollectDescendantKeys(key, c.maps),
		DropPosition:          domain.DropInside,
	}
	if domain.HasKey(c.expanded.Get(), key) && c.expanded.Commit(domain.RemoveKey(c.expanded.Get(), key)) {
		c.recompute()
	}
	c.logger.Debug("drag started", "key", key)

	c.emitDrag(c.hooks.OnDragStart, e)
	return nil
}

// DragEnter moves the hover target to key. offset is the pointer's vertical offset within
// the row and height the row's height. The row expands once the pointer rests on it for
// the hover delay; entering the dragged node itself in the middle band clears the hover.
func (c *Controller) DragEnter(key domain.Key, offset, height float64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.dragTarget(key)
	if err != nil {
		return err
	}

	pos := dragdrop.ResolveDropPosition(offset, height, c.thresholds)
	if dragdrop.IsSelfDrop(c.drag.DraggedKey, key, pos) {
		c.hover.CancelAll()
		c.drag.HoverKey = ""
		c.drag.DropPosition = domain.DropInside
		return nil
	}

	c.drag.HoverKey = key
	c.drag.DropPosition = pos
	c.hover.Enter(e.Pos)
	return nil
}

// DragOver updates the drop position while the pointer moves over the hover target.
// Nothing changes, and no event fires, while the resolved position stays the same.
func (c *Controller) DragOver(key domain.Key, offset, height float64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.dragTarget(key)
	if err != nil {
		return err
	}

	if key == c.drag.HoverKey {
		pos := dragdrop.ResolveDropPosition(offset, height, c.thresholds)
		if pos == c.drag.DropPosition {
			return nil
		}
		c.drag.DropPosition = pos
	}
	c.emitDrag(c.hooks.OnDragOver, e)
	return nil
}

// DragLeave clears the hover target and cancels its pending expansion.
func (c *Controller) DragLeave(key domain.Key) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.dragTarget(key)
	if err != nil {
		return err
	}

	c.hover.Leave(e.Pos)
	c.drag.HoverKey = ""
	c.emitDrag(c.hooks.OnDragLeave, e)
	return nil
}

// DragEnd finishes the gesture, whether or not a drop happened.
func (c *Controller) DragEnd() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.drag.Dragging() {
		return domain.ErrNotDragging
	}
	key := c.drag.DraggedKey
	c.hover.CancelAll()
	c.drag = domain.DragState{}
	c.logger.Debug("drag ended", "key", key)

	if h := c.hooks.OnDragEnd; h != nil {
		info := domain.DragInfo{Key: key}
		if e, ok := c.maps.ByKey(key); ok {
			info.Node = e.Node
		}
		c.emit(func() { h(info) })
	}
	return nil
}

// Drop finalizes the gesture on key. A drop onto the dragged node or any of its
// descendants is reported as a diagnostic and produces no drop event.
func (c *Controller) Drop(key domain.Key) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, err := c.dragTarget(key)
	if err != nil {
		return err
	}

	c.hover.CancelAll()
	c.drag.HoverKey = ""

	if domain.HasKey(c.drag.DraggedDescendantKeys, key) {
		c.report(domain.Diagnostic{
			Code:    domain.DiagInvalidDrop,
			Key:     key,
			Pos:     e.Pos,
			Message: fmt.Sprintf("cannot drop %q onto %q", c.drag.DraggedKey, key),
			Err:     domain.ErrInvalidDrop,
		})
		return nil
	}

	info := domain.DropInfo{
		Key:                   key,
		Node:                  e.Node,
		DraggedKey:            c.drag.DraggedKey,
		DraggedDescendantKeys: slices.Clone(c.drag.DraggedDescendantKeys),
		DropPosition:          dragdrop.DropIndex(e.Pos, c.drag.DropPosition),
		DropToGap:             c.drag.DropPosition != domain.DropInside,
	}
	if dragged, ok := c.maps.ByKey(c.drag.DraggedKey); ok {
		info.DraggedNode = dragged.Node
	}
	c.logger.Debug("drop", "key", key, "dragged", info.DraggedKey, "index", info.DropPosition)

	if h := c.hooks.OnDrop; h != nil {
		c.emit(func() { h(info) })
	}
	return nil
}

// hoverFire runs under the state lock when a hover timer elapses.
func (c *Controller) hoverFire(pos domain.Pos) {
	if !c.drag.Dragging() {
		return
	}
	e, ok := c.maps.ByPos(pos)
	if !ok {
		return
	}

	next := expansion.Toggle(c.expanded.Get(), e.Key, true)
	if c.expanded.Commit(next) {
		c.recompute()
	}
	c.autoLoad(e)
	c.logger.Debug("hover expanded", "key", e.Key)

	if h := c.hooks.OnDragEnter; h != nil {
		info := domain.DragInfo{
			Key:          e.Key,
			Node:         e.Node,
			DropPosition: c.drag.DropPosition,
			ExpandedKeys: next,
		}
		c.emit(func() { h(info) })
	}
}

func (c *Controller) dragTarget(key domain.Key) (*domain.Entity, error) {
	if !c.drag.Dragging() {
		return nil, domain.ErrNotDragging
	}
	return c.entity(key)
}

func (c *Controller) emitDrag(h func(domain.DragInfo), e *domain.Entity) {
	if h == nil {
		return
	}
	info := domain.DragInfo{Key: e.Key, Node: e.Node, DropPosition: c.drag.DropPosition}
	c.emit(func() { h(info) })
}
