package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/conduct"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dragdrop"
	"github.com/aretw0/arbor/pkg/entity"
	"github.com/aretw0/arbor/pkg/expansion"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/selection"
)

type defaults struct {
	expandedKeys []domain.Key
	expandAll    bool
	expandParent bool
	selectedKeys []domain.Key
	checkedKeys  []domain.Key
}

// Controller is the StateController: it indexes the forest, arbitrates slice ownership
// and keeps every derived value consistent with the latest write.
type Controller struct {
	mu     sync.Mutex
	events []func()
	lock   stateLock

	logger     *slog.Logger
	hooks      domain.Hooks
	indexHook  entity.Hook
	nodeLoader ports.NodeLoader
	sched      ports.Scheduler
	hoverDelay time.Duration
	thresholds dragdrop.Thresholds

	selectable       bool
	checkable        bool
	multiple         bool
	checkStrictly    bool
	autoExpandParent bool
	defaults         defaults

	forest  []*domain.Node
	maps    *domain.EntityMaps
	visible []domain.KeyLevel

	expanded *selection.Slot[[]domain.Key]
	selected *selection.Slot[[]domain.Key]
	checked  *selection.Slot[domain.CheckState]
	loaded   *selection.Slot[[]domain.Key]
	loading  []domain.Key
	inflight map[domain.Key]*flight

	drag  domain.DragState
	hover *dragdrop.HoverExpander

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// stateLock serializes mutation. Unlock dispatches the events queued while the lock was held.
type stateLock struct {
	c *Controller
}

func (l stateLock) Lock() {
	l.c.mu.Lock()
}

func (l stateLock) Unlock() {
	events := l.c.events
	l.c.events = nil
	l.c.mu.Unlock()
	for _, fire := range events {
		fire()
	}
}

// New indexes forest and applies the default state.
func New(forest []*domain.Node, opts ...Option) (*Controller, error) {
	c := &Controller{
		logger:     logging.NewNop(),
		sched:      ports.TimeScheduler{},
		thresholds: dragdrop.DefaultThresholds(),
		selectable: true,
		checkable:  true,
		defaults:   defaults{expandParent: true},
		expanded:   selection.NewSlot[[]domain.Key](nil),
		selected:   selection.NewSlot[[]domain.Key](nil),
		checked:    selection.NewSlot(domain.CheckState{}),
		loaded:     selection.NewSlot[[]domain.Key](nil),
		inflight:   make(map[domain.Key]*flight),
	}
	c.lock = stateLock{c: c}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.thresholds.Validate(); err != nil {
		return nil, err
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.hover = dragdrop.NewHoverExpander(c.lock, c.sched, c.hoverDelay, c.hoverFire)

	c.lock.Lock()
	defer c.lock.Unlock()
	c.index(forest)
	c.applyDefaults()
	c.recompute()
	return c, nil
}

func (c *Controller) applyDefaults() {
	d := c.defaults
	switch {
	case d.expandAll:
		c.expanded.Commit(expansion.AllKeys(c.maps))
	case d.expandParent || c.autoExpandParent:
		c.expanded.Commit(c.closeExpanded(d.expandedKeys))
	default:
		c.expanded.Commit(slices.Clone(d.expandedKeys))
	}
	if c.selectable {
		c.selected.Commit(selection.Normalize(d.selectedKeys, c.multiple))
	}
	if c.checkable {
		c.checked.Commit(c.deriveChecked(d.checkedKeys))
	}
}

// SetForest replaces the forest. Entity maps are rebuilt, the checked keys are conducted
// again over the new shape and the visible list is recomputed.
func (c *Controller) SetForest(forest []*domain.Node) {
	c.lock.Lock()
	defer c.lock.Unlock()

	prev := c.checked.Get()
	c.index(forest)
	if c.checkable && !c.checkStrictly {
		c.checked.Replace(conduct.Recompute(prev.Checked, c.maps, conduct.WithReporter(c.report)))
	}
	if c.drag.Dragging() {
		c.drag.DraggedDescendantKeys = dragdrop.CollectDescendantKeys(c.drag.DraggedKey, c.maps)
	}
	c.recompute()
}

// Close cancels pending timers and in-flight loads and waits for the loads to return.
func (c *Controller) Close() {
	c.lock.Lock()
	c.hover.CancelAll()
	c.lock.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Controller) index(forest []*domain.Node) {
	opts := []entity.Option{entity.WithReporter(c.report)}
	if c.indexHook != nil {
		opts = append(opts, entity.WithHook(c.indexHook))
	}
	c.forest = forest
	c.maps = entity.Index(forest, opts...)
}

// recompute rebuilds the visible list from the current expanded keys.
func (c *Controller) recompute() {
	start := time.Now()
	c.visible = expansion.Flatten(c.forest, c.expanded.Get(), c.maps)
	info := domain.RecomputeInfo{
		Entities: c.maps.Len(),
		Visible:  len(c.visible),
		Duration: time.Since(start),
	}
	c.logger.Debug("visible list recomputed", "entities", info.Entities, "visible", info.Visible)
	if h := c.hooks.OnRecompute; h != nil {
		c.emit(func() { h(info) })
	}
}

func (c *Controller) emit(fire func()) {
	c.events = append(c.events, fire)
}

func (c *Controller) report(d domain.Diagnostic) {
	c.logger.Warn("tree diagnostic", "code", d.Code, "key", d.Key, "pos", d.Pos, "msg", d.Message)
	if h := c.hooks.OnDiagnostic; h != nil {
		c.emit(func() { h(d) })
	}
}

func (c *Controller) entity(key domain.Key) (*domain.Entity, error) {
	e, ok := c.maps.ByKey(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKey, key)
	}
	return e, nil
}

// closeExpanded closes keys over their ancestors, reporting keys missing from the tree.
func (c *Controller) closeExpanded(keys []domain.Key) []domain.Key {
	for _, k := range keys {
		if !c.maps.Has(k) {
			c.report(domain.Diagnostic{
				Code:    domain.DiagExpandMismatch,
				Key:     k,
				Message: fmt.Sprintf("expanded key %q is not in the tree", k),
				Err:     domain.ErrUnknownKey,
			})
		}
	}
	return expansion.CloseOverAncestors(keys, c.maps)
}

func (c *Controller) deriveChecked(keys []domain.Key) domain.CheckState {
	if c.checkStrictly {
		return domain.CheckState{Checked: slices.Clone(keys)}
	}
	return conduct.Recompute(keys, c.maps, conduct.WithReporter(c.report))
}

func (c *Controller) slot(s domain.Slice) (interface {
	Mode() domain.Ownership
	Own()
}, error) {
	switch s {
	case domain.SliceExpanded:
		return c.expanded, nil
	case domain.SliceSelected:
		return c.selected, nil
	case domain.SliceChecked:
		return c.checked, nil
	case domain.SliceLoaded:
		return c.loaded, nil
	}
	return nil, fmt.Errorf("unknown state slice %q", s)
}

// Ownership reports who owns a state slice.
func (c *Controller) Ownership(s domain.Slice) (domain.Ownership, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	sl, err := c.slot(s)
	if err != nil {
		return domain.Owned, err
	}
	return sl.Mode(), nil
}

// Own hands a mirrored slice back to the engine. The last supplied value is kept.
func (c *Controller) Own(s domain.Slice) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	sl, err := c.slot(s)
	if err != nil {
		return err
	}
	sl.Own()
	return nil
}
