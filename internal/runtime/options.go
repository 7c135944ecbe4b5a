package runtime

import (
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dragdrop"
	"github.com/aretw0/arbor/pkg/entity"
	"github.com/aretw0/arbor/pkg/ports"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers the event callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithIndexHook attaches an extension hook to every indexing walk.
func WithIndexHook(h entity.Hook) Option {
	return func(c *Controller) {
		c.indexHook = h
	}
}

// WithNodeLoader enables async loading of subtrees on first expansion.
func WithNodeLoader(l ports.NodeLoader) Option {
	return func(c *Controller) {
		c.nodeLoader = l
	}
}

// WithScheduler replaces the timer source used for hover-expansion.
func WithScheduler(s ports.Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithHoverDelay sets how long a drag must rest on a row before it expands.
func WithHoverDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.hoverDelay = d
	}
}

// WithThresholds sets the drop position bands.
func WithThresholds(t dragdrop.Thresholds) Option {
	return func(c *Controller) {
		c.thresholds = t
	}
}

// WithSelectable toggles selection for the whole tree. Defaults to true.
func WithSelectable(v bool) Option {
	return func(c *Controller) {
		c.selectable = v
	}
}

// WithCheckable toggles checkboxes for the whole tree. Defaults to true.
func WithCheckable(v bool) Option {
	return func(c *Controller) {
		c.checkable = v
	}
}

// WithMultiple enables multiple selection.
func WithMultiple(v bool) Option {
	return func(c *Controller) {
		c.multiple = v
	}
}

// WithCheckStrictly makes every checkbox independent of its parent and children.
func WithCheckStrictly(v bool) Option {
	return func(c *Controller) {
		c.checkStrictly = v
	}
}

// WithAutoExpandParent closes supplied expanded keys over their ancestors.
func WithAutoExpandParent(v bool) Option {
	return func(c *Controller) {
		c.autoExpandParent = v
	}
}

// WithDefaultExpandedKeys sets the keys expanded at construction.
func WithDefaultExpandedKeys(keys ...domain.Key) Option {
	return func(c *Controller) {
		c.defaults.expandedKeys = slices.Clone(keys)
	}
}

// WithDefaultExpandAll expands every node at construction.
func WithDefaultExpandAll(v bool) Option {
	return func(c *Controller) {
		c.defaults.expandAll = v
	}
}

// WithDefaultExpandParent controls whether default expanded keys also expand their ancestors.
// Defaults to true.
func WithDefaultExpandParent(v bool) Option {
	return func(c *Controller) {
		c.defaults.expandParent = v
	}
}

// WithDefaultSelectedKeys sets the selection at construction.
func WithDefaultSelectedKeys(keys ...domain.Key) Option {
	return func(c *Controller) {
		c.defaults.selectedKeys = slices.Clone(keys)
	}
}

// WithDefaultCheckedKeys sets the checked keys at construction.
func WithDefaultCheckedKeys(keys ...domain.Key) Option {
	return func(c *Controller) {
		c.defaults.checkedKeys = slices.Clone(keys)
	}
}
