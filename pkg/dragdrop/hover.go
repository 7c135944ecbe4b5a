package dragdrop

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// DefaultHoverDelay is how long the pointer must rest on a target before it expands.
const DefaultHoverDelay = 400 * time.Millisecond

type pending struct {
	token  uint64
	cancel ports.CancelFunc
}

// HoverExpander keeps at most one pending hover-expansion timer, keyed by position path.
//
// Enter, Leave and CancelAll must be called with mu held. The timer callback acquires mu
// itself before calling fire, so fire runs under the same lock as every other mutation.
type HoverExpander struct {
	mu    sync.Locker
	sched ports.Scheduler
	delay time.Duration
	fire  func(domain.Pos)

	timers map[domain.Pos]pending
	token  uint64
}

// NewHoverExpander builds an expander. A non-positive delay uses DefaultHoverDelay.
func NewHoverExpander(mu sync.Locker, sched ports.Scheduler, delay time.Duration, fire func(domain.Pos)) *HoverExpander {
	if delay <= 0 {
		delay = DefaultHoverDelay
	}
	if sched == nil {
		sched = ports.TimeScheduler{}
	}
	return &HoverExpander{
		mu:     mu,
		sched:  sched,
		delay:  delay,
		fire:   fire,
		timers: make(map[domain.Pos]pending),
	}
}

// Enter cancels every pending timer and schedules a new one for pos.
func (h *HoverExpander) Enter(pos domain.Pos) {
	h.CancelAll()

	h.token++
	token := h.token
	cancel := h.sched.AfterFunc(h.delay, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		// A timer that was cancelled after it started running must not fire.
		p, ok := h.timers[pos]
		if !ok || p.token != token {
			return
		}
		delete(h.timers, pos)
		h.fire(pos)
	})
	h.timers[pos] = pending{token: token, cancel: cancel}
}

// Leave cancels the timer pending for pos, if any.
func (h *HoverExpander) Leave(pos domain.Pos) {
	if p, ok := h.timers[pos]; ok {
		p.cancel()
		delete(h.timers, pos)
	}
}

// CancelAll cancels every pending timer.
func (h *HoverExpander) CancelAll() {
	for pos, p := range h.timers {
		p.cancel()
		delete(h.timers, pos)
	}
}

// Pending returns the positions with a scheduled timer, sorted.
func (h *HoverExpander) Pending() []domain.Pos {
	return slices.Sorted(maps.Keys(h.timers))
}
