package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/ports"
)

type task struct {
	id  uint64
	due time.Duration
	fn  func()
}

// Scheduler is a manual ports.Scheduler. Time only moves through Advance,
// which runs due tasks on the calling goroutine in due order.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []task
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc schedules fn to run once Advance moves past d from now.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) ports.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := s.seq
	s.tasks = append(s.tasks, task{id: id, due: s.now + d, fn: fn})
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		n := len(s.tasks)
		s.tasks = slices.DeleteFunc(s.tasks, func(t task) bool { return t.id == id })
		return len(s.tasks) < n
	}
}

// Advance moves time forward by d and runs every task that became due.
// Tasks run without the scheduler lock held, so they may schedule or cancel others.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		i := s.nextDue(target)
		if i < 0 {
			s.now = target
			s.mu.Unlock()
			return
		}
		t := s.tasks[i]
		s.tasks = slices.Delete(s.tasks, i, i+1)
		s.now = t.due
		s.mu.Unlock()

		t.fn()
	}
}

// nextDue returns the index of the earliest task due by target, or -1.
func (s *Scheduler) nextDue(target time.Duration) int {
	best := -1
	for i, t := range s.tasks {
		if t.due > target {
			continue
		}
		if best < 0 || t.due < s.tasks[best].due || (t.due == s.tasks[best].due && t.id < s.tasks[best].id) {
			best = i
		}
	}
	return best
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
