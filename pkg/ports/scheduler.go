package ports

import "time"

// CancelFunc stops a scheduled task. It reports whether the task was stopped before running.
type CancelFunc func() bool

// Scheduler runs deferred work. Implementations may run fn on another goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// TimeScheduler schedules with the runtime timer.
type TimeScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (TimeScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return t.Stop
}
