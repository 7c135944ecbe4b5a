package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/arbor/pkg/adapters/memory"
)

func TestScheduler(t *testing.T) {
	s := memory.NewScheduler()
	var fired []string

	s.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "late") })
	s.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })
	cancel := s.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "cancelled") })

	assert.Equal(t, 3, s.Pending())
	assert.True(t, cancel())
	assert.False(t, cancel(), "second cancel reports nothing stopped")

	s.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"early"}, fired)

	s.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"early", "late"}, fired)
	assert.Zero(t, s.Pending())
}

func TestScheduler_TaskSchedulesTask(t *testing.T) {
	s := memory.NewScheduler()
	var fired []string

	s.AfterFunc(10*time.Millisecond, func() {
		fired = append(fired, "first")
		s.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "second") })
	})

	s.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"first"}, fired)
	s.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, fired)
}
