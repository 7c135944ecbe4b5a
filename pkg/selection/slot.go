package selection

import "github.com/aretw0/arbor/pkg/domain"

// Slot holds one state slice and its ownership mode.
//
// An Owned slot persists every committed value. A Mirrored slot only ever holds the value
// last supplied by the caller through Mirror; Commit computes nothing and persists nothing,
// the caller receives the next value through an event and decides whether to feed it back.
type Slot[T any] struct {
	mode  domain.Ownership
	value T
}

// NewSlot returns an Owned slot holding initial.
func NewSlot[T any](initial T) *Slot[T] {
	return &Slot[T]{mode: domain.Owned, value: initial}
}

// Get returns the current authoritative value.
func (s *Slot[T]) Get() T {
	return s.value
}

// Mode returns the slot's ownership mode.
func (s *Slot[T]) Mode() domain.Ownership {
	return s.mode
}

// Mirror hands the slot to an external owner and stores the value it supplied.
func (s *Slot[T]) Mirror(v T) {
	s.mode = domain.Mirrored
	s.value = v
}

// Own returns the slot to the engine, keeping the current value.
func (s *Slot[T]) Own() {
	s.mode = domain.Owned
}

// Replace stores v without changing the mode. The engine uses it when a structural change
// forces the current value, supplied or owned, to be re-derived.
func (s *Slot[T]) Replace(v T) {
	s.value = v
}

// Commit persists next when the slot is Owned and reports whether it did.
func (s *Slot[T]) Commit(next T) bool {
	if s.mode == domain.Mirrored {
		return false
	}
	s.value = next
	return true
}
