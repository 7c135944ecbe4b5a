package entity

import "github.com/aretw0/arbor/pkg/domain"

// Wrapper is the state shared with a Hook during one indexing walk.
type Wrapper struct {
	Maps *domain.EntityMaps
	Data map[string]any
}

// Hook receives the indexing walk: once at start, once per indexed entity, once at the end.
type Hook interface {
	InitWrapper(w *Wrapper)
	ProcessEntity(e *domain.Entity, w *Wrapper)
	OnProcessFinished(w *Wrapper)
}

// HookFuncs adapts plain functions to Hook. Nil fields are skipped.
type HookFuncs struct {
	Init     func(w *Wrapper)
	Process  func(e *domain.Entity, w *Wrapper)
	Finished func(w *Wrapper)
}

func (h HookFuncs) InitWrapper(w *Wrapper) {
	if h.Init != nil {
		h.Init(w)
	}
}

func (h HookFuncs) ProcessEntity(e *domain.Entity, w *Wrapper) {
	if h.Process != nil {
		h.Process(e, w)
	}
}

func (h HookFuncs) OnProcessFinished(w *Wrapper) {
	if h.Finished != nil {
		h.Finished(w)
	}
}
