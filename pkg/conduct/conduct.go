package conduct

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// Option configures a conduction call.
type Option func(*config)

type config struct {
	report domain.Reporter
}

// WithReporter receives a diagnostic for every key that is not in the entity maps.
func WithReporter(r domain.Reporter) Option {
	return func(c *config) {
		c.report = r
	}
}

type state struct {
	maps    *domain.EntityMaps
	checked map[domain.Key]bool
	half    map[domain.Key]bool
	cfg     config
}

func newState(maps *domain.EntityMaps, opts []Option) *state {
	s := &state{
		maps:    maps,
		checked: make(map[domain.Key]bool),
		half:    make(map[domain.Key]bool),
	}
	for _, opt := range opts {
		opt(&s.cfg)
	}
	return s
}

// Conduct sets keys to checked (or unchecked), propagates down through their subtrees
// and up through their ancestors, starting from prev. prev is assumed to be conducted.
func Conduct(keys []domain.Key, checked bool, maps *domain.EntityMaps, prev domain.CheckState, opts ...Option) domain.CheckState {
	s := newState(maps, opts)
	for _, k := range prev.Checked {
		s.checked[k] = true
	}
	for _, k := range prev.HalfChecked {
		s.half[k] = true
	}

	var touched []*domain.Entity
	for _, k := range keys {
		e, ok := s.lookup(k)
		if !ok {
			continue
		}
		s.toggle(e, checked)
		touched = append(touched, e)
	}

	s.up(touched)
	return s.result()
}

// Recompute derives the full state from a list of checked keys in O(n).
// Every listed key checks its subtree; unknown keys are dropped.
func Recompute(checkedKeys []domain.Key, maps *domain.EntityMaps, opts ...Option) domain.CheckState {
	s := newState(maps, opts)
	for _, k := range checkedKeys {
		e, ok := s.lookup(k)
		if !ok {
			continue
		}
		s.toggle(e, true)
	}

	// Reverse pre-order visits every child before its parent.
	all := slices.Collect(maps.All())
	for i := len(all) - 1; i >= 0; i-- {
		s.settle(all[i])
	}
	return s.result()
}

// Strict toggles a single key without touching any other key.
// Half-checked is never populated here; the key is only ever removed from it.
func Strict(key domain.Key, checked bool, prev domain.CheckState) domain.CheckState {
	next := domain.CheckState{
		Checked:     domain.RemoveKey(prev.Checked, key),
		HalfChecked: domain.RemoveKey(prev.HalfChecked, key),
	}
	if checked {
		next.Checked = domain.AddKey(prev.Checked, key)
	}
	return next
}

func (s *state) lookup(k domain.Key) (*domain.Entity, bool) {
	e, ok := s.maps.ByKey(k)
	if !ok {
		s.cfg.report.Report(domain.Diagnostic{
			Code:    domain.DiagUnknownKey,
			Key:     k,
			Message: fmt.Sprintf("check key %q is not in the tree", k),
			Err:     domain.ErrUnknownKey,
		})
	}
	return e, ok
}

// toggle marks e and, unless e's checkbox is disabled, every eligible descendant.
func (s *state) toggle(e *domain.Entity, checked bool) {
	s.set(e.Key, checked, false)
	if e.Node.CheckDisabled() {
		return
	}
	s.down(e, checked)
}

func (s *state) down(e *domain.Entity, checked bool) {
	for _, ck := range e.Children {
		child, ok := s.maps.ByKey(ck)
		if !ok || child.Node.CheckDisabled() {
			continue
		}
		s.set(ck, checked, false)
		s.down(child, checked)
	}
}

// up recomputes every ancestor of the touched entities, deepest first.
func (s *state) up(touched []*domain.Entity) {
	seen := make(map[domain.Key]bool)
	var ancestors []*domain.Entity
	for _, e := range touched {
		for _, ak := range s.maps.Ancestors(e.Key) {
			if seen[ak] {
				break
			}
			seen[ak] = true
			if a, ok := s.maps.ByKey(ak); ok {
				ancestors = append(ancestors, a)
			}
		}
	}

	slices.SortStableFunc(ancestors, func(a, b *domain.Entity) int {
		return cmp.Compare(b.Level, a.Level)
	})
	for _, a := range ancestors {
		s.settle(a)
	}
}

// settle derives e's state from its eligible children.
func (s *state) settle(e *domain.Entity) {
	if e.Node.CheckDisabled() {
		return
	}

	eligible, every, some := 0, true, false
	for _, ck := range e.Children {
		child, ok := s.maps.ByKey(ck)
		if !ok || child.Node.CheckDisabled() {
			continue
		}
		eligible++
		if s.checked[ck] || s.half[ck] {
			some = true
		}
		if !s.checked[ck] {
			every = false
		}
	}
	if eligible == 0 {
		return
	}
	s.set(e.Key, every, some && !every)
}

func (s *state) set(k domain.Key, checked, half bool) {
	if checked {
		s.checked[k] = true
	} else {
		delete(s.checked, k)
	}
	if half {
		s.half[k] = true
	} else {
		delete(s.half, k)
	}
}

func (s *state) result() domain.CheckState {
	var res domain.CheckState
	for k := range s.checked {
		res.Checked = append(res.Checked, k)
	}
	for k := range s.half {
		if !s.checked[k] {
			res.HalfChecked = append(res.HalfChecked, k)
		}
	}
	res.Checked = s.maps.SortKeys(sortedByName(res.Checked))
	res.HalfChecked = s.maps.SortKeys(sortedByName(res.HalfChecked))
	return res
}

// sortedByName fixes the relative order of keys unknown to the maps, which SortKeys keeps stable.
func sortedByName(keys []domain.Key) []domain.Key {
	slices.Sort(keys)
	return keys
}
