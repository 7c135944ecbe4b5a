// Package selection maintains single and multiple selection sets and the
// ownership slot shared by every independently controllable state slice.
package selection

import "github.com/aretw0/arbor/pkg/domain"

// Select sets key to selected or not and returns the next selection.
// Without multiple, selecting replaces the selection with key and deselecting clears it.
// With multiple, key is appended when absent and every occurrence is removed on deselect;
// the remaining keys keep their relative order.
func Select(current []domain.Key, key domain.Key, selected, multiple bool) []domain.Key {
	if !multiple {
		if selected {
			return []domain.Key{key}
		}
		return []domain.Key{}
	}
	if selected {
		return domain.AddKey(current, key)
	}
	return domain.RemoveKey(current, key)
}

// Toggle flips key's membership in current and reports the new membership.
func Toggle(current []domain.Key, key domain.Key, multiple bool) ([]domain.Key, bool) {
	selected := !domain.HasKey(current, key)
	return Select(current, key, selected, multiple), selected
}

// Normalize prepares an externally supplied selection. Without multiple, only the first key is kept.
func Normalize(keys []domain.Key, multiple bool) []domain.Key {
	if keys == nil {
		return nil
	}
	if !multiple && len(keys) > 1 {
		return []domain.Key{keys[0]}
	}
	out := make([]domain.Key, len(keys))
	copy(out, keys)
	return out
}
