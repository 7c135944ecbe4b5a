// Package expansion closes expanded keys over their ancestors and flattens a forest
// into the ordered list of rows a windowed renderer shows.
package expansion

import (
	"iter"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// CloseOverAncestors returns keys plus every ancestor of every key, without duplicates.
// Input order is kept; each key is followed by its not-yet-seen ancestors, nearest first.
// Keys that are not in maps are kept as they are.
func CloseOverAncestors(keys []domain.Key, maps *domain.EntityMaps) []domain.Key {
	seen := make(map[domain.Key]bool, len(keys))
	out := make([]domain.Key, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
		for _, a := range maps.Ancestors(k) {
			if seen[a] {
				break
			}
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// AllKeys returns every indexed key, which expands the whole tree.
func AllKeys(maps *domain.EntityMaps) []domain.Key {
	return maps.Keys()
}

// FlattenSeq walks forest in pre-order and yields every visible node with its level.
// Roots are always visible; a node's children are visible only when its key is expanded.
// Nodes missing from maps (skipped as malformed during indexing) are skipped with their subtree.
// Each call to the returned sequence walks the forest again.
func FlattenSeq(forest []*domain.Node, expanded []domain.Key, maps *domain.EntityMaps) iter.Seq[domain.KeyLevel] {
	open := make(map[domain.Key]bool, len(expanded))
	for _, k := range expanded {
		open[k] = true
	}

	return func(yield func(domain.KeyLevel) bool) {
		var walk func(nodes []*domain.Node, parent domain.Pos, level int) bool
		walk = func(nodes []*domain.Node, parent domain.Pos, level int) bool {
			for i := range nodes {
				pos := domain.ChildPos(parent, i)
				e, ok := maps.ByPos(pos)
				if !ok || e.Node != nodes[i] {
					continue
				}
				if !yield(domain.KeyLevel{Key: e.Key, Level: level}) {
					return false
				}
				if open[e.Key] && !walk(nodes[i].Children, pos, level+1) {
					return false
				}
			}
			return true
		}
		walk(forest, domain.RootPos, 0)
	}
}

// Flatten collects FlattenSeq.
func Flatten(forest []*domain.Node, expanded []domain.Key, maps *domain.EntityMaps) []domain.KeyLevel {
	return slices.Collect(FlattenSeq(forest, expanded, maps))
}

// Toggle adds key to expanded or removes every occurrence of it.
func Toggle(expanded []domain.Key, key domain.Key, expand bool) []domain.Key {
	if expand {
		return domain.AddKey(expanded, key)
	}
	return domain.RemoveKey(expanded, key)
}
