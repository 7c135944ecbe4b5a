package domain

import (
	"iter"
	"slices"
)

// Entity is the indexed form of one Node.
// Parent is a plain key reference; Children are the ordered keys the entity owns.
type Entity struct {
	Key      Key
	Pos      Pos
	Index    int
	Level    int
	Parent   Key
	Children []Key
	Node     *Node

	// Ext holds fields attached by an extension hook during indexing.
	Ext map[string]any
}

// IsRoot reports whether the entity sits at the top of the forest.
func (e *Entity) IsRoot() bool {
	return e.Level == 0
}

// EntityMaps is the arena of entities for one forest, indexed by key and by position.
// It is rebuilt wholesale whenever the forest changes.
type EntityMaps struct {
	arena []Entity
	byKey map[Key]int
	byPos map[Pos]int
	roots []Key
}

// NewEntityMaps creates an empty arena sized for n entities.
func NewEntityMaps(n int) *EntityMaps {
	return &EntityMaps{
		arena: make([]Entity, 0, n),
		byKey: make(map[Key]int, n),
		byPos: make(map[Pos]int, n),
	}
}

// Add stores e in the arena and indexes it. A later entity with the same key
// replaces the earlier one in the key index; both stay reachable by position.
// It returns the stored entity and whether the key was already present.
func (m *EntityMaps) Add(e Entity) (*Entity, bool) {
	_, dup := m.byKey[e.Key]
	m.arena = append(m.arena, e)
	i := len(m.arena) - 1
	m.byKey[e.Key] = i
	m.byPos[e.Pos] = i
	if e.Level == 0 {
		m.roots = append(m.roots, e.Key)
	}
	return &m.arena[i], dup
}

// ByKey looks an entity up by key.
func (m *EntityMaps) ByKey(k Key) (*Entity, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.byKey[k]
	if !ok {
		return nil, false
	}
	return &m.arena[i], true
}

// ByPos looks an entity up by position path.
func (m *EntityMaps) ByPos(p Pos) (*Entity, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.byPos[p]
	if !ok {
		return nil, false
	}
	return &m.arena[i], true
}

// Has reports whether k is indexed.
func (m *EntityMaps) Has(k Key) bool {
	_, ok := m.ByKey(k)
	return ok
}

// Len returns the number of distinct keys.
func (m *EntityMaps) Len() int {
	if m == nil {
		return 0
	}
	return len(m.byKey)
}

// Roots returns the keys of the top-level entities in forest order.
func (m *EntityMaps) Roots() []Key {
	if m == nil {
		return nil
	}
	return slices.Clone(m.roots)
}

// All yields the entities that own their key, in pre-order.
func (m *EntityMaps) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		if m == nil {
			return
		}
		for i := range m.arena {
			e := &m.arena[i]
			if m.byKey[e.Key] != i {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Keys returns every indexed key in pre-order.
func (m *EntityMaps) Keys() []Key {
	keys := make([]Key, 0, m.Len())
	for e := range m.All() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Order returns the pre-order rank of k, or -1 when k is unknown.
func (m *EntityMaps) Order(k Key) int {
	if m == nil {
		return -1
	}
	i, ok := m.byKey[k]
	if !ok {
		return -1
	}
	return i
}

// Ancestors returns the keys above k, nearest first.
// The walk stops where a duplicate key resolves the parent to a node that is not one level up.
func (m *EntityMaps) Ancestors(k Key) []Key {
	var out []Key
	e, ok := m.ByKey(k)
	for ok && !e.IsRoot() {
		out = append(out, e.Parent)
		parent, found := m.ByKey(e.Parent)
		if !found || parent.Level != e.Level-1 {
			break
		}
		e = parent
	}
	return out
}

// SortKeys orders keys by pre-order rank. Unknown keys keep their relative order after the known ones.
func (m *EntityMaps) SortKeys(keys []Key) []Key {
	out := slices.Clone(keys)
	slices.SortStableFunc(out, func(a, b Key) int {
		oa, ob := m.Order(a), m.Order(b)
		switch {
		case oa < 0 && ob < 0:
			return 0
		case oa < 0:
			return 1
		case ob < 0:
			return -1
		}
		return oa - ob
	})
	return out
}

// Nodes resolves keys to their source nodes, dropping unknown keys.
func (m *EntityMaps) Nodes(keys []Key) []*Node {
	out := make([]*Node, 0, len(keys))
	for _, k := range keys {
		if e, ok := m.ByKey(k); ok {
			out = append(out, e.Node)
		}
	}
	return out
}
