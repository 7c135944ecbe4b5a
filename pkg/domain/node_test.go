package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPos(t *testing.T) {
	p := ChildPos(ChildPos(RootPos, 2), 0)
	assert.Equal(t, Pos("0-2-0"), p)
	assert.Equal(t, []int{2, 0}, p.Indices())
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, 1, p.Level())

	assert.Nil(t, RootPos.Indices())
	assert.Equal(t, -1, RootPos.Index())
	assert.Equal(t, -1, Pos("0-x").Index())
}

func TestNode_Capabilities(t *testing.T) {
	no := false
	yes := true

	assert.False(t, (&Node{}).CheckDisabled())
	assert.True(t, (&Node{Disabled: true}).CheckDisabled())
	assert.True(t, (&Node{DisableCheckbox: true}).CheckDisabled())
	assert.True(t, (&Node{Checkable: &no}).CheckDisabled())
	assert.False(t, (&Node{Checkable: &yes}).CheckDisabled())

	assert.True(t, (&Node{}).CanSelect(true))
	assert.False(t, (&Node{}).CanSelect(false))
	assert.True(t, (&Node{Selectable: &yes}).CanSelect(false))
	assert.False(t, (&Node{Selectable: &no}).CanSelect(true))
	assert.False(t, (&Node{Disabled: true}).CanSelect(true))
}

func TestEntityMaps(t *testing.T) {
	m := NewEntityMaps(4)
	m.Add(Entity{Key: "a", Pos: "0-0", Level: 0, Children: []Key{"b"}})
	m.Add(Entity{Key: "b", Pos: "0-0-0", Level: 1, Parent: "a"})
	m.Add(Entity{Key: "c", Pos: "0-1", Level: 0})

	_, dup := m.Add(Entity{Key: "c", Pos: "0-2", Level: 0})
	assert.True(t, dup)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []Key{"a", "c", "c"}, m.Roots())
	assert.Equal(t, []Key{"a", "b", "c"}, m.Keys())

	e, ok := m.ByKey("c")
	assert.True(t, ok)
	assert.Equal(t, Pos("0-2"), e.Pos, "later duplicate wins the key index")

	e, ok = m.ByPos("0-1")
	assert.True(t, ok)
	assert.Equal(t, Key("c"), e.Key, "earlier duplicate stays reachable by position")

	assert.Equal(t, []Key{"a"}, m.Ancestors("b"))
	assert.Empty(t, m.Ancestors("a"))
	assert.Equal(t, []Key{"a", "b", "zz", "yy"}, m.SortKeys([]Key{"zz", "b", "yy", "a"}))
	assert.Len(t, m.Nodes([]Key{"a", "nope"}), 1)
	assert.Equal(t, -1, m.Order("nope"))
}

func TestEntityMaps_DuplicateAncestorCycle(t *testing.T) {
	// a[b[a]]: the second a wins the key index, so b's parent key resolves below b.
	m := NewEntityMaps(3)
	m.Add(Entity{Key: "a", Pos: "0-0", Level: 0, Children: []Key{"b"}})
	m.Add(Entity{Key: "b", Pos: "0-0-0", Level: 1, Parent: "a", Children: []Key{"a"}})
	_, dup := m.Add(Entity{Key: "a", Pos: "0-0-0-0", Level: 2, Parent: "b"})
	assert.True(t, dup)

	assert.Equal(t, []Key{"a"}, m.Ancestors("b"))
	assert.Equal(t, []Key{"b", "a"}, m.Ancestors("a"))
}

func TestKeyHelpers(t *testing.T) {
	base := []Key{"a", "b", "a"}

	assert.Equal(t, []Key{"a", "b", "a"}, AddKey(base, "a"))
	assert.Equal(t, []Key{"a", "b", "a", "c"}, AddKey(base, "c"))
	assert.Equal(t, []Key{"b"}, RemoveKey(base, "a"))
	assert.Equal(t, []Key{"a", "b", "a"}, base, "inputs are not mutated")
	assert.True(t, HasKey(base, "b"))
	assert.False(t, HasKey(nil, "b"))
	assert.Equal(t, []Key{"x"}, AddKey(nil, "x"))
}
