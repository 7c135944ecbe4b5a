package domain

import (
	"strconv"
	"strings"
)

// Key identifies a node. Explicit keys come from the input; otherwise the position path is used.
type Key string

// Node is an externally supplied tree record.
// Only Children is structural; every other field is optional.
type Node struct {
	// Key is the explicit identity of the node. Empty means "use the position path".
	Key Key `json:"key,omitempty" yaml:"key,omitempty"`

	// Title is an optional display label. The engine never interprets it.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Children holds the ordered child records. A nil entry is malformed input.
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Capability overrides.
	Disabled        bool  `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	DisableCheckbox bool  `json:"disableCheckbox,omitempty" yaml:"disableCheckbox,omitempty"`
	Checkable       *bool `json:"checkable,omitempty" yaml:"checkable,omitempty"`
	Selectable      *bool `json:"selectable,omitempty" yaml:"selectable,omitempty"`
	IsLeaf          bool  `json:"isLeaf,omitempty" yaml:"isLeaf,omitempty"`

	// Attributes carries open extension data untouched by the engine.
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// CheckDisabled reports whether the node's checkbox takes no part in conduction.
func (n *Node) CheckDisabled() bool {
	if n == nil {
		return false
	}
	return n.Disabled || n.DisableCheckbox || (n.Checkable != nil && !*n.Checkable)
}

// CanSelect reports whether the node accepts selection given the tree-wide default.
func (n *Node) CanSelect(treeSelectable bool) bool {
	if n == nil || n.Disabled {
		return false
	}
	if n.Selectable != nil {
		return *n.Selectable
	}
	return treeSelectable
}

// Pos is a position path: "0" followed by the sibling index at every level, joined by "-".
type Pos string

// RootPos is the virtual parent of every root node.
const RootPos Pos = "0"

// ChildPos returns the position path of the index-th child under parent.
func ChildPos(parent Pos, index int) Pos {
	return Pos(string(parent) + "-" + strconv.Itoa(index))
}

// Indices returns the sibling indices encoded in the path, excluding the virtual root.
func (p Pos) Indices() []int {
	parts := strings.Split(string(p), "-")
	if len(parts) <= 1 {
		return nil
	}
	out := make([]int, 0, len(parts)-1)
	for _, part := range parts[1:] {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	return out
}

// Index returns the node's index among its siblings, or -1 for a malformed path.
func (p Pos) Index() int {
	idx := p.Indices()
	if len(idx) == 0 {
		return -1
	}
	return idx[len(idx)-1]
}

// Level returns the depth encoded in the path (0 for roots).
func (p Pos) Level() int {
	return len(p.Indices()) - 1
}
