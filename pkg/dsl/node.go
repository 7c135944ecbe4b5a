package dsl

import "github.com/aretw0/arbor/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node     *domain.Node
	children []*NodeBuilder
	builder  *Builder
}

// Add appends a child node and returns its builder.
func (n *NodeBuilder) Add(key string) *NodeBuilder {
	child := n.builder.newNode(key)
	n.children = append(n.children, child)
	return child
}

// Title sets the display label.
func (n *NodeBuilder) Title(title string) *NodeBuilder {
	n.node.Title = title
	return n
}

// Attr stores an extension attribute on the node.
func (n *NodeBuilder) Attr(key string, value any) *NodeBuilder {
	if n.node.Attributes == nil {
		n.node.Attributes = make(map[string]any)
	}
	n.node.Attributes[key] = value
	return n
}

// Disabled disables the node for selection and checking.
func (n *NodeBuilder) Disabled() *NodeBuilder {
	n.node.Disabled = true
	return n
}

// DisableCheckbox keeps the node selectable but removes it from conduction.
func (n *NodeBuilder) DisableCheckbox() *NodeBuilder {
	n.node.DisableCheckbox = true
	return n
}

// Checkable overrides whether the node has a checkbox.
func (n *NodeBuilder) Checkable(v bool) *NodeBuilder {
	n.node.Checkable = &v
	return n
}

// Selectable overrides whether the node accepts selection.
func (n *NodeBuilder) Selectable(v bool) *NodeBuilder {
	n.node.Selectable = &v
	return n
}

// Leaf declares that the node never has children, so it is never loaded.
func (n *NodeBuilder) Leaf() *NodeBuilder {
	n.node.IsLeaf = true
	return n
}

// Build returns the underlying domain.Node with its children attached.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() *domain.Node {
	n.node.Children = nil
	for _, child := range n.children {
		n.node.Children = append(n.node.Children, child.Build())
	}
	return n.node
}
