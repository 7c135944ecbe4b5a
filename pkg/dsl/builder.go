package dsl

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
)

// Builder manages the forest construction.
type Builder struct {
	roots []*NodeBuilder
	keys  map[domain.Key]int
}

// New creates a new forest builder.
func New() *Builder {
	return &Builder{
		keys: make(map[domain.Key]int),
	}
}

// Add appends a new root node. An empty key leaves the node keyed by its position.
func (b *Builder) Add(key string) *NodeBuilder {
	nb := b.newNode(key)
	b.roots = append(b.roots, nb)
	return nb
}

func (b *Builder) newNode(key string) *NodeBuilder {
	if key != "" {
		b.keys[domain.Key(key)]++
	}
	return &NodeBuilder{
		node:    &domain.Node{Key: domain.Key(key)},
		builder: b,
	}
}

// Forest returns the built root nodes. Keys used more than once are rejected.
func (b *Builder) Forest() ([]*domain.Node, error) {
	for _, nb := range b.roots {
		if err := b.checkKeys(nb); err != nil {
			return nil, err
		}
	}
	forest := make([]*domain.Node, 0, len(b.roots))
	for _, nb := range b.roots {
		forest = append(forest, nb.Build())
	}
	return forest, nil
}

func (b *Builder) checkKeys(nb *NodeBuilder) error {
	if k := nb.node.Key; k != "" && b.keys[k] > 1 {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateKey, k)
	}
	for _, child := range nb.children {
		if err := b.checkKeys(child); err != nil {
			return err
		}
	}
	return nil
}

// Build compiles the forest into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	forest, err := b.Forest()
	if err != nil {
		return nil, err
	}

	loader, err := memory.NewFromNodes(forest...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
