package entity

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// Option configures one Index call.
type Option func(*indexer)

// WithHook attaches an extension hook to the walk.
func WithHook(h Hook) Option {
	return func(ix *indexer) {
		ix.hook = h
	}
}

// WithReporter routes diagnostics for malformed input and duplicate keys.
func WithReporter(r domain.Reporter) Option {
	return func(ix *indexer) {
		ix.report = r
	}
}

type indexer struct {
	hook    Hook
	report  domain.Reporter
	maps    *domain.EntityMaps
	wrapper *Wrapper
	onPath  map[*domain.Node]bool
}

// Index converts forest into entity maps.
func Index(forest []*domain.Node, opts ...Option) *domain.EntityMaps {
	ix := &indexer{onPath: make(map[*domain.Node]bool)}
	for _, opt := range opts {
		opt(ix)
	}

	// Size the arena up front so entity pointers handed to the hook stay valid for the whole walk.
	ix.maps = domain.NewEntityMaps(count(forest, make(map[*domain.Node]bool)))
	ix.wrapper = &Wrapper{Maps: ix.maps, Data: make(map[string]any)}

	if ix.hook != nil {
		ix.hook.InitWrapper(ix.wrapper)
	}
	ix.walk(forest, domain.RootPos, nil, 0)
	if ix.hook != nil {
		ix.hook.OnProcessFinished(ix.wrapper)
	}
	return ix.maps
}

func (ix *indexer) walk(nodes []*domain.Node, parentPos domain.Pos, parent *domain.Entity, level int) {
	for i, node := range nodes {
		pos := domain.ChildPos(parentPos, i)

		if node == nil {
			ix.report.Report(domain.Diagnostic{
				Code:    domain.DiagMalformedNode,
				Pos:     pos,
				Message: fmt.Sprintf("nil node at %s skipped", pos),
				Err:     domain.ErrMalformedNode,
			})
			continue
		}
		if ix.onPath[node] {
			ix.report.Report(domain.Diagnostic{
				Code:    domain.DiagMalformedNode,
				Key:     node.Key,
				Pos:     pos,
				Message: fmt.Sprintf("node at %s is its own ancestor; subtree skipped", pos),
				Err:     domain.ErrMalformedNode,
			})
			continue
		}

		key := node.Key
		if key == "" {
			key = domain.Key(pos)
		}

		e := domain.Entity{
			Key:   key,
			Pos:   pos,
			Index: i,
			Level: level,
			Node:  node,
		}
		if parent != nil {
			e.Parent = parent.Key
		}
		if ix.hook != nil {
			e.Ext = make(map[string]any)
		}

		stored, dup := ix.maps.Add(e)
		if dup {
			ix.report.Report(domain.Diagnostic{
				Code:    domain.DiagDuplicateKey,
				Key:     key,
				Pos:     pos,
				Message: fmt.Sprintf("key %q at %s overwrites an earlier node", key, pos),
				Err:     domain.ErrDuplicateKey,
			})
		}
		if parent != nil {
			parent.Children = append(parent.Children, key)
		}
		if ix.hook != nil {
			ix.hook.ProcessEntity(stored, ix.wrapper)
		}

		ix.onPath[node] = true
		ix.walk(node.Children, pos, stored, level+1)
		delete(ix.onPath, node)
	}
}

// count returns how many entities the walk will store, with the same skip rules.
func count(nodes []*domain.Node, onPath map[*domain.Node]bool) int {
	n := 0
	for _, node := range nodes {
		if node == nil || onPath[node] {
			continue
		}
		onPath[node] = true
		n += 1 + count(node.Children, onPath)
		delete(onPath, node)
	}
	return n
}
