/*
Package arbor is a stateful tree engine for windowed (virtualized) tree renderers.

It keeps derived indices and consistent state over an arbitrarily nested forest of records:
a flat entity index, tri-state checkbox conduction, expand/visible-row flattening, selection
sets and pointer-driven drag-and-drop resolution. The host renders rows; Arbor decides what
the rows are and what every gesture means.

# Concept

The forest is borrowed from the host. Every change (a new forest, a toggle, a drag gesture)
funnels through one controller, which recomputes the dependent state before anything else can
observe it and then emits an event. Each state slice (expanded, selected, checked, loaded) is
either owned by the engine or mirrored from the host; in the mirrored case the engine only
proposes the next value through the event.

# Key Features

  - Arena-backed entity maps, keyed by explicit key or position path.
  - Order-independent tri-state conduction, or strict independent checkboxes.
  - Visible list and windowed row projection for virtualized rendering.
  - Async subtree loading with deduplication and explicit failure events.
  - Drop position resolution, descendant drop veto and debounced hover-expansion.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/domain"
	)

	func main() {
		tree, err := arbor.Open(context.Background(), "./forest.yaml",
			arbor.WithDefaultExpandedKeys("docs"),
			arbor.WithHooks(domain.Hooks{
				OnCheck: func(result domain.CheckState, _ domain.CheckInfo) {
					fmt.Println("checked:", result.Checked)
				},
			}),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer tree.Close()

		if err := tree.Check("guide", true); err != nil {
			log.Fatal(err)
		}
		for _, row := range tree.Rows(0, 20) {
			fmt.Println(row.Level, row.Key, row.Checked)
		}
	}
*/
package arbor
