/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing Arbor forests.

It allows developers to define trees using a type-safe, fluent builder pattern instead of relying on
external YAML or JSON files. This is particularly useful for dynamic forest generation, unit testing,
and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		docs := b.Add("docs").Title("Documentation")
		docs.Add("guide").Title("Guide").Leaf()
		docs.Add("api").Title("API").Attr("owner", "platform")

		b.Add("archive").Disabled()

		forest, err := b.Forest()
		if err != nil {
			panic(err)
		}
		tree, _ := arbor.New(forest)
		defer tree.Close()
	}
*/
package dsl
