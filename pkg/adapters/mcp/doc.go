// Package mcp exposes a single arbor.Tree as a Model Context Protocol server.
//
// Agents read the tree through the snapshot and rows tools and the arbor://forest
// resource, and change it through expand, select, check and load. Every mutating tool
// answers with the diff it caused and the resulting snapshot. The graph tool returns
// a Mermaid diagram with the selection and checks highlighted.
package mcp
