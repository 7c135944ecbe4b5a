// Package dragdrop resolves pointer gestures into drop positions and drop validity,
// and debounces hover-expansion of candidate drop targets.
//
// Nothing in this package mutates a forest. Drop outcomes are reported to the host,
// which owns the tree and applies the move.
package dragdrop
