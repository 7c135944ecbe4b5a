/*
Package observability provides tools for monitoring a tree engine.

Metrics exposes the engine's events as Prometheus collectors. Its Hooks method returns a
domain.Hooks value that can be passed to a tree directly or combined with other callbacks
through domain.ChainHooks.
*/
package observability
