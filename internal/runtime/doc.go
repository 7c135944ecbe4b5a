/*
Package runtime hosts the StateController, the single entry point through which every
state transition of a tree flows.

The controller owns the entity maps and all derived state. Each public method takes the
state lock, applies its write, recomputes whatever depends on it and queues the resulting
events. Events are dispatched once the lock is released, so hooks always observe settled
state and may call back into the controller.

Two mechanisms run outside the calling goroutine: per-node async loads and the debounced
hover-expansion timer. Both re-enter through the same lock.
*/
package runtime
