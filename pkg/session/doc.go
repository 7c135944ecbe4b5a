/*
Package session implements a registry of live trees.

Hosts that serve several clients (such as the HTTP adapter) register each tree under a
generated ID and run composite operations through WithLock, so that reading a snapshot,
mutating the tree and diffing the result happen without interleaving. Locks are
reference counted and disappear once no caller holds or waits on them.
*/
package session
