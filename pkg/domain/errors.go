package domain

import "errors"

// ErrUnknownKey is returned when an operation names a key that is not indexed.
var ErrUnknownKey = errors.New("unknown key")

// ErrMalformedNode marks input nodes that cannot be indexed.
var ErrMalformedNode = errors.New("malformed node")

// ErrDuplicateKey marks a key used by more than one node.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInvalidDrop is reported when a node is dropped onto itself or one of its descendants.
var ErrInvalidDrop = errors.New("cannot drop a node onto itself or its descendants")

// ErrNotDragging is returned by drag operations issued outside a gesture.
var ErrNotDragging = errors.New("no drag in progress")

// ErrNoLoader is returned when a load is requested but no NodeLoader is configured.
var ErrNoLoader = errors.New("no node loader configured")

// ErrTreeNotFound is returned when a tree ID cannot be found in the session registry.
var ErrTreeNotFound = errors.New("tree not found")

// ErrInvalidThresholds is returned for drop thresholds that break the three-band ordering.
var ErrInvalidThresholds = errors.New("invalid drop thresholds")

// ErrNotWatchable is returned when watching is requested from a loader that cannot watch.
var ErrNotWatchable = errors.New("loader does not support watching")

// ErrNoForestLoader is returned by Reload and Watch on trees built from an in-memory forest.
var ErrNoForestLoader = errors.New("tree has no forest loader")
