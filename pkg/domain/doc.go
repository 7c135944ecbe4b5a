/*
Package domain contains the core models of the Arbor tree engine.

It defines the records the engine consumes (Node), the structural index it derives from
them (Entity, EntityMaps), the derived state slices it maintains (check, expansion,
selection, load and drag state) and the event payloads it emits. The package is pure:
no I/O, no scheduling and no logging.

# Key Entities

  - Node: an externally supplied record with ordered children and an optional explicit key.
  - Pos: the position path of a node ("0-1-0" is the first child of the second root).
  - Entity: one per node; key, position, level, parent key and ordered child keys.
  - EntityMaps: the arena of entities, indexed by key and by position path.
  - Snapshot: a copy of every state slice, suitable for diffing and serialisation.
  - Hooks: the callbacks through which the engine emits events to its host.
*/
package domain
