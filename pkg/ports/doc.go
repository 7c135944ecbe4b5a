/*
Package ports defines the driven ports (interfaces) for the Arbor engine.

These interfaces decouple the engine from the outside world: where forests come from,
how a node's subtree is fetched on first expansion, and how deferred work is scheduled.

# Key Interfaces

  - ForestLoader: Supplies the raw node forest (e.g., from memory or a YAML/JSON file).
  - Watchable: Optional ForestLoader capability that signals when the forest changed.
  - NodeLoader: Fetches a node's subtree asynchronously (the async-load protocol).
  - Scheduler: Runs a function after a delay and can cancel it (hover expansion).
*/
package ports
