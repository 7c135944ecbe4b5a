/*
Package entity builds the flat entity index over a node forest.

Index walks the forest in pre-order, assigns every node a position path and a key
(the explicit key, or the position path when none is given), links each entity to its
parent by key and to its children by an ordered key list, and stores everything in a
domain.EntityMaps arena.

Malformed input (nil nodes, nodes that appear inside their own subtree) is skipped and
reported through a domain.Reporter; duplicate keys overwrite the earlier entity in the key
index and are reported too. Neither aborts the walk.

An optional Hook lets a caller attach its own data to entities without the indexer knowing
what that data means:

	maps := entity.Index(forest, entity.WithHook(entity.HookFuncs{
		Process: func(e *domain.Entity, w *entity.Wrapper) {
			e.Ext["title"] = strings.ToUpper(e.Node.Title)
		},
	}))
*/
package entity
