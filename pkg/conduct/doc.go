// Package conduct computes tri-state checkbox sets that stay consistent with the tree.
//
// Conduct applies an incremental toggle: the toggled subtrees take the target state and
// every affected ancestor is recomputed bottom-up from its direct children. Recompute
// rebuilds the whole state from an externally supplied key list in one post-order pass.
// Strict bypasses propagation entirely.
//
// A node is checked iff every eligible child is checked, and half-checked iff it is not
// checked but at least one eligible child is checked or half-checked. Children whose
// checkbox is disabled are not eligible; a node without eligible children keeps its own
// state. The result depends only on the checked leaves and the tree shape, never on the
// order of the toggles that produced them.
package conduct
