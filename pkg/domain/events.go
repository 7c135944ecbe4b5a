package domain

import "time"

// NodePosition pairs a node with its position path.
type NodePosition struct {
	Node *Node `json:"node"`
	Pos  Pos   `json:"pos"`
}

// ExpandInfo accompanies an expand event.
type ExpandInfo struct {
	Key      Key   `json:"key"`
	Node     *Node `json:"node"`
	Expanded bool  `json:"expanded"`
}

// SelectInfo accompanies a select event.
type SelectInfo struct {
	Key           Key     `json:"key"`
	Node          *Node   `json:"node"`
	Selected      bool    `json:"selected"`
	SelectedNodes []*Node `json:"selectedNodes"`
}

// CheckInfo accompanies a check event.
type CheckInfo struct {
	Key                   Key            `json:"key"`
	Node                  *Node          `json:"node"`
	Checked               bool           `json:"checked"`
	CheckedNodes          []*Node        `json:"checkedNodes"`
	CheckedNodesPositions []NodePosition `json:"checkedNodesPositions,omitempty"`
	HalfCheckedKeys       []Key          `json:"halfCheckedKeys"`
}

// LoadInfo accompanies load and load-error events.
type LoadInfo struct {
	Key  Key   `json:"key"`
	Node *Node `json:"node"`
}

// DragInfo accompanies dragStart, dragEnter, dragOver, dragLeave and dragEnd.
// ExpandedKeys is only set on dragEnter, which fires when the hover-expansion timer elapses.
type DragInfo struct {
	Key          Key          `json:"key"`
	Node         *Node        `json:"node"`
	DropPosition DropPosition `json:"dropPosition"`
	ExpandedKeys []Key        `json:"expandedKeys,omitempty"`
}

// DropInfo is the outcome of a completed drag gesture. DropPosition is a sibling insertion
// index: the hovered node's index plus -1, 0 or 1.
type DropInfo struct {
	Key                   Key   `json:"key"`
	Node                  *Node `json:"node"`
	DraggedKey            Key   `json:"draggedKey"`
	DraggedNode           *Node `json:"draggedNode"`
	DraggedDescendantKeys []Key `json:"draggedDescendantKeys"`
	DropPosition          int   `json:"dropPosition"`
	DropToGap             bool  `json:"dropToGap"`
}

// RecomputeInfo describes one full recomputation of derived state.
type RecomputeInfo struct {
	Entities int           `json:"entities"`
	Visible  int           `json:"visible"`
	Duration time.Duration `json:"duration"`
}

// Hooks are the callbacks through which the engine emits events.
// Any field may be nil. Hooks run after the triggering update has fully settled.
type Hooks struct {
	OnExpand     func(expanded []Key, info ExpandInfo)
	OnSelect     func(selected []Key, info SelectInfo)
	OnCheck      func(result CheckState, info CheckInfo)
	OnLoad       func(loaded []Key, info LoadInfo)
	OnLoadError  func(err error, info LoadInfo)
	OnDragStart  func(info DragInfo)
	OnDragEnter  func(info DragInfo)
	OnDragOver   func(info DragInfo)
	OnDragLeave  func(info DragInfo)
	OnDragEnd    func(info DragInfo)
	OnDrop       func(info DropInfo)
	OnDiagnostic func(d Diagnostic)
	OnRecompute  func(info RecomputeInfo)
}
