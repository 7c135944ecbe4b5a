package domain

// Ownership says who is the source of truth for a state slice.
type Ownership int

const (
	// Owned slices persist inside the engine.
	Owned Ownership = iota
	// Mirrored slices are supplied by the host every cycle; the engine only emits proposed values.
	Mirrored
)

func (o Ownership) String() string {
	if o == Mirrored {
		return "mirrored"
	}
	return "owned"
}

// Slice names an independently controllable state slice.
type Slice string

const (
	SliceSelected Slice = "selected"
	SliceChecked  Slice = "checked"
	SliceExpanded Slice = "expanded"
	SliceLoaded   Slice = "loaded"
)

// CheckState is the tri-state result of conduction. A key is never in both lists.
type CheckState struct {
	Checked     []Key `json:"checked"`
	HalfChecked []Key `json:"halfChecked"`
}

// KeyLevel is one entry of the visible list.
type KeyLevel struct {
	Key   Key `json:"key"`
	Level int `json:"level"`
}

// Row is the render-ready projection of a visible entry handed to a windowed list renderer.
type Row struct {
	Key               Key   `json:"key"`
	Pos               Pos   `json:"pos"`
	Level             int   `json:"level"`
	Expanded          bool  `json:"expanded"`
	Selected          bool  `json:"selected"`
	Checked           bool  `json:"checked"`
	HalfChecked       bool  `json:"halfChecked"`
	Loaded            bool  `json:"loaded"`
	Loading           bool  `json:"loading"`
	DragOver          bool  `json:"dragOver"`
	DragOverGapTop    bool  `json:"dragOverGapTop"`
	DragOverGapBottom bool  `json:"dragOverGapBottom"`
	Node              *Node `json:"node,omitempty"`
}

// Snapshot is a point-in-time copy of every state slice.
type Snapshot struct {
	Expanded    []Key      `json:"expanded"`
	Selected    []Key      `json:"selected"`
	Checked     []Key      `json:"checked"`
	HalfChecked []Key      `json:"halfChecked"`
	Loaded      []Key      `json:"loaded"`
	Loading     []Key      `json:"loading"`
	Visible     []KeyLevel `json:"visible"`
	Drag        DragState  `json:"drag"`
}
