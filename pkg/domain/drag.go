package domain

// DropPosition is where a drop lands relative to the hovered node.
type DropPosition int

const (
	DropAbove  DropPosition = -1
	DropInside DropPosition = 0
	DropBelow  DropPosition = 1
)

func (p DropPosition) String() string {
	switch p {
	case DropAbove:
		return "above"
	case DropBelow:
		return "below"
	default:
		return "inside"
	}
}

// DragState tracks an in-flight drag gesture. HoverKey is empty when nothing is hovered.
type DragState struct {
	DraggedKey            Key          `json:"draggedKey,omitempty"`
	DraggedDescendantKeys []Key        `json:"draggedDescendantKeys,omitempty"`
	HoverKey              Key          `json:"hoverKey,omitempty"`
	DropPosition          DropPosition `json:"dropPosition"`
}

// Dragging reports whether a gesture is in progress.
func (d DragState) Dragging() bool {
	return d.DraggedKey != ""
}
