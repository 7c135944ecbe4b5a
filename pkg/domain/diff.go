package domain

import "slices"

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	Expanded    *KeyDelta `json:"expanded,omitempty"`
	Selected    *KeyDelta `json:"selected,omitempty"`
	Checked     *KeyDelta `json:"checked,omitempty"`
	HalfChecked *KeyDelta `json:"halfChecked,omitempty"`
	Loaded      *KeyDelta `json:"loaded,omitempty"`
	Loading     *KeyDelta `json:"loading,omitempty"`

	// Visible carries the whole visible list when it changed. The list is recomputed in full,
	// so clients replace rather than patch it.
	Visible []KeyLevel `json:"visible,omitempty"`

	// Drag is set when any part of the drag state changed.
	Drag *DragState `json:"drag,omitempty"`
}

// KeyDelta lists keys entering and leaving a set.
type KeyDelta struct {
	Added   []Key `json:"added,omitempty"`
	Removed []Key `json:"removed,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}
	old := oldSnap
	if old == nil {
		old = &Snapshot{}
	}

	diff := &SnapshotDiff{
		Expanded:    diffKeys(old.Expanded, newSnap.Expanded),
		Selected:    diffKeys(old.Selected, newSnap.Selected),
		Checked:     diffKeys(old.Checked, newSnap.Checked),
		HalfChecked: diffKeys(old.HalfChecked, newSnap.HalfChecked),
		Loaded:      diffKeys(old.Loaded, newSnap.Loaded),
		Loading:     diffKeys(old.Loading, newSnap.Loading),
	}

	if oldSnap == nil || !slices.Equal(old.Visible, newSnap.Visible) {
		diff.Visible = slices.Clone(newSnap.Visible)
	}

	if !sameDrag(old.Drag, newSnap.Drag) {
		d := newSnap.Drag
		d.DraggedDescendantKeys = slices.Clone(d.DraggedDescendantKeys)
		diff.Drag = &d
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.Expanded == nil &&
		d.Selected == nil &&
		d.Checked == nil &&
		d.HalfChecked == nil &&
		d.Loaded == nil &&
		d.Loading == nil &&
		d.Visible == nil &&
		d.Drag == nil
}

func diffKeys(old, new []Key) *KeyDelta {
	oldSet := make(map[Key]struct{}, len(old))
	for _, k := range old {
		oldSet[k] = struct{}{}
	}
	newSet := make(map[Key]struct{}, len(new))
	for _, k := range new {
		newSet[k] = struct{}{}
	}

	delta := &KeyDelta{}
	for _, k := range new {
		if _, ok := oldSet[k]; !ok {
			delta.Added = append(delta.Added, k)
			oldSet[k] = struct{}{}
		}
	}
	for _, k := range old {
		if _, ok := newSet[k]; !ok {
			delta.Removed = append(delta.Removed, k)
			newSet[k] = struct{}{}
		}
	}

	if len(delta.Added) == 0 && len(delta.Removed) == 0 {
		return nil
	}
	return delta
}

func sameDrag(a, b DragState) bool {
	return a.DraggedKey == b.DraggedKey &&
		a.HoverKey == b.HoverKey &&
		a.DropPosition == b.DropPosition &&
		slices.Equal(a.DraggedDescendantKeys, b.DraggedDescendantKeys)
}
