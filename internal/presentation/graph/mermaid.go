package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/entity"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	Selected    []domain.Key
	Checked     []domain.Key
	HalfChecked []domain.Key
}

// OverlayFrom builds an overlay from a tree snapshot.
func OverlayFrom(snap *domain.Snapshot) *Overlay {
	if snap == nil {
		return nil
	}
	return &Overlay{
		Selected:    snap.Selected,
		Checked:     snap.Checked,
		HalfChecked: snap.HalfChecked,
	}
}

// GenerateMermaid produces a Mermaid flowchart of the forest, one edge per parent/child pair.
// It applies semantic styling:
// - Root: ((Circle))
// - Branch: ([Stadium])
// - Leaf: [Rectangle]
// Disabled nodes get a dashed outline. Overlay styles are applied when overlay is set.
func GenerateMermaid(forest []*domain.Node, overlay *Overlay) string {
	maps := entity.Index(forest)

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var disabled []string
	for e := range maps.All() {
		safeID := sanitizeMermaidID(string(e.Key))

		opener, closer := "[", "]"
		switch {
		case e.IsRoot():
			opener, closer = "((", "))"
		case len(e.Children) > 0:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label(e), closer))

		if !e.IsRoot() {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(string(e.Parent)), safeID))
		}
		if e.Node.Disabled {
			disabled = append(disabled, safeID)
		}
	}

	if len(disabled) > 0 {
		sb.WriteString("\n    classDef disabled stroke-dasharray: 5 5,color:#888;\n")
		for _, id := range disabled {
			sb.WriteString(fmt.Sprintf("    class %s disabled;\n", id))
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef checked fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef half fill:#fff9c4,stroke:#f9a825,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected stroke:#1565c0,stroke-width:4px,color:#000;\n")

		writeClass(&sb, maps, overlay.Checked, "checked")
		writeClass(&sb, maps, overlay.HalfChecked, "half")
		writeClass(&sb, maps, overlay.Selected, "selected")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, maps *domain.EntityMaps, keys []domain.Key, class string) {
	seen := make(map[string]bool)
	for _, k := range keys {
		// Keys from an older forest may no longer exist.
		if !maps.Has(k) {
			continue
		}
		safeID := sanitizeMermaidID(string(k))
		if !seen[safeID] {
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", safeID, class))
		}
	}
}

func label(e *domain.Entity) string {
	text := e.Node.Title
	if text == "" {
		text = string(e.Key)
	}
	return strings.ReplaceAll(text, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
