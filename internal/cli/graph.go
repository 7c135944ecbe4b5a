package cli

import (
	"context"
	"io"

	"github.com/aretw0/arbor/internal/presentation/graph"
)

// RunGraph prints a Mermaid diagram of a forest file. The default selection and
// checked keys from opts are drawn as overlay styles.
func RunGraph(ctx context.Context, w io.Writer, opts TreeOptions) error {
	tree, _, err := openTree(ctx, opts)
	if err != nil {
		return err
	}
	defer tree.Close()

	var overlay *graph.Overlay
	if len(opts.Checked) > 0 || len(opts.Selected) > 0 {
		overlay = graph.OverlayFrom(tree.Snapshot())
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(tree.Forest(), overlay))
	return err
}
