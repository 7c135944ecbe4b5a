package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidForest is returned by RunValidate when the forest produced diagnostics.
var ErrInvalidForest = errors.New("forest has problems")

// RunValidate indexes a forest file and reports every diagnostic found on the way:
// malformed nodes, duplicate keys and default keys that name no node.
func RunValidate(ctx context.Context, w io.Writer, opts TreeOptions) error {
	tree, diags, err := openTree(ctx, opts)
	if err != nil {
		return err
	}
	defer tree.Close()

	items := diags.Items()
	for _, d := range items {
		where := string(d.Key)
		if where == "" {
			where = string(d.Pos)
		}
		fmt.Fprintf(w, "  %-16s %-12s %s\n", d.Code, where, d.Message)
	}
	if len(items) > 0 {
		return fmt.Errorf("%w: %d diagnostic(s)", ErrInvalidForest, len(items))
	}

	printSystemMessage(w, "%d nodes indexed, no problems found.", len(tree.Keys()))
	return nil
}
