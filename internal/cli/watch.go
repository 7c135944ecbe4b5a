package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/arbor/internal/presentation/tui"
)

// RunWatch prints the tree and prints it again every time the file changes, until ctx is done.
// Expansion, selection and checks carry over to the reloaded forest.
func RunWatch(ctx context.Context, w io.Writer, opts ShowOptions) error {
	tree, _, err := openTree(ctx, opts.TreeOptions)
	if err != nil {
		return err
	}
	defer tree.Close()

	if opts.Color {
		tui.PrintBanner(w)
	}
	printSystemMessage(w, "Watching %s", opts.Path)
	if err := render(w, tree, opts); err != nil {
		return err
	}

	reloads, err := tree.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-reloads:
			if !ok {
				return nil
			}
			if err != nil {
				printSystemMessage(w, "Reload failed: %v", err)
				continue
			}
			printSystemMessage(w, "Reloaded %s", opts.Path)
			if err := render(w, tree, opts); err != nil {
				return err
			}
		}
	}
}
