package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/muesli/termenv"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/tui"
)

// ShowOptions configures RunShow.
type ShowOptions struct {
	TreeOptions

	Offset     int
	Limit      int
	Markdown   bool
	Checkboxes bool
	Color      bool
}

// RunShow prints a window of the visible rows of a forest file.
func RunShow(ctx context.Context, w io.Writer, opts ShowOptions) error {
	tree, _, err := openTree(ctx, opts.TreeOptions)
	if err != nil {
		return err
	}
	defer tree.Close()

	return render(w, tree, opts)
}

func render(w io.Writer, tree *arbor.Tree, opts ShowOptions) error {
	rows := tree.Rows(opts.Offset, opts.Limit)

	if opts.Markdown {
		md := tui.Markdown(filepath.Base(opts.Path), rows)
		out, err := tui.NewRenderer()(md)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}

	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.ColorProfile()
	}
	_, err := io.WriteString(w, tui.Outline(rows, tui.OutlineOptions{
		Checkboxes: opts.Checkboxes,
		Profile:    profile,
	}))
	if err != nil {
		return err
	}

	if total := len(tree.Visible()); opts.Limit > 0 && opts.Offset+len(rows) < total {
		fmt.Fprintf(w, "... %d more rows\n", total-opts.Offset-len(rows))
	}
	return nil
}
