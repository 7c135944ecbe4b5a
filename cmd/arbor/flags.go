package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/arbor/internal/cli"
)

// addTreeFlags registers the flags every forest-reading command shares.
func addTreeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("expand-all", false, "Expand every parent node")
	cmd.Flags().StringSlice("expand", nil, "Keys to expand (ancestors are opened too)")
	cmd.Flags().StringSlice("select", nil, "Keys to select")
	cmd.Flags().StringSlice("check", nil, "Keys to check")
}

func treeOptions(cmd *cobra.Command, path string) cli.TreeOptions {
	expandAll, _ := cmd.Flags().GetBool("expand-all")
	expanded, _ := cmd.Flags().GetStringSlice("expand")
	selected, _ := cmd.Flags().GetStringSlice("select")
	checked, _ := cmd.Flags().GetStringSlice("check")

	return cli.TreeOptions{
		Path:      path,
		Config:    cfg,
		Logger:    logger,
		ExpandAll: expandAll,
		Expanded:  expanded,
		Selected:  selected,
		Checked:   checked,
	}
}

// addShowFlags registers the rendering flags of show and watch.
func addShowFlags(cmd *cobra.Command) {
	addTreeFlags(cmd)
	cmd.Flags().Int("offset", 0, "First visible row to print")
	cmd.Flags().Int("limit", 0, "Number of rows to print (default: terminal height, or all rows)")
	cmd.Flags().Bool("markdown", false, "Render the rows as a markdown task list")
	cmd.Flags().Bool("checkboxes", false, "Prefix rows with their tri-state checkbox")
}

func showOptions(cmd *cobra.Command, path string) cli.ShowOptions {
	offset, _ := cmd.Flags().GetInt("offset")
	limit, _ := cmd.Flags().GetInt("limit")
	markdown, _ := cmd.Flags().GetBool("markdown")
	checkboxes, _ := cmd.Flags().GetBool("checkboxes")

	fd := int(os.Stdout.Fd())
	tty := term.IsTerminal(fd)
	if !cmd.Flags().Changed("limit") && tty {
		if _, height, err := term.GetSize(fd); err == nil && height > 2 {
			// Leave room for the prompt and the overflow line.
			limit = height - 2
		}
	}

	return cli.ShowOptions{
		TreeOptions: treeOptions(cmd, path),
		Offset:      offset,
		Limit:       limit,
		Markdown:    markdown,
		Checkboxes:  checkboxes,
		Color:       tty,
	}
}
