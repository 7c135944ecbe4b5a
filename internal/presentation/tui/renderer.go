package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/arbor/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", fmt.Errorf("markdown renderer: %w", err)
		}
		return r.Render(markdown)
	}
}

// OutlineOptions tunes Outline.
type OutlineOptions struct {
	// Checkboxes prefixes every row with its tri-state checkbox.
	Checkboxes bool
	// Profile is the terminal color profile. The zero value is TrueColor; use termenv.Ascii to disable colors.
	Profile termenv.Profile
}

// Outline renders rows as an indented tree, one line per row.
func Outline(rows []domain.Row, opts OutlineOptions) string {
	p := opts.Profile
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Repeat("  ", row.Level))
		sb.WriteString(twisty(row))
		sb.WriteString(" ")

		if opts.Checkboxes {
			sb.WriteString(checkbox(row, p))
			sb.WriteString(" ")
		}

		title := termenv.String(Title(row))
		switch {
		case row.Node != nil && row.Node.Disabled:
			title = title.Faint()
		case row.Selected:
			title = title.Bold().Underline()
		}
		sb.WriteString(title.String())

		if row.Loading {
			sb.WriteString(termenv.String(" (loading)").Foreground(p.Color("#a1a1aa")).String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Markdown renders rows as a nested task list, suitable for NewRenderer.
func Markdown(title string, rows []domain.Row) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("# " + title + "\n\n")
	}
	for _, row := range rows {
		sb.WriteString(strings.Repeat("  ", row.Level))
		switch {
		case row.Checked:
			sb.WriteString("- [x] ")
		case row.HalfChecked:
			sb.WriteString("- [ ] _(partial)_ ")
		default:
			sb.WriteString("- [ ] ")
		}
		if row.Selected {
			sb.WriteString("**" + Title(row) + "**")
		} else {
			sb.WriteString(Title(row))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Title is the display label of a row: the node title, or its key.
func Title(row domain.Row) string {
	if row.Node != nil && row.Node.Title != "" {
		return row.Node.Title
	}
	return string(row.Key)
}

func twisty(row domain.Row) string {
	if row.Node == nil || len(row.Node.Children) == 0 {
		return "•"
	}
	if row.Expanded {
		return "▾"
	}
	return "▸"
}

func checkbox(row domain.Row, p termenv.Profile) string {
	switch {
	case row.Node != nil && row.Node.CheckDisabled():
		return termenv.String("[/]").Faint().String()
	case row.Checked:
		return termenv.String("[x]").Foreground(p.Color("#22c55e")).String()
	case row.HalfChecked:
		return termenv.String("[-]").Foreground(p.Color("#eab308")).String()
	}
	return "[ ]"
}
