package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rccgrog/rogsite/pkg/api"
)

// SectionMarkdown renders c as a markdown document. Line breaks inside a
// value become hard breaks so the display text keeps its shape.
func SectionMarkdown(sec api.SectionSummary, c api.Content) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n> **Version:** %d | **Updated:** %s\n\n---\n",
		sec.Kind, sec.Version, sec.UpdatedAt.Local().Format(time.RFC3339))
	for _, blk := range Blocks(c) {
		b.WriteByte('\n')
		if blk.Title != "" {
			fmt.Fprintf(&b, "## %s\n\n", blk.Title)
		}
		for _, f := range blk.Fields {
			fmt.Fprintf(&b, "**%s:** %s\n\n", f.Label, strings.ReplaceAll(f.Value, "\n", "  \n"))
		}
	}
	return b.String()
}

// WritePrettySection renders a single section with markdown formatting using glamour.
func WritePrettySection(w io.Writer, sec api.SectionSummary, c api.Content, style string, wrap int) error {
	if style == "" {
		style = "dracula"
	}
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(SectionMarkdown(sec, c))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}

// WritePrettySections draws the section listing as a bordered table.
func WritePrettySections(w io.Writer, secs []api.SectionSummary) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	rows := make([][]string, 0, len(secs))
	for _, s := range secs {
		rows = append(rows, []string{
			string(s.Kind),
			strconv.FormatInt(s.Version, 10),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Section", "Version", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
