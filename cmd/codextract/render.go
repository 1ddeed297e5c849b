package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/roveo/codextract/model"
)

var (
	kindStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	nameStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
	vizStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
)

// docRenderer renders an item's doc comment as markdown for --format text.
// Built once per process: glamour's renderer construction isn't free, and
// every item in one CLI invocation shares the same terminal width.
type docRenderer struct {
	r *glamour.TermRenderer
}

func newDocRenderer() (*docRenderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("creating glamour renderer: %w", err)
	}
	return &docRenderer{r: r}, nil
}

func (d *docRenderer) render(doc string) string {
	if doc == "" || d == nil || d.r == nil {
		return ""
	}
	out, err := d.r.Render(doc)
	if err != nil {
		return doc
	}
	return strings.TrimRight(out, "\n")
}

// renderText formats one file's items as a human-readable listing: a kind
// badge, the qualified name, its range, visibility, and rendered doc
// comment, the way a terminal codemap tool badges and dims its output.
func renderText(path string, items []model.ParsedItem, doc *docRenderer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", nameStyle.Render(path))
	for _, it := range items {
		qn := it.QualifiedName
		if qn == "" {
			qn = it.Name
		}
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			kindStyle.Render(string(it.Kind)),
			qn,
			vizStyle.Render(string(it.Visibility)),
			dimStyle.Render(rangeLabel(it)),
		)
		if it.DocComment != "" {
			rendered := doc.render(it.DocComment)
			for _, line := range strings.Split(rendered, "\n") {
				fmt.Fprintf(&b, "      %s\n", line)
			}
		}
	}
	return b.String()
}

func rangeLabel(it model.ParsedItem) string {
	return fmt.Sprintf("L%d-%d", it.Range.Start.Line, it.Range.End.Line)
}
