package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arguminds/internal/export"
)

// renderOutline prints the case header and the numbered argument forest.
// With styled false the output is plain text, suitable for pipes and tests.
func renderOutline(d *export.Dossier, forest export.Forest, styled bool) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4338CA"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1)
	if !styled {
		head, muted, box = lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
	}

	lines := []string{head.Render(d.Case.Title)}
	meta := []string{export.StatusLabel(d.Case.Status)}
	if d.Case.Type != nil && *d.Case.Type != "" {
		meta = append(meta, *d.Case.Type)
	}
	meta = append(meta,
		fmt.Sprintf("%d argument(s)", forest.Count()),
		fmt.Sprintf("%d source(s)", len(d.Sources)),
	)
	lines = append(lines, muted.Render(strings.Join(meta, " · ")), "")

	forest.Walk(func(node *export.TreeNode, counter string, depth int) {
		label := "[" + export.TypeLabel(node.Type) + "]"
		if styled {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(export.TypeColor(node.Type))).Render(label)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", depth), counter, label, node.Title))
	})
	if forest.Count() == 0 {
		lines = append(lines, muted.Render("(no arguments)"))
	}
	if len(forest.Promoted) > 0 {
		lines = append(lines, "", muted.Render(fmt.Sprintf("%d argument(s) moved to the top level to break a parent cycle", len(forest.Promoted))))
	}

	return box.Render(strings.Join(lines, "\n"))
}
