package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/maximbilan/sidediff/internal/highlight"
)

const (
	columnSeparator = " │ "
	minColumnWidth  = 10
	tabWidth        = 4
)

// Theme holds the styles used to draw aligned rows in a terminal.
type Theme struct {
	Equal       lipgloss.Style
	Removed     lipgloss.Style
	Added       lipgloss.Style
	Placeholder lipgloss.Style
	MarkRemoved lipgloss.Style
	MarkAdded   lipgloss.Style
	Separator   lipgloss.Style
}

// ThemeFor returns the named theme. Unknown names get the dark theme.
func ThemeFor(name string) Theme {
	if name == "light" {
		return Theme{
			Equal:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Removed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			Added:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			Placeholder: lipgloss.NewStyle().Background(lipgloss.Color("254")),
			MarkRemoved: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("217")),
			MarkAdded:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")),
			Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		}
	}
	return Theme{
		Equal:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Removed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Added:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Placeholder: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		MarkRemoved: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Strikethrough(true),
		MarkAdded:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (t Theme) lineStyle(kind highlight.LineKind) lipgloss.Style {
	switch kind {
	case highlight.LineRemoved:
		return t.Removed
	case highlight.LineAdded:
		return t.Added
	case highlight.LinePlaceholder:
		return t.Placeholder
	default:
		return t.Equal
	}
}

func (t Theme) markStyle(kind highlight.LineKind) lipgloss.Style {
	if kind == highlight.LineAdded {
		return t.MarkAdded
	}
	return t.MarkRemoved
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func renderCell(c highlight.Cell, width int, theme Theme) string {
	box := lipgloss.NewStyle().Width(width)
	if c.Kind == highlight.LinePlaceholder {
		return theme.Placeholder.Width(width).Render("")
	}

	line := theme.lineStyle(c.Kind)
	if !c.Marked {
		return box.Render(line.Render(expandTabs(c.Text())))
	}

	mark := expandTabs(c.Span.Diff)
	if mark == "" {
		// Keep an empty change visible.
		mark = " "
	}
	return box.Render(
		line.Render(expandTabs(c.Span.Prefix)) +
			theme.markStyle(c.Kind).Render(mark) +
			line.Render(expandTabs(c.Span.Suffix)),
	)
}

// columnWidth splits the total width into two columns around the separator.
func columnWidth(total int) int {
	return max(minColumnWidth, (total-lipgloss.Width(columnSeparator))/2)
}

// renderRows draws rows as two columns and returns the output along with the
// first output line of each row.
func renderRows(rows []highlight.Row, width int, theme Theme) (string, []int) {
	col := columnWidth(width)
	sep := theme.Separator.Render(columnSeparator)

	blocks := make([]string, len(rows))
	offsets := make([]int, len(rows))
	line := 0
	for i, r := range rows {
		before := renderCell(r.Before, col, theme)
		after := renderCell(r.After, col, theme)
		height := max(lipgloss.Height(before), lipgloss.Height(after))
		seps := strings.TrimSuffix(strings.Repeat(sep+"\n", height), "\n")

		blocks[i] = lipgloss.JoinHorizontal(lipgloss.Top, before, seps, after)
		offsets[i] = line
		line += height
	}
	return strings.Join(blocks, "\n"), offsets
}

// RenderRows draws rows as two aligned columns fitting in width cells.
func RenderRows(rows []highlight.Row, width int, theme Theme) string {
	out, _ := renderRows(rows, width, theme)
	return out
}

// FormatSummary describes s in one line.
func FormatSummary(s highlight.Summary) string {
	if s.Changed+s.Removed+s.Added == 0 {
		return fmt.Sprintf("no differences (%d lines)", s.Equal)
	}
	return fmt.Sprintf("%d changed, %d removed, %d added, %d unchanged", s.Changed, s.Removed, s.Added, s.Equal)
}
