package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/maximbilan/sidediff/internal/highlight"
)

func TestRenderRows(t *testing.T) {
	tests := []struct {
		name         string
		before       string
		after        string
		wantLines    int
		wantContains []string
	}{
		{
			name:         "replaced line",
			before:       "a\nb\nc",
			after:        "a\nx\nc",
			wantLines:    3,
			wantContains: []string{"a", "b", "x", "c"},
		},
		{
			name:         "appended characters",
			before:       "foo",
			after:        "foobar",
			wantLines:    1,
			wantContains: []string{"foo", "foobar"},
		},
		{
			name:         "lone delete keeps the columns aligned",
			before:       "1\n2\n3",
			after:        "1\n2",
			wantLines:    3,
			wantContains: []string{"3"},
		},
		{
			name:         "tabs are expanded",
			before:       "\tindented",
			after:        "\tindented!",
			wantLines:    1,
			wantContains: []string{"    indented"},
		},
	}

	theme := ThemeFor("dark")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := highlight.CompareText(tt.before, tt.after).AlignedRows()
			out := RenderRows(rows, 40, theme)

			lines := strings.Split(out, "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("RenderRows() produced %d lines, want %d:\n%s", len(lines), tt.wantLines, out)
			}
			for _, line := range lines {
				if !strings.Contains(line, "│") {
					t.Errorf("line %q is missing the column separator", line)
				}
				if w := lipgloss.Width(line); w != 39 {
					t.Errorf("line %q has width %d, want 39", line, w)
				}
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("RenderRows() does not contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderRowsWrapsLongLines(t *testing.T) {
	long := strings.Repeat("x", 50)
	rows := highlight.CompareText(long+"\nend", "short\nend").AlignedRows()

	out, offsets := renderRows(rows, 40, ThemeFor("light"))
	if len(offsets) != 2 {
		t.Fatalf("offsets = %v, want 2 entries", offsets)
	}
	if offsets[0] != 0 || offsets[1] != 3 {
		t.Errorf("offsets = %v, want [0 3]", offsets)
	}
	if got := strings.Count(out, "\n") + 1; got != 4 {
		t.Errorf("output has %d lines, want 4:\n%s", got, out)
	}
}

func TestColumnWidth(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{total: 40, want: 18},
		{total: 161, want: 79},
		{total: 5, want: minColumnWidth},
	}
	for _, tt := range tests {
		if got := columnWidth(tt.total); got != tt.want {
			t.Errorf("columnWidth(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary highlight.Summary
		want    string
	}{
		{
			name:    "identical",
			summary: highlight.Summary{Equal: 4},
			want:    "no differences (4 lines)",
		},
		{
			name:    "changes",
			summary: highlight.Summary{Equal: 2, Changed: 1, Removed: 3, Added: 4},
			want:    "1 changed, 3 removed, 4 added, 2 unchanged",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSummary(tt.summary); got != tt.want {
				t.Errorf("FormatSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
