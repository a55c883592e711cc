package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/maximbilan/sidediff/internal/highlight"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sizedModel(t *testing.T, before, after string, width, height int) Model {
	t.Helper()
	rows := highlight.CompareText(before, after).AlignedRows()
	m := NewModel("before.txt → after.txt", rows, ThemeFor("dark"))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return updated.(Model)
}

func TestModelView(t *testing.T) {
	m := NewModel("title", nil, ThemeFor("dark"))
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before sizing = %q, want Loading...", got)
	}

	m = sizedModel(t, "a\nb\nc", "a\nx\nc", 80, 24)
	view := m.View()
	for _, want := range []string{"before.txt → after.txt", "1 changed, 0 removed, 0 added, 2 unchanged", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() does not contain %q:\n%s", want, view)
		}
	}
}

func TestModelQuit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: keyMsg("q")},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sizedModel(t, "a", "b", 80, 24)
			_, cmd := m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("Update() returned nil command, want tea.Quit")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("Update() command produced %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestModelHelp(t *testing.T) {
	m := sizedModel(t, "a", "b", 80, 24)

	updated, _ := m.Update(keyMsg("?"))
	m = updated.(Model)
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("View() with help = %q", m.View())
	}

	// Any key closes the help screen without quitting.
	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(Model)
	if cmd != nil {
		t.Error("closing help should not return a command")
	}
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help is still shown after a key press")
	}
}

func TestModelJumpToChange(t *testing.T) {
	var before, after []string
	for i := 0; i < 40; i++ {
		before = append(before, fmt.Sprintf("line %d", i))
		after = append(after, fmt.Sprintf("line %d", i))
	}
	after[30] = "changed"

	m := sizedModel(t, strings.Join(before, "\n"), strings.Join(after, "\n"), 80, 10)
	if len(m.changes) != 1 || m.changes[0] != 30 {
		t.Fatalf("changes = %v, want [30]", m.changes)
	}

	updated, _ := m.Update(keyMsg("n"))
	m = updated.(Model)
	if m.viewport.YOffset != 30 {
		t.Errorf("YOffset after next = %d, want 30", m.viewport.YOffset)
	}

	// No change after row 30: stay put.
	updated, _ = m.Update(keyMsg("n"))
	m = updated.(Model)
	if m.viewport.YOffset != 30 {
		t.Errorf("YOffset after second next = %d, want 30", m.viewport.YOffset)
	}

	updated, _ = m.Update(keyMsg("g"))
	m = updated.(Model)
	if m.viewport.YOffset != 0 {
		t.Errorf("YOffset after top = %d, want 0", m.viewport.YOffset)
	}
}

func TestModelJumpsBetweenBlocks(t *testing.T) {
	var before, after []string
	for i := 0; i < 60; i++ {
		before = append(before, fmt.Sprintf("line %d", i))
		after = append(after, fmt.Sprintf("line %d", i))
	}
	for i := 20; i < 25; i++ {
		after[i] = fmt.Sprintf("edited %d", i)
	}
	after[35] = "edited 35"

	m := sizedModel(t, strings.Join(before, "\n"), strings.Join(after, "\n"), 80, 10)
	// Five replaced lines align as four removed rows, one replace row and four
	// added rows, so the second block starts at row 39.
	if diff := cmp.Diff([]int{20, 39}, m.changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}

	steps := []struct {
		key  string
		want int
	}{
		{key: "n", want: 20},
		{key: "n", want: 39},
		{key: "n", want: 39},
		{key: "p", want: 20},
		{key: "p", want: 20},
	}
	for i, step := range steps {
		updated, _ := m.Update(keyMsg(step.key))
		m = updated.(Model)
		if m.viewport.YOffset != step.want {
			t.Errorf("step %d (%s): YOffset = %d, want %d", i, step.key, m.viewport.YOffset, step.want)
		}
	}
}
