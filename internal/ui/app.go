package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/maximbilan/sidediff/internal/highlight"
)

const (
	headerHeight = 2
	footerHeight = 1
)

// Model is an interactive, scrollable side-by-side view of aligned rows.
type Model struct {
	title   string
	rows    []highlight.Row
	summary highlight.Summary
	theme   Theme

	viewport viewport.Model
	ready    bool
	showHelp bool
	offsets  []int
	changes  []int // first row of each run of changed rows

	width  int
	height int
}

// NewModel returns a viewer for rows.
func NewModel(title string, rows []highlight.Row, theme Theme) Model {
	var changes []int
	for i, r := range rows {
		if r.Before.Kind == highlight.LineEqual {
			continue
		}
		if i == 0 || rows[i-1].Before.Kind == highlight.LineEqual {
			changes = append(changes, i)
		}
	}
	return Model{
		title:   title,
		rows:    rows,
		summary: highlight.Summarize(rows),
		theme:   theme,
		changes: changes,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		bodyHeight := max(1, msg.Height-headerHeight-footerHeight)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		var content string
		content, m.offsets = renderRows(m.rows, msg.Width, m.theme)
		m.viewport.SetContent(content)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		case "n":
			m.jumpToChange(1)
			return m, nil
		case "p", "N":
			m.jumpToChange(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// jumpToChange scrolls to the start of the next (dir > 0) or previous block of
// changes relative to the top of the viewport.
func (m *Model) jumpToChange(dir int) {
	if !m.ready || len(m.changes) == 0 {
		return
	}
	top := m.viewport.YOffset
	if dir > 0 {
		for _, idx := range m.changes {
			if off := m.offsets[idx]; off > top {
				m.viewport.SetYOffset(off)
				return
			}
		}
		return
	}
	for i := len(m.changes) - 1; i >= 0; i-- {
		if off := m.offsets[m.changes[i]]; off < top {
			m.viewport.SetYOffset(off)
			return
		}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("6")).
		Padding(0, 1)
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	var s strings.Builder
	s.WriteString(headerStyle.Render(m.title))
	s.WriteString(statusStyle.Render(FormatSummary(m.summary)))
	s.WriteString("\n")
	s.WriteString(strings.Repeat("─", max(1, m.width)))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(statusStyle.Render(fmt.Sprintf("%3.f%%  n/p: next/prev change  ?: help  q: quit", m.viewport.ScrollPercent()*100)))
	return s.String()
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(1, 2)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("6"))

	var content strings.Builder
	content.WriteString(sectionStyle.Render("sidediff - Keyboard Shortcuts"))
	content.WriteString("\n\n")
	content.WriteString("  j/k, ↑/↓   Scroll\n")
	content.WriteString("  PgUp/PgDn  Page\n")
	content.WriteString("  g/G        Top / bottom\n")
	content.WriteString("  n          Next change\n")
	content.WriteString("  p, N       Previous change\n")
	content.WriteString("  q, Esc     Quit\n")
	content.WriteString("  ?          Show this help\n")

	return helpStyle.Render(content.String())
}

// Run shows rows in a full-screen viewer until the user quits.
func Run(title string, rows []highlight.Row, theme Theme) error {
	p := tea.NewProgram(NewModel(title, rows, theme), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
