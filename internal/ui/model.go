package ui

import (
	"fmt"
	"strings"

	"questkeys/internal/lang"
	"questkeys/internal/progress"
	"questkeys/internal/questdb"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pageSize is how far pgup/pgdown jump.
const pageSize = 10

type Model struct {
	// dependencies
	quests   []questdb.Quest
	table    lang.Table
	progress *progress.Progress

	// Browser state
	visible      []int // indices into quests after filtering
	cursor       int   // position within visible
	hideComplete bool

	// View state
	width, height int
	viewportReady bool // To avoid rendering before size is known
}

func NewModel(quests []questdb.Quest, table lang.Table, prog *progress.Progress) Model {
	m := Model{
		quests:   quests,
		table:    table,
		progress: prog,
	}
	m.refilter()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewportReady = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		case tea.KeyPgUp:
			m.move(-pageSize)
		case tea.KeyPgDown:
			m.move(pageSize)
		case tea.KeyHome:
			m.cursor = 0
		case tea.KeyEnd:
			m.cursor = max(len(m.visible)-1, 0)
		case tea.KeyRunes:
			switch string(msg.Runes) {
			case "q":
				return m, tea.Quit
			case "k":
				m.move(-1)
			case "j":
				m.move(1)
			case "h":
				m.toggleHideComplete()
			}
		}
	}
	return m, nil
}

// Selected returns the quest under the cursor.
func (m Model) Selected() (questdb.Quest, bool) {
	if len(m.visible) == 0 {
		return questdb.Quest{}, false
	}
	return m.quests[m.visible[m.cursor]], true
}

func (m *Model) move(delta int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
}

// toggleHideComplete keeps the same quest selected when it stays visible.
func (m *Model) toggleHideComplete() {
	current, ok := m.Selected()
	m.hideComplete = !m.hideComplete
	m.refilter()

	if !ok {
		return
	}
	for pos, idx := range m.visible {
		if m.quests[idx].ID == current.ID {
			m.cursor = pos
			return
		}
	}
}

func (m *Model) refilter() {
	visible := make([]int, 0, len(m.quests))
	for i, q := range m.quests {
		if m.hideComplete && m.progress.Completed(q.QuestID) {
			continue
		}
		visible = append(visible, i)
	}
	m.visible = visible
	m.move(0)
}

func (m Model) View() string {
	if !m.viewportReady {
		return "Initializing..."
	}

	// 1. Header
	sum := m.progress.Summarize(m.quests)
	headerText := fmt.Sprintf("QUESTS: %d", sum.Total)
	if m.progress.Len() > 0 {
		headerText += fmt.Sprintf("  COMPLETE: %d/%d (%d%%)", sum.Completed, sum.Total, sum.Percent)
	}
	if m.hideComplete {
		headerText += "  [hiding complete]"
	}
	header := headerStyle.Width(m.width).Render(headerText)

	// 3. Detail box, rendered first so the list gets the remaining height
	detail := detailStyle.Width(max(m.width-4, 1)).Render(m.detailText())

	footer := Muted("↑/↓ j/k move · pgup/pgdn page · h hide complete · q quit")

	listHeight := m.height - 1 - lipgloss.Height(detail) - 1
	if listHeight < 0 {
		listHeight = 0
	}

	// 2. Quest list
	list := lipgloss.NewStyle().
		Width(m.width).
		Height(listHeight).
		Padding(0, 1).
		Render(strings.Join(m.listLines(listHeight), "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, list, detail, footer)
}

// listLines returns the window of rows around the cursor that fits height.
func (m Model) listLines(height int) []string {
	if height <= 0 {
		return nil
	}
	if len(m.visible) == 0 {
		return []string{Muted("No quests.")}
	}

	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(m.visible))

	lines := make([]string, 0, end-start)
	for pos := start; pos < end; pos++ {
		q := m.quests[m.visible[pos]]
		mark := "  "
		if m.progress.Completed(q.QuestID) {
			mark = "✓ "
		}
		row := fmt.Sprintf("%s%-6s %s", mark, q.QuestID, m.displayName(q))
		switch {
		case pos == m.cursor:
			row = selectedStyle.Render(row)
		case m.progress.Completed(q.QuestID):
			row = completeStyle.Render(row)
		}
		lines = append(lines, row)
	}
	return lines
}

func (m Model) displayName(q questdb.Quest) string {
	if q.NameKey == "" {
		return "Quest " + q.QuestID
	}
	return lang.StripFormatting(m.table.Resolve(q.NameKey))
}

func (m Model) detailText() string {
	q, ok := m.Selected()
	if !ok {
		return "Nothing to show."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(m.displayName(q)))
	fmt.Fprintf(&b, "Quest ID: %s\n", q.ID)
	fmt.Fprintf(&b, "Name Key: %s\n", q.NameKey)
	fmt.Fprintf(&b, "Description Key: %s\n", q.DescKey)
	if len(q.Prerequisites) > 0 {
		fmt.Fprintf(&b, "Requires: %s\n", strings.Join(q.Prerequisites, ", "))
	}
	if m.progress.Len() > 0 {
		status := "incomplete"
		if m.progress.Completed(q.QuestID) {
			status = "complete"
		}
		fmt.Fprintf(&b, "Status: %s\n", status)
	}
	if desc := lang.StripFormatting(m.table.Resolve(q.DescKey)); desc != "" {
		fmt.Fprintf(&b, "\n%s", desc)
	}
	return strings.TrimRight(b.String(), "\n")
}
