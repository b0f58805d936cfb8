package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questkeys/internal/lang"
	"questkeys/internal/progress"
	"questkeys/internal/questdb"
)

func testQuests() []questdb.Quest {
	return []questdb.Quest{
		{ID: "0:10", QuestID: "0", NameKey: "quest.db.0.title", DescKey: "quest.db.0.desc"},
		{ID: "1:10", QuestID: "1", NameKey: "mod.quest.vacuum_freezer"},
		{ID: "2:10", QuestID: "2", Prerequisites: []string{"0", "1"}},
	}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selectedID(t *testing.T, m Model) string {
	t.Helper()
	q, ok := m.Selected()
	require.True(t, ok)
	return q.QuestID
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel(testQuests(), nil, nil)
	assert.Equal(t, "0", selectedID(t, m))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "1", selectedID(t, m))

	m = press(t, m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, "2", selectedID(t, m), "cursor stops at the last quest")

	m = press(t, m, runes("k"))
	assert.Equal(t, "1", selectedID(t, m))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, "0", selectedID(t, m))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, "2", selectedID(t, m))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, "0", selectedID(t, m))
}

func TestModel_HideComplete(t *testing.T) {
	m := NewModel(testQuests(), nil, progress.FromIDs("0"))
	m = press(t, m, runes("j"))
	assert.Equal(t, "1", selectedID(t, m))

	m = press(t, m, runes("h"))
	assert.Len(t, m.visible, 2)
	assert.Equal(t, "1", selectedID(t, m), "selection survives the filter")

	m = press(t, m, runes("h"))
	assert.Len(t, m.visible, 3)
	assert.Equal(t, "1", selectedID(t, m))
}

func TestModel_HideAllComplete(t *testing.T) {
	m := NewModel(testQuests(), nil, progress.FromIDs("0", "1", "2"))
	m = press(t, m, runes("h"))

	_, ok := m.Selected()
	assert.False(t, ok)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	_, ok = m.Selected()
	assert.False(t, ok)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(testQuests(), nil, nil)
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestModel_View(t *testing.T) {
	ForceNoColor()
	table := lang.Table{"quest.db.0.title": "First Steps", "quest.db.0.desc": "Punch §6wood§r"}
	m := NewModel(testQuests(), table, progress.FromIDs("0"))

	assert.Equal(t, "Initializing...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	view := m.View()

	assert.Contains(t, view, "COMPLETE: 1/3 (33%)")
	assert.Contains(t, view, "First Steps")
	assert.Contains(t, view, "Vacuum Freezer")
	assert.Contains(t, view, "Quest 2")
	assert.Contains(t, view, "Punch wood")
	assert.Contains(t, view, "Status: complete")
	assert.Contains(t, view, "Quest ID: 0:10", "detail shows the database key")
	assert.Contains(t, view, "h hide complete")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Contains(t, m.View(), "Requires: 0, 1")
}

func TestModel_ViewEmpty(t *testing.T) {
	ForceNoColor()
	next, _ := NewModel(nil, nil, nil).Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	view := next.(Model).View()
	assert.Contains(t, view, "No quests.")
	assert.Contains(t, view, "Nothing to show.")
}
