package vim

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyBinding(t *testing.T) {
	t.Run("matches runes", func(t *testing.T) {
		kb := KeyBinding{Keys: []string{"j", "k"}}
		assert.True(t, kb.Matches(runes("j")))
		assert.True(t, kb.Matches(runes("k")))
		assert.False(t, kb.Matches(runes("l")))
	})

	t.Run("matches special keys", func(t *testing.T) {
		kb := KeyBinding{Keys: []string{"esc", "ctrl+t"}}
		assert.True(t, kb.Matches(tea.KeyMsg{Type: tea.KeyEsc}))
		assert.True(t, kb.Matches(tea.KeyMsg{Type: tea.KeyCtrlT}))
		assert.False(t, kb.Matches(tea.KeyMsg{Type: tea.KeyEnter}))
	})

	t.Run("help label", func(t *testing.T) {
		assert.Equal(t, "b, y", KeyBinding{Keys: []string{"b", "y"}}.HelpLabel())
		assert.Equal(t, "H / L", KeyBinding{Keys: []string{"H", "L"}, Label: "H / L"}.HelpLabel())
	})
}

func TestKeyMap_Find(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name   string
		mode   Mode
		msg    tea.KeyMsg
		action Action
		found  bool
	}{
		{"q quits", ModeNormal, runes("q"), ActionQuit, true},
		{"q is text while inserting", ModeInsert, runes("q"), ActionNone, false},
		{"ctrl+c quits while inserting", ModeInsert, tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit, true},
		{"help", ModeNormal, runes("?"), ActionHelp, true},
		{"toggle pane", ModeNormal, tea.KeyMsg{Type: tea.KeyCtrlT}, ActionTogglePane, true},
		{"panel keys are not global", ModeNormal, runes("u"), ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, found := km.Find(tt.mode, tt.msg)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestKeyMap_FindHelp(t *testing.T) {
	km := DefaultKeyMap()

	action, found := km.FindHelp(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, found)
	assert.Equal(t, ActionCloseHelp, action)

	_, found = km.FindHelp(runes("q"))
	assert.False(t, found)
}

func TestKeyMap_HelpLines(t *testing.T) {
	km := NewKeyMap(nil,
		Section{Title: "One", Bindings: []KeyBinding{
			{Keys: []string{"a"}, Description: "first"},
			{Keys: []string{"x"}, Description: "hidden", Hidden: true},
		}},
		Section{Title: "Two", Bindings: []KeyBinding{
			{Keys: []string{"ctrl+n", "ctrl+w"}, Description: "second"},
		}},
	)

	assert.Equal(t, []string{
		"One",
		"  a              first",
		"",
		"Two",
		"  ctrl+n, ctrl+w second",
	}, km.HelpLines())

	assert.Equal(t, 1, strings.Count(strings.Join(DefaultKeyMap().HelpLines(), "\n"), "Quit"))
}
