package vim

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Action is what a global key binding does.
type Action int

const (
	// ActionNone marks bindings that are handled by the panels and only
	// listed in the help screen.
	ActionNone Action = iota
	ActionQuit
	ActionHelp
	ActionTogglePane
	ActionCloseHelp
)

// KeyBinding is one entry of the key map.
type KeyBinding struct {
	Keys        []string
	Description string
	Action      Action
	// Insert bindings also fire while a component is editing text.
	Insert bool
	// Label overrides the joined keys in the help screen.
	Label  string
	Hidden bool
}

// Matches returns true if the key message matches one of the binding's keys.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	return slices.Contains(kb.Keys, msg.String())
}

// HelpLabel returns the keys as shown in the help screen.
func (kb KeyBinding) HelpLabel() string {
	if kb.Label != "" {
		return kb.Label
	}
	return strings.Join(kb.Keys, ", ")
}

// Section groups bindings under a help heading.
type Section struct {
	Title    string
	Bindings []KeyBinding
}

// KeyMap holds the bindings in help order.
type KeyMap struct {
	sections []Section
	help     []KeyBinding
}

// NewKeyMap creates a key map from sections. helpKeys close the help screen.
func NewKeyMap(helpKeys []string, sections ...Section) *KeyMap {
	return &KeyMap{
		sections: sections,
		help:     []KeyBinding{{Keys: helpKeys, Action: ActionCloseHelp}},
	}
}

// Sections returns the bindings grouped for the help screen.
func (km *KeyMap) Sections() []Section {
	return km.sections
}

// Find returns the action bound to msg in the given mode. Bindings without
// an action never match.
func (km *KeyMap) Find(mode Mode, msg tea.KeyMsg) (Action, bool) {
	for _, s := range km.sections {
		for _, kb := range s.Bindings {
			if kb.Action == ActionNone || (mode == ModeInsert && !kb.Insert) {
				continue
			}
			if kb.Matches(msg) {
				return kb.Action, true
			}
		}
	}
	return ActionNone, false
}

// FindHelp returns the action for msg while the help screen is shown.
func (km *KeyMap) FindHelp(msg tea.KeyMsg) (Action, bool) {
	for _, kb := range km.help {
		if kb.Matches(msg) {
			return kb.Action, true
		}
	}
	return ActionNone, false
}

// HelpLines renders the sections as aligned text lines.
func (km *KeyMap) HelpLines() []string {
	var lines []string
	for i, s := range km.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, s.Title)
		for _, kb := range s.Bindings {
			if kb.Hidden {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-14s %s", kb.HelpLabel(), kb.Description))
		}
	}
	return lines
}

// DefaultKeyMap returns the bindings of the draft editor.
func DefaultKeyMap() *KeyMap {
	return NewKeyMap([]string{"esc", "?"},
		Section{Title: "Request panel", Bindings: []KeyBinding{
			{Keys: []string{"u"}, Description: "Focus URL (m/M: method, i: edit)"},
			{Keys: []string{"1-4", "[ ]"}, Description: "Params / Headers / Body / Auth"},
			{Keys: []string{"H", "L"}, Label: "H / L", Description: "Previous / next draft"},
			{Keys: []string{"ctrl+n", "ctrl+w"}, Description: "New / close draft"},
			{Keys: []string{"ctrl+s"}, Description: "Record URL in history"},
		}},
		Section{Title: "Tables", Bindings: []KeyBinding{
			{Keys: []string{"j", "k", "tab"}, Label: "j / k, tab", Description: "Move, switch column"},
			{Keys: []string{"i", "enter"}, Label: "i / Enter", Description: "Edit cell (Enter/Esc commits)"},
			{Keys: []string{"space", "d"}, Description: "Toggle row, delete row"},
			{Keys: []string{"b", "y"}, Description: "Bulk edit, copy as text"},
			{Keys: []string{"t"}, Description: "Form data: text / file"},
		}},
		Section{Title: "Body and auth", Bindings: []KeyBinding{
			{Keys: []string{"m"}, Description: "Body mode"},
			{Keys: []string{"ctrl+f"}, Description: "Format JSON"},
			{Keys: []string{"a"}, Description: "Auth type"},
		}},
		Section{Title: "General", Bindings: []KeyBinding{
			{Keys: []string{"ctrl+t"}, Description: "Request / mock server panel", Action: ActionTogglePane},
			{Keys: []string{"?"}, Description: "Toggle this help", Action: ActionHelp},
			{Keys: []string{"ctrl+c"}, Description: "Quit", Action: ActionQuit, Insert: true, Hidden: true},
			{Keys: []string{"q"}, Label: "q / ctrl+c", Description: "Quit", Action: ActionQuit},
		}},
	)
}
