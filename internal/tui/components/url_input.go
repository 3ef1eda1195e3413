package components

import (
	"github.com/artpar/kvdraft/internal/core"
	"github.com/artpar/kvdraft/internal/overlay"
	"github.com/artpar/kvdraft/internal/tui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// methodBadgeWidth is the widest method badge, OPTIONS plus padding.
const methodBadgeWidth = 9

// URLInput edits the method and URL of a draft. While the URL is edited,
// previously used URLs are suggested.
type URLInput struct {
	*tui.BaseComponent
	method  string
	url     string
	editing bool
	input   textinput.Model

	suggest *suggestionBox
	originX int
	originY int

	onChange func(method, url string)
}

// NewURLInput creates the input. With a nil opts.Source no suggestions are
// shown.
func NewURLInput(opts SuggestOptions) *URLInput {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "https://api.example.com/path"

	u := &URLInput{
		BaseComponent: tui.NewBaseComponent("URL"),
		method:        "GET",
		input:         input,
	}
	if opts.Source != nil {
		u.suggest = newSuggestionBox(TargetURL, opts)
	}
	return u
}

// OnChange sets the callback run when the method changes or a URL edit is
// committed.
func (u *URLInput) OnChange(fn func(method, url string)) {
	u.onChange = fn
}

// Init initializes the component.
func (u *URLInput) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (u *URLInput) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	if u.HandleCommon(msg) {
		u.input.Width = max(u.Width()-methodBadgeWidth-1, 10)
		return u, nil
	}

	if u.suggest != nil && u.suggest.update(msg) {
		return u, nil
	}

	if !u.Focused() {
		return u, nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return u, u.handleMouse(msg)
	case tea.KeyMsg:
		if u.editing {
			return u, u.handleEditKey(msg)
		}
		return u, u.handleKey(msg)
	}
	return u, nil
}

func (u *URLInput) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return u.StartEdit()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "i":
			return u.StartEdit()
		case "m":
			u.cycleMethod(1)
		case "M":
			u.cycleMethod(-1)
		}
	}
	return nil
}

func (u *URLInput) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	if u.suggest != nil {
		if value, accepted, consumed := u.suggest.key(msg); consumed {
			if accepted {
				u.input.SetValue(value)
				return u.commit()
			}
			return nil
		}
	}

	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		return u.commit()
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	if u.suggest != nil {
		return tea.Batch(cmd, u.suggest.input(u.input.Value()))
	}
	return cmd
}

func (u *URLInput) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if u.suggest == nil {
		return nil
	}
	value, accepted, consumed := u.suggest.mouse(msg)
	if accepted {
		if u.editing {
			u.input.SetValue(value)
			return u.commit()
		}
		u.url = value
		u.input.SetValue(value)
		u.changed()
		return nil
	}
	if !consumed && msg.Action == tea.MouseActionPress && u.editing {
		return u.commit()
	}
	return nil
}

// StartEdit enters insert mode on the URL.
func (u *URLInput) StartEdit() tea.Cmd {
	u.editing = true
	u.input.SetValue(u.url)
	u.input.CursorEnd()
	cmd := u.input.Focus()
	if u.suggest != nil {
		return tea.Batch(cmd, u.suggest.focus(u.url, u.anchor()))
	}
	return cmd
}

func (u *URLInput) commit() tea.Cmd {
	var cmd tea.Cmd
	if u.suggest != nil {
		cmd = u.suggest.blur()
	}
	u.editing = false
	u.input.Blur()
	if u.input.Value() != u.url {
		u.url = u.input.Value()
		u.changed()
	}
	return cmd
}

func (u *URLInput) cycleMethod(delta int) {
	methods := core.Methods()
	idx := 0
	for i, m := range methods {
		if m == u.method {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(methods)) % len(methods)
	u.method = methods[idx]
	u.changed()
}

func (u *URLInput) changed() {
	if u.onChange != nil {
		u.onChange(u.method, u.url)
	}
}

// Set shows a draft's method and URL without notifying the change callback.
func (u *URLInput) Set(method, url string) {
	if u.editing {
		u.editing = false
		u.input.Blur()
		if u.suggest != nil {
			u.suggest.release()
		}
	}
	u.method = method
	u.url = url
	u.input.SetValue(url)
}

// SetOrigin sets the screen position of the input, used to anchor the
// suggestion dropdown.
func (u *URLInput) SetOrigin(x, y int) {
	u.originX, u.originY = x, y
	if u.suggest != nil {
		u.suggest.setAnchor(u.anchor())
	}
}

func (u *URLInput) anchor() overlay.Rect {
	return overlay.Rect{
		X:      u.originX + methodBadgeWidth + 1,
		Y:      u.originY,
		Width:  max(u.Width()-methodBadgeWidth-1, 10),
		Height: 1,
	}
}

// Popups returns the open URL dropdown, if any.
func (u *URLInput) Popups() []tui.Popup {
	if u.suggest == nil {
		return nil
	}
	if p, ok := u.suggest.popup(); ok {
		return []tui.Popup{p}
	}
	return nil
}

func (u *URLInput) Method() string  { return u.method }
func (u *URLInput) URL() string     { return u.url }
func (u *URLInput) IsEditing() bool { return u.editing }

// InputValue returns the text being edited.
func (u *URLInput) InputValue() string { return u.input.Value() }

// SuggestionsOpen reports whether the URL dropdown is open.
func (u *URLInput) SuggestionsOpen() bool {
	return u.suggest != nil && u.suggest.isOpen()
}

// View renders the component.
func (u *URLInput) View() string {
	width := max(u.Width()-methodBadgeWidth-1, 10)
	badge := lipgloss.NewStyle().Width(methodBadgeWidth).Render(tui.MethodStyle(u.method).Render(u.method))

	var url string
	switch {
	case u.editing:
		url = u.input.View()
	case u.url == "":
		url = lipgloss.NewStyle().Foreground(tui.ColorMuted).Render(tui.Truncate("Enter URL (press i)", width))
	default:
		url = tui.Truncate(u.url, width)
	}
	if u.Focused() && !u.editing {
		url = lipgloss.NewStyle().Underline(true).Render(url)
	}
	return badge + " " + url
}
