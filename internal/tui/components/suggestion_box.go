package components

import (
	"context"
	"strings"
	"time"

	"github.com/artpar/kvdraft/internal/logger"
	"github.com/artpar/kvdraft/internal/overlay"
	"github.com/artpar/kvdraft/internal/suggest"
	"github.com/artpar/kvdraft/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/mattn/go-runewidth"
)

// SuggestOptions configures the suggestion dropdown of an input.
type SuggestOptions struct {
	Source    suggest.Source
	Overlay   *overlay.Manager
	Limit     int
	BlurGrace time.Duration
	Context   context.Context
	Log       *logr.Logger
}

// suggestionBox glues a suggest.Provider to a Source, the overlay manager
// and bubbletea commands. Messages are routed by target.
type suggestionBox struct {
	target   string
	provider *suggest.Provider
	source   suggest.Source
	manager  *overlay.Manager
	handle   *overlay.Handle
	grace    time.Duration
	ctx      context.Context
	log      logr.Logger
	anchor   overlay.Rect
}

func newSuggestionBox(target string, opts SuggestOptions) *suggestionBox {
	b := &suggestionBox{
		target:   target,
		provider: suggest.NewProvider(suggest.WithLimit(opts.Limit)),
		source:   opts.Source,
		manager:  opts.Overlay,
		grace:    opts.BlurGrace,
		ctx:      opts.Context,
	}
	if b.ctx == nil {
		b.ctx = context.Background()
	}
	if opts.Log != nil {
		b.log = *opts.Log
	} else {
		b.log = logger.Named("suggest")
	}
	return b
}

// focus starts suggesting for query and fetches fresh candidates.
func (b *suggestionBox) focus(query string, anchor overlay.Rect) tea.Cmd {
	b.anchor = anchor
	b.provider.Input(query)
	b.provider.Focus()
	b.sync()
	return b.fetch(query)
}

// input refilters against query.
func (b *suggestionBox) input(query string) tea.Cmd {
	if b.provider.Query() == query {
		return nil
	}
	b.provider.Input(query)
	b.sync()
	return b.fetch(query)
}

// blur starts the grace period after which the dropdown closes.
func (b *suggestionBox) blur() tea.Cmd {
	if !b.provider.Focused() {
		return nil
	}
	token := b.provider.Blur()
	return suggest.BlurCmd(b.grace, b.target, token)
}

func (b *suggestionBox) fetch(query string) tea.Cmd {
	if b.source == nil {
		return nil
	}
	return suggest.FetchCmd(b.ctx, b.source, b.target, query, b.log)
}

// update handles the async messages addressed to this box.
func (b *suggestionBox) update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case suggest.LoadedMsg:
		if msg.Target != b.target {
			return false
		}
		b.provider.SetCandidates(msg.Items)
	case suggest.BlurElapsedMsg:
		if msg.Target != b.target {
			return false
		}
		b.provider.BlurElapsed(msg.Token)
	default:
		return false
	}
	b.sync()
	return true
}

// key handles navigation keys while the dropdown is open. It returns the
// accepted value, if any, and whether the key was consumed.
func (b *suggestionBox) key(msg tea.KeyMsg) (value string, accepted, consumed bool) {
	if !b.provider.IsOpen() {
		return "", false, false
	}
	switch msg.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		b.provider.Up()
	case tea.KeyDown, tea.KeyCtrlN:
		b.provider.Down()
	case tea.KeyEnter:
		value, accepted = b.provider.Enter()
		if !accepted {
			return "", false, false
		}
	case tea.KeyEsc:
		b.provider.Escape()
	default:
		return "", false, false
	}
	b.sync()
	return value, accepted, true
}

// mouse handles presses and releases over the dropdown.
func (b *suggestionBox) mouse(msg tea.MouseMsg) (value string, accepted, consumed bool) {
	if b.handle == nil || msg.Button != tea.MouseButtonLeft {
		return "", false, false
	}
	r := b.handle.Rect()
	inside := msg.X >= r.X && msg.X < r.X+r.Width && msg.Y >= r.Y && msg.Y < r.Bottom()
	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return "", false, false
		}
		b.provider.PointerDown()
		return "", false, true
	case tea.MouseActionRelease:
		// The border takes the first row.
		index := -1
		if inside {
			index = msg.Y - r.Y - 1
		}
		value, accepted = b.provider.Click(index)
		b.sync()
		return value, accepted, inside
	}
	return "", false, false
}

func (b *suggestionBox) setAnchor(anchor overlay.Rect) {
	b.anchor = anchor
	if b.handle != nil {
		b.handle.SetAnchor(anchor)
	}
}

// sync acquires or releases the overlay handle to follow the open state.
func (b *suggestionBox) sync() {
	if !b.provider.IsOpen() {
		if b.handle != nil {
			b.handle.Release()
			b.handle = nil
		}
		return
	}
	if b.manager == nil {
		return
	}
	w, h := b.size()
	if b.handle == nil {
		b.handle = b.manager.Acquire(b.anchor, w, h)
		return
	}
	b.handle.SetSize(w, h)
}

func (b *suggestionBox) size() (int, int) {
	items := b.provider.Items()
	width := b.anchor.Width
	for _, item := range items {
		width = max(width, runewidth.StringWidth(item)+2)
	}
	return width, len(items) + 2
}

func (b *suggestionBox) isOpen() bool { return b.provider.IsOpen() }

// popup renders the dropdown at its placed rectangle.
func (b *suggestionBox) popup() (tui.Popup, bool) {
	if b.handle == nil || !b.provider.IsOpen() {
		return tui.Popup{}, false
	}
	r := b.handle.Rect()
	if r.Height < 3 || r.Width < 3 {
		return tui.Popup{}, false
	}

	inner := r.Width - 2
	items := b.provider.Items()
	visible := min(len(items), r.Height-2)
	lines := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		line := tui.PadRight(items[i], inner)
		if i == b.provider.Selected() {
			line = lipgloss.NewStyle().Background(tui.ColorAccent).Foreground(tui.ColorTitle).Render(line)
		}
		lines = append(lines, line)
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(tui.ColorAccent).
		Render(strings.Join(lines, "\n"))
	return tui.Popup{Rect: r, Content: box}, true
}

// release closes the dropdown immediately.
func (b *suggestionBox) release() {
	b.provider.Escape()
	b.sync()
}
