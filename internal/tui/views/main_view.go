package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/artpar/kvdraft/internal/history"
	"github.com/artpar/kvdraft/internal/logger"
	"github.com/artpar/kvdraft/internal/overlay"
	"github.com/artpar/kvdraft/internal/suggest"
	"github.com/artpar/kvdraft/internal/tui"
	"github.com/artpar/kvdraft/internal/tui/components"
	"github.com/artpar/kvdraft/internal/tui/vim"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
)

// Pane represents which panel is shown.
type Pane int

const (
	PaneRequest Pane = iota
	PaneMock
)

var paneNames = []string{"Request", "Mock Server"}

// Rows below the panel: help bar and status bar.
const footerRows = 2

const notificationTTL = 2 * time.Second

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// Options configures a MainView.
type Options struct {
	Tabs         *core.Tabs
	Store        history.Store
	WorkspaceID  string
	SuggestLimit int
	BlurGrace    time.Duration
	PageSize     int
	Log          *logr.Logger
}

// MainView switches between the request and mock panels and draws their
// popups over the frame.
type MainView struct {
	width    int
	height   int
	panes    *tui.ComponentList
	request  *components.RequestPanel
	mock     *components.MockPanel
	overlay  *overlay.Manager
	store    history.Store
	keys     *vim.KeyMap
	showHelp bool
	log      logr.Logger

	notification string
	notifyError  bool
	notifySeq    int
}

// clearNotificationMsg is sent to clear the notification it was scheduled for.
type clearNotificationMsg struct {
	seq int
}

// NewMainView creates a new main view.
func NewMainView(opts Options) *MainView {
	if opts.Tabs == nil {
		opts.Tabs = core.NewTabs()
	}
	log := logger.Named("tui")
	if opts.Log != nil {
		log = *opts.Log
	}

	manager := overlay.NewManager(0, 0)
	urlSuggest := components.SuggestOptions{
		Overlay:   manager,
		Limit:     opts.SuggestLimit,
		BlurGrace: opts.BlurGrace,
		Log:       &log,
	}
	if opts.Store != nil {
		urlSuggest.Source = suggest.URLHistory{
			Store:       opts.Store,
			WorkspaceID: opts.WorkspaceID,
			PageSize:    opts.PageSize,
		}
	}
	headerSuggest := urlSuggest
	headerSuggest.Source = suggest.HeaderNames

	view := &MainView{
		request: components.NewRequestPanel(opts.Tabs, components.RequestPanelOptions{
			WorkspaceID:   opts.WorkspaceID,
			URLSuggest:    urlSuggest,
			HeaderSuggest: headerSuggest,
			Log:           &log,
		}),
		mock:    components.NewMockPanel(),
		overlay: manager,
		store:   opts.Store,
		keys:    vim.DefaultKeyMap(),
		log:     log,
	}
	// The list order matches the Pane constants.
	view.panes = tui.NewComponentList(view.request, view.mock)
	view.panes.SetFocusIndex(int(PaneRequest))
	return view
}

// Init initializes the view.
func (v *MainView) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (v *MainView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	if v.showHelp {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if action, found := v.keys.FindHelp(keyMsg); found && action == vim.ActionCloseHelp {
				v.showHelp = false
			}
			return v, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tui.CopyMsg:
		return v, v.handleCopy(msg.Content)

	case tui.NotifyMsg:
		return v, v.notify(msg.Text, msg.Error)

	case components.BackendErrorMsg:
		return v, v.notify(core.FormatBackendError(msg.Message), true)

	case components.RecordHistoryMsg:
		return v, v.recordHistory(msg.Entry)

	case components.HistoryRecordedMsg:
		if msg.Err != nil {
			v.log.Error(msg.Err, "record history failed")
			return v, v.notify("History not saved", true)
		}
		return v, v.notify("Saved to history", false)

	case clearNotificationMsg:
		if msg.seq == v.notifySeq {
			v.notification = ""
		}
		return v, nil

	case tea.MouseMsg:
		return v, v.forwardToFocusedPane(msg)
	}

	// Async results go to the request panel, which owns the suggestion
	// dropdowns, whether or not it is shown.
	_, cmd := v.request.Update(msg)
	return v, cmd
}

func (v *MainView) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	action, _ := v.keys.Find(v.Mode(), msg)
	switch action {
	case vim.ActionQuit:
		return v, tea.Quit
	case vim.ActionTogglePane:
		v.togglePane()
		return v, nil
	case vim.ActionHelp:
		v.showHelp = true
		return v, nil
	}
	return v, v.forwardToFocusedPane(msg)
}

func (v *MainView) forwardToFocusedPane(msg tea.Msg) tea.Cmd {
	_, cmd := v.panes.Focused().Update(msg)
	return cmd
}

func (v *MainView) togglePane() {
	v.panes.FocusNext()
}

func (v *MainView) handleCopy(content string) tea.Cmd {
	if err := clipboardWrite(content); err != nil {
		v.log.Error(err, "clipboard write failed")
		return v.notify("Copy failed", true)
	}
	size := len(content)
	if size > 1024 {
		return v.notify(fmt.Sprintf("Copied %.1fKB", float64(size)/1024), false)
	}
	return v.notify(fmt.Sprintf("Copied %dB", size), false)
}

func (v *MainView) notify(text string, isErr bool) tea.Cmd {
	v.notifySeq++
	v.notification = text
	v.notifyError = isErr
	seq := v.notifySeq
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return clearNotificationMsg{seq: seq}
	})
}

func (v *MainView) recordHistory(entry history.Entry) tea.Cmd {
	if v.store == nil {
		return nil
	}
	store := v.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		id, err := store.Add(ctx, entry)
		return components.HistoryRecordedMsg{ID: id, Err: err}
	}
}

// IsEditing reports whether the shown panel is in insert mode.
func (v *MainView) IsEditing() bool {
	if e, ok := v.panes.Focused().(tui.Editor); ok {
		return e.IsEditing()
	}
	return false
}

// Mode returns the editing mode of the shown panel.
func (v *MainView) Mode() vim.Mode {
	return vim.ModeOf(v.IsEditing())
}

// View renders the view.
func (v *MainView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}
	if v.showHelp {
		return v.renderHelp()
	}

	var panel string
	var popups []tui.Popup
	focused := v.panes.Focused()
	panel = focused.View()
	if src, ok := focused.(tui.PopupSource); ok {
		popups = src.Popups()
	}

	frame := lipgloss.JoinVertical(lipgloss.Left, panel, v.renderHelpBar(), v.renderStatusBar())
	for _, p := range popups {
		frame = overlay.Compose(frame, p.Content, p.Rect)
	}
	return frame
}

// renderHelpBar renders context-sensitive keyboard shortcuts.
func (v *MainView) renderHelpBar() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))
	sep := lipgloss.NewStyle().Foreground(tui.ColorMuted).Render(" │ ")

	hint := func(key, desc string) string {
		return keyStyle.Render(key) + descStyle.Render(" "+desc)
	}

	var hints []string
	switch {
	case v.IsEditing():
		hints = []string{hint("Enter", "Commit"), hint("Esc", "Done"), hint("↑/↓", "Suggestions")}
	case v.FocusedPane() == PaneMock:
		hints = []string{hint("1/2/3", "Section"), hint("m", "Method"), hint("i", "Edit"), hint("ctrl+f", "Format")}
	default:
		hints = []string{hint("u", "URL"), hint("1-4", "Section"), hint("i", "Edit"), hint("b", "Bulk"), hint("ctrl+s", "Save")}
	}
	hints = append(hints, hint("ctrl+t", "Panel"), hint("?", "Help"))

	return lipgloss.NewStyle().
		Width(v.width).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Render(tui.Truncate(strings.Join(hints, sep), v.width*4))
}

// renderStatusBar renders the mode, panel and notification.
func (v *MainView) renderStatusBar() string {
	var items []string

	modeStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	mode := v.Mode()
	if mode == vim.ModeInsert {
		modeStyle = modeStyle.Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0"))
	} else {
		modeStyle = modeStyle.Background(tui.ColorOK).Foreground(lipgloss.Color("255"))
	}
	items = append(items, modeStyle.Render(mode.String()))

	items = append(items, lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1).Render(paneNames[v.FocusedPane()]))

	if v.notification != "" {
		notifyStyle := lipgloss.NewStyle().Foreground(tui.ColorOK).Bold(true).Padding(0, 1)
		if v.notifyError {
			notifyStyle = notifyStyle.Foreground(lipgloss.Color("160"))
		}
		items = append(items, notifyStyle.Render(v.notification))
	}

	helpHint := lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Padding(0, 1).Render("? help  q quit")
	left := strings.Join(items, " ")
	spacer := strings.Repeat(" ", max(v.width-lipgloss.Width(left)-lipgloss.Width(helpHint), 0))

	return lipgloss.NewStyle().
		Width(v.width).
		Background(lipgloss.Color("236")).
		Render(left + spacer + helpHint)
}

func (v *MainView) renderHelp() string {
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(tui.ColorAccent).
		Padding(1, 2).
		Render(strings.Join(v.keys.HelpLines(), "\n"))

	return lipgloss.NewStyle().
		Width(v.width).
		Height(v.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

// Title returns the view title.
func (v *MainView) Title() string {
	return "kvdraft"
}

// Focused returns true; the main view always has focus.
func (v *MainView) Focused() bool {
	return true
}

func (v *MainView) Focus() {}
func (v *MainView) Blur()  {}

// SetSize sets the view dimensions and resizes the panels and the overlay
// viewport.
func (v *MainView) SetSize(width, height int) {
	v.width = width
	v.height = height
	panelH := max(height-footerRows, 3)
	v.request.SetSize(width, panelH)
	v.request.SetOrigin(0, 0)
	v.mock.SetSize(width, panelH)
	v.overlay.Resize(width, height)
}

func (v *MainView) Width() int  { return v.width }
func (v *MainView) Height() int { return v.height }

// FocusedPane returns the shown panel.
func (v *MainView) FocusedPane() Pane {
	return Pane(v.panes.FocusIndex())
}

// FocusPane shows a panel.
func (v *MainView) FocusPane(pane Pane) {
	v.panes.SetFocusIndex(int(pane))
}

func (v *MainView) RequestPanel() *components.RequestPanel { return v.request }
func (v *MainView) MockPanel() *components.MockPanel       { return v.mock }
func (v *MainView) Overlay() *overlay.Manager               { return v.overlay }

// ShowingHelp returns whether the help screen is shown.
func (v *MainView) ShowingHelp() bool {
	return v.showHelp
}

// Notification returns the current notification message.
func (v *MainView) Notification() string {
	return v.notification
}
