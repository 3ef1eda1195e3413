package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/artpar/kvdraft/internal/kvedit"
	"github.com/artpar/kvdraft/internal/tui"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MockSection is the focused part of the mock panel.
type MockSection int

const (
	MockSectionRoute MockSection = iota
	MockSectionHeaders
	MockSectionBody
)

var mockSectionNames = []string{"Route", "Headers", "Body"}

type mockField int

const (
	mockFieldPath mockField = iota
	mockFieldStatus
	mockFieldDelay
)

// MockPanel edits the routes of the mock server configuration.
type MockPanel struct {
	*tui.BaseComponent
	routes  []*core.MockRoute
	current int
	section MockSection

	field     mockField
	input     textinput.Model
	editing   bool
	inputErr  string
	headers   *KVTable[string]
	body      textarea.Model
	bodyFocus bool
}

// NewMockPanel creates a panel holding a single "/" route.
func NewMockPanel() *MockPanel {
	input := textinput.New()
	input.Prompt = ""

	body := textarea.New()
	body.ShowLineNumbers = true
	body.Placeholder = `{"ok": true}`

	p := &MockPanel{
		BaseComponent: tui.NewBaseComponent("Mock Server"),
		routes:        []*core.MockRoute{core.NewMockRoute("/")},
		input:         input,
		headers:       NewKVTable("Response Headers", kvedit.NewHeadersEditor()),
		body:          body,
	}
	p.headers.Editor().OnChange(func(m *core.Mapping) {
		p.route().Headers = m.Clone()
	})
	p.show()
	return p
}

// Init initializes the component.
func (p *MockPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *MockPanel) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
	case tui.FocusMsg:
		p.Focus()
	case tui.BlurMsg:
		p.Blur()
	case tea.KeyMsg:
		if !p.Focused() {
			return p, nil
		}
		return p, p.handleKeyMsg(msg)
	}
	return p, nil
}

func (p *MockPanel) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case p.editing:
		return p.handleInputKey(msg)
	case p.bodyFocus:
		return p.handleBodyKey(msg)
	case p.section == MockSectionHeaders && p.headers.IsEditing():
		_, cmd := p.headers.Update(msg)
		return cmd
	}

	if msg.Type == tea.KeyCtrlF {
		p.formatBody()
		return nil
	}

	if msg.Type == tea.KeyRunes {
		switch string(msg.Runes) {
		case "1", "2", "3":
			p.SetSection(MockSection(msg.Runes[0] - '1'))
			return nil
		case "n":
			p.routes = append(p.routes, core.NewMockRoute("/"))
			p.current = len(p.routes) - 1
			p.show()
			return nil
		case "x":
			p.deleteRoute()
			return nil
		case "H":
			p.current = (p.current - 1 + len(p.routes)) % len(p.routes)
			p.show()
			return nil
		case "L":
			p.current = (p.current + 1) % len(p.routes)
			p.show()
			return nil
		}
	}

	switch p.section {
	case MockSectionHeaders:
		_, cmd := p.headers.Update(msg)
		return cmd
	case MockSectionBody:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyRunes && string(msg.Runes) == "i" {
			p.bodyFocus = true
			return p.body.Focus()
		}
		return nil
	}
	return p.handleRouteKey(msg)
}

func (p *MockPanel) handleRouteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		p.field = max(p.field-1, mockFieldPath)
	case tea.KeyDown:
		p.field = min(p.field+1, mockFieldDelay)
	case tea.KeyEnter:
		return p.startEdit()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "k":
			p.field = max(p.field-1, mockFieldPath)
		case "j":
			p.field = min(p.field+1, mockFieldDelay)
		case "i":
			return p.startEdit()
		case "m":
			p.cycleMethod()
		}
	}
	return nil
}

func (p *MockPanel) startEdit() tea.Cmd {
	r := p.route()
	switch p.field {
	case mockFieldPath:
		p.input.SetValue(r.Path)
	case mockFieldStatus:
		p.input.SetValue(strconv.Itoa(r.Status))
	case mockFieldDelay:
		p.input.SetValue(r.Delay.String())
	}
	p.editing = true
	p.inputErr = ""
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *MockPanel) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.editing = false
		p.input.Blur()
		return nil
	case tea.KeyEnter:
		if err := p.commitField(strings.TrimSpace(p.input.Value())); err != nil {
			p.inputErr = err.Error()
			return nil
		}
		p.editing = false
		p.inputErr = ""
		p.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *MockPanel) commitField(value string) error {
	r := p.route()
	switch p.field {
	case mockFieldPath:
		r.Path = value
	case mockFieldStatus:
		status, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("status must be a number: %w", err)
		}
		r.Status = status
	case mockFieldDelay:
		if value == "" {
			r.Delay = 0
			return nil
		}
		delay, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid delay: %w", err)
		}
		r.Delay = delay
	}
	return nil
}

func (p *MockPanel) handleBodyKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.bodyFocus = false
		p.body.Blur()
		return nil
	case tea.KeyCtrlF:
		p.formatBody()
		return nil
	}
	var cmd tea.Cmd
	p.body, cmd = p.body.Update(msg)
	p.route().Body = p.body.Value()
	return cmd
}

func (p *MockPanel) formatBody() {
	r := p.route()
	r.Body = p.body.Value()
	r.FormatBody()
	p.body.SetValue(r.Body)
}

func (p *MockPanel) cycleMethod() {
	r := p.route()
	methods := core.Methods()
	for i, m := range methods {
		if m == strings.ToUpper(r.Method) {
			r.Method = methods[(i+1)%len(methods)]
			return
		}
	}
	r.Method = methods[0]
}

func (p *MockPanel) deleteRoute() {
	if len(p.routes) == 1 {
		p.routes[0] = core.NewMockRoute("/")
	} else {
		p.routes = append(p.routes[:p.current], p.routes[p.current+1:]...)
		p.current = min(p.current, len(p.routes)-1)
	}
	p.show()
}

func (p *MockPanel) show() {
	r := p.route()
	p.headers.Reset(r.Headers)
	p.body.SetValue(r.Body)
	p.editing = false
	p.bodyFocus = false
	p.inputErr = ""
	p.input.Blur()
	p.body.Blur()
}

func (p *MockPanel) route() *core.MockRoute {
	return p.routes[p.current]
}

// Routes returns the configured routes.
func (p *MockPanel) Routes() []*core.MockRoute {
	out := make([]*core.MockRoute, len(p.routes))
	copy(out, p.routes)
	return out
}

// Route returns the route being edited.
func (p *MockPanel) Route() *core.MockRoute { return p.route() }

// Section returns the focused section.
func (p *MockPanel) Section() MockSection { return p.section }

// SetSection focuses a section.
func (p *MockPanel) SetSection(s MockSection) {
	if s < MockSectionRoute || s > MockSectionBody {
		return
	}
	p.section = s
	p.focusHeaders()
}

// IsEditing reports whether keys go to an input.
func (p *MockPanel) IsEditing() bool {
	return p.editing || p.bodyFocus || p.headers.IsEditing()
}

// HeadersTable returns the response headers table.
func (p *MockPanel) HeadersTable() *KVTable[string] { return p.headers }

// Focus sets the panel as focused.
func (p *MockPanel) Focus() {
	p.BaseComponent.Focus()
	p.focusHeaders()
}

// Blur removes focus.
func (p *MockPanel) Blur() {
	p.BaseComponent.Blur()
	p.focusHeaders()
}

func (p *MockPanel) focusHeaders() {
	if p.Focused() && p.section == MockSectionHeaders {
		p.headers.Focus()
	} else {
		p.headers.Blur()
	}
}

// SetSize sets the panel dimensions.
func (p *MockPanel) SetSize(width, height int) {
	p.BaseComponent.SetSize(width, height)
	innerW := max(width-2, 10)
	contentH := max(height-2-3, 1)
	p.headers.SetSize(innerW, contentH)
	p.body.SetWidth(innerW)
	p.body.SetHeight(contentH)
	p.input.Width = max(innerW-12, 10)
}

// View renders the component.
func (p *MockPanel) View() string {
	if p.Width() == 0 || p.Height() == 0 {
		return ""
	}
	innerW := p.Width() - 2
	contentH := max(p.Height()-2-3, 1)
	r := p.route()

	title := tui.RenderTitle(tui.Truncate(fmt.Sprintf("%s  [%d/%d]", p.Title(), p.current+1, len(p.routes)), innerW), innerW, p.Focused())
	summary := tui.MethodStyle(strings.ToUpper(r.Method)).Render(strings.ToUpper(r.Method)) + " " + tui.Truncate(r.Summary(), innerW-10)
	tabBar := tui.RenderTabBar(mockSectionNames, int(p.section), p.Focused())

	var section string
	switch p.section {
	case MockSectionRoute:
		section = p.renderRoute(r)
	case MockSectionHeaders:
		section = p.headers.View()
	case MockSectionBody:
		if p.bodyFocus {
			section = p.body.View()
		} else {
			section = RenderBodyPreview(r.Body, DetectBodyFormat(r.Headers, r.Body), innerW, contentH)
		}
	}

	lines := strings.Split(section, "\n")
	for len(lines) < contentH {
		lines = append(lines, "")
	}
	if len(lines) > contentH {
		lines = lines[:contentH]
	}

	content := strings.Join([]string{title, summary, tabBar, strings.Join(lines, "\n")}, "\n")
	return tui.RenderBorder(content, innerW, p.Height()-2, p.Focused())
}

func (p *MockPanel) renderRoute(r *core.MockRoute) string {
	values := []struct {
		label string
		value string
	}{
		{"Path", r.Path},
		{"Status", strconv.Itoa(r.Status)},
		{"Delay", r.Delay.String()},
	}

	var lines []string
	for i, v := range values {
		value := v.value
		if mockField(i) == p.field && p.editing {
			value = p.input.View()
		}
		line := tui.PadRight(v.label+":", 10) + " " + value
		if mockField(i) == p.field && p.Focused() {
			line = lipgloss.NewStyle().Background(lipgloss.Color("237")).Render(line)
		}
		lines = append(lines, line)
	}

	errStyle := lipgloss.NewStyle().Foreground(tui.ColorError)
	if p.inputErr != "" {
		lines = append(lines, "", errStyle.Render(p.inputErr))
	} else if err := r.Validate(); err != nil {
		lines = append(lines, "", errStyle.Render(err.Error()))
	} else {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(tui.ColorOK).Render("Route is valid"))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(tui.ColorMuted).Render("m: method  n: new route  x: delete  H/L: switch  ctrl+f: format body"))
	return strings.Join(lines, "\n")
}
