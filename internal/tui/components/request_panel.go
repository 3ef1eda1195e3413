package components

import (
	"fmt"
	"strings"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/artpar/kvdraft/internal/history"
	"github.com/artpar/kvdraft/internal/kvedit"
	"github.com/artpar/kvdraft/internal/logger"
	"github.com/artpar/kvdraft/internal/tui"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
)

// RequestTab represents the active section of the request panel.
type RequestTab int

const (
	TabParams RequestTab = iota
	TabHeaders
	TabBody
	TabAuth
)

var tabNames = []string{"Params", "Headers", "Body", "Auth"}

// Rows above the section content: title, URL, section tabs, info line.
const panelHeaderRows = 4

// RequestPanelOptions configures a RequestPanel.
type RequestPanelOptions struct {
	WorkspaceID string
	// URLSuggest configures URL history suggestions.
	URLSuggest SuggestOptions
	// HeaderSuggest configures header name suggestions.
	HeaderSuggest SuggestOptions
	Log           *logr.Logger
}

// RequestPanel edits the active draft of a core.Tabs. Every change is
// written back to the draft as a typed patch.
type RequestPanel struct {
	*tui.BaseComponent
	tabs        *core.Tabs
	workspaceID string
	log         logr.Logger

	activeTab  RequestTab
	urlFocused bool
	shownID    string
	originX    int
	originY    int

	url        *URLInput
	params     *KVTable[string]
	headers    *KVTable[string]
	formData   *KVTable[kvedit.FormValue]
	urlEncoded *KVTable[string]

	raw           textarea.Model
	rawEditing    bool
	binary        textinput.Model
	binaryEditing bool

	authCursor  int
	authInput   textinput.Model
	authEditing bool
}

// NewRequestPanel creates a panel editing the drafts of tabs. When no tab is
// open an empty draft is opened.
func NewRequestPanel(tabs *core.Tabs, opts RequestPanelOptions) *RequestPanel {
	raw := textarea.New()
	raw.ShowLineNumbers = true
	raw.Placeholder = "Request body"

	binary := textinput.New()
	binary.Prompt = "File: "
	binary.Placeholder = "/path/to/file"

	authInput := textinput.New()
	authInput.Prompt = ""

	p := &RequestPanel{
		BaseComponent: tui.NewBaseComponent("Request"),
		tabs:          tabs,
		workspaceID:   opts.WorkspaceID,
		url:           NewURLInput(opts.URLSuggest),
		params:        NewParamsTable(),
		headers:       NewHeadersTable(opts.HeaderSuggest),
		formData:      NewFormDataTable(),
		urlEncoded:    NewURLEncodedTable(),
		raw:           raw,
		binary:        binary,
		authInput:     authInput,
	}
	if opts.Log != nil {
		p.log = *opts.Log
	} else {
		p.log = logger.Named("request-panel")
	}

	p.url.OnChange(func(method, url string) {
		p.update(core.SetMethod{Method: method}, core.SetURL{URL: url})
	})
	p.params.Editor().OnChange(func(m *core.Mapping) {
		p.update(core.SetParams{Params: m})
	})
	p.headers.Editor().OnChange(func(m *core.Mapping) {
		p.update(core.SetHeaders{Headers: m})
	})
	p.urlEncoded.Editor().OnChange(func(m *core.Mapping) {
		p.update(core.SetURLEncoded{Fields: m})
	})
	p.formData.Editor().OnChange(func(*core.Mapping) {
		p.update(core.SetFormData{Fields: kvedit.FormFields(p.formData.Editor())})
	})

	if tabs.Len() == 0 {
		tabs.Open(p.newDraft())
	}
	p.show()
	return p
}

// Init initializes the component.
func (p *RequestPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *RequestPanel) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		return p, nil
	case tui.FocusMsg:
		p.Focus()
		return p, nil
	case tui.BlurMsg:
		p.Blur()
		return p, nil
	case tea.KeyMsg:
		if !p.Focused() {
			return p, nil
		}
		return p, p.handleKeyMsg(msg)
	case tea.MouseMsg:
		if !p.Focused() {
			return p, nil
		}
		return p, p.forward(p.activeChild(), msg)
	}

	// Async results (suggestions, blur timers) go to every child.
	var cmds []tea.Cmd
	for _, c := range p.children() {
		_, cmd := c.Update(msg)
		cmds = append(cmds, cmd)
	}
	return p, tea.Batch(cmds...)
}

func (p *RequestPanel) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if p.IsEditing() {
		return p.handleEditingKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlN:
		p.tabs.Open(p.newDraft())
		p.show()
		return nil
	case tea.KeyCtrlW:
		p.closeActive()
		return nil
	case tea.KeyCtrlS:
		return p.recordHistory()
	case tea.KeyEsc:
		if p.urlFocused {
			p.urlFocused = false
			p.focusChildren()
			return nil
		}
	}

	if msg.Type == tea.KeyRunes {
		switch string(msg.Runes) {
		case "u":
			p.urlFocused = true
			p.focusChildren()
			return nil
		case "1", "2", "3", "4":
			p.SetActiveTab(RequestTab(msg.Runes[0] - '1'))
			return nil
		case "]":
			p.SetActiveTab((p.activeTab + 1) % RequestTab(len(tabNames)))
			return nil
		case "[":
			p.SetActiveTab((p.activeTab - 1 + RequestTab(len(tabNames))) % RequestTab(len(tabNames)))
			return nil
		case "H":
			p.switchDraft(-1)
			return nil
		case "L":
			p.switchDraft(1)
			return nil
		}
	}

	if p.urlFocused {
		return p.forward(p.url, msg)
	}

	switch p.activeTab {
	case TabBody:
		return p.handleBodyKey(msg)
	case TabAuth:
		return p.handleAuthKey(msg)
	}
	return p.forward(p.activeChild(), msg)
}

// handleEditingKey routes keys to the child in insert mode.
func (p *RequestPanel) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case p.rawEditing:
		return p.handleRawKey(msg)
	case p.binaryEditing:
		return p.handleBinaryKey(msg)
	case p.authEditing:
		return p.handleAuthInputKey(msg)
	case p.url.IsEditing():
		return p.forward(p.url, msg)
	}
	return p.forward(p.activeChild(), msg)
}

func (p *RequestPanel) forward(c tui.Component, msg tea.Msg) tea.Cmd {
	if c == nil {
		return nil
	}
	_, cmd := c.Update(msg)
	return cmd
}

// Body

func (p *RequestPanel) handleBodyKey(msg tea.KeyMsg) tea.Cmd {
	d := p.tabs.Active()
	if msg.Type == tea.KeyRunes && string(msg.Runes) == "m" {
		p.update(core.SetBodyMode{Mode: nextBodyMode(d.Body.Mode)})
		p.focusChildren()
		return nil
	}

	switch d.Body.Mode {
	case core.BodyRaw:
		switch {
		case msg.Type == tea.KeyCtrlF:
			p.formatRaw()
		case msg.Type == tea.KeyEnter, msg.Type == tea.KeyRunes && string(msg.Runes) == "i":
			p.rawEditing = true
			return p.raw.Focus()
		}
	case core.BodyBinary:
		switch {
		case msg.Type == tea.KeyEnter, msg.Type == tea.KeyRunes && string(msg.Runes) == "i":
			p.binaryEditing = true
			p.binary.CursorEnd()
			return p.binary.Focus()
		case msg.Type == tea.KeyRunes && string(msg.Runes) == "d":
			p.binary.SetValue("")
			p.update(core.SetBinaryFile{})
		}
	case core.BodyFormData, core.BodyURLEncoded:
		return p.forward(p.activeChild(), msg)
	}
	return nil
}

func (p *RequestPanel) handleRawKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.rawEditing = false
		p.raw.Blur()
		return nil
	case tea.KeyCtrlF:
		p.formatRaw()
		return nil
	}
	var cmd tea.Cmd
	p.raw, cmd = p.raw.Update(msg)
	if p.raw.Value() != p.tabs.Active().Body.Raw {
		p.update(core.SetRawBody{Raw: p.raw.Value()})
	}
	return cmd
}

func (p *RequestPanel) formatRaw() {
	formatted := core.FormatJSON(p.raw.Value())
	if formatted == p.raw.Value() {
		return
	}
	p.raw.SetValue(formatted)
	p.update(core.SetRawBody{Raw: formatted})
}

func (p *RequestPanel) handleBinaryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		p.binaryEditing = false
		p.binary.Blur()
		path := strings.TrimSpace(p.binary.Value())
		if path == "" {
			p.update(core.SetBinaryFile{})
		} else {
			p.update(core.SetBinaryFile{File: core.NewFileRef(path)})
		}
		return nil
	}
	var cmd tea.Cmd
	p.binary, cmd = p.binary.Update(msg)
	return cmd
}

func nextBodyMode(mode core.BodyMode) core.BodyMode {
	modes := core.BodyModes()
	for i, m := range modes {
		if m == mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// Auth

type authField struct {
	label  string
	get    func(a core.AuthConfig) string
	set    func(a *core.AuthConfig, v string)
	toggle bool
	secret bool
}

func authFields(t core.AuthType) []authField {
	switch t {
	case core.AuthTypeBasic:
		return []authField{
			{label: "Username", get: func(a core.AuthConfig) string { return a.Username }, set: func(a *core.AuthConfig, v string) { a.Username = v }},
			{label: "Password", get: func(a core.AuthConfig) string { return a.Password }, set: func(a *core.AuthConfig, v string) { a.Password = v }, secret: true},
		}
	case core.AuthTypeBearer:
		return []authField{
			{label: "Token", get: func(a core.AuthConfig) string { return a.Token }, set: func(a *core.AuthConfig, v string) { a.Token = v }, secret: true},
		}
	case core.AuthTypeAPIKey:
		return []authField{
			{label: "Key", get: func(a core.AuthConfig) string { return a.Key }, set: func(a *core.AuthConfig, v string) { a.Key = v }},
			{label: "Value", get: func(a core.AuthConfig) string { return a.Value }, set: func(a *core.AuthConfig, v string) { a.Value = v }, secret: true},
			{label: "Add to", get: func(a core.AuthConfig) string {
				if a.In == "" {
					return string(core.APIKeyInHeader)
				}
				return string(a.In)
			}, toggle: true},
		}
	}
	return nil
}

func (p *RequestPanel) handleAuthKey(msg tea.KeyMsg) tea.Cmd {
	auth := p.tabs.Active().Auth
	fields := authFields(auth.Type)

	switch msg.Type {
	case tea.KeyUp:
		p.authCursor = max(p.authCursor-1, 0)
	case tea.KeyDown:
		p.authCursor = max(min(p.authCursor+1, len(fields)-1), 0)
	case tea.KeyEnter:
		return p.editAuthField(auth, fields)
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "a":
			p.update(core.SetAuth{Auth: nextAuth(auth)})
			p.authCursor = 0
		case "j":
			p.authCursor = max(min(p.authCursor+1, len(fields)-1), 0)
		case "k":
			p.authCursor = max(p.authCursor-1, 0)
		case "i":
			return p.editAuthField(auth, fields)
		}
	}
	return nil
}

func (p *RequestPanel) editAuthField(auth core.AuthConfig, fields []authField) tea.Cmd {
	if p.authCursor >= len(fields) {
		return nil
	}
	f := fields[p.authCursor]
	if f.toggle {
		if auth.In == core.APIKeyInQuery {
			auth.In = core.APIKeyInHeader
		} else {
			auth.In = core.APIKeyInQuery
		}
		p.update(core.SetAuth{Auth: auth})
		return nil
	}
	p.authEditing = true
	p.authInput.SetValue(f.get(auth))
	p.authInput.CursorEnd()
	return p.authInput.Focus()
}

func (p *RequestPanel) handleAuthInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		p.authEditing = false
		p.authInput.Blur()
		auth := p.tabs.Active().Auth
		fields := authFields(auth.Type)
		if p.authCursor < len(fields) {
			fields[p.authCursor].set(&auth, p.authInput.Value())
			p.update(core.SetAuth{Auth: auth})
		}
		return nil
	}
	var cmd tea.Cmd
	p.authInput, cmd = p.authInput.Update(msg)
	return cmd
}

// nextAuth switches to the next auth type, keeping the entered values.
func nextAuth(a core.AuthConfig) core.AuthConfig {
	types := core.AuthTypes()
	next := types[0]
	for i, t := range types {
		if t == a.Type || (a.Type == "" && t == core.AuthTypeNone) {
			next = types[(i+1)%len(types)]
			break
		}
	}
	a.Type = next
	return a
}

// Drafts

func (p *RequestPanel) newDraft() *core.RequestDraft {
	d := core.NewRequestDraft("")
	d.WorkspaceID = p.workspaceID
	return d
}

func (p *RequestPanel) closeActive() {
	d := p.tabs.Active()
	if d == nil {
		return
	}
	if err := p.tabs.Close(d.ID); err != nil {
		p.log.Error(err, "close draft failed", "draft", d.ID)
	}
	if p.tabs.Len() == 0 {
		p.tabs.Open(p.newDraft())
	}
	p.show()
}

func (p *RequestPanel) switchDraft(delta int) {
	ids := p.tabs.IDs()
	if len(ids) < 2 {
		return
	}
	idx := 0
	for i, id := range ids {
		if id == p.shownID {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(ids)) % len(ids)
	if err := p.tabs.Activate(ids[idx]); err != nil {
		p.log.Error(err, "activate draft failed", "draft", ids[idx])
		return
	}
	p.show()
}

// show loads the active draft into the editors. Editors are reset so local
// edits of the previous draft do not leak into the new one.
func (p *RequestPanel) show() {
	d := p.tabs.Active()
	if d == nil {
		return
	}
	p.shownID = d.ID
	p.url.Set(d.Method, d.URL)
	p.params.Reset(d.Params)
	p.headers.Reset(d.Headers)
	p.urlEncoded.Reset(d.Body.URLEncoded)
	p.formData.ResetRows(kvedit.FormRows(d.Body.FormData))

	p.raw.SetValue(d.Body.Raw)
	p.rawEditing = false
	p.raw.Blur()
	p.binaryEditing = false
	p.binary.Blur()
	p.binary.SetValue("")
	if d.Body.Binary != nil {
		p.binary.SetValue(d.Body.Binary.Path)
	}
	p.authEditing = false
	p.authInput.Blur()
	p.authCursor = 0
	p.focusChildren()
}

// Sync offers the active draft's mappings to the editors. Editors holding
// local edits keep them.
func (p *RequestPanel) Sync() {
	d := p.tabs.Active()
	if d == nil {
		return
	}
	if d.ID != p.shownID {
		p.show()
		return
	}
	p.params.Sync(d.Params)
	p.headers.Sync(d.Headers)
	p.urlEncoded.Sync(d.Body.URLEncoded)
	if !p.url.IsEditing() {
		p.url.Set(d.Method, d.URL)
	}
}

func (p *RequestPanel) update(patches ...core.Patch) {
	if err := p.tabs.Update(p.shownID, patches...); err != nil {
		p.log.Error(err, "draft update failed", "draft", p.shownID)
	}
}

func (p *RequestPanel) recordHistory() tea.Cmd {
	d := p.tabs.Active()
	if d == nil || strings.TrimSpace(d.URL) == "" {
		return tui.Notify("Nothing to record: URL is empty", true)
	}
	entry := history.Entry{
		WorkspaceID: d.WorkspaceID,
		Method:      d.Method,
		URL:         d.URL,
		RequestType: string(d.Protocol),
	}
	return func() tea.Msg { return RecordHistoryMsg{Entry: entry} }
}

// Focus

// Focus sets the panel and its active child as focused.
func (p *RequestPanel) Focus() {
	p.BaseComponent.Focus()
	p.focusChildren()
}

// Blur removes focus from the panel and its children.
func (p *RequestPanel) Blur() {
	p.BaseComponent.Blur()
	p.focusChildren()
}

func (p *RequestPanel) focusChildren() {
	active := p.activeChild()
	for _, c := range p.children() {
		if p.Focused() && c == active {
			c.Focus()
		} else {
			c.Blur()
		}
	}
}

// children returns the sub-components that receive async messages.
func (p *RequestPanel) children() []tui.Component {
	return []tui.Component{p.url, p.params, p.headers, p.formData, p.urlEncoded}
}

// activeChild returns the sub-component keys go to, or nil when the active
// section is drawn by the panel itself.
func (p *RequestPanel) activeChild() tui.Component {
	if p.urlFocused {
		return p.url
	}
	switch p.activeTab {
	case TabParams:
		return p.params
	case TabHeaders:
		return p.headers
	case TabBody:
		switch p.tabs.Active().Body.Mode {
		case core.BodyFormData:
			return p.formData
		case core.BodyURLEncoded:
			return p.urlEncoded
		}
	}
	return nil
}

// IsEditing reports whether a child is in insert mode.
func (p *RequestPanel) IsEditing() bool {
	if p.rawEditing || p.binaryEditing || p.authEditing || p.url.IsEditing() {
		return true
	}
	if e, ok := p.activeChild().(tui.Editor); ok {
		return e.IsEditing()
	}
	return false
}

// Popups returns the open popups of the children.
func (p *RequestPanel) Popups() []tui.Popup {
	var popups []tui.Popup
	for _, c := range p.children() {
		if src, ok := c.(tui.PopupSource); ok {
			popups = append(popups, src.Popups()...)
		}
	}
	return popups
}

// SetOrigin sets the screen position of the panel's top-left corner.
func (p *RequestPanel) SetOrigin(x, y int) {
	p.originX, p.originY = x, y
	p.layout()
}

// SetSize sets the panel dimensions.
func (p *RequestPanel) SetSize(width, height int) {
	p.BaseComponent.SetSize(width, height)
	p.layout()
}

func (p *RequestPanel) layout() {
	innerW := max(p.Width()-2, 0)
	contentH := max(p.Height()-2-panelHeaderRows, 1)
	x := p.originX + 1
	y := p.originY + 1

	p.url.SetSize(innerW, 1)
	p.url.SetOrigin(x, y+1)
	for _, t := range []interface {
		SetSize(int, int)
		SetOrigin(int, int)
	}{p.params, p.headers, p.formData, p.urlEncoded} {
		t.SetSize(innerW, contentH)
		t.SetOrigin(x, y+panelHeaderRows)
	}
	p.raw.SetWidth(max(innerW, 10))
	p.raw.SetHeight(contentH)
	p.binary.Width = max(innerW-len(p.binary.Prompt)-1, 10)
	p.authInput.Width = max(innerW-14, 10)
}

// Accessors

// Title returns the component title.
func (p *RequestPanel) Title() string {
	if d := p.tabs.Active(); d != nil {
		return fmt.Sprintf("Request: %s", d.Title())
	}
	return p.BaseComponent.Title()
}

// Draft returns the draft being edited.
func (p *RequestPanel) Draft() *core.RequestDraft { return p.tabs.Active() }

// ActiveTab returns the active section.
func (p *RequestPanel) ActiveTab() RequestTab { return p.activeTab }

// SetActiveTab switches the section.
func (p *RequestPanel) SetActiveTab(tab RequestTab) {
	if tab < 0 || int(tab) >= len(tabNames) {
		return
	}
	p.activeTab = tab
	p.urlFocused = false
	p.authCursor = 0
	p.focusChildren()
}

// URLFocused reports whether keys go to the URL input.
func (p *RequestPanel) URLFocused() bool { return p.urlFocused }

func (p *RequestPanel) URLInput() *URLInput                      { return p.url }
func (p *RequestPanel) ParamsTable() *KVTable[string]             { return p.params }
func (p *RequestPanel) HeadersTable() *KVTable[string]            { return p.headers }
func (p *RequestPanel) FormDataTable() *KVTable[kvedit.FormValue] { return p.formData }
func (p *RequestPanel) URLEncodedTable() *KVTable[string]         { return p.urlEncoded }

// View

// View renders the component.
func (p *RequestPanel) View() string {
	if p.Width() == 0 || p.Height() == 0 {
		return ""
	}
	innerW := p.Width() - 2
	contentH := max(p.Height()-2-panelHeaderRows, 1)

	title := tui.RenderTitle(tui.Truncate(p.draftBar(), innerW), innerW, p.Focused())
	urlLine := p.url.View()
	tabBar := tui.RenderTabBar(tabNames, int(p.activeTab), p.Focused() && !p.urlFocused)
	info := lipgloss.NewStyle().Foreground(tui.ColorMuted).Render(tui.Truncate(p.infoLine(), innerW))

	lines := strings.Split(p.renderSection(), "\n")
	for len(lines) < contentH {
		lines = append(lines, "")
	}
	if len(lines) > contentH {
		lines = lines[:contentH]
	}

	content := strings.Join([]string{title, urlLine, tabBar, info, strings.Join(lines, "\n")}, "\n")
	return tui.RenderBorder(content, innerW, p.Height()-2, p.Focused())
}

func (p *RequestPanel) draftBar() string {
	ids := p.tabs.IDs()
	pos := 0
	for i, id := range ids {
		if id == p.shownID {
			pos = i + 1
		}
	}
	return fmt.Sprintf("%s  [%d/%d]", p.Title(), pos, len(ids))
}

func (p *RequestPanel) infoLine() string {
	d := p.tabs.Active()
	switch p.activeTab {
	case TabBody:
		if d.Body.Mode == core.BodyRaw {
			return fmt.Sprintf("Mode: %s [%s]  (m: change mode)", d.Body.Mode, DetectBodyFormat(d.Headers, d.Body.Raw).Upper())
		}
		return fmt.Sprintf("Mode: %s  (m: change mode)", d.Body.Mode)
	case TabAuth:
		return fmt.Sprintf("%s  (a: change type)", d.Auth.DisplayName())
	case TabParams:
		return fmt.Sprintf("%d query params", d.Params.Len())
	case TabHeaders:
		return fmt.Sprintf("%d headers", d.Headers.Len())
	}
	return ""
}

func (p *RequestPanel) renderSection() string {
	d := p.tabs.Active()
	muted := lipgloss.NewStyle().Foreground(tui.ColorMuted)

	switch p.activeTab {
	case TabParams:
		return p.params.View()
	case TabHeaders:
		return p.headers.View()
	case TabBody:
		switch d.Body.Mode {
		case core.BodyRaw:
			if p.rawEditing {
				return p.raw.View()
			}
			return RenderBodyPreview(d.Body.Raw, DetectBodyFormat(d.Headers, d.Body.Raw), p.Width()-2, p.raw.Height())
		case core.BodyFormData:
			return p.formData.View()
		case core.BodyURLEncoded:
			return p.urlEncoded.View()
		case core.BodyBinary:
			if p.binaryEditing {
				return p.binary.View()
			}
			if d.Body.Binary == nil {
				return muted.Render("No file selected (press i to choose)")
			}
			return "File: " + d.Body.Binary.Name + "\n" + muted.Render(d.Body.Binary.Path)
		default:
			return muted.Render("This request has no body")
		}
	case TabAuth:
		return p.renderAuth(d.Auth)
	}
	return ""
}

func (p *RequestPanel) renderAuth(auth core.AuthConfig) string {
	fields := authFields(auth.Type)
	if len(fields) == 0 {
		return lipgloss.NewStyle().Foreground(tui.ColorMuted).Render(auth.Summary())
	}

	var lines []string
	for i, f := range fields {
		value := f.get(auth)
		if f.secret && value != "" {
			value = strings.Repeat("•", min(len(value), 16))
		}
		if i == p.authCursor && p.authEditing {
			value = p.authInput.View()
		}
		line := tui.PadRight(f.label+":", 12) + " " + value
		if i == p.authCursor && p.Focused() {
			line = lipgloss.NewStyle().Background(lipgloss.Color("237")).Render(line)
		}
		lines = append(lines, line)
	}
	if err := auth.Validate(); err != nil {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(tui.ColorError).Render(err.Error()))
	}
	return strings.Join(lines, "\n")
}
