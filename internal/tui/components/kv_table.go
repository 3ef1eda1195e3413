package components

import (
	"strings"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/artpar/kvdraft/internal/kvedit"
	"github.com/artpar/kvdraft/internal/overlay"
	"github.com/artpar/kvdraft/internal/tui"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const checkboxWidth = 4

// KVTable renders a kvedit.Editor as an editable table, or as a text area
// in bulk mode.
//
// Normal mode keys: j/k move, tab switches column, enter or i edits the cell,
// space toggles the row, d deletes it, b toggles bulk mode, y copies the
// mapping as bulk text. Cell edits commit on enter or esc.
type KVTable[V any] struct {
	*tui.BaseComponent
	editor *kvedit.Editor[V]

	cursor int
	offset int
	column kvedit.Field

	editing bool
	editID  string
	input   textinput.Model

	bulk        textarea.Model
	bulkEditing bool

	keySuggest *suggestionBox
	originX    int
	originY    int

	cellText   func(V) string
	editText   func(V) string
	commitCell func(e *kvedit.Editor[V], id string, field kvedit.Field, text string) bool
	extraKeys  func(t *KVTable[V], msg tea.KeyMsg) (bool, tea.Cmd)
}

// KVTableOption configures a KVTable.
type KVTableOption[V any] func(*KVTable[V])

// WithKeySuggestions attaches a suggestion dropdown to the key column.
func WithKeySuggestions[V any](target string, opts SuggestOptions) KVTableOption[V] {
	return func(t *KVTable[V]) { t.keySuggest = newSuggestionBox(target, opts) }
}

// WithCellText overrides how the value cell is displayed.
func WithCellText[V any](fn func(V) string) KVTableOption[V] {
	return func(t *KVTable[V]) { t.cellText = fn }
}

// WithEditText overrides the initial input text when a value cell is edited.
func WithEditText[V any](fn func(V) string) KVTableOption[V] {
	return func(t *KVTable[V]) { t.editText = fn }
}

// WithCommit overrides how an edited cell is written back to the editor.
func WithCommit[V any](fn func(e *kvedit.Editor[V], id string, field kvedit.Field, text string) bool) KVTableOption[V] {
	return func(t *KVTable[V]) { t.commitCell = fn }
}

// WithExtraKeys adds key handling run before the default normal mode keys.
func WithExtraKeys[V any](fn func(t *KVTable[V], msg tea.KeyMsg) (bool, tea.Cmd)) KVTableOption[V] {
	return func(t *KVTable[V]) { t.extraKeys = fn }
}

// NewKVTable creates a table around editor.
func NewKVTable[V any](title string, editor *kvedit.Editor[V], opts ...KVTableOption[V]) *KVTable[V] {
	input := textinput.New()
	input.Prompt = ""

	bulk := textarea.New()
	bulk.ShowLineNumbers = false
	bulk.Placeholder = "key: value"

	t := &KVTable[V]{
		BaseComponent: tui.NewBaseComponent(title),
		editor:        editor,
		input:         input,
		bulk:          bulk,
		column:        kvedit.FieldKey,
	}
	t.cellText = func(v V) string { return editor.Schema().Text(v) }
	t.editText = t.cellText
	t.commitCell = func(e *kvedit.Editor[V], id string, field kvedit.Field, text string) bool {
		return e.SetField(id, field, text)
	}
	for _, opt := range opts {
		opt(t)
	}
	t.syncBulk()
	return t
}

// Editor returns the wrapped editor.
func (t *KVTable[V]) Editor() *kvedit.Editor[V] { return t.editor }

// Init initializes the component.
func (t *KVTable[V]) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (t *KVTable[V]) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	if t.HandleCommon(msg) {
		t.layout()
		return t, nil
	}

	if t.keySuggest != nil && t.keySuggest.update(msg) {
		return t, nil
	}

	if !t.Focused() {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return t, t.handleMouse(msg)
	case tea.KeyMsg:
		return t, t.handleKey(msg)
	}
	return t, nil
}

func (t *KVTable[V]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if t.editing {
		return t.handleEditKey(msg)
	}
	if t.editor.Mode() == kvedit.ModeBulk {
		return t.handleBulkKey(msg)
	}

	if t.extraKeys != nil {
		if handled, cmd := t.extraKeys(t, msg); handled {
			return cmd
		}
	}

	switch msg.Type {
	case tea.KeyTab:
		t.toggleColumn()
	case tea.KeyEnter:
		return t.startEdit()
	case tea.KeyDown:
		t.moveCursor(1)
	case tea.KeyUp:
		t.moveCursor(-1)
	case tea.KeySpace:
		t.toggleEnabled()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "j":
			t.moveCursor(1)
		case "k":
			t.moveCursor(-1)
		case "h", "l":
			t.toggleColumn()
		case "i":
			return t.startEdit()
		case " ":
			t.toggleEnabled()
		case "d":
			t.deleteRow()
		case "b":
			t.toggleBulk()
		case "y":
			return t.copyCmd()
		}
	}
	return nil
}

func (t *KVTable[V]) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	if t.suggesting() {
		if value, accepted, consumed := t.keySuggest.key(msg); consumed {
			if accepted {
				t.input.SetValue(value)
				return t.commitEdit()
			}
			return nil
		}
	}

	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		return t.commitEdit()
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if t.suggesting() {
		return tea.Batch(cmd, t.keySuggest.input(t.input.Value()))
	}
	return cmd
}

func (t *KVTable[V]) handleBulkKey(msg tea.KeyMsg) tea.Cmd {
	if t.bulkEditing {
		if msg.Type == tea.KeyEsc {
			t.bulkEditing = false
			t.bulk.Blur()
			return nil
		}
		var cmd tea.Cmd
		t.bulk, cmd = t.bulk.Update(msg)
		if t.bulk.Value() != t.editor.BulkText() {
			_ = t.editor.EditBulkText(t.bulk.Value())
		}
		return cmd
	}

	switch msg.Type {
	case tea.KeyEnter:
		t.bulkEditing = true
		return t.bulk.Focus()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "i":
			t.bulkEditing = true
			return t.bulk.Focus()
		case "b":
			t.toggleBulk()
		case "y":
			return t.copyCmd()
		}
	}
	return nil
}

func (t *KVTable[V]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if t.keySuggest == nil {
		return nil
	}
	value, accepted, consumed := t.keySuggest.mouse(msg)
	if accepted {
		if t.editing && t.column == kvedit.FieldKey {
			t.input.SetValue(value)
			return t.commitEdit()
		}
		t.commitCell(t.editor, t.editID, kvedit.FieldKey, value)
		t.clampCursor()
		return nil
	}
	if !consumed && msg.Action == tea.MouseActionPress && t.editing {
		return t.commitEdit()
	}
	return nil
}

func (t *KVTable[V]) startEdit() tea.Cmd {
	row, ok := t.editor.RowAt(t.cursor)
	if !ok {
		return nil
	}
	t.editing = true
	t.editID = row.ID
	t.layout()
	if t.column == kvedit.FieldKey {
		t.input.SetValue(row.Key)
	} else {
		t.input.SetValue(t.editText(row.Value))
	}
	t.input.CursorEnd()
	cmd := t.input.Focus()

	if t.suggesting() {
		return tea.Batch(cmd, t.keySuggest.focus(t.input.Value(), t.cellAnchor()))
	}
	return cmd
}

// commitEdit writes the input back to the row being edited. A row removed
// meanwhile is not recreated.
func (t *KVTable[V]) commitEdit() tea.Cmd {
	var cmd tea.Cmd
	if t.suggesting() {
		cmd = t.keySuggest.blur()
	}
	t.editing = false
	t.input.Blur()
	t.commitCell(t.editor, t.editID, t.column, t.input.Value())
	t.clampCursor()
	return cmd
}

// CancelEdit leaves insert mode without writing the input back.
func (t *KVTable[V]) CancelEdit() {
	if !t.editing {
		return
	}
	t.editing = false
	t.input.Blur()
	if t.keySuggest != nil {
		t.keySuggest.release()
	}
}

func (t *KVTable[V]) suggesting() bool {
	return t.keySuggest != nil && t.column == kvedit.FieldKey && t.editor.Mode() == kvedit.ModeTable
}

func (t *KVTable[V]) toggleColumn() {
	if t.column == kvedit.FieldKey {
		t.column = kvedit.FieldValue
	} else {
		t.column = kvedit.FieldKey
	}
}

func (t *KVTable[V]) toggleEnabled() {
	row, ok := t.editor.RowAt(t.cursor)
	if !ok || t.editor.IsBlank(row) {
		return
	}
	t.editor.SetEnabled(row.ID, !row.Enabled)
}

func (t *KVTable[V]) deleteRow() {
	row, ok := t.editor.RowAt(t.cursor)
	if !ok {
		return
	}
	t.editor.DeleteRow(row.ID)
	t.clampCursor()
}

func (t *KVTable[V]) toggleBulk() {
	if !t.editor.SupportsBulk() {
		return
	}
	if t.editor.Mode() == kvedit.ModeBulk {
		_ = t.editor.SwitchMode(kvedit.ModeTable)
		t.bulkEditing = false
		t.bulk.Blur()
		t.clampCursor()
		return
	}
	_ = t.editor.SwitchMode(kvedit.ModeBulk)
	t.syncBulk()
}

func (t *KVTable[V]) copyCmd() tea.Cmd {
	content := t.editor.BulkText()
	if t.editor.Mode() == kvedit.ModeTable {
		content = t.editor.Codec().Encode(t.editor.Mapping())
	}
	return func() tea.Msg { return tui.CopyMsg{Content: content} }
}

func (t *KVTable[V]) moveCursor(delta int) {
	t.cursor += delta
	t.clampCursor()
}

func (t *KVTable[V]) clampCursor() {
	t.cursor = max(min(t.cursor, t.editor.Len()-1), 0)
	visible := t.visibleRows()
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if visible > 0 && t.cursor >= t.offset+visible {
		t.offset = t.cursor - visible + 1
	}
}

// Sync offers m to the editor, see kvedit.Editor.Sync.
func (t *KVTable[V]) Sync(m *core.Mapping) {
	t.editor.Sync(m)
	t.refresh()
}

// Reset shows m regardless of local edits.
func (t *KVTable[V]) Reset(m *core.Mapping) {
	t.CancelEdit()
	t.editor.Reset(m)
	t.refresh()
}

// ResetRows shows rows regardless of local edits.
func (t *KVTable[V]) ResetRows(rows []kvedit.Row[V]) {
	t.CancelEdit()
	t.editor.ResetRows(rows)
	t.refresh()
}

func (t *KVTable[V]) refresh() {
	t.syncBulk()
	t.clampCursor()
}

func (t *KVTable[V]) syncBulk() {
	if t.bulk.Value() != t.editor.BulkText() {
		t.bulk.SetValue(t.editor.BulkText())
	}
}

// SetOrigin sets the screen position of the table's top-left cell, used to
// anchor popups.
func (t *KVTable[V]) SetOrigin(x, y int) {
	t.originX, t.originY = x, y
	if t.keySuggest != nil {
		t.keySuggest.setAnchor(t.cellAnchor())
	}
}

func (t *KVTable[V]) cellAnchor() overlay.Rect {
	keyWidth, _ := t.columnWidths()
	x := t.originX + checkboxWidth
	if t.column == kvedit.FieldValue {
		x += keyWidth + 1
	}
	return overlay.Rect{
		X:      x,
		Y:      t.originY + 1 + t.cursor - t.offset,
		Width:  keyWidth,
		Height: 1,
	}
}

// Popups returns the open key suggestion dropdown, if any.
func (t *KVTable[V]) Popups() []tui.Popup {
	if t.keySuggest == nil {
		return nil
	}
	if p, ok := t.keySuggest.popup(); ok {
		return []tui.Popup{p}
	}
	return nil
}

// IsEditing reports whether keys go to an input.
func (t *KVTable[V]) IsEditing() bool {
	return t.editing || t.bulkEditing
}

// Cursor returns the selected row index.
func (t *KVTable[V]) Cursor() int { return t.cursor }

// SetCursor selects a row.
func (t *KVTable[V]) SetCursor(i int) {
	t.cursor = i
	t.clampCursor()
}

// Column returns the selected column.
func (t *KVTable[V]) Column() kvedit.Field { return t.column }

// InputValue returns the text of the cell being edited.
func (t *KVTable[V]) InputValue() string { return t.input.Value() }

// SuggestionsOpen reports whether the key dropdown is open.
func (t *KVTable[V]) SuggestionsOpen() bool {
	return t.keySuggest != nil && t.keySuggest.isOpen()
}

func (t *KVTable[V]) layout() {
	keyWidth, valueWidth := t.columnWidths()
	if t.column == kvedit.FieldKey {
		t.input.Width = keyWidth
	} else {
		t.input.Width = valueWidth
	}
	t.bulk.SetWidth(max(t.Width(), 10))
	t.bulk.SetHeight(max(t.Height()-1, 1))
	t.clampCursor()
}

func (t *KVTable[V]) columnWidths() (int, int) {
	avail := max(t.Width()-checkboxWidth-1, 10)
	keyWidth := avail * 2 / 5
	return keyWidth, avail - keyWidth
}

func (t *KVTable[V]) visibleRows() int {
	return t.Height() - 1
}

// View renders the component.
func (t *KVTable[V]) View() string {
	if t.editor.Mode() == kvedit.ModeBulk {
		header := lipgloss.NewStyle().Foreground(tui.ColorMuted).Render("Bulk edit (one key:value per line)  b: table")
		return header + "\n" + t.bulk.View()
	}

	keyWidth, valueWidth := t.columnWidths()
	muted := lipgloss.NewStyle().Foreground(tui.ColorMuted)
	selected := lipgloss.NewStyle().Background(lipgloss.Color("237"))
	cell := lipgloss.NewStyle().Foreground(tui.ColorTitle).Bold(true)

	var b strings.Builder
	b.WriteString(muted.Render(strings.Repeat(" ", checkboxWidth) + tui.PadRight("KEY", keyWidth) + " " + tui.PadRight("VALUE", valueWidth)))

	rows := t.editor.Rows()
	end := len(rows)
	if visible := t.visibleRows(); visible > 0 {
		end = min(len(rows), t.offset+visible)
	}
	for i := t.offset; i < end; i++ {
		row := rows[i]
		b.WriteString("\n")

		check := "[x] "
		if !row.Enabled {
			check = "[ ] "
		}
		key := tui.PadRight(row.Key, keyWidth)
		value := tui.PadRight(t.cellText(row.Value), valueWidth)
		if t.editor.IsBlank(row) {
			check = "    "
			key = muted.Render(tui.PadRight("add key", keyWidth))
			value = muted.Render(tui.PadRight("value", valueWidth))
		}

		if i == t.cursor && t.Focused() {
			if t.editing {
				if t.column == kvedit.FieldKey {
					key = lipgloss.NewStyle().Width(keyWidth).MaxWidth(keyWidth).Render(t.input.View())
				} else {
					value = t.input.View()
				}
			} else if t.column == kvedit.FieldKey {
				key = cell.Render(key)
			} else {
				value = cell.Render(value)
			}
			b.WriteString(selected.Render(check + key + " " + value))
			continue
		}
		if !row.Enabled {
			b.WriteString(muted.Render(check + key + " " + value))
			continue
		}
		b.WriteString(check + key + " " + value)
	}
	return b.String()
}
