package components

import (
	"strings"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/artpar/kvdraft/internal/kvedit"
	"github.com/artpar/kvdraft/internal/suggest"
	tea "github.com/charmbracelet/bubbletea"
)

// Suggestion targets.
const (
	TargetHeaderKeys = "header-keys"
	TargetURL        = "url"
)

// NewParamsTable creates the query parameters table.
func NewParamsTable() *KVTable[string] {
	return NewKVTable("Params", kvedit.NewParamsEditor())
}

// NewHeadersTable creates the request headers table. The key column
// suggests well-known header names.
func NewHeadersTable(opts SuggestOptions) *KVTable[string] {
	if opts.Source == nil {
		opts.Source = suggest.HeaderNames
	}
	return NewKVTable("Headers", kvedit.NewHeadersEditor(),
		WithKeySuggestions[string](TargetHeaderKeys, opts))
}

// NewURLEncodedTable creates the x-www-form-urlencoded body table.
func NewURLEncodedTable() *KVTable[string] {
	return NewKVTable("URL Encoded", kvedit.NewURLEncodedEditor())
}

// NewFormDataTable creates the multipart body table. Besides the common keys,
// t switches the selected row between text and file; editing the value of a
// file row takes a path.
func NewFormDataTable() *KVTable[kvedit.FormValue] {
	return NewKVTable("Form Data", kvedit.NewFormDataEditor(),
		WithCellText(formCellText),
		WithEditText(formEditText),
		WithCommit(commitFormCell),
		WithExtraKeys(formKeys),
	)
}

func formCellText(v kvedit.FormValue) string {
	if v.Type != core.FormFieldFile {
		return v.Text
	}
	if v.File == nil {
		return "[file] <none>"
	}
	return "[file] " + v.File.Name
}

func formEditText(v kvedit.FormValue) string {
	if v.Type == core.FormFieldFile {
		if v.File == nil {
			return ""
		}
		return v.File.Path
	}
	return v.Text
}

func commitFormCell(e *kvedit.Editor[kvedit.FormValue], id string, field kvedit.Field, text string) bool {
	row, ok := e.Row(id)
	if !ok {
		return false
	}
	if field != kvedit.FieldValue || row.Value.Type != core.FormFieldFile {
		return e.SetField(id, field, text)
	}
	path := strings.TrimSpace(text)
	if path == "" {
		return kvedit.AttachFile(e, id, nil)
	}
	return kvedit.AttachFile(e, id, core.NewFileRef(path))
}

func formKeys(t *KVTable[kvedit.FormValue], msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type != tea.KeyRunes || string(msg.Runes) != "t" {
		return false, nil
	}
	row, ok := t.Editor().RowAt(t.Cursor())
	if !ok {
		return true, nil
	}
	next := core.FormFieldFile
	if row.Value.Type == core.FormFieldFile {
		next = core.FormFieldText
	}
	kvedit.SetFieldType(t.Editor(), row.ID, next)
	t.SetCursor(t.Cursor())
	return true, nil
}
