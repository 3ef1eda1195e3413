package kvedit

import (
	"strings"

	"github.com/artpar/kvdraft/internal/core"
)

// ID prefixes of the editor variants.
const (
	PrefixParams     = "param"
	PrefixHeaders    = "header"
	PrefixURLEncoded = "urlenc"
	PrefixFormData   = "form"
)

// NewParamsEditor creates the query parameters editor.
func NewParamsEditor(opts ...Option[string]) *Editor[string] {
	return New(Text, PrefixParams, opts...)
}

// NewHeadersEditor creates the request headers editor.
func NewHeadersEditor(opts ...Option[string]) *Editor[string] {
	return New(Text, PrefixHeaders, opts...)
}

// NewURLEncodedEditor creates the x-www-form-urlencoded body editor.
func NewURLEncodedEditor(opts ...Option[string]) *Editor[string] {
	return New(Text, PrefixURLEncoded, opts...)
}

// NewFormDataEditor creates the multipart body editor. File rows cannot be
// written as bulk text, so it has no bulk mode.
func NewFormDataEditor(opts ...Option[FormValue]) *Editor[FormValue] {
	opts = append([]Option[FormValue]{WithoutBulk[FormValue]()}, opts...)
	return New(Form, PrefixFormData, opts...)
}

// FormFields returns the enabled rows with a key as draft form fields.
func FormFields(e *Editor[FormValue]) []core.FormField {
	var fields []core.FormField
	for _, r := range e.Rows() {
		key := strings.TrimSpace(r.Key)
		if key == "" || !r.Enabled {
			continue
		}
		field := core.FormField{Key: key, Type: r.Value.Type}
		if field.Type == "" {
			field.Type = core.FormFieldText
		}
		if field.Type == core.FormFieldFile {
			field.File = r.Value.File
		} else {
			field.Value = r.Value.Text
		}
		fields = append(fields, field)
	}
	return fields
}

// FormRows converts draft form fields back into rows for ResetRows.
func FormRows(fields []core.FormField) []Row[FormValue] {
	rows := make([]Row[FormValue], 0, len(fields))
	for _, f := range fields {
		v := FormValue{Type: f.Type, Text: f.Value, File: f.File}
		if v.Type == "" {
			v.Type = core.FormFieldText
		}
		rows = append(rows, Row[FormValue]{Key: f.Key, Value: v, Enabled: true})
	}
	return rows
}

// AttachFile turns a form-data row into a file row holding f. A nil f
// detaches the file but keeps the row a file row.
func AttachFile(e *Editor[FormValue], id string, f *core.FileRef) bool {
	r, ok := e.Row(id)
	if !ok {
		return false
	}
	return e.SetValue(id, FormValue{Type: core.FormFieldFile, Text: r.Value.Text, File: f})
}

// SetFieldType switches a form-data row between text and file.
func SetFieldType(e *Editor[FormValue], id string, t core.FormFieldType) bool {
	r, ok := e.Row(id)
	if !ok {
		return false
	}
	v := r.Value
	v.Type = t
	if t == core.FormFieldText {
		v.File = nil
	}
	return e.SetValue(id, v)
}
