package kvedit

import "github.com/artpar/kvdraft/internal/core"

type textSchema struct{}

// Text is the schema of plain string values.
var Text Schema[string] = textSchema{}

func (textSchema) Empty() string                      { return "" }
func (textSchema) IsBlank(v string) bool              { return v == "" }
func (textSchema) Text(v string) string               { return v }
func (textSchema) FromText(s string) string           { return s }
func (textSchema) WithText(_ string, s string) string { return s }

// FormValue is the value cell of a form-data row: either text or a file.
type FormValue struct {
	Type core.FormFieldType
	Text string
	File *core.FileRef
}

// FileName returns the attached file's name, or "" without a file.
func (v FormValue) FileName() string {
	if v.File == nil {
		return ""
	}
	return v.File.Name
}

type formSchema struct{}

// Form is the schema of form-data values. A file row counts as blank while
// no file is attached.
var Form Schema[FormValue] = formSchema{}

func (formSchema) Empty() FormValue {
	return FormValue{Type: core.FormFieldText}
}

func (formSchema) IsBlank(v FormValue) bool {
	if v.Type == core.FormFieldFile {
		return v.File == nil
	}
	return v.Text == ""
}

func (formSchema) Text(v FormValue) string {
	if v.Type == core.FormFieldFile {
		return v.FileName()
	}
	return v.Text
}

func (formSchema) FromText(s string) FormValue {
	return FormValue{Type: core.FormFieldText, Text: s}
}

func (formSchema) WithText(v FormValue, s string) FormValue {
	v.Text = s
	return v
}
