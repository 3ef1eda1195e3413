package kvedit

import (
	"testing"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormEditor() *Editor[FormValue] {
	return NewFormDataEditor(WithIDSource[FormValue](&CounterIDs{Prefix: "f"}))
}

func TestFormDataEditor(t *testing.T) {
	t.Run("file row without a file is blank", func(t *testing.T) {
		e := newFormEditor()
		id := e.Rows()[0].ID
		require.True(t, SetFieldType(e, id, core.FormFieldFile))
		assert.Equal(t, 1, e.Len())
		assert.True(t, e.IsBlank(e.Rows()[0]))
	})

	t.Run("attaching a file appends a blank row", func(t *testing.T) {
		e := newFormEditor()
		id := e.Rows()[0].ID
		require.True(t, AttachFile(e, id, core.NewFileRef("/home/u/avatar.png")))
		assert.Equal(t, 2, e.Len())

		e.SetField(id, FieldKey, "avatar")
		v, ok := e.Mapping().Get("avatar")
		assert.True(t, ok)
		assert.Equal(t, "avatar.png", v)
	})

	t.Run("form fields forward the file handle unchanged", func(t *testing.T) {
		e := newFormEditor()
		file := core.NewFileRef("/tmp/report.pdf")
		id := e.Rows()[0].ID
		e.SetField(id, FieldKey, "report")
		AttachFile(e, id, file)

		text := e.Rows()[1].ID
		e.SetField(text, FieldKey, "title")
		e.SetField(text, FieldValue, "Q3")

		fields := FormFields(e)
		require.Len(t, fields, 2)
		assert.Equal(t, core.FormField{Key: "report", Type: core.FormFieldFile, File: file}, fields[0])
		assert.Equal(t, core.FormField{Key: "title", Type: core.FormFieldText, Value: "Q3"}, fields[1])
	})

	t.Run("switching back to text drops the file", func(t *testing.T) {
		e := newFormEditor()
		id := e.Rows()[0].ID
		e.SetField(id, FieldKey, "doc")
		AttachFile(e, id, core.NewFileRef("/tmp/a.txt"))
		SetFieldType(e, id, core.FormFieldText)
		r, _ := e.Row(id)
		assert.Nil(t, r.Value.File)
		assert.Equal(t, core.FormFieldText, r.Value.Type)
	})

	t.Run("rows round trip through form fields", func(t *testing.T) {
		fields := []core.FormField{
			{Key: "name", Type: core.FormFieldText, Value: "kv"},
			{Key: "logo", Type: core.FormFieldFile, File: core.NewFileRef("/x/logo.svg")},
		}
		e := newFormEditor()
		e.ResetRows(FormRows(fields))
		assert.Equal(t, 3, e.Len())
		assert.Equal(t, fields, FormFields(e))
		assert.Equal(t, Seeded, e.State())
	})

	t.Run("disabled fields are skipped", func(t *testing.T) {
		e := newFormEditor()
		e.ResetRows(FormRows([]core.FormField{{Key: "a", Value: "1"}}))
		e.SetEnabled(e.Rows()[0].ID, false)
		assert.Empty(t, FormFields(e))
	})

	t.Run("unknown rows", func(t *testing.T) {
		e := newFormEditor()
		assert.False(t, AttachFile(e, "nope", nil))
		assert.False(t, SetFieldType(e, "nope", core.FormFieldFile))
	})
}

type upperCodec struct{}

func (upperCodec) Encode(m *core.Mapping) string {
	out := ""
	for k, v := range m.All() {
		out += k + "=" + v + ";"
	}
	return out
}

func (upperCodec) Decode(text string) *core.Mapping {
	return core.MappingOf("decoded", text)
}

func TestWithCodec(t *testing.T) {
	e := NewParamsEditor(WithCodec[string](upperCodec{}))
	e.Reset(core.MappingOf("page", "2"))
	require.NoError(t, e.SwitchMode(ModeBulk))
	assert.Equal(t, "page=2;", e.BulkText())
	require.NoError(t, e.EditBulkText("raw"))
	v, _ := e.Mapping().Get("decoded")
	assert.Equal(t, "raw", v)
}

func TestModeAndStateStrings(t *testing.T) {
	assert.Equal(t, "table", ModeTable.String())
	assert.Equal(t, "bulk", ModeBulk.String())
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "seeded", Seeded.String())
	assert.Equal(t, "user-editing", UserEditing.String())
}
