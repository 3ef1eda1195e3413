// Package kvedit implements the key/value row editor shared by the params,
// headers, form-data and URL-encoded body tables.
//
// An Editor keeps an ordered row list that always ends with exactly one blank
// row, projects it into a Mapping on every change, and can mirror the same
// Mapping as editable bulk text.
package kvedit

import (
	"errors"
	"strings"

	"github.com/artpar/kvdraft/internal/bulktext"
	"github.com/artpar/kvdraft/internal/core"
)

var (
	ErrBulkUnsupported = errors.New("bulk mode not supported by this editor")
	ErrNotBulkMode     = errors.New("editor is not in bulk mode")
)

// Mode is the display mode of an editor.
type Mode int

const (
	ModeTable Mode = iota
	ModeBulk
)

func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeBulk:
		return "bulk"
	default:
		return "unknown"
	}
}

// Field names an editable cell of a row.
type Field int

const (
	FieldKey Field = iota
	FieldValue
)

// Row is one editable entry.
type Row[V any] struct {
	ID      string
	Key     string
	Value   V
	Enabled bool
}

// Schema describes the value column of a row.
type Schema[V any] interface {
	// Empty returns the value of a fresh blank row.
	Empty() V
	// IsBlank reports whether the value counts as empty for the blank-row rule.
	IsBlank(v V) bool
	// Text projects the value into the emitted mapping.
	Text(v V) string
	// FromText builds a value from a mapping entry.
	FromText(s string) V
	// WithText replaces the text part of v.
	WithText(v V, s string) V
}

// Editor is a key/value row editor. It is not safe for concurrent use; it
// is owned by a single UI component.
type Editor[V any] struct {
	schema   Schema[V]
	codec    bulktext.Codec
	ids      IDSource
	bulk     bool
	onChange func(*core.Mapping)

	rows     []Row[V]
	mode     Mode
	bulkText string
	sync     controller
}

// Option configures an Editor.
type Option[V any] func(*Editor[V])

// WithCodec replaces the bulk text codec.
func WithCodec[V any](c bulktext.Codec) Option[V] {
	return func(e *Editor[V]) { e.codec = c }
}

// WithIDSource replaces the row id generator.
func WithIDSource[V any](ids IDSource) Option[V] {
	return func(e *Editor[V]) { e.ids = ids }
}

// WithOnChange sets the callback receiving the mapping after every change.
func WithOnChange[V any](fn func(*core.Mapping)) Option[V] {
	return func(e *Editor[V]) { e.onChange = fn }
}

// WithoutBulk disables bulk mode.
func WithoutBulk[V any]() Option[V] {
	return func(e *Editor[V]) { e.bulk = false }
}

// New creates an editor holding a single blank row. prefix namespaces the
// generated row ids.
func New[V any](schema Schema[V], prefix string, opts ...Option[V]) *Editor[V] {
	e := &Editor[V]{
		schema: schema,
		codec:  bulktext.Colon,
		ids:    NewIDSource(prefix),
		bulk:   true,
		mode:   ModeTable,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.normalize()
	return e
}

// OnChange sets the change callback.
func (e *Editor[V]) OnChange(fn func(*core.Mapping)) {
	e.onChange = fn
}

// Sync offers a mapping from the owner. Whether it replaces the rows depends
// on the sync state, see controller.
func (e *Editor[V]) Sync(m *core.Mapping) {
	if !e.sync.accepts(m, e.Mapping()) {
		return
	}
	if m.Len() == 0 && e.sync.state == Uninitialized {
		e.normalize()
		return
	}
	e.seed(m)
	e.sync.seeded()
}

// Reset replaces the rows with m regardless of local edits. Owners call it
// when the editor starts showing a different draft.
func (e *Editor[V]) Reset(m *core.Mapping) {
	e.seed(m)
	e.sync.seeded()
}

// ResetRows replaces the rows with copies of rows, assigning fresh ids.
func (e *Editor[V]) ResetRows(rows []Row[V]) {
	e.rows = make([]Row[V], 0, len(rows)+1)
	for _, r := range rows {
		r.ID = e.ids.NextID()
		e.rows = append(e.rows, r)
	}
	e.normalize()
	e.refreshBulkText()
	e.sync.seeded()
}

func (e *Editor[V]) seed(m *core.Mapping) {
	e.rows = e.rowsFrom(m)
	e.normalize()
	e.refreshBulkText()
}

func (e *Editor[V]) rowsFrom(m *core.Mapping) []Row[V] {
	rows := make([]Row[V], 0, m.Len()+1)
	for k, v := range m.All() {
		rows = append(rows, Row[V]{
			ID:      e.ids.NextID(),
			Key:     k,
			Value:   e.schema.FromText(v),
			Enabled: true,
		})
	}
	return rows
}

// SetKey updates a row's key. It reports whether the row exists.
func (e *Editor[V]) SetKey(id, key string) bool {
	idx := e.indexOf(id)
	if idx < 0 {
		return false
	}
	e.rows[idx].Key = key
	e.changed()
	return true
}

// SetValue updates a row's value.
func (e *Editor[V]) SetValue(id string, value V) bool {
	idx := e.indexOf(id)
	if idx < 0 {
		return false
	}
	e.rows[idx].Value = value
	e.changed()
	return true
}

// SetField updates the key, or the text part of the value, of a row.
func (e *Editor[V]) SetField(id string, field Field, text string) bool {
	switch field {
	case FieldKey:
		return e.SetKey(id, text)
	case FieldValue:
		idx := e.indexOf(id)
		if idx < 0 {
			return false
		}
		return e.SetValue(id, e.schema.WithText(e.rows[idx].Value, text))
	}
	return false
}

// SetEnabled toggles whether a row is part of the mapping.
func (e *Editor[V]) SetEnabled(id string, enabled bool) bool {
	idx := e.indexOf(id)
	if idx < 0 {
		return false
	}
	e.rows[idx].Enabled = enabled
	e.changed()
	return true
}

// DeleteRow removes a row. Removing the last row leaves a single blank row.
func (e *Editor[V]) DeleteRow(id string) bool {
	idx := e.indexOf(id)
	if idx < 0 {
		return false
	}
	e.rows = append(e.rows[:idx], e.rows[idx+1:]...)
	e.changed()
	return true
}

// SwitchMode changes the display mode. Entering bulk mode encodes the current
// mapping; leaving it rebuilds the rows from the bulk text, all enabled.
func (e *Editor[V]) SwitchMode(mode Mode) error {
	if mode == e.mode {
		return nil
	}

	switch mode {
	case ModeBulk:
		if !e.bulk {
			return ErrBulkUnsupported
		}
		e.bulkText = e.codec.Encode(e.rowMapping())
		e.mode = ModeBulk

	case ModeTable:
		e.rows = e.rowsFrom(e.codec.Decode(e.bulkText))
		e.mode = ModeTable
		e.changed()
	}
	return nil
}

// EditBulkText stores the text verbatim and emits its decoded mapping.
func (e *Editor[V]) EditBulkText(text string) error {
	if e.mode != ModeBulk {
		return ErrNotBulkMode
	}
	e.bulkText = text
	e.sync.edited()
	e.emit()
	return nil
}

// Mapping returns the effective mapping: enabled rows with a non-blank key,
// keys trimmed, later duplicates overriding earlier ones. In bulk mode it is
// the decoded bulk text.
func (e *Editor[V]) Mapping() *core.Mapping {
	if e.mode == ModeBulk {
		return e.codec.Decode(e.bulkText)
	}
	return e.rowMapping()
}

func (e *Editor[V]) rowMapping() *core.Mapping {
	m := core.NewMapping()
	for _, r := range e.rows {
		key := strings.TrimSpace(r.Key)
		if key == "" || !r.Enabled {
			continue
		}
		m.Set(key, e.schema.Text(r.Value))
	}
	return m
}

// Rows returns a copy of the row list.
func (e *Editor[V]) Rows() []Row[V] {
	result := make([]Row[V], len(e.rows))
	copy(result, e.rows)
	return result
}

// Row returns the row with the given id.
func (e *Editor[V]) Row(id string) (Row[V], bool) {
	idx := e.indexOf(id)
	if idx < 0 {
		return Row[V]{}, false
	}
	return e.rows[idx], true
}

// RowAt returns the row at index i.
func (e *Editor[V]) RowAt(i int) (Row[V], bool) {
	if i < 0 || i >= len(e.rows) {
		return Row[V]{}, false
	}
	return e.rows[i], true
}

func (e *Editor[V]) Len() int           { return len(e.rows) }
func (e *Editor[V]) Mode() Mode         { return e.mode }
func (e *Editor[V]) BulkText() string   { return e.bulkText }
func (e *Editor[V]) SupportsBulk() bool { return e.bulk }
func (e *Editor[V]) State() SyncState   { return e.sync.state }
func (e *Editor[V]) Schema() Schema[V]  { return e.schema }

// Codec returns the bulk text codec.
func (e *Editor[V]) Codec() bulktext.Codec { return e.codec }

// IsBlank reports whether a row is the empty "type here to add" row.
func (e *Editor[V]) IsBlank(r Row[V]) bool {
	return r.Key == "" && e.schema.IsBlank(r.Value)
}

func (e *Editor[V]) indexOf(id string) int {
	for i, r := range e.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor[V]) changed() {
	e.sync.edited()
	e.normalize()
	e.emit()
}

func (e *Editor[V]) emit() {
	if e.onChange != nil {
		e.onChange(e.Mapping())
	}
}

func (e *Editor[V]) refreshBulkText() {
	if e.mode == ModeBulk {
		e.bulkText = e.codec.Encode(e.rowMapping())
	}
}

// normalize drops blank rows that are not last and makes sure the list ends
// with exactly one blank row. An existing trailing blank keeps its id.
func (e *Editor[V]) normalize() {
	rows := make([]Row[V], 0, len(e.rows)+1)
	for i, r := range e.rows {
		if e.IsBlank(r) && i != len(e.rows)-1 {
			continue
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 || !e.IsBlank(rows[len(rows)-1]) {
		rows = append(rows, e.newRow())
	}
	e.rows = rows
}

func (e *Editor[V]) newRow() Row[V] {
	return Row[V]{
		ID:      e.ids.NextID(),
		Value:   e.schema.Empty(),
		Enabled: true,
	}
}
