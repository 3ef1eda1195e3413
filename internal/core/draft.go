package core

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Protocol is the transport a draft targets.
type Protocol string

const (
	ProtocolHTTP      Protocol = "http"
	ProtocolWebSocket Protocol = "websocket"
	ProtocolSocketIO  Protocol = "socketio"
)

// BodyMode selects which body representation of a draft is active.
type BodyMode string

const (
	BodyNone       BodyMode = "none"
	BodyRaw        BodyMode = "raw"
	BodyFormData   BodyMode = "form-data"
	BodyURLEncoded BodyMode = "urlencoded"
	BodyBinary     BodyMode = "binary"
)

// BodyModes returns the body modes in the order the body tab cycles through them.
func BodyModes() []BodyMode {
	return []BodyMode{BodyNone, BodyRaw, BodyFormData, BodyURLEncoded, BodyBinary}
}

// Methods returns the HTTP methods the method selector cycles through.
func Methods() []string {
	return []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
}

// FileRef is an attached file. Only the handle is kept; contents are never read here.
type FileRef struct {
	Path string `json:"path" yaml:"path"`
	Name string `json:"name" yaml:"name"`
}

// NewFileRef creates a file reference named after the base of path.
func NewFileRef(path string) *FileRef {
	return &FileRef{Path: path, Name: filepath.Base(path)}
}

// FormFieldType distinguishes text and file form-data fields.
type FormFieldType string

const (
	FormFieldText FormFieldType = "text"
	FormFieldFile FormFieldType = "file"
)

// FormField is one multipart form-data entry.
type FormField struct {
	Key   string        `json:"key"`
	Type  FormFieldType `json:"type"`
	Value string        `json:"value,omitempty"`
	File  *FileRef      `json:"file,omitempty"`
}

// Body holds every body representation; Mode selects the one sent.
type Body struct {
	Mode       BodyMode
	Raw        string
	FormData   []FormField
	URLEncoded *Mapping
	Binary     *FileRef
}

// RequestDraft is the per-tab request record edited by the composer.
type RequestDraft struct {
	ID          string
	Name        string
	WorkspaceID string
	Protocol    Protocol
	Method      string
	URL         string
	Params      *Mapping
	Headers     *Mapping
	Body        Body
	Auth        AuthConfig
}

// NewRequestDraft creates an empty GET draft.
func NewRequestDraft(name string) *RequestDraft {
	return &RequestDraft{
		ID:       uuid.New().String(),
		Name:     name,
		Protocol: ProtocolHTTP,
		Method:   "GET",
		Params:   NewMapping(),
		Headers:  NewMapping(),
		Body: Body{
			Mode:       BodyNone,
			URLEncoded: NewMapping(),
		},
		Auth: AuthConfig{Type: AuthTypeNone},
	}
}

// Clone returns a deep copy of the draft with the same ID.
func (d *RequestDraft) Clone() *RequestDraft {
	clone := *d
	clone.Params = d.Params.Clone()
	clone.Headers = d.Headers.Clone()
	clone.Body.URLEncoded = d.Body.URLEncoded.Clone()
	clone.Body.FormData = cloneFormFields(d.Body.FormData)
	if d.Body.Binary != nil {
		f := *d.Body.Binary
		clone.Body.Binary = &f
	}
	return &clone
}

// Title returns the label shown for the draft's tab.
func (d *RequestDraft) Title() string {
	if d.Name != "" {
		return d.Name
	}
	if d.URL != "" {
		return strings.ToUpper(d.Method) + " " + d.URL
	}
	return "Untitled"
}

func cloneFormFields(fields []FormField) []FormField {
	if fields == nil {
		return nil
	}
	result := make([]FormField, len(fields))
	for i, f := range fields {
		result[i] = f
		if f.File != nil {
			file := *f.File
			result[i].File = &file
		}
	}
	return result
}
