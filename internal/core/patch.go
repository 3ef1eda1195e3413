package core

import "strings"

// Patch is one typed update to a RequestDraft. The set of patches is closed:
// only the variants declared in this file implement it.
type Patch interface {
	apply(d *RequestDraft)
}

type (
	SetName       struct{ Name string }
	SetMethod     struct{ Method string }
	SetURL        struct{ URL string }
	SetProtocol   struct{ Protocol Protocol }
	SetParams     struct{ Params *Mapping }
	SetHeaders    struct{ Headers *Mapping }
	SetBodyMode   struct{ Mode BodyMode }
	SetRawBody    struct{ Raw string }
	SetFormData   struct{ Fields []FormField }
	SetURLEncoded struct{ Fields *Mapping }
	SetBinaryFile struct{ File *FileRef }
	SetAuth       struct{ Auth AuthConfig }
)

func (p SetName) apply(d *RequestDraft)     { d.Name = p.Name }
func (p SetMethod) apply(d *RequestDraft)   { d.Method = strings.ToUpper(p.Method) }
func (p SetURL) apply(d *RequestDraft)      { d.URL = p.URL }
func (p SetProtocol) apply(d *RequestDraft) { d.Protocol = p.Protocol }
func (p SetParams) apply(d *RequestDraft)   { d.Params = p.Params.Clone() }
func (p SetHeaders) apply(d *RequestDraft)  { d.Headers = p.Headers.Clone() }
func (p SetBodyMode) apply(d *RequestDraft) { d.Body.Mode = p.Mode }
func (p SetRawBody) apply(d *RequestDraft)  { d.Body.Raw = p.Raw }
func (p SetAuth) apply(d *RequestDraft)     { d.Auth = p.Auth }

func (p SetFormData) apply(d *RequestDraft) {
	d.Body.FormData = cloneFormFields(p.Fields)
}

func (p SetURLEncoded) apply(d *RequestDraft) {
	d.Body.URLEncoded = p.Fields.Clone()
}

func (p SetBinaryFile) apply(d *RequestDraft) {
	if p.File == nil {
		d.Body.Binary = nil
		return
	}
	f := *p.File
	d.Body.Binary = &f
}

// Apply applies patches to the draft in order.
func (d *RequestDraft) Apply(patches ...Patch) {
	for _, p := range patches {
		if p != nil {
			p.apply(d)
		}
	}
}
