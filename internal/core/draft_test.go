package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestDraft(t *testing.T) {
	d := NewRequestDraft("Users")
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "GET", d.Method)
	assert.Equal(t, ProtocolHTTP, d.Protocol)
	assert.Equal(t, BodyNone, d.Body.Mode)
	assert.Equal(t, 0, d.Params.Len())
	assert.Equal(t, 0, d.Headers.Len())
	assert.False(t, d.Auth.IsConfigured())
}

func TestRequestDraft_Apply(t *testing.T) {
	t.Run("applies patches in order", func(t *testing.T) {
		d := NewRequestDraft("")
		d.Apply(
			SetMethod{Method: "post"},
			SetURL{URL: "https://api.example.com/users"},
			SetURL{URL: "https://api.example.com/v2/users"},
			SetBodyMode{Mode: BodyRaw},
			SetRawBody{Raw: `{"name":"x"}`},
		)
		assert.Equal(t, "POST", d.Method)
		assert.Equal(t, "https://api.example.com/v2/users", d.URL)
		assert.Equal(t, BodyRaw, d.Body.Mode)
		assert.Equal(t, `{"name":"x"}`, d.Body.Raw)
	})

	t.Run("mapping patches store a copy", func(t *testing.T) {
		d := NewRequestDraft("")
		headers := MappingOf("Accept", "*/*")
		d.Apply(SetHeaders{Headers: headers})
		headers.Set("Accept", "text/html")

		v, _ := d.Headers.Get("Accept")
		assert.Equal(t, "*/*", v)
	})

	t.Run("form data patch stores a copy", func(t *testing.T) {
		d := NewRequestDraft("")
		fields := []FormField{{Key: "avatar", Type: FormFieldFile, File: NewFileRef("/tmp/a.png")}}
		d.Apply(SetFormData{Fields: fields})
		fields[0].File.Name = "changed"

		require.Len(t, d.Body.FormData, 1)
		assert.Equal(t, "a.png", d.Body.FormData[0].File.Name)
	})

	t.Run("binary file can be cleared", func(t *testing.T) {
		d := NewRequestDraft("")
		d.Apply(SetBinaryFile{File: NewFileRef("/tmp/blob.bin")})
		require.NotNil(t, d.Body.Binary)
		d.Apply(SetBinaryFile{})
		assert.Nil(t, d.Body.Binary)
	})

	t.Run("nil patch is skipped", func(t *testing.T) {
		d := NewRequestDraft("")
		d.Apply(nil, SetName{Name: "ok"})
		assert.Equal(t, "ok", d.Name)
	})
}

func TestRequestDraft_Clone(t *testing.T) {
	d := NewRequestDraft("orig")
	d.Apply(SetParams{Params: MappingOf("page", "1")}, SetBinaryFile{File: NewFileRef("/x/y.bin")})

	clone := d.Clone()
	clone.Params.Set("page", "2")
	clone.Body.Binary.Name = "other"

	v, _ := d.Params.Get("page")
	assert.Equal(t, "1", v)
	assert.Equal(t, "y.bin", d.Body.Binary.Name)
	assert.Equal(t, d.ID, clone.ID)
}

func TestRequestDraft_Title(t *testing.T) {
	d := NewRequestDraft("")
	assert.Equal(t, "Untitled", d.Title())
	d.Apply(SetURL{URL: "https://example.com"})
	assert.Equal(t, "GET https://example.com", d.Title())
	d.Apply(SetName{Name: "Home"})
	assert.Equal(t, "Home", d.Title())
}

func TestTabs(t *testing.T) {
	t.Run("open activates", func(t *testing.T) {
		tabs := NewTabs()
		a := NewRequestDraft("a")
		b := NewRequestDraft("b")
		tabs.Open(a)
		tabs.Open(b)
		assert.Equal(t, b, tabs.Active())
		assert.Equal(t, []string{a.ID, b.ID}, tabs.IDs())
	})

	t.Run("update active tab", func(t *testing.T) {
		tabs := NewTabs()
		d := NewRequestDraft("a")
		tabs.Open(d)
		require.NoError(t, tabs.UpdateActive(SetURL{URL: "https://x.test"}))
		assert.Equal(t, "https://x.test", d.URL)
	})

	t.Run("update unknown tab", func(t *testing.T) {
		tabs := NewTabs()
		err := tabs.Update("nope", SetURL{URL: "x"})
		assert.True(t, errors.Is(err, ErrTabNotFound))
	})

	t.Run("update with no tabs open", func(t *testing.T) {
		tabs := NewTabs()
		assert.ErrorIs(t, tabs.UpdateActive(SetName{Name: "x"}), ErrTabNotFound)
	})

	t.Run("closing active tab activates left neighbour", func(t *testing.T) {
		tabs := NewTabs()
		a, b, c := NewRequestDraft("a"), NewRequestDraft("b"), NewRequestDraft("c")
		tabs.Open(a)
		tabs.Open(b)
		tabs.Open(c)
		require.NoError(t, tabs.Activate(b.ID))
		require.NoError(t, tabs.Close(b.ID))
		assert.Equal(t, a, tabs.Active())
		assert.Equal(t, 2, tabs.Len())
	})

	t.Run("closing first active tab activates next", func(t *testing.T) {
		tabs := NewTabs()
		a, b := NewRequestDraft("a"), NewRequestDraft("b")
		tabs.Open(a)
		tabs.Open(b)
		require.NoError(t, tabs.Activate(a.ID))
		require.NoError(t, tabs.Close(a.ID))
		assert.Equal(t, b, tabs.Active())
	})

	t.Run("closing last tab leaves none active", func(t *testing.T) {
		tabs := NewTabs()
		a := NewRequestDraft("a")
		tabs.Open(a)
		require.NoError(t, tabs.Close(a.ID))
		assert.Nil(t, tabs.Active())
		assert.ErrorIs(t, tabs.Close(a.ID), ErrTabNotFound)
	})
}

func TestAuthConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		auth    AuthConfig
		wantErr bool
	}{
		{"none", AuthConfig{Type: AuthTypeNone}, false},
		{"empty", AuthConfig{}, false},
		{"basic without user", AuthConfig{Type: AuthTypeBasic}, true},
		{"basic", AuthConfig{Type: AuthTypeBasic, Username: "u"}, false},
		{"bearer without token", AuthConfig{Type: AuthTypeBearer}, true},
		{"api key without key", AuthConfig{Type: AuthTypeAPIKey}, true},
		{"api key bad location", AuthConfig{Type: AuthTypeAPIKey, Key: "X-Key", In: "body"}, true},
		{"api key", AuthConfig{Type: AuthTypeAPIKey, Key: "X-Key", In: APIKeyInQuery}, false},
		{"unknown", AuthConfig{Type: "digest"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.auth.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthConfig_Summary(t *testing.T) {
	assert.Equal(t, "No authentication", AuthConfig{}.Summary())
	assert.Equal(t, "Basic: bob", AuthConfig{Type: AuthTypeBasic, Username: "bob"}.Summary())
	assert.Equal(t, "Bearer: ****", AuthConfig{Type: AuthTypeBearer, Token: "short"}.Summary())
	assert.Equal(t, "Bearer: abcdefgh...wxyz",
		AuthConfig{Type: AuthTypeBearer, Token: "abcdefghijklmnopqrstuvwxyz"}.Summary())
	assert.Equal(t, "API Key: X-Key (in header)", AuthConfig{Type: AuthTypeAPIKey, Key: "X-Key"}.Summary())
}
