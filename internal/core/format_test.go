package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBackendError(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "required",
			in:   "Key: 'CreateUserRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag",
			want: "Name is required",
		},
		{
			name: "email",
			in:   "Key: 'User.Email' Error:Field validation for 'Email' failed on the 'email' tag",
			want: "Email must be a valid email address",
		},
		{
			name: "min",
			in:   "Key: 'User.Password' Error:Field validation for 'Password' failed on the 'min' tag",
			want: "Password is too short",
		},
		{
			name: "max",
			in:   "Key: 'Workspace.Name' Error:Field validation for 'Name' failed on the 'max' tag",
			want: "Name is too long",
		},
		{
			name: "multiple lines",
			in: "Key: 'User.Name' Error:Field validation for 'Name' failed on the 'required' tag\n" +
				"Key: 'User.Email' Error:Field validation for 'Email' failed on the 'email' tag",
			want: "Name is required\nEmail must be a valid email address",
		},
		{
			name: "unknown tag falls through",
			in:   "Key: 'User.Age' Error:Field validation for 'Age' failed on the 'gte' tag",
			want: "Key: 'User.Age' Error:Field validation for 'Age' failed on the 'gte' tag",
		},
		{
			name: "one unknown line keeps whole message",
			in: "Key: 'User.Name' Error:Field validation for 'Name' failed on the 'required' tag\n" +
				"something else went wrong",
			want: "Key: 'User.Name' Error:Field validation for 'Name' failed on the 'required' tag\n" +
				"something else went wrong",
		},
		{
			name: "plain message",
			in:   "workspace not found",
			want: "workspace not found",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBackendError(tt.in))
		})
	}
}

func TestFormatJSON(t *testing.T) {
	t.Run("indents compact json", func(t *testing.T) {
		got := FormatJSON(`{"a":1,"b":[true,null]}`)
		assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    true,\n    null\n  ]\n}", got)
	})

	t.Run("accepts comments and trailing commas", func(t *testing.T) {
		got := FormatJSON("{\n// user id\n\"id\": 7,\n}")
		assert.Equal(t, "{\n  \"id\": 7\n}", got)
	})

	t.Run("invalid input unchanged", func(t *testing.T) {
		in := `{"a": 1`
		assert.Equal(t, in, FormatJSON(in))
	})

	t.Run("blank input unchanged", func(t *testing.T) {
		assert.Equal(t, "  ", FormatJSON("  "))
	})
}

func TestMockRoute(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := NewMockRoute("/users")
		assert.NoError(t, r.Validate())
		assert.Equal(t, "GET /users -> 200", r.Summary())
	})

	t.Run("validation", func(t *testing.T) {
		r := NewMockRoute("")
		assert.Error(t, r.Validate())

		r = NewMockRoute("users")
		assert.Error(t, r.Validate())

		r = NewMockRoute("/users")
		r.Status = 42
		assert.Error(t, r.Validate())

		r = NewMockRoute("/users")
		r.Delay = -time.Second
		assert.Error(t, r.Validate())
	})

	t.Run("format body", func(t *testing.T) {
		r := NewMockRoute("/users")
		r.Body = `[{"id":1}]`
		r.FormatBody()
		assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]", r.Body)

		r.Body = "not json"
		r.FormatBody()
		assert.Equal(t, "not json", r.Body)
	})
}
