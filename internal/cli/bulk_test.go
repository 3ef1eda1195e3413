package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkEncode(t *testing.T) {
	cfg := writeConfig(t, "")

	t.Run("keeps object order", func(t *testing.T) {
		out, err := execute(t, `{"b": "2", "a": "1"}`, "--config", cfg, "bulk", "encode")
		require.NoError(t, err)
		assert.Equal(t, "b:2\na:1\n", out)
	})

	t.Run("empty object prints nothing", func(t *testing.T) {
		out, err := execute(t, `{}`, "--config", cfg, "bulk", "encode")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("rejects non-object input", func(t *testing.T) {
		_, err := execute(t, `["a"]`, "--config", cfg, "bulk", "encode")
		assert.Error(t, err)
	})

	t.Run("rejects non-string values", func(t *testing.T) {
		_, err := execute(t, `{"a": 1}`, "--config", cfg, "bulk", "encode")
		assert.Error(t, err)
	})
}

func TestBulkDecode(t *testing.T) {
	cfg := writeConfig(t, "")

	t.Run("prints an ordered JSON object", func(t *testing.T) {
		out, err := execute(t, "Content-Type: application/json\nAccept:*/*\n", "--config", cfg, "bulk", "decode", "--compact")
		require.NoError(t, err)
		assert.Equal(t, `{"Content-Type":"application/json","Accept":"*/*"}`+"\n", out)
	})

	t.Run("drops malformed lines and keeps the last duplicate", func(t *testing.T) {
		out, err := execute(t, "a:1\nnot a pair\n:x\na:2\n", "--config", cfg, "bulk", "decode", "--compact")
		require.NoError(t, err)
		assert.Equal(t, `{"a":"2"}`+"\n", out)
	})

	t.Run("indents by default", func(t *testing.T) {
		out, err := execute(t, "a:1", "--config", cfg, "bulk", "decode")
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": \"1\"\n}\n", out)
	})

	t.Run("value keeps text after the first colon", func(t *testing.T) {
		out, err := execute(t, "url: http://x:8080/", "--config", cfg, "bulk", "decode", "--compact")
		require.NoError(t, err)
		assert.Equal(t, `{"url":"http://x:8080/"}`+"\n", out)
	})
}
