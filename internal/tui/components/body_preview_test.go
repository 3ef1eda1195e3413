package components

import (
	"strings"
	"testing"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestDetectBodyFormat(t *testing.T) {
	tests := []struct {
		name    string
		headers *core.Mapping
		body    string
		want    BodyFormat
	}{
		{"json content type", core.MappingOf("Content-Type", "application/json"), "", BodyFormatJSON},
		{"vendor json", core.MappingOf("content-type", "application/vnd.api+json"), "x", BodyFormatJSON},
		{"xml content type", core.MappingOf("Content-Type", "text/xml"), "{}", BodyFormatXML},
		{"html content type", core.MappingOf("Content-Type", "text/html; charset=utf-8"), "", BodyFormatHTML},
		{"sniffed object", nil, `  {"a":1}`, BodyFormatJSON},
		{"sniffed array", core.NewMapping(), `[1,2]`, BodyFormatJSON},
		{"sniffed html", nil, "<!DOCTYPE html><html></html>", BodyFormatHTML},
		{"sniffed xml", nil, `<?xml version="1.0"?><a/>`, BodyFormatXML},
		{"plain text", nil, "hello", BodyFormatText},
		{"empty", nil, "   ", BodyFormatText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBodyFormat(tt.headers, tt.body))
		})
	}
}

func TestRenderBodyPreview(t *testing.T) {
	t.Run("json keeps its text", func(t *testing.T) {
		body := "{\n  \"name\": \"a \\\"b\\\"\",\n  \"n\": -1.5e3,\n  \"ok\": true,\n  \"x\": null\n}"

		out := RenderBodyPreview(body, BodyFormatJSON, 80, 10)

		assert.Equal(t, body, out)
	})

	t.Run("clipped to height and width", func(t *testing.T) {
		body := strings.Repeat("abcdefghij\n", 5)

		out := RenderBodyPreview(body, BodyFormatText, 5, 2)

		assert.Equal(t, "abcd…\nabcd…", out)
	})

	t.Run("empty body", func(t *testing.T) {
		assert.Contains(t, RenderBodyPreview("", BodyFormatText, 80, 10), "Empty body")
	})
}
