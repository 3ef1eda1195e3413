package core

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/jsonc"
)

// FormatJSON pretty prints a JSON or JSONC document with two-space indent.
// Text that does not parse is returned unchanged.
func FormatJSON(text string) string {
	if len(bytes.TrimSpace([]byte(text))) == 0 {
		return text
	}

	normalized := bytes.TrimSpace(jsonc.ToJSON([]byte(text)))
	if !json.Valid(normalized) {
		return text
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, normalized, "", "  "); err != nil {
		return text
	}
	return buf.String()
}
