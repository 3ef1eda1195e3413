// Package bulktext converts key/value mappings to and from the line-oriented
// "key:value" text shown in bulk edit mode.
package bulktext

import (
	"strings"

	"github.com/artpar/kvdraft/internal/core"
)

// Codec converts between a mapping and its bulk text form.
type Codec interface {
	Encode(m *core.Mapping) string
	Decode(text string) *core.Mapping
}

// Colon is the default codec: one "key:value" pair per line, split at the
// first colon. Newlines inside keys or values do not survive a round trip.
var Colon Codec = colonCodec{}

type colonCodec struct{}

func (colonCodec) Encode(m *core.Mapping) string {
	return Encode(m)
}

func (colonCodec) Decode(text string) *core.Mapping {
	return Decode(text)
}

// Encode joins "key:value" for every entry with "\n", in mapping order.
func Encode(m *core.Mapping) string {
	lines := make([]string, 0, m.Len())
	for k, v := range m.All() {
		lines = append(lines, k+":"+v)
	}
	return strings.Join(lines, "\n")
}

// Decode parses bulk text. Blank lines, lines without a colon and lines with
// an empty key are dropped. Keys and values are trimmed; the last occurrence
// of a key wins.
func Decode(text string) *core.Mapping {
	m := core.NewMapping()
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		m.Set(key, strings.TrimSpace(value))
	}
	return m
}
