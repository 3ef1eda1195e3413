package components

import (
	"strings"

	"github.com/artpar/kvdraft/internal/core"
	"github.com/artpar/kvdraft/internal/tui"
	"github.com/charmbracelet/lipgloss"
)

// BodyFormat is the detected format of a raw body.
type BodyFormat string

const (
	BodyFormatJSON BodyFormat = "json"
	BodyFormatXML  BodyFormat = "xml"
	BodyFormatHTML BodyFormat = "html"
	BodyFormatText BodyFormat = "text"
)

// Upper returns the format for display.
func (f BodyFormat) Upper() string {
	return strings.ToUpper(string(f))
}

// DetectBodyFormat looks at the Content-Type header first and falls back to
// sniffing the body.
func DetectBodyFormat(headers *core.Mapping, body string) BodyFormat {
	ct := ""
	if headers != nil {
		for k, v := range headers.All() {
			if strings.EqualFold(k, "Content-Type") {
				ct = strings.ToLower(v)
			}
		}
	}

	switch {
	case strings.Contains(ct, "json"):
		return BodyFormatJSON
	case strings.Contains(ct, "html"):
		return BodyFormatHTML
	case strings.Contains(ct, "xml"):
		return BodyFormatXML
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return BodyFormatText
	}
	switch trimmed[0] {
	case '{', '[':
		return BodyFormatJSON
	case '<':
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
			return BodyFormatHTML
		}
		return BodyFormatXML
	}
	return BodyFormatText
}

var (
	jsonKeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	jsonStringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	jsonNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	jsonBoolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	jsonNullStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	jsonPunctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// RenderBodyPreview renders a read-only view of a raw body, at most height
// lines. JSON is colourised; other formats are shown as is.
func RenderBodyPreview(body string, format BodyFormat, width, height int) string {
	if body == "" {
		return lipgloss.NewStyle().Foreground(tui.ColorMuted).Render("Empty body (press i to edit)")
	}
	lines := strings.Split(body, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		line = tui.Truncate(line, width)
		if format == BodyFormatJSON {
			line = highlightJSONLine(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func highlightJSONLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	var b strings.Builder
	b.WriteString(line[:len(line)-len(trimmed)])

	chars := []rune(trimmed)
	for i := 0; i < len(chars); {
		ch := chars[i]
		switch {
		case ch == '"':
			end := scanString(chars, i)
			s := string(chars[i:end])
			if isKey(chars, end) {
				b.WriteString(jsonKeyStyle.Render(s))
			} else {
				b.WriteString(jsonStringStyle.Render(s))
			}
			i = end
		case strings.ContainsRune("{}[]:,", ch):
			b.WriteString(jsonPunctStyle.Render(string(ch)))
			i++
		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := i + 1
			for end < len(chars) && strings.ContainsRune("0123456789.eE+-", chars[end]) {
				end++
			}
			b.WriteString(jsonNumberStyle.Render(string(chars[i:end])))
			i = end
		case ch >= 'a' && ch <= 'z':
			end := i
			for end < len(chars) && chars[end] >= 'a' && chars[end] <= 'z' {
				end++
			}
			word := string(chars[i:end])
			switch word {
			case "true", "false":
				b.WriteString(jsonBoolStyle.Render(word))
			case "null":
				b.WriteString(jsonNullStyle.Render(word))
			default:
				b.WriteString(word)
			}
			i = end
		default:
			b.WriteRune(ch)
			i++
		}
	}
	return b.String()
}

// scanString returns the index just past the string literal starting at start.
func scanString(chars []rune, start int) int {
	i := start + 1
	for i < len(chars) {
		switch chars[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i + 1
		}
		i++
	}
	return len(chars)
}

func isKey(chars []rune, end int) bool {
	for j := end; j < len(chars); j++ {
		switch chars[j] {
		case ' ', '\t':
			continue
		case ':':
			return true
		}
		return false
	}
	return false
}
