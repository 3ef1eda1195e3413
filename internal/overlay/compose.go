package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws popup over base with its top-left corner at r.X, r.Y. Rows
// and columns outside base are added as needed; popup lines beyond r.Height
// are dropped. ANSI sequences in both inputs are preserved.
func Compose(base, popup string, r Rect) string {
	if popup == "" || r.Height <= 0 || r.Width <= 0 {
		return base
	}

	lines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")
	if len(popupLines) > r.Height {
		popupLines = popupLines[:r.Height]
	}

	for len(lines) < r.Y+len(popupLines) {
		lines = append(lines, "")
	}

	for i, pl := range popupLines {
		row := r.Y + i
		if row < 0 {
			continue
		}
		pl = ansi.Truncate(pl, r.Width, "")
		plWidth := ansi.StringWidth(pl)

		line := lines[row]
		lineWidth := ansi.StringWidth(line)
		if lineWidth < r.X {
			line += strings.Repeat(" ", r.X-lineWidth)
		}

		left := ansi.Truncate(line, r.X, "")
		right := ""
		if lineWidth > r.X+plWidth {
			right = ansi.TruncateLeft(line, r.X+plWidth, "")
		}
		lines[row] = left + pl + right
	}

	return strings.Join(lines, "\n")
}
