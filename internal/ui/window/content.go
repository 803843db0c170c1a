package window

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

// splitContent turns raw text into display lines: escape sequences are
// removed and tabs expanded so cell widths are predictable.
func splitContent(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = ansi.Strip(line)
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// fitLine pads or truncates line to exactly width cells.
func fitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(line) > width {
		line = runewidth.Truncate(line, width, "…")
	}
	return runewidth.FillRight(line, width)
}
