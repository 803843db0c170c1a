package window

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// View renders the window as exactly Bounds().H lines of Bounds().W cells.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	rows := []string{m.renderTitle()}
	if !m.collapsed {
		rows = append(rows, m.renderBody()...)
		if m.height > 1 {
			rows = append(rows, m.renderFooter())
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderTitle() string {
	style := m.styles.TitleBar
	if m.hovered || m.dragging {
		style = m.styles.TitleBarActive
	}
	buttons := m.activeTitleButtons()
	titleW := m.titleWidth()

	var title string
	switch text := m.titleText(); {
	case m.dragging:
		title = fitLine(text+" (moving)", titleW)
	case m.marquee > 0 && runewidth.StringWidth(text) > titleW:
		title = runewidth.FillRight(runewidth.Truncate(scrollText(text, m.marquee), titleW, ""), titleW)
	default:
		title = fitLine(text, titleW)
	}
	var b strings.Builder
	b.WriteString(style.Render(title))

	pos := titleW
	for _, btn := range buttons {
		if gap := btn.Rect.X - pos; gap > 0 {
			b.WriteString(style.Render(strings.Repeat(" ", gap)))
		}
		bs := m.styles.Button
		if btn.ID == ButtonClose {
			bs = m.styles.CloseButton
		}
		b.WriteString(bs.Render(btn.Label))
		pos = btn.Rect.X + btn.Rect.W
	}
	if pos < m.width {
		b.WriteString(style.Render(strings.Repeat(" ", m.width-pos)))
	}
	return b.String()
}

// titleText is the now-playing summary once a track is known, otherwise
// the window title.
func (m *Model) titleText() string {
	if m.track != nil && m.track.HasTrack() {
		return " " + m.track.Summary()
	}
	return " " + m.title
}

// titleWidth is the number of title bar cells left of the buttons.
func (m *Model) titleWidth() int {
	if buttons := m.activeTitleButtons(); len(buttons) > 0 {
		return buttons[0].Rect.X
	}
	return m.width
}

func (m *Model) titleOverflows() bool {
	return runewidth.StringWidth(m.titleText()) > m.titleWidth()
}

func (m *Model) renderBody() []string {
	h := m.bodyHeight()
	inner := m.width - 2
	rows := make([]string, 0, h)
	for i := 0; i < h; i++ {
		line := ""
		if idx := m.offset + i; idx < len(m.lines) {
			line = m.lines[idx]
		}
		if inner > 0 {
			line = " " + fitLine(line, inner) + " "
		} else {
			line = fitLine(line, m.width)
		}
		rows = append(rows, m.styles.Body.Render(line))
	}
	return rows
}

func (m *Model) renderFooter() string {
	if m.track != nil && (m.hovered || m.dragging) {
		return m.renderPlayerFooter()
	}
	var text string
	switch {
	case len(m.lines) == 0:
		text = "empty"
	case m.maxOffset() == 0:
		text = fmt.Sprintf("%d lines", len(m.lines))
	default:
		last := m.offset + m.bodyHeight()
		if last > len(m.lines) {
			last = len(m.lines)
		}
		text = fmt.Sprintf("%d-%d of %d", m.offset+1, last, len(m.lines))
	}
	text = runewidth.FillLeft(text+" ", m.width)
	return m.styles.Footer.Render(fitLine(text, m.width))
}

// plainText returns the body without styling, as copied to the clipboard.
func (m *Model) plainText() string {
	return ansi.Strip(strings.Join(m.lines, "\n"))
}
