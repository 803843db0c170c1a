// Package window implements a borderless now-playing window. Its title and
// footer rows can be dragged around the terminal, and its buttons only show
// while the pointer is over it.
package window

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/player"
	"github.com/andyrewlee/dragzone/internal/ui/common"
)

const defaultLinesPerNotch = 3

// Model is the Bubbletea model for the floating window.
type Model struct {
	title string
	lines []string

	// Screen position of the top-left cell.
	x, y          int
	width, height int

	// Area the window may occupy.
	screenW, screenH int

	offset        int
	linesPerNotch int

	collapsed bool
	hovered   bool
	dragging  bool
	grab      hittest.Point

	// Player state. track is nil until a player has reported.
	ctrl    PlayerController
	track   *player.State
	trackAt time.Time
	marquee int
	tickSeq int
	ticking bool
	now     func() time.Time

	regions *hittest.Regions
	keymap  KeyMap
	styles  common.Styles
}

// New creates a window of the given size that classifies pointer presses
// against regions.
func New(title string, width, height int, regions *hittest.Regions) *Model {
	return &Model{
		title:         title,
		width:         width,
		height:        height,
		linesPerNotch: defaultLinesPerNotch,
		regions:       regions,
		keymap:        DefaultKeyMap(),
		styles:        common.DefaultStyles(),
		now:           time.Now,
	}
}

// Init initializes the window.
func (m *Model) Init() tea.Cmd { return nil }

// SetTitle sets the text shown in the title bar.
func (m *Model) SetTitle(title string) { m.title = title }

// Title returns the title bar text.
func (m *Model) Title() string { return m.title }

// SetStyles sets the styles for the window.
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// SetLinesPerNotch sets how many lines one wheel notch scrolls.
func (m *Model) SetLinesPerNotch(n int) {
	if n <= 0 {
		n = defaultLinesPerNotch
	}
	m.linesPerNotch = n
}

// SetContent replaces the window body.
func (m *Model) SetContent(text string) {
	m.lines = splitContent(text)
	m.clampOffset()
}

// Content returns the body as displayed, one line per row.
func (m *Model) Content() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// SetSize resizes the window and keeps it and its scroll position in range.
func (m *Model) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.width = width
	m.height = height
	m.clampOffset()
	m.MoveTo(m.x, m.y)
}

// Size returns the window size when expanded.
func (m *Model) Size() (int, int) { return m.width, m.height }

// SetScreenSize sets the area the window lives in and keeps it inside.
func (m *Model) SetScreenSize(width, height int) {
	m.screenW = width
	m.screenH = height
	m.MoveTo(m.x, m.y)
}

// Center places the window in the middle of the screen.
func (m *Model) Center() {
	m.MoveTo((m.screenW-m.width)/2, (m.screenH-m.visibleHeight())/2)
}

// MoveTo places the window at (x, y), clamped to the screen.
func (m *Model) MoveTo(x, y int) {
	maxX := m.screenW - m.width
	maxY := m.screenH - m.visibleHeight()
	m.x = clamp(x, 0, maxX)
	m.y = clamp(y, 0, maxY)
}

// Position returns the screen position of the top-left cell.
func (m *Model) Position() (int, int) { return m.x, m.y }

// Bounds returns the window rectangle in screen coordinates.
func (m *Model) Bounds() hittest.Rect {
	return hittest.Rect{W: m.width, H: m.visibleHeight()}.Offset(m.x, m.y)
}

// Offset returns the index of the first visible content line.
func (m *Model) Offset() int { return m.offset }

// Dragging reports whether a drag is in progress.
func (m *Model) Dragging() bool { return m.dragging }

// Hovered reports whether the pointer was last seen over the window.
func (m *Model) Hovered() bool { return m.hovered }

// Collapsed reports whether only the title bar is shown.
func (m *Model) Collapsed() bool { return m.collapsed }

// ToggleCollapsed shows or hides the body.
func (m *Model) ToggleCollapsed() {
	m.collapsed = !m.collapsed
	m.MoveTo(m.x, m.y)
}

func (m *Model) visibleHeight() int {
	if m.collapsed {
		return 1
	}
	return m.height
}

// bodyHeight is the number of content rows between title and footer.
func (m *Model) bodyHeight() int {
	h := m.height - 2
	if h < 0 {
		return 0
	}
	return h
}

func (m *Model) maxOffset() int {
	max := len(m.lines) - m.bodyHeight()
	if max < 0 {
		return 0
	}
	return max
}

func (m *Model) scrollBy(lines int) {
	m.offset += lines
	m.clampOffset()
}

func (m *Model) clampOffset() {
	m.offset = clamp(m.offset, 0, m.maxOffset())
}

func (m *Model) toLocal(x, y int) hittest.Point {
	return hittest.Point{X: x - m.x, Y: y - m.y}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
