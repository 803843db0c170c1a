package window

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/logging"
	"github.com/andyrewlee/dragzone/internal/perf"
)

// ButtonID identifies a window button.
type ButtonID string

const (
	ButtonCopy     ButtonID = "copy"
	ButtonCollapse ButtonID = "collapse"
	ButtonClose    ButtonID = "close"

	ButtonBack      ButtonID = "back"
	ButtonPlayPause ButtonID = "play-pause"
	ButtonNext      ButtonID = "next"
	ButtonLove      ButtonID = "love"
)

// Button is a window control in window-local coordinates.
type Button struct {
	ID    ButtonID
	Label string
	Rect  hittest.Rect
}

const buttonGap = 1

// buttonOrder lists buttons from the right edge inwards.
var buttonOrder = []struct {
	id    ButtonID
	label string
}{
	{ButtonClose, "[x]"},
	{ButtonCollapse, "[-]"},
	{ButtonCopy, "[c]"},
}

// Buttons returns the laid-out title bar buttons, left to right. Buttons
// that would not fit next to at least one title cell are dropped.
func (m *Model) Buttons() []Button {
	right := m.width
	var out []Button
	for _, b := range buttonOrder {
		w := len(b.label)
		left := right - w
		if left < 1 {
			break
		}
		out = append(out, Button{
			ID:    b.id,
			Label: b.label,
			Rect:  hittest.Rect{X: left, Y: 0, W: w, H: 1},
		})
		right = left - buttonGap
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ActiveButtons returns the buttons that are shown and clickable: the title
// bar buttons and, once a player has reported, the transport buttons on the
// footer row. They only appear while the pointer is over the window or the
// window is moving.
func (m *Model) ActiveButtons() []Button {
	return append(m.activeTitleButtons(), m.activeTransport()...)
}

func (m *Model) activeTitleButtons() []Button {
	if !m.hovered && !m.dragging {
		return nil
	}
	return m.Buttons()
}

// ExcludedRects returns the regions where a press must not start a drag:
// every active button.
func (m *Model) ExcludedRects() []hittest.Rect {
	active := m.ActiveButtons()
	if len(active) == 0 {
		return nil
	}
	rects := make([]hittest.Rect, len(active))
	for i, b := range active {
		rects[i] = b.Rect
	}
	return rects
}

// HitTest classifies a screen position against the window's regions and its
// currently active buttons.
func (m *Model) HitTest(x, y int) hittest.Result {
	defer perf.Time("hittest")()
	if !m.Bounds().Contains(hittest.Point{X: x, Y: y}) {
		return hittest.Normal
	}
	cfg, err := m.regions.Load().WithExcluded(m.ExcludedRects())
	if err != nil {
		// Button rects are built from positive sizes; this cannot happen
		// unless the layout code is broken.
		logging.Error("hit test: %v", err)
		return hittest.Normal
	}
	return hittest.HitTest(m, m.toLocal(x, y), cfg)
}

func (m *Model) buttonAt(pt hittest.Point) (Button, bool) {
	for _, b := range m.ActiveButtons() {
		if b.Rect.Contains(pt) {
			return b, true
		}
	}
	return Button{}, false
}

func (m *Model) press(id ButtonID) tea.Cmd {
	logging.Debug("window button %s", id)
	switch id {
	case ButtonClose:
		return closeCmd
	case ButtonCollapse:
		m.ToggleCollapsed()
		return nil
	case ButtonCopy:
		return m.copyCmd()
	}
	if cmd, ok := m.playerCommand(id); ok {
		return m.playerCmd(cmd)
	}
	return nil
}
