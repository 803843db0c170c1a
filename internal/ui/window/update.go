package window

import (
	"fmt"
	"math"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/logging"
	"github.com/andyrewlee/dragzone/internal/messages"
	"github.com/andyrewlee/dragzone/internal/perf"
	"github.com/andyrewlee/dragzone/internal/ui/common"
	"github.com/andyrewlee/dragzone/internal/wheel"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)
	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)
	case tea.MouseWheelMsg:
		return m.handleScroll(msg)
	case wheel.GestureMsg, *wheel.GestureMsg:
		return m.handleScroll(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case MarqueeTick:
		return m, m.handleTick(msg)
	}
	return m, nil
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (*Model, tea.Cmd) {
	mouse := msg.Mouse()
	pt := hittest.Point{X: mouse.X, Y: mouse.Y}
	m.hovered = m.Bounds().Contains(pt)
	if !m.hovered || mouse.Button != tea.MouseLeft {
		return m, nil
	}

	local := m.toLocal(mouse.X, mouse.Y)
	if b, ok := m.buttonAt(local); ok {
		return m, m.press(b.ID)
	}
	if m.HitTest(mouse.X, mouse.Y) == hittest.Draggable {
		m.dragging = true
		m.grab = local
		perf.Count("drag", 1)
		logging.Debug("drag start at %d,%d", local.X, local.Y)
	}
	return m, nil
}

func (m *Model) handleMouseMotion(msg tea.MouseMotionMsg) (*Model, tea.Cmd) {
	mouse := msg.Mouse()
	if m.dragging {
		m.MoveTo(mouse.X-m.grab.X, mouse.Y-m.grab.Y)
		return m, nil
	}
	m.hovered = m.Bounds().Contains(hittest.Point{X: mouse.X, Y: mouse.Y})
	return m, nil
}

func (m *Model) handleMouseRelease(msg tea.MouseReleaseMsg) (*Model, tea.Cmd) {
	if !m.dragging {
		return m, nil
	}
	mouse := msg.Mouse()
	m.dragging = false
	m.hovered = m.Bounds().Contains(hittest.Point{X: mouse.X, Y: mouse.Y})
	logging.Debug("drag end at %d,%d", m.x, m.y)
	return m, nil
}

// handleScroll feeds wheel-like input through the delta extractor.
func (m *Model) handleScroll(msg tea.Msg) (*Model, tea.Cmd) {
	if wm, ok := msg.(tea.MouseWheelMsg); ok {
		mouse := wm.Mouse()
		if !m.Bounds().Contains(hittest.Point{X: mouse.X, Y: mouse.Y}) {
			return m, nil
		}
	}
	if m.collapsed {
		return m, nil
	}
	d := wheel.Extract(wheel.FromMsg(msg))
	switch d.Kind {
	case wheel.DeltaScroll:
		// Positive deltas scroll toward the start of the content.
		lines := int(math.Round(float64(d.Y) * float64(m.linesPerNotch)))
		m.scrollBy(-lines)
		perf.Count("scroll", 1)
	case wheel.DeltaGesture:
		logging.Debug("ignoring gesture scroll")
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (*Model, tea.Cmd) {
	page := m.bodyHeight()
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, m.keymap.ScrollUp):
		m.scrollBy(-1)
	case key.Matches(msg, m.keymap.ScrollDown):
		m.scrollBy(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.scrollBy(-page)
	case key.Matches(msg, m.keymap.PageDown):
		m.scrollBy(page)
	case key.Matches(msg, m.keymap.Top):
		m.offset = 0
	case key.Matches(msg, m.keymap.Bottom):
		m.offset = m.maxOffset()
	case key.Matches(msg, m.keymap.MoveLeft):
		m.MoveTo(m.x-1, m.y)
	case key.Matches(msg, m.keymap.MoveRight):
		m.MoveTo(m.x+1, m.y)
	case key.Matches(msg, m.keymap.MoveUp):
		m.MoveTo(m.x, m.y-1)
	case key.Matches(msg, m.keymap.MoveDown):
		m.MoveTo(m.x, m.y+1)
	case key.Matches(msg, m.keymap.Collapse):
		return m, m.press(ButtonCollapse)
	case key.Matches(msg, m.keymap.Copy):
		return m, m.press(ButtonCopy)
	case key.Matches(msg, m.keymap.Close):
		return m, m.press(ButtonClose)
	case key.Matches(msg, m.keymap.PlayPause):
		return m, m.press(ButtonPlayPause)
	case key.Matches(msg, m.keymap.NextTrack):
		return m, m.press(ButtonNext)
	case key.Matches(msg, m.keymap.PrevTrack):
		return m, m.press(ButtonBack)
	case key.Matches(msg, m.keymap.Love):
		return m, m.press(ButtonLove)
	}
	return m, nil
}

func closeCmd() tea.Msg { return messages.CloseWindow{} }

func (m *Model) copyCmd() tea.Cmd {
	text := m.plainText()
	n := len(m.lines)
	return common.SafeCmd(func() tea.Msg {
		if err := common.CopyToClipboard(text); err != nil {
			logging.WithError(err, "copy")
			return messages.Error{Err: err, Context: "copy"}
		}
		return messages.Info{Message: fmt.Sprintf("Copied %d lines", n)}
	})
}
