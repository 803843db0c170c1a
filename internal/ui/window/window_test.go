package window

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/messages"
	"github.com/andyrewlee/dragzone/internal/wheel"
)

func newTestWindow(t *testing.T) *Model {
	t.Helper()
	regions := hittest.NewRegions(hittest.Simple(hittest.Rect{X: 0, Y: 0, W: 30, H: 1}))
	m := New("notes", 30, 8, regions)
	m.SetScreenSize(100, 40)
	m.MoveTo(10, 5)
	return m
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return strings.Join(lines, "\n")
}

func click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func TestDragFromTitleMovesWindow(t *testing.T) {
	m := newTestWindow(t)

	m, _ = m.Update(click(12, 5))
	if !m.Dragging() {
		t.Fatal("expected press on title to start a drag")
	}
	m, _ = m.Update(tea.MouseMotionMsg{X: 22, Y: 9})
	if x, y := m.Position(); x != 20 || y != 9 {
		t.Fatalf("expected window at 20,9, got %d,%d", x, y)
	}
	m, _ = m.Update(tea.MouseReleaseMsg{X: 22, Y: 9, Button: tea.MouseLeft})
	if m.Dragging() {
		t.Fatal("expected release to end the drag")
	}
}

func TestDragIsClampedToScreen(t *testing.T) {
	m := newTestWindow(t)
	m, _ = m.Update(click(12, 5))

	m, _ = m.Update(tea.MouseMotionMsg{X: -50, Y: -50})
	if x, y := m.Position(); x != 0 || y != 0 {
		t.Fatalf("expected window at 0,0, got %d,%d", x, y)
	}
	m, _ = m.Update(tea.MouseMotionMsg{X: 500, Y: 500})
	if x, y := m.Position(); x != 70 || y != 32 {
		t.Fatalf("expected window at 70,32, got %d,%d", x, y)
	}
}

func TestBodyPressDoesNotDrag(t *testing.T) {
	m := newTestWindow(t)
	m, _ = m.Update(click(15, 8))
	if m.Dragging() {
		t.Fatal("body press should not start a drag")
	}
	if !m.Hovered() {
		t.Fatal("press inside window should mark it hovered")
	}
}

func TestButtonsExcludedOnlyWhileHovered(t *testing.T) {
	m := newTestWindow(t)
	closeX := 10 + 28

	if got := m.HitTest(closeX, 5); got != hittest.Draggable {
		t.Fatalf("hidden close button should be draggable title, got %v", got)
	}
	m, _ = m.Update(tea.MouseMotionMsg{X: 15, Y: 8})
	if got := m.HitTest(closeX, 5); got != hittest.Normal {
		t.Fatalf("visible close button should be excluded, got %v", got)
	}
	if got := m.HitTest(12, 5); got != hittest.Draggable {
		t.Fatalf("title outside buttons should stay draggable, got %v", got)
	}
	if got := m.HitTest(5, 5); got != hittest.Normal {
		t.Fatalf("point outside window should be normal, got %v", got)
	}
}

func TestButtonLayout(t *testing.T) {
	m := newTestWindow(t)
	buttons := m.Buttons()
	want := []struct {
		id ButtonID
		x  int
	}{
		{ButtonCopy, 19},
		{ButtonCollapse, 23},
		{ButtonClose, 27},
	}
	if len(buttons) != len(want) {
		t.Fatalf("expected %d buttons, got %d", len(want), len(buttons))
	}
	for i, w := range want {
		if buttons[i].ID != w.id || buttons[i].Rect.X != w.x {
			t.Fatalf("button %d: got %s at %d, want %s at %d", i, buttons[i].ID, buttons[i].Rect.X, w.id, w.x)
		}
	}

	narrow := New("n", 5, 3, nil)
	if got := len(narrow.Buttons()); got != 1 {
		t.Fatalf("expected only the close button to fit, got %d", got)
	}
}

func TestCloseButtonSendsCloseWindow(t *testing.T) {
	m := newTestWindow(t)
	_, cmd := m.Update(click(10+28, 5))
	if cmd == nil {
		t.Fatal("expected close command")
	}
	if _, ok := cmd().(messages.CloseWindow); !ok {
		t.Fatal("expected CloseWindow message")
	}
	if m.Dragging() {
		t.Fatal("button press should not start a drag")
	}
}

func TestCollapseButton(t *testing.T) {
	m := newTestWindow(t)
	m, _ = m.Update(click(10+24, 5))
	if !m.Collapsed() {
		t.Fatal("expected window to collapse")
	}
	if got := m.Bounds().H; got != 1 {
		t.Fatalf("collapsed height = %d, want 1", got)
	}
	if got := strings.Count(m.View(), "\n"); got != 0 {
		t.Fatalf("collapsed view should be a single line, got %d newlines", got)
	}
}

func TestWheelScrollsContent(t *testing.T) {
	m := newTestWindow(t)
	m.SetContent(numberedLines(100))

	m, _ = m.Update(tea.MouseWheelMsg{X: 15, Y: 8, Button: tea.MouseWheelDown})
	if got := m.Offset(); got != 3 {
		t.Fatalf("offset after wheel down = %d, want 3", got)
	}
	m.SetLinesPerNotch(5)
	m, _ = m.Update(tea.MouseWheelMsg{X: 15, Y: 8, Button: tea.MouseWheelDown})
	if got := m.Offset(); got != 8 {
		t.Fatalf("offset after second wheel down = %d, want 8", got)
	}
	m, _ = m.Update(tea.MouseWheelMsg{X: 15, Y: 8, Button: tea.MouseWheelUp})
	m, _ = m.Update(tea.MouseWheelMsg{X: 15, Y: 8, Button: tea.MouseWheelUp})
	if got := m.Offset(); got != 0 {
		t.Fatalf("offset should clamp at 0, got %d", got)
	}
}

func TestWheelOutsideWindowIgnored(t *testing.T) {
	m := newTestWindow(t)
	m.SetContent(numberedLines(100))
	m, _ = m.Update(tea.MouseWheelMsg{X: 0, Y: 0, Button: tea.MouseWheelDown})
	if got := m.Offset(); got != 0 {
		t.Fatalf("wheel outside window scrolled to %d", got)
	}
}

func TestGestureDoesNotScroll(t *testing.T) {
	m := newTestWindow(t)
	m.SetContent(numberedLines(100))
	m, _ = m.Update(wheel.GestureMsg{Name: "swipe"})
	if got := m.Offset(); got != 0 {
		t.Fatalf("gesture scrolled to %d", got)
	}
}

func TestKeys(t *testing.T) {
	m := newTestWindow(t)
	m.SetContent(numberedLines(100))

	m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	if got := m.Offset(); got != 1 {
		t.Fatalf("offset after j = %d, want 1", got)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: 'G', Text: "G"})
	if got := m.Offset(); got != 94 {
		t.Fatalf("offset after G = %d, want 94", got)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	if got := m.Offset(); got != 0 {
		t.Fatalf("offset after g = %d, want 0", got)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift})
	if x, _ := m.Position(); x != 11 {
		t.Fatalf("x after shift+right = %d, want 11", x)
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if cmd == nil {
		t.Fatal("expected copy command")
	}
}

func TestViewDimensions(t *testing.T) {
	m := newTestWindow(t)
	m.SetContent("a very long line that does not fit inside the window at all\nshort\n\tindented")
	m, _ = m.Update(tea.MouseMotionMsg{X: 15, Y: 8})

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 30 {
			t.Fatalf("row %d width = %d, want 30: %q", i, w, ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), "[x]") {
		t.Fatalf("hovered title should show buttons: %q", ansi.Strip(lines[0]))
	}
}

func TestSetContentStripsEscapes(t *testing.T) {
	m := newTestWindow(t)
	m.SetContent("\x1b[31mred\x1b[0m\r\n\tx\n")
	got := m.Content()
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[0] != "red" || got[1] != "    x" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestRegionSwapTakesEffect(t *testing.T) {
	regions := hittest.NewRegions(hittest.Simple(hittest.Rect{X: 0, Y: 0, W: 30, H: 1}))
	m := New("notes", 30, 8, regions)
	m.SetScreenSize(100, 40)

	if got := m.HitTest(5, 4); got != hittest.Normal {
		t.Fatalf("body should start normal, got %v", got)
	}
	regions.Store(hittest.Simple(hittest.Rect{X: 0, Y: 0, W: 30, H: 8}))
	if got := m.HitTest(5, 4); got != hittest.Draggable {
		t.Fatalf("body should be draggable after swap, got %v", got)
	}
}
