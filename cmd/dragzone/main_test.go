package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragzone/internal/config"
	"github.com/andyrewlee/dragzone/internal/supervisor"
)

func resetMouseFilterState() {
	lastMouseMotionEvent = time.Time{}
	lastMouseWheelEvent = time.Time{}
	lastMouseX = 0
	lastMouseY = 0
}

func TestMouseWheelNotThrottledByMotion(t *testing.T) {
	resetMouseFilterState()

	motion := tea.MouseMotionMsg{X: 10, Y: 10, Button: tea.MouseLeft}
	if mouseEventFilter(nil, motion) == nil {
		t.Fatalf("expected motion event to pass through")
	}

	wheel := tea.MouseWheelMsg{X: 10, Y: 10, Button: tea.MouseWheelDown}
	if mouseEventFilter(nil, wheel) == nil {
		t.Fatalf("expected wheel event to pass through after motion")
	}
}

func TestMouseWheelThrottleIndependent(t *testing.T) {
	resetMouseFilterState()

	wheel := tea.MouseWheelMsg{X: 10, Y: 10, Button: tea.MouseWheelDown}
	if mouseEventFilter(nil, wheel) == nil {
		t.Fatalf("expected first wheel event to pass through")
	}
	if mouseEventFilter(nil, wheel) != nil {
		t.Fatalf("expected second wheel event to be throttled")
	}
}

func TestMotionToNewCellAlwaysPasses(t *testing.T) {
	resetMouseFilterState()

	for x := 1; x <= 5; x++ {
		if mouseEventFilter(nil, tea.MouseMotionMsg{X: x, Y: 3}) == nil {
			t.Fatalf("motion to %d,3 was dropped", x)
		}
	}
	if mouseEventFilter(nil, tea.MouseMotionMsg{X: 5, Y: 3}) != nil {
		t.Fatal("expected repeated motion at the same cell to be throttled")
	}
}

func TestReadContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("from file"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name       string
		args       []string
		stdin      string
		stdinIsTTY bool
		want       string
	}{
		{name: "file argument", args: []string{path}, stdinIsTTY: true, want: "from file"},
		{name: "piped stdin", stdin: "from pipe", want: "from pipe"},
		{name: "dash reads stdin", args: []string{"-"}, stdin: "dash", want: "dash"},
		{name: "terminal stdin", stdin: "ignored", stdinIsTTY: true, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readContent(tt.args, strings.NewReader(tt.stdin), tt.stdinIsTTY)
			if err != nil {
				t.Fatalf("readContent: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadContentMissingFile(t *testing.T) {
	_, err := readContent([]string{filepath.Join(t.TempDir(), "missing")}, nil, true)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRegionsReloadedCarriesWindowSize(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigPath, []byte(`{"window": {"width": 30, "height": 9, "title": "mini"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	msg := regionsReloaded(cfg)
	if msg.Width != 30 || msg.Height != 9 || msg.Title != "mini" || msg.LinesPerNotch != 3 {
		t.Fatalf("unexpected reload message %+v", msg)
	}
}

func TestStartPlayerPollerDisabled(t *testing.T) {
	sup := supervisor.New(context.Background())
	defer sup.Stop()

	sent := 0
	send := func(tea.Msg) { sent++ }
	if p := startPlayerPoller(sup, config.PlayerConfig{Backend: "none"}, send); p != nil {
		t.Fatal("backend none should not start a poller")
	}
	if p := startPlayerPoller(sup, config.PlayerConfig{Backend: "winamp"}, send); p != nil {
		t.Fatal("unknown backend should not start a poller")
	}
	if sent != 0 {
		t.Fatalf("disabled player sent %d messages", sent)
	}
}
