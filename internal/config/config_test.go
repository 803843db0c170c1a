package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andyrewlee/dragzone/internal/hittest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig() error = %v", err)
	}
	if cfg.Paths == nil {
		t.Fatal("DefaultConfig() returned nil Paths")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Wheel.LinesPerNotch != 3 {
		t.Fatalf("LinesPerNotch = %d, want 3", cfg.Wheel.LinesPerNotch)
	}
}

func TestLoadFromMissingFilesUsesDefaults(t *testing.T) {
	paths := PathsAt(t.TempDir())
	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Window.Width != 60 || cfg.Window.Height != 16 || cfg.Window.Title != "dragzone" {
		t.Fatalf("unexpected window defaults: %+v", cfg.Window)
	}
	hr, err := cfg.HitRegions()
	if err != nil {
		t.Fatalf("HitRegions: %v", err)
	}
	want := []hittest.Rect{{X: 0, Y: 0, W: 60, H: 1}, {X: 0, Y: 15, W: 60, H: 1}}
	got := hr.Draggable()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("default drag regions = %v, want %v", got, want)
	}
	if cfg.Player.Backend != "auto" || cfg.Player.PollInterval != 3*time.Second {
		t.Fatalf("unexpected player defaults: %+v", cfg.Player)
	}
}

func TestLoadFromFileOverrides(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{
		"window": {"width": 40, "title": "notes"},
		"drag_regions": [
			{"x": 0, "y": 0, "w": 40, "h": 2, "holes": [{"x": 30, "y": 0, "w": 10, "h": 1}]},
			{"x": 0, "y": 9, "w": 40, "h": 1}
		],
		"wheel": {"lines_per_notch": 5},
		"log_level": "debug"
	}`)

	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Window.Width != 40 || cfg.Window.Height != 16 || cfg.Window.Title != "notes" {
		t.Fatalf("window = %+v", cfg.Window)
	}
	if cfg.Wheel.LinesPerNotch != 5 || cfg.LogLevel != "debug" {
		t.Fatalf("wheel/log = %+v %q", cfg.Wheel, cfg.LogLevel)
	}

	hr, err := cfg.HitRegions()
	if err != nil {
		t.Fatalf("HitRegions: %v", err)
	}
	if got := hittest.Classify(hittest.Point{X: 5, Y: 1}, hr); got != hittest.Draggable {
		t.Fatalf("(5,1) = %v, want DRAGGABLE", got)
	}
	if got := hittest.Classify(hittest.Point{X: 35, Y: 0}, hr); got != hittest.Normal {
		t.Fatalf("hole (35,0) = %v, want NORMAL", got)
	}
	if got := hittest.Classify(hittest.Point{X: 1, Y: 9}, hr); got != hittest.Draggable {
		t.Fatalf("footer (1,9) = %v, want DRAGGABLE", got)
	}

	regions := hr.Regions()
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	if holes := regions[0].Holes; len(holes) != 1 || holes[0] != (hittest.Rect{X: 30, Y: 0, W: 10, H: 1}) {
		t.Fatalf("first region holes = %v", holes)
	}
	if len(regions[1].Holes) != 0 {
		t.Fatalf("second region should have no holes, got %v", regions[1].Holes)
	}
}

func TestLoadFromPlayerSettings(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{"player": {"backend": "playerctl", "name": "spotify", "poll_interval": "1500ms"}}`)

	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	want := PlayerConfig{Backend: "playerctl", Name: "spotify", PollInterval: 1500 * time.Millisecond}
	if cfg.Player != want {
		t.Fatalf("Player = %+v, want %+v", cfg.Player, want)
	}

	t.Setenv(EnvPlayer, "none")
	cfg, err = LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Player.Backend != "none" {
		t.Fatalf("Backend = %q, environment should win", cfg.Player.Backend)
	}
}

func TestResizedWindowMovesDefaultRegions(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{"window": {"width": 30, "height": 10}}`)

	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	hr, err := cfg.HitRegions()
	if err != nil {
		t.Fatalf("HitRegions: %v", err)
	}
	if got := hittest.Classify(hittest.Point{X: 29, Y: 9}, hr); got != hittest.Draggable {
		t.Fatalf("footer corner = %v, want DRAGGABLE", got)
	}
	if got := hittest.Classify(hittest.Point{X: 40, Y: 0}, hr); got != hittest.Normal {
		t.Fatalf("past the new width = %v, want NORMAL", got)
	}
}

func TestLoadFromRejectsNegativeRegion(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.ConfigPath, `{"drag_regions": [{"x": 0, "y": 0, "w": -4, "h": 1}]}`)

	_, err := LoadFrom(paths)
	if !errors.Is(err, hittest.ErrNegativeSize) {
		t.Fatalf("LoadFrom err = %v, want ErrNegativeSize", err)
	}
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"tiny window":    `{"window": {"width": 4, "height": 1}}`,
		"zero notch":     `{"wheel": {"lines_per_notch": 0}}`,
		"malformed json": `{"window": `,
		"unknown player": `{"player": {"backend": "winamp"}}`,
		"bad interval":   `{"player": {"poll_interval": "often"}}`,
		"fast interval":  `{"player": {"poll_interval": "10ms"}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			paths := PathsAt(t.TempDir())
			writeFile(t, paths.ConfigPath, body)
			if _, err := LoadFrom(paths); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFromEnvFileAndEnvironment(t *testing.T) {
	paths := PathsAt(t.TempDir())
	writeFile(t, paths.EnvPath, "DRAGZONE_LOG_LEVEL=warn\nDRAGZONE_LINES_PER_NOTCH=2\nDRAGZONE_TITLE=from-file\n")
	t.Setenv(EnvTitle, "from-env")

	cfg, err := LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Wheel.LinesPerNotch != 2 {
		t.Fatalf("LinesPerNotch = %d, want 2", cfg.Wheel.LinesPerNotch)
	}
	if cfg.Window.Title != "from-env" {
		t.Fatalf("Title = %q, process env should win", cfg.Window.Title)
	}
}

func TestLoadFromEnvRejectsNonNumericNotch(t *testing.T) {
	paths := PathsAt(t.TempDir())
	t.Setenv(EnvLinesPerNotch, "lots")
	if _, err := LoadFrom(paths); err == nil {
		t.Fatal("expected error for non-numeric lines per notch")
	}
}
