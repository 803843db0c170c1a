package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/player"
)

const (
	minWindowWidth  = 16
	minWindowHeight = 3
)

// RectConfig is a region in window-local cells as written in config.json.
type RectConfig struct {
	X     int          `json:"x"`
	Y     int          `json:"y"`
	W     int          `json:"w"`
	H     int          `json:"h"`
	Holes []RectConfig `json:"holes,omitempty"`
}

func (r RectConfig) rect() hittest.Rect {
	return hittest.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// WindowConfig describes the floating window.
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// WheelConfig controls how wheel deltas turn into scrolling.
type WheelConfig struct {
	LinesPerNotch int `json:"lines_per_notch"`
}

// PlayerConfig selects the music player the window shows and controls.
type PlayerConfig struct {
	Backend      string        // auto, playerctl, osascript or none
	Name         string        // playerctl --player filter
	PollInterval time.Duration // poll_interval in config.json, e.g. "3s"
}

// Config holds the application configuration
type Config struct {
	Paths       *Paths
	Window      WindowConfig
	DragRegions []RectConfig // empty means the title and footer rows
	Wheel       WheelConfig
	Player      PlayerConfig
	LogLevel    string
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return defaultConfigAt(paths), nil
}

func defaultConfigAt(paths *Paths) *Config {
	return &Config{
		Paths: paths,
		Window: WindowConfig{
			Width:  60,
			Height: 16,
			Title:  "dragzone",
		},
		Wheel: WheelConfig{LinesPerNotch: 3},
		Player: PlayerConfig{
			Backend:      player.BackendAuto,
			PollInterval: player.DefaultPollInterval,
		},
		LogLevel: "info",
	}
}

// Load loads config overrides from ~/.dragzone if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths)
}

// LoadFrom applies config.json, then the .env file, then the process
// environment on top of the defaults, and validates the result.
func LoadFrom(paths *Paths) (*Config, error) {
	cfg := defaultConfigAt(paths)

	if err := cfg.applyFile(paths.ConfigPath); err != nil {
		return nil, fmt.Errorf("read %s: %w", paths.ConfigPath, err)
	}
	if err := cfg.applyEnv(paths.EnvPath); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var user struct {
		Window *struct {
			Width  *int    `json:"width"`
			Height *int    `json:"height"`
			Title  *string `json:"title"`
		} `json:"window"`
		DragRegions []RectConfig `json:"drag_regions"`
		Wheel       *struct {
			LinesPerNotch *int `json:"lines_per_notch"`
		} `json:"wheel"`
		Player *struct {
			Backend      *string `json:"backend"`
			Name         *string `json:"name"`
			PollInterval *string `json:"poll_interval"`
		} `json:"player"`
		LogLevel *string `json:"log_level"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}

	if w := user.Window; w != nil {
		if w.Width != nil {
			c.Window.Width = *w.Width
		}
		if w.Height != nil {
			c.Window.Height = *w.Height
		}
		if w.Title != nil {
			c.Window.Title = *w.Title
		}
	}
	if user.DragRegions != nil {
		c.DragRegions = user.DragRegions
	}
	if user.Wheel != nil && user.Wheel.LinesPerNotch != nil {
		c.Wheel.LinesPerNotch = *user.Wheel.LinesPerNotch
	}
	if p := user.Player; p != nil {
		if p.Backend != nil {
			c.Player.Backend = *p.Backend
		}
		if p.Name != nil {
			c.Player.Name = *p.Name
		}
		if p.PollInterval != nil {
			d, err := time.ParseDuration(*p.PollInterval)
			if err != nil {
				return fmt.Errorf("player.poll_interval: %w", err)
			}
			c.Player.PollInterval = d
		}
	}
	if user.LogLevel != nil {
		c.LogLevel = *user.LogLevel
	}
	return nil
}

// Validate rejects settings the window cannot work with, including region
// lists the classifier would refuse.
func (c *Config) Validate() error {
	if c.Window.Width < minWindowWidth || c.Window.Height < minWindowHeight {
		return fmt.Errorf("window size %dx%d is below the minimum %dx%d",
			c.Window.Width, c.Window.Height, minWindowWidth, minWindowHeight)
	}
	if c.Wheel.LinesPerNotch <= 0 {
		return errors.New("wheel.lines_per_notch must be positive")
	}
	if !player.ValidBackend(c.Player.Backend) {
		return fmt.Errorf("unknown player backend %q", c.Player.Backend)
	}
	if c.Player.PollInterval < player.MinPollInterval {
		return fmt.Errorf("player.poll_interval %s is below the minimum %s", c.Player.PollInterval, player.MinPollInterval)
	}
	if _, err := c.HitRegions(); err != nil {
		return err
	}
	return nil
}

// HitRegions builds the classifier config for the window. Excluded regions
// are not part of the file: they come from the window's live buttons.
func (c *Config) HitRegions() (*hittest.Config, error) {
	if len(c.DragRegions) == 0 {
		return hittest.NewConfig([]hittest.Rect{c.TitleRow(), c.FooterRow()}, nil)
	}
	regions := make([]hittest.DragRegion, len(c.DragRegions))
	for i, r := range c.DragRegions {
		region := hittest.DragRegion{Bounds: r.rect()}
		for _, h := range r.Holes {
			region.Holes = append(region.Holes, h.rect())
		}
		regions[i] = region
	}
	return hittest.NewRegionConfig(regions, nil)
}

// TitleRow is the full first row of the window.
func (c *Config) TitleRow() hittest.Rect {
	return hittest.Rect{X: 0, Y: 0, W: c.Window.Width, H: 1}
}

// FooterRow is the full last row of the window, where the transport
// buttons sit.
func (c *Config) FooterRow() hittest.Rect {
	return hittest.Rect{X: 0, Y: c.Window.Height - 1, W: c.Window.Width, H: 1}
}
