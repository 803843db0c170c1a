// Package app hosts the floating window on a full-screen canvas with a
// status bar along the bottom row.
package app

import (
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/dragzone/internal/config"
	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/ui/common"
	"github.com/andyrewlee/dragzone/internal/ui/window"
)

// statusBarHeight is the number of rows reserved below the window area.
const statusBarHeight = 1

// App is the root Bubbletea model.
type App struct {
	config  *config.Config
	regions *hittest.Regions
	window  *window.Model
	toast   *common.ToastModel
	zone    *zone.Manager
	styles  common.Styles

	width, height int
	ready         bool
	placed        bool
	quitting      bool
}

// New creates the app. regions is shared with the config watcher, which may
// swap it while the program runs.
func New(cfg *config.Config, regions *hittest.Regions, content string) *App {
	styles := common.DefaultStyles()
	w := window.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, regions)
	w.SetStyles(styles)
	w.SetLinesPerNotch(cfg.Wheel.LinesPerNotch)
	w.SetContent(content)

	return &App{
		config:  cfg,
		regions: regions,
		window:  w,
		toast:   common.NewToastModel(),
		zone:    zone.New(),
		styles:  styles,
	}
}

// Init initializes the app.
func (a *App) Init() tea.Cmd {
	return a.window.Init()
}

// SetPlayer attaches the player the window's transport buttons control.
func (a *App) SetPlayer(ctrl window.PlayerController) {
	a.window.SetPlayer(ctrl)
}

// Window returns the floating window.
func (a *App) Window() *window.Model { return a.window }

// Quitting reports whether the app has asked the program to exit.
func (a *App) Quitting() bool { return a.quitting }

// Shutdown releases the zone manager's worker.
func (a *App) Shutdown() {
	if a.zone != nil {
		a.zone.Close()
	}
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	return tea.Quit
}
