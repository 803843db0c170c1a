package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/logging"
	"github.com/andyrewlee/dragzone/internal/messages"
	"github.com/andyrewlee/dragzone/internal/ui/common"
	"github.com/andyrewlee/dragzone/internal/ui/window"
	"github.com/andyrewlee/dragzone/internal/wheel"
)

var (
	quitKeys   = key.NewBinding(key.WithKeys("q", "ctrl+c"))
	centerKeys = key.NewBinding(key.WithKeys("r"))
)

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.handleWindowSize(msg)
	case tea.KeyPressMsg:
		cmd = a.handleKey(msg)
	case tea.MouseClickMsg:
		cmd = a.handleMouseClick(msg)
	case tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg, wheel.GestureMsg, *wheel.GestureMsg:
		a.window, cmd = a.window.Update(msg)
	case messages.CloseWindow:
		logging.Info("window closed")
		cmd = a.quit()
	case messages.RegionsReloaded:
		cmd = a.handleRegionsReloaded(msg)
	case messages.PlayerUpdated:
		cmd = a.handlePlayerUpdated(msg)
	case window.MarqueeTick:
		a.window, cmd = a.window.Update(msg)
	case messages.Info:
		cmd = a.toast.ShowInfo(msg.Message)
	case messages.Error:
		logging.Error("%v", msg)
		cmd = a.toast.ShowError(msg.Error())
	case common.ToastDismissed:
		a.toast, cmd = a.toast.Update(msg)
	}
	return a, cmd
}

func (a *App) handleWindowSize(msg tea.WindowSizeMsg) {
	a.width = msg.Width
	a.height = msg.Height
	a.window.SetScreenSize(a.width, a.canvasHeight())
	if !a.placed {
		a.window.Center()
		a.placed = true
	}
	a.ready = true
}

func (a *App) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, quitKeys):
		return a.quit()
	case key.Matches(msg, centerKeys):
		a.window.Center()
		return nil
	}
	var cmd tea.Cmd
	a.window, cmd = a.window.Update(msg)
	return cmd
}

func (a *App) handleMouseClick(msg tea.MouseClickMsg) tea.Cmd {
	mouse := msg.Mouse()
	if mouse.Button == tea.MouseLeft {
		if id, ok := a.statusButtonAt(hittest.Point{X: mouse.X, Y: mouse.Y}); ok {
			return a.pressStatusButton(id)
		}
	}
	var cmd tea.Cmd
	a.window, cmd = a.window.Update(msg)
	return cmd
}

func (a *App) handleRegionsReloaded(msg messages.RegionsReloaded) tea.Cmd {
	if msg.Title != "" {
		a.window.SetTitle(msg.Title)
	}
	if msg.Width > 0 && msg.Height > 0 {
		a.window.SetSize(msg.Width, msg.Height)
	}
	a.window.SetLinesPerNotch(msg.LinesPerNotch)
	return a.toast.ShowSuccess("Regions reloaded")
}

// handlePlayerUpdated shows the latest poll. Losing the player is reported
// once; repeated failures while it is gone stay quiet.
func (a *App) handlePlayerUpdated(msg messages.PlayerUpdated) tea.Cmd {
	_, had := a.window.Track()
	if msg.Err != nil {
		a.window.SetTrack(nil)
		if !had {
			logging.Debug("player unavailable: %v", msg.Err)
			return nil
		}
		logging.WithError(msg.Err, "player")
		return a.toast.ShowInfo("Player disconnected")
	}

	cmd := a.window.SetTrack(&msg.State)
	if !had {
		logging.Info("player connected")
		return common.SafeBatch(cmd, a.toast.ShowInfo("Player connected"))
	}
	return cmd
}

func (a *App) pressStatusButton(id string) tea.Cmd {
	logging.Debug("status button %s", id)
	switch id {
	case statusCenter:
		a.window.Center()
	case statusQuit:
		return a.quit()
	}
	return nil
}

// canvasHeight is the area the window may move in.
func (a *App) canvasHeight() int {
	h := a.height - statusBarHeight
	if h < 0 {
		return 0
	}
	return h
}
