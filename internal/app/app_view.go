package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragzone/internal/perf"
	"github.com/andyrewlee/dragzone/internal/ui/common"
)

// View renders the canvas with the window placed at its position.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.BackgroundColor = common.ColorBackground
	view.ForegroundColor = common.ColorForeground

	switch {
	case a.quitting:
		view.SetContent("")
	case !a.ready:
		view.SetContent("Loading...")
	default:
		view.SetContent(a.zone.Scan(a.render()))
	}
	return view
}

func (a *App) render() string {
	rows := make([]string, a.canvasHeight())
	x, y := a.window.Position()
	pad := strings.Repeat(" ", x)
	for i, line := range strings.Split(a.window.View(), "\n") {
		if row := y + i; row >= 0 && row < len(rows) {
			rows[row] = pad + line
		}
	}
	rows = append(rows, a.renderStatusBar())
	return strings.Join(rows, "\n")
}
