package app

import (
	"strings"

	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/dragzone/internal/hittest"
)

const (
	statusCenter = "center"
	statusQuit   = "quit"
)

var statusButtons = []struct {
	id    string
	label string
}{
	{statusCenter, "[center]"},
	{statusQuit, "[quit]"},
}

const statusHelp = "drag title to move · wheel to scroll · p play/pause · z collapse · q quit"

func statusZoneID(id string) string {
	return "status-" + id
}

// zoneRect converts bubblezone's inclusive bounds into a half-open rect.
func zoneRect(z *zone.ZoneInfo) hittest.Rect {
	return hittest.Rect{
		X: z.StartX,
		Y: z.StartY,
		W: z.EndX - z.StartX + 1,
		H: z.EndY - z.StartY + 1,
	}
}

// statusButtonAt reports which status bar button contains pt. Zones are
// only known after the first scanned render.
func (a *App) statusButtonAt(pt hittest.Point) (string, bool) {
	for _, b := range statusButtons {
		z := a.zone.Get(statusZoneID(b.id))
		if z.IsZero() {
			continue
		}
		if zoneRect(z).Contains(pt) {
			return b.id, true
		}
	}
	return "", false
}

func (a *App) renderStatusBar() string {
	parts := make([]string, 0, len(statusButtons)+1)
	used := 0
	for _, b := range statusButtons {
		parts = append(parts, a.zone.Mark(statusZoneID(b.id), a.styles.StatusButton.Render(b.label)))
		used += runewidth.StringWidth(b.label) + 1
	}
	if toast := a.toast.View(); toast != "" {
		parts = append(parts, toast)
	} else if room := a.width - used; room > 0 {
		parts = append(parts, a.styles.StatusBar.Render(runewidth.Truncate(statusHelp, room, "…")))
	}
	return strings.Join(parts, " ")
}
