package window

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/logging"
	"github.com/andyrewlee/dragzone/internal/messages"
	"github.com/andyrewlee/dragzone/internal/player"
	"github.com/andyrewlee/dragzone/internal/ui/common"
)

const (
	marqueeInterval      = 300 * time.Millisecond
	marqueeGap           = "   "
	playerCommandTimeout = 5 * time.Second
)

// PlayerController runs transport commands against the music player.
type PlayerController interface {
	Do(ctx context.Context, cmd player.Command) error
}

// MarqueeTick advances the scrolling title and refreshes the progress row.
type MarqueeTick struct {
	seq int
}

// SetPlayer attaches the controller used by the transport buttons.
func (m *Model) SetPlayer(ctrl PlayerController) { m.ctrl = ctrl }

// SetTrack records the latest player state. A nil state means no player is
// available. The returned command keeps the title scrolling while a track
// plays.
func (m *Model) SetTrack(st *player.State) tea.Cmd {
	if st == nil {
		m.track = nil
		m.marquee = 0
		return nil
	}
	if m.track == nil || m.track.Summary() != st.Summary() {
		m.marquee = 0
	}
	cp := *st
	m.track = &cp
	m.trackAt = m.now()
	return m.startTicker()
}

// Track returns the last player state, if any.
func (m *Model) Track() (player.State, bool) {
	if m.track == nil {
		return player.State{}, false
	}
	return *m.track, true
}

// Marquee returns how many cells the title has scrolled.
func (m *Model) Marquee() int { return m.marquee }

func (m *Model) startTicker() tea.Cmd {
	if m.ticking || !m.needsTick() {
		return nil
	}
	m.ticking = true
	m.tickSeq++
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	seq := m.tickSeq
	return common.SafeTick(marqueeInterval, func(time.Time) tea.Msg {
		return MarqueeTick{seq: seq}
	})
}

func (m *Model) handleTick(msg MarqueeTick) tea.Cmd {
	if !m.ticking || msg.seq != m.tickSeq {
		return nil
	}
	if !m.needsTick() {
		m.ticking = false
		m.marquee = 0
		return nil
	}
	if m.titleOverflows() {
		m.marquee++
	} else {
		m.marquee = 0
	}
	return m.tickCmd()
}

func (m *Model) needsTick() bool {
	return m.track != nil && m.track.Playing()
}

// elapsed is the playback position extrapolated to now.
func (m *Model) elapsed() time.Duration {
	if m.track == nil {
		return 0
	}
	return m.track.PositionAfter(m.now().Sub(m.trackAt))
}

// transportButtons lays out the player controls on the footer row, left to
// right. They exist only while a player is attached and has reported.
func (m *Model) transportButtons() []Button {
	if m.collapsed || m.height < 2 || m.track == nil || m.ctrl == nil {
		return nil
	}
	play := "[>]"
	if m.track.Playing() {
		play = "[||]"
	}
	love := "[♡]"
	if m.track.Loved {
		love = "[♥]"
	}
	specs := []struct {
		id    ButtonID
		label string
	}{
		{ButtonBack, "[<<]"},
		{ButtonPlayPause, play},
		{ButtonNext, "[>>]"},
		{ButtonLove, love},
	}

	y := m.height - 1
	x := 1
	var out []Button
	for _, s := range specs {
		w := runewidth.StringWidth(s.label)
		if x+w > m.width-1 {
			break
		}
		out = append(out, Button{
			ID:    s.id,
			Label: s.label,
			Rect:  hittest.Rect{X: x, Y: y, W: w, H: 1},
		})
		x += w + buttonGap
	}
	return out
}

func (m *Model) activeTransport() []Button {
	if !m.hovered && !m.dragging {
		return nil
	}
	return m.transportButtons()
}

// playerCommand maps a transport button to the command it sends.
func (m *Model) playerCommand(id ButtonID) (player.Command, bool) {
	switch id {
	case ButtonBack:
		return player.Previous, true
	case ButtonPlayPause:
		return player.PlayPause, true
	case ButtonNext:
		return player.Next, true
	case ButtonLove:
		if m.track != nil && m.track.Loved {
			return player.Unlove, true
		}
		return player.Love, true
	}
	return 0, false
}

func (m *Model) playerCmd(cmd player.Command) tea.Cmd {
	if m.ctrl == nil || m.track == nil {
		return nil
	}
	ctrl := m.ctrl
	return common.SafeCmd(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playerCommandTimeout)
		defer cancel()
		if err := ctrl.Do(ctx, cmd); err != nil {
			logging.WithError(err, "player "+cmd.String())
			return messages.Error{Err: err, Context: "player " + cmd.String()}
		}
		return nil
	})
}

// renderPlayerFooter draws the transport buttons followed by a progress bar
// and the playback clock.
func (m *Model) renderPlayerFooter() string {
	var b strings.Builder
	pos := 0
	for _, btn := range m.activeTransport() {
		if gap := btn.Rect.X - pos; gap > 0 {
			b.WriteString(m.styles.Footer.Render(strings.Repeat(" ", gap)))
		}
		b.WriteString(m.styles.Button.Render(btn.Label))
		pos = btn.Rect.X + btn.Rect.W
	}
	if rest := m.width - pos; rest > 0 {
		b.WriteString(m.styles.Footer.Render(m.progressText(rest)))
	}
	return b.String()
}

func (m *Model) progressText(width int) string {
	elapsed := m.elapsed()
	clock := player.FormatClock(elapsed)
	if m.track.Length > 0 {
		clock += "/" + player.FormatClock(m.track.Length)
	}
	barW := width - runewidth.StringWidth(clock) - 3
	if barW < 3 || m.track.Length <= 0 {
		return fitLine(runewidth.FillLeft(clock+" ", width), width)
	}
	filled := int(float64(barW) * float64(elapsed) / float64(m.track.Length))
	filled = clamp(filled, 0, barW)
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barW-filled)
	return fitLine(" "+bar+" "+clock+" ", width)
}

// scrollText rotates text left by offset cells, joining the end back to the
// start with a gap.
func scrollText(text string, offset int) string {
	loop := []rune(text + marqueeGap)
	if len(loop) == 0 {
		return text
	}
	off := offset % len(loop)
	return string(loop[off:]) + string(loop[:off])
}
