// Package player reads now-playing state from a desktop music player and
// sends it transport commands.
package player

import (
	"fmt"
	"strings"
	"time"
)

// Status is the transport state reported by the player.
type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

// ParseStatus maps a player's status word to a Status. Seeking counts as
// playing since the position keeps moving.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "playing", "fast forwarding", "fastforwarding", "rewinding":
		return StatusPlaying
	case "paused":
		return StatusPaused
	}
	return StatusStopped
}

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	}
	return "stopped"
}

// State is one snapshot of the player.
type State struct {
	Title  string
	Artist string
	Album  string
	Loved  bool

	Position time.Duration
	Length   time.Duration
	Status   Status
}

// HasTrack reports whether a track is loaded.
func (s State) HasTrack() bool {
	return s.Title != "" || s.Artist != ""
}

// Playing reports whether playback is advancing.
func (s State) Playing() bool { return s.Status == StatusPlaying }

// Summary is the one-line track description, "artist - title - album",
// with missing parts left out.
func (s State) Summary() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Artist, s.Title, s.Album} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

// Remaining is the time left in the track, or zero if the length is unknown.
func (s State) Remaining() time.Duration {
	if s.Length <= 0 || s.Position >= s.Length {
		return 0
	}
	return s.Length - s.Position
}

// PositionAfter extrapolates the playback position elapsed after the
// snapshot was taken. It never runs past the track length.
func (s State) PositionAfter(elapsed time.Duration) time.Duration {
	pos := s.Position
	if s.Playing() && elapsed > 0 {
		pos += elapsed
	}
	if s.Length > 0 && pos > s.Length {
		pos = s.Length
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// Command is a transport action.
type Command int

const (
	PlayPause Command = iota
	Next
	Previous
	Love
	Unlove
)

func (c Command) String() string {
	switch c {
	case PlayPause:
		return "play-pause"
	case Next:
		return "next"
	case Previous:
		return "previous"
	case Love:
		return "love"
	case Unlove:
		return "unlove"
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// FormatClock renders d as m:ss, or h:mm:ss past the hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
