package player

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// nowPlayingScript prints the Music app's state as JSON, or null when the
// app is not running.
const nowPlayingScript = `(() => {
  const music = Application('Music');
  if (!music.running()) return 'null';
  const state = music.playerState();
  if (state === 'stopped') {
    return JSON.stringify({player_info: {pos: 0, state: state}});
  }
  const t = music.currentTrack;
  return JSON.stringify({
    track_info: {name: t.name(), artist: t.artist(), album: t.album(), loved: t.loved(), length: t.duration()},
    player_info: {pos: music.playerPosition(), state: state},
  });
})()`

var osascriptCommands = map[Command]string{
	PlayPause: "Application('Music').playpause()",
	Next:      "Application('Music').nextTrack()",
	Previous:  "Application('Music').previousTrack()",
	Love:      "Application('Music').currentTrack.loved = true",
	Unlove:    "Application('Music').currentTrack.loved = false",
}

// Osascript drives the macOS Music app with JavaScript for Automation.
type Osascript struct {
	run Runner
}

// Name returns "osascript".
func (o *Osascript) Name() string { return BackendOsascript }

func (o *Osascript) program() string { return "osascript" }

func (o *Osascript) script(ctx context.Context, src string) (string, error) {
	return o.run(ctx, o.program(), "-l", "JavaScript", "-e", src)
}

// Fetch reads the current track and position.
func (o *Osascript) Fetch(ctx context.Context) (State, error) {
	out, err := o.script(ctx, nowPlayingScript)
	if err != nil {
		return State{}, err
	}
	return parseOsascript(out)
}

// Do runs a transport command.
func (o *Osascript) Do(ctx context.Context, cmd Command) error {
	src, ok := osascriptCommands[cmd]
	if !ok {
		return fmt.Errorf("osascript: unknown command %s", cmd)
	}
	_, err := o.script(ctx, src)
	return err
}

type osascriptResponse struct {
	TrackInfo *struct {
		Name   string  `json:"name"`
		Artist string  `json:"artist"`
		Album  string  `json:"album"`
		Loved  bool    `json:"loved"`
		Length float64 `json:"length"`
	} `json:"track_info"`
	PlayerInfo struct {
		Pos   float64 `json:"pos"`
		State string  `json:"state"`
	} `json:"player_info"`
}

func parseOsascript(out string) (State, error) {
	out = strings.TrimSpace(out)
	if out == "" || out == "null" {
		return State{}, fmt.Errorf("osascript: %w", ErrNoPlayer)
	}
	var resp osascriptResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		return State{}, fmt.Errorf("osascript: %w", err)
	}

	st := State{
		Status:   ParseStatus(resp.PlayerInfo.State),
		Position: seconds(resp.PlayerInfo.Pos),
	}
	if t := resp.TrackInfo; t != nil {
		st.Title = t.Name
		st.Artist = t.Artist
		st.Album = t.Album
		st.Loved = t.Loved
		st.Length = seconds(t.Length)
	}
	return st, nil
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
