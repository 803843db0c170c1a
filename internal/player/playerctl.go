package player

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// playerctlFormat asks for every field on one tab-separated line. Position
// and length are in microseconds.
const playerctlFormat = "{{status}}\t{{position}}\t{{mpris:length}}\t{{artist}}\t{{title}}\t{{album}}\t{{xesam:userRating}}"

const playerctlFields = 7

// Playerctl drives MPRIS players through the playerctl program.
type Playerctl struct {
	player string
	run    Runner
}

// Name returns "playerctl".
func (p *Playerctl) Name() string { return BackendPlayerctl }

func (p *Playerctl) program() string { return "playerctl" }

func (p *Playerctl) args(args ...string) []string {
	if p.player == "" {
		return args
	}
	return append([]string{"--player=" + p.player}, args...)
}

// Fetch reads the current track and position.
func (p *Playerctl) Fetch(ctx context.Context) (State, error) {
	out, err := p.run(ctx, p.program(), p.args("metadata", "--format", playerctlFormat)...)
	if err != nil {
		return State{}, playerctlError(err)
	}
	return parsePlayerctl(out)
}

// Do runs a transport command. MPRIS has no notion of loved tracks, so Love
// and Unlove are unsupported.
func (p *Playerctl) Do(ctx context.Context, cmd Command) error {
	var verb string
	switch cmd {
	case PlayPause:
		verb = "play-pause"
	case Next:
		verb = "next"
	case Previous:
		verb = "previous"
	default:
		return fmt.Errorf("playerctl %s: %w", cmd, errors.ErrUnsupported)
	}
	if _, err := p.run(ctx, p.program(), p.args(verb)...); err != nil {
		return playerctlError(err)
	}
	return nil
}

func playerctlError(err error) error {
	var ce *CommandError
	if errors.As(err, &ce) && strings.Contains(ce.Stderr, "No player") {
		return fmt.Errorf("playerctl: %w", ErrNoPlayer)
	}
	return err
}

func parsePlayerctl(out string) (State, error) {
	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Split(line, "\t")
	if len(fields) != playerctlFields {
		return State{}, fmt.Errorf("playerctl: expected %d fields, got %d", playerctlFields, len(fields))
	}

	st := State{
		Status: ParseStatus(fields[0]),
		Artist: strings.TrimSpace(fields[3]),
		Title:  strings.TrimSpace(fields[4]),
		Album:  strings.TrimSpace(fields[5]),
	}
	var err error
	if st.Position, err = parseMicros(fields[1]); err != nil {
		return State{}, fmt.Errorf("playerctl position: %w", err)
	}
	if st.Length, err = parseMicros(fields[2]); err != nil {
		return State{}, fmt.Errorf("playerctl length: %w", err)
	}
	if r := strings.TrimSpace(fields[6]); r != "" {
		rating, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return State{}, fmt.Errorf("playerctl rating: %w", err)
		}
		st.Loved = rating > 0
	}
	return st, nil
}

// parseMicros accepts an empty field as zero. Some players report the length
// as a float.
func parseMicros(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Microsecond, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(f * float64(time.Microsecond)), nil
}
