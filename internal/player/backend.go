package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Backend names accepted by NewBackend.
const (
	BackendAuto      = "auto"
	BackendPlayerctl = "playerctl"
	BackendOsascript = "osascript"
	BackendNone      = "none"
)

const defaultCommandTimeout = 5 * time.Second

// ErrNoPlayer is returned when no player is running.
var ErrNoPlayer = errors.New("no player running")

// Backend talks to one kind of music player.
type Backend interface {
	// Name is the backend name as written in the config.
	Name() string
	// Fetch returns the current player state.
	Fetch(ctx context.Context) (State, error)
	// Do runs a transport command.
	Do(ctx context.Context, cmd Command) error
}

// Runner executes an external program and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// CommandError wraps a failed player command with its stderr.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return e.Command + ": " + e.Err.Error()
	}
	return e.Command + ": " + e.Stderr
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs the program with a timeout unless ctx already has a
// deadline. Trailing newlines are dropped from the output; other whitespace
// is kept since it may be a field separator.
func ExecRunner(ctx context.Context, name string, args ...string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return "", &CommandError{
			Command: name,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

var lookPath = exec.LookPath

// NewBackend returns the backend called name. playerName selects one player
// when several are running; only playerctl uses it. "none" disables the
// player and returns a nil Backend. "auto" picks the platform's backend and
// also returns nil when its program is not installed.
func NewBackend(name, playerName string, run Runner) (Backend, error) {
	if run == nil {
		run = ExecRunner
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendAuto:
		b := platformBackend(playerName, run)
		if _, err := lookPath(b.program()); err != nil {
			return nil, nil
		}
		return b, nil
	case BackendPlayerctl:
		return &Playerctl{player: playerName, run: run}, nil
	case BackendOsascript:
		return &Osascript{run: run}, nil
	case BackendNone, "off":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown player backend %q", name)
}

// ValidBackend reports whether NewBackend accepts name.
func ValidBackend(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendAuto, BackendPlayerctl, BackendOsascript, BackendNone, "off":
		return true
	}
	return false
}

type programBackend interface {
	Backend
	program() string
}

func platformBackend(playerName string, run Runner) programBackend {
	if runtime.GOOS == "darwin" {
		return &Osascript{run: run}
	}
	return &Playerctl{player: playerName, run: run}
}
