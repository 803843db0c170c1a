package common

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragzone/internal/logging"
	"github.com/andyrewlee/dragzone/internal/messages"
)

// SafeCmd wraps a command so a panic becomes a messages.Error instead of
// taking down the program.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("panic in command: %v\n%s", r, debug.Stack())
				msg = messages.Error{Err: fmt.Errorf("command panic: %v", r), Context: "command"}
			}
		}()
		return cmd()
	}
}

// SafeBatch wraps commands in panic recovery before batching.
func SafeBatch(cmds ...tea.Cmd) tea.Cmd {
	safe := make([]tea.Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		safe = append(safe, SafeCmd(cmd))
	}
	switch len(safe) {
	case 0:
		return nil
	case 1:
		return safe[0]
	}
	return tea.Batch(safe...)
}

// SafeTick is tea.Tick with panic recovery in the callback.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("panic in tick: %v\n%s", r, debug.Stack())
				msg = messages.Error{Err: fmt.Errorf("tick panic: %v", r), Context: "tick"}
			}
		}()
		return fn(t)
	})
}
