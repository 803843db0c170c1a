package player

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/andyrewlee/dragzone/internal/logging"
	"github.com/andyrewlee/dragzone/internal/perf"
)

const (
	// DefaultPollInterval is how often the player is asked for its state.
	DefaultPollInterval = 3 * time.Second
	// MinPollInterval bounds polling near the end of a track.
	MinPollInterval = 200 * time.Millisecond
)

// Poller fetches the player state on a schedule and hands every result to
// emit. It polls sooner when the current track is about to end and right
// after a command.
type Poller struct {
	backend  Backend
	interval time.Duration
	emit     func(State, error)
	wake     chan struct{}
}

// NewPoller creates a poller. Intervals below MinPollInterval are raised.
func NewPoller(backend Backend, interval time.Duration, emit func(State, error)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if interval < MinPollInterval {
		interval = MinPollInterval
	}
	if emit == nil {
		emit = func(State, error) {}
	}
	return &Poller{
		backend:  backend,
		interval: interval,
		emit:     emit,
		wake:     make(chan struct{}, 1),
	}
}

// Run polls until ctx is cancelled. It only returns an error when the
// player program is missing, which retrying will not fix.
func (p *Poller) Run(ctx context.Context) error {
	if p == nil || p.backend == nil {
		return nil
	}
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		case <-p.wake:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}

		st, err := p.backend.Fetch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		perf.Count("player_poll", 1)
		if errors.Is(err, exec.ErrNotFound) {
			return err
		}
		p.emit(st, err)
		timer.Reset(p.nextDelay(st, err))
	}
}

// Refresh asks Run to poll now instead of waiting for the next tick.
func (p *Poller) Refresh() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Do runs cmd on the backend and schedules an immediate poll so the result
// shows up without waiting for the next tick.
func (p *Poller) Do(ctx context.Context, cmd Command) error {
	logging.Debug("player %s: %s", p.backend.Name(), cmd)
	if err := p.backend.Do(ctx, cmd); err != nil {
		return err
	}
	p.Refresh()
	return nil
}

func (p *Poller) nextDelay(st State, err error) time.Duration {
	if err != nil || !st.Playing() || st.Length <= 0 {
		return p.interval
	}
	switch left := st.Remaining(); {
	case left < MinPollInterval:
		return MinPollInterval
	case left < p.interval:
		return left
	}
	return p.interval
}
