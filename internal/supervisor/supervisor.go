// Package supervisor keeps long-running background workers alive, restarting
// them with backoff when they fail.
package supervisor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/andyrewlee/dragzone/internal/logging"
	"github.com/andyrewlee/dragzone/internal/safego"
)

// RestartPolicy controls when a worker is restarted.
type RestartPolicy int

const (
	RestartNever RestartPolicy = iota
	RestartOnError
	RestartAlways
)

// Option configures a worker.
type Option func(*worker)

// WithRestartPolicy sets the restart policy. The default is RestartOnError.
func WithRestartPolicy(policy RestartPolicy) Option {
	return func(w *worker) { w.policy = policy }
}

// WithMaxRestarts limits the number of restarts (0 = unlimited).
func WithMaxRestarts(n int) Option {
	return func(w *worker) { w.maxRestarts = n }
}

// WithBackoff sets the first delay between restarts and its cap. The delay
// doubles after every restart.
func WithBackoff(initial, max time.Duration) Option {
	return func(w *worker) {
		w.backoff = initial
		w.maxBackoff = max
	}
}

type worker struct {
	name        string
	fn          func(context.Context) error
	policy      RestartPolicy
	maxRestarts int
	backoff     time.Duration
	maxBackoff  time.Duration
}

// Supervisor owns a set of workers that share one lifetime.
type Supervisor struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	onError func(name string, err error)
}

// New creates a supervisor whose workers stop when parent is done or Stop
// is called.
func New(parent context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(parent)
	return &Supervisor{ctx: ctx, cancel: cancel}
}

// Context returns the context handed to workers.
func (s *Supervisor) Context() context.Context { return s.ctx }

// SetErrorHandler registers a handler for worker failures. It is not called
// for errors caused by shutdown.
func (s *Supervisor) SetErrorHandler(handler func(name string, err error)) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.onError = handler
	s.mu.Unlock()
}

// Stop cancels all workers and waits for them to return.
func (s *Supervisor) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// Start runs fn under supervision in its own goroutine.
func (s *Supervisor) Start(name string, fn func(context.Context) error, opts ...Option) {
	if s == nil || fn == nil {
		return
	}
	w := &worker{
		name:       name,
		fn:         fn,
		policy:     RestartOnError,
		backoff:    200 * time.Millisecond,
		maxBackoff: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.maxBackoff < w.backoff {
		w.maxBackoff = w.backoff
	}

	s.wg.Add(1)
	safego.Go("supervisor."+name, func() {
		defer s.wg.Done()
		s.loop(w)
	})
}

func (s *Supervisor) loop(w *worker) {
	delay := w.backoff
	for restarts := 0; ; restarts++ {
		if s.ctx.Err() != nil {
			return
		}
		err := w.runOnce(s.ctx)
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			s.report(w.name, err)
		}
		if !w.shouldRestart(err) {
			return
		}
		if w.maxRestarts > 0 && restarts >= w.maxRestarts {
			logging.Error("supervisor: %s exceeded max restarts (%d)", w.name, w.maxRestarts)
			return
		}
		logging.Info("supervisor: restarting %s in %s", w.name, delay)
		if !sleepCtx(s.ctx, delay) {
			return
		}
		delay *= 2
		if delay > w.maxBackoff {
			delay = w.maxBackoff
		}
	}
}

func (s *Supervisor) report(name string, err error) {
	logging.Warn("supervisor: %s failed: %v", name, err)
	s.mu.Lock()
	handler := s.onError
	s.mu.Unlock()
	if handler != nil {
		handler(name, err)
	}
}

func (w *worker) shouldRestart(err error) bool {
	switch w.policy {
	case RestartAlways:
		return true
	case RestartOnError:
		return err != nil
	default:
		return false
	}
}

// runOnce turns a panic in the worker into an error so it is restarted like
// any other failure.
func (w *worker) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", w.name, r)
			logging.Error("%v\n%s", err, debug.Stack())
		}
	}()
	return w.fn(ctx)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
