package config

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/dragzone/internal/logging"
)

const watcherDebounce = 150 * time.Millisecond

// ErrHomeRemoved is returned by Run when the watched directory disappears.
var ErrHomeRemoved = errors.New("config directory removed")

// Watcher reloads the configuration when config.json or .env change.
// onChange receives either the new config or the error that prevented
// loading it; callers keep the previous config on error.
type Watcher struct {
	watcher *fsnotify.Watcher
	paths   *Paths
	home    string
	files   map[string]struct{}

	onChange func(*Config, error)
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher watches the directory holding the config files. The directory
// must exist.
func NewWatcher(paths *Paths, onChange func(*Config, error)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Clean(paths.Home)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return &Watcher{
		watcher: watcher,
		paths:   paths,
		home:    filepath.Clean(paths.Home),
		files: map[string]struct{}{
			filepath.Clean(paths.ConfigPath): {},
			filepath.Clean(paths.EnvPath):    {},
		},
		onChange: onChange,
		debounce: watcherDebounce,
	}, nil
}

// Run forwards file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isHomeGone(event) {
				return ErrHomeRemoved
			}
			if w.isConfigEvent(event) {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			// Overflow only means events were dropped; reload to catch up.
			logging.Warn("config watcher: %v", err)
			w.scheduleReload()
		}
	}
}

// Close stops the watcher and any pending reload.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) isHomeGone(event fsnotify.Event) bool {
	return filepath.Clean(event.Name) == w.home && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleReload() {
	if w.onChange == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	cfg, err := LoadFrom(w.paths)
	w.onChange(cfg, err)
}
