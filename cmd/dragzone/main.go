package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/dragzone/internal/app"
	"github.com/andyrewlee/dragzone/internal/config"
	"github.com/andyrewlee/dragzone/internal/hittest"
	"github.com/andyrewlee/dragzone/internal/logging"
	"github.com/andyrewlee/dragzone/internal/messages"
	"github.com/andyrewlee/dragzone/internal/perf"
	"github.com/andyrewlee/dragzone/internal/player"
	"github.com/andyrewlee/dragzone/internal/safego"
	"github.com/andyrewlee/dragzone/internal/supervisor"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "usage: dragzone [--version] [file]"

// maxContentBytes caps how much of a file or pipe is loaded into the window.
const maxContentBytes = 4 << 20

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("dragzone %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		fmt.Println(usage)
		os.Exit(0)
	}
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	stdinIsTTY := term.IsTerminal(os.Stdin.Fd())
	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "dragzone must be run in a terminal")
		os.Exit(1)
	}

	content, err := readContent(os.Args[1:], os.Stdin, stdinIsTTY)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(run(content, stdinIsTTY))
}

// readContent returns the text to show: the named file, piped stdin, or
// nothing when stdin is the terminal.
func readContent(args []string, stdin io.Reader, stdinIsTTY bool) (string, error) {
	var r io.Reader
	switch {
	case len(args) > 0 && args[0] != "-":
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	case !stdinIsTTY:
		r = stdin
	default:
		return "", nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxContentBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func run(content string, stdinIsTTY bool) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", cfg.Paths.Home, err)
		return 1
	}

	level, ok := logging.ParseLevel(cfg.LogLevel)
	if err := logging.Initialize(cfg.Paths.LogsRoot, level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()
	if !ok {
		logging.Warn("unknown log level %q, using %s", cfg.LogLevel, level)
	}
	logging.Info("Starting dragzone %s, logging to %s", version, logging.GetLogPath())

	hit, err := cfg.HitRegions()
	if err != nil {
		logging.Error("invalid drag regions: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	regions := hittest.NewRegions(hit)

	a := app.New(cfg, regions, content)
	defer a.Shutdown()

	opts := []tea.ProgramOption{tea.WithFilter(mouseEventFilter)}
	if !stdinIsTTY {
		// Stdin carried the content; read keys and mouse from the terminal.
		in, _, err := tea.OpenTTY()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening terminal: %v\n", err)
			return 1
		}
		defer in.Close()
		opts = append(opts, tea.WithInput(in))
	}
	p := tea.NewProgram(a, opts...)

	safego.SetPanicHandler(func(name string, recovered any, _ []byte) {
		p.Send(messages.Error{Err: fmt.Errorf("%v", recovered), Context: name})
	})
	sup := supervisor.New(context.Background())
	sup.SetErrorHandler(func(name string, err error) {
		p.Send(messages.Error{Err: err, Context: name})
	})
	defer sup.Stop()
	startConfigWatcher(sup, cfg.Paths, regions, p.Send)
	if poller := startPlayerPoller(sup, cfg.Player, p.Send); poller != nil {
		a.SetPlayer(poller)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		if path := logging.GetLogPath(); path != "" {
			fmt.Fprintf(os.Stderr, "See %s for details\n", path)
		}
		return 1
	}
	perf.Flush("shutdown")
	logging.Info("dragzone shutdown complete")
	return 0
}

// startConfigWatcher swaps in new drag regions whenever the config files
// change. A config that fails to load leaves the current regions in place.
func startConfigWatcher(sup *supervisor.Supervisor, paths *config.Paths, regions *hittest.Regions, send func(tea.Msg)) {
	onChange := func(cfg *config.Config, err error) {
		if err == nil {
			var hit *hittest.Config
			hit, err = cfg.HitRegions()
			if err == nil {
				regions.Store(hit)
				if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
					logging.SetLevel(level)
				}
				logging.Debug("loaded %d drag regions", len(hit.Regions()))
				send(regionsReloaded(cfg))
				return
			}
		}
		logging.WithError(err, "config reload")
		send(messages.Error{Err: err, Context: "config reload"})
	}

	sup.Start("config-watcher", func(ctx context.Context) error {
		// The directory may have been removed since the last run.
		if err := paths.EnsureDirectories(); err != nil {
			return err
		}
		w, err := config.NewWatcher(paths, onChange)
		if err != nil {
			return err
		}
		defer w.Close()
		return w.Run(ctx)
	}, supervisor.WithMaxRestarts(5))
}

// regionsReloaded tells the app about a new config. The window size travels
// with the regions since the default regions span the window.
func regionsReloaded(cfg *config.Config) messages.RegionsReloaded {
	return messages.RegionsReloaded{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		LinesPerNotch: cfg.Wheel.LinesPerNotch,
	}
}

// startPlayerPoller polls the configured music player and forwards every
// result to the program. It returns nil when no player is configured or
// available.
func startPlayerPoller(sup *supervisor.Supervisor, cfg config.PlayerConfig, send func(tea.Msg)) *player.Poller {
	backend, err := player.NewBackend(cfg.Backend, cfg.Name, player.ExecRunner)
	if err != nil {
		logging.WithError(err, "player")
		return nil
	}
	if backend == nil {
		logging.Info("no music player backend, transport controls disabled")
		return nil
	}
	logging.Info("polling %s every %s", backend.Name(), cfg.PollInterval)

	poller := player.NewPoller(backend, cfg.PollInterval, func(st player.State, err error) {
		send(messages.PlayerUpdated{State: st, Err: err})
	})
	// A missing player program will not appear on a retry.
	sup.Start("player", poller.Run, supervisor.WithRestartPolicy(supervisor.RestartNever))
	return poller
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseWheelEvent    time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter drops repeated motion at the same cell and wheel bursts.
// Motion to a new cell always passes so drags track the pointer.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		if msg.X != lastMouseX || msg.Y != lastMouseY {
			lastMouseX = msg.X
			lastMouseY = msg.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	case tea.MouseWheelMsg:
		now := time.Now()
		if now.Sub(lastMouseWheelEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseWheelEvent = now
	}
	return msg
}
