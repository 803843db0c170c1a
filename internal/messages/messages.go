package messages

import "github.com/andyrewlee/dragzone/internal/player"

// RegionsReloaded is sent after the config watcher swapped in new hit
// regions. Width and Height are the window size the regions were built for.
type RegionsReloaded struct {
	Title         string
	Width         int
	Height        int
	LinesPerNotch int
}

// PlayerUpdated carries the latest player poll. Err is set when the player
// could not be read; State is then empty.
type PlayerUpdated struct {
	State player.State
	Err   error
}

// CloseWindow asks the app to shut down.
type CloseWindow struct{}

// Info is a short user-facing notice.
type Info struct {
	Message string
}

// Error represents an application error
type Error struct {
	Err     error
	Context string
}

func (e Error) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}
