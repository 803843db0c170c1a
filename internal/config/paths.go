package config

import (
	"os"
	"path/filepath"
)

// Paths holds all the file system paths used by the application
type Paths struct {
	Home       string // ~/.dragzone
	ConfigPath string // ~/.dragzone/config.json
	EnvPath    string // ~/.dragzone/.env
	LogsRoot   string // ~/.dragzone/logs
}

// DefaultPaths returns the default paths configuration
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsAt(filepath.Join(home, ".dragzone")), nil
}

// PathsAt lays out the application paths under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Home:       root,
		ConfigPath: filepath.Join(root, "config.json"),
		EnvPath:    filepath.Join(root, ".env"),
		LogsRoot:   filepath.Join(root, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogsRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
