package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys understood by the application. Values in the process
// environment win over values in ~/.dragzone/.env.
const (
	EnvLogLevel      = "DRAGZONE_LOG_LEVEL"
	EnvLinesPerNotch = "DRAGZONE_LINES_PER_NOTCH"
	EnvTitle         = "DRAGZONE_TITLE"
	EnvPlayer        = "DRAGZONE_PLAYER"
)

func (c *Config) applyEnv(envPath string) error {
	values, err := godotenv.Read(envPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", envPath, err)
		}
		values = map[string]string{}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v), true
		}
		v, ok := values[key]
		return strings.TrimSpace(v), ok
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvTitle); ok && v != "" {
		c.Window.Title = v
	}
	if v, ok := lookup(EnvPlayer); ok && v != "" {
		c.Player.Backend = v
	}
	if v, ok := lookup(EnvLinesPerNotch); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLinesPerNotch, err)
		}
		c.Wheel.LinesPerNotch = n
	}
	return nil
}
