package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func setupLogger(t *testing.T, level Level) (string, func()) {
	t.Helper()

	logDir := t.TempDir()
	if err := Initialize(logDir, level); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	logPath := GetLogPath()
	if logPath == "" {
		t.Fatalf("GetLogPath returned empty path")
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			_ = Close()
		})
	}
	t.Cleanup(cleanup)

	return logPath, cleanup
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	return string(data)
}

func TestInitializeAndLogWrites(t *testing.T) {
	logPath, cleanup := setupLogger(t, LevelInfo)

	Info("hello %s", "world")
	cleanup()

	if !strings.HasPrefix(filepath.Base(logPath), "dragzone-") {
		t.Fatalf("unexpected log file name %q", logPath)
	}
	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO: hello world") {
		t.Fatalf("expected log line to contain message, got: %q", content)
	}
}

func TestSetEnabledDisablesLogging(t *testing.T) {
	logPath, cleanup := setupLogger(t, LevelDebug)

	SetEnabled(false)
	Info("should not write")
	cleanup()

	if content := readLog(t, logPath); len(strings.TrimSpace(content)) != 0 {
		t.Fatalf("expected no log output when disabled, got: %q", content)
	}
}

func TestLevelFiltering(t *testing.T) {
	logPath, cleanup := setupLogger(t, LevelWarn)

	Info("info message")
	Warn("warn message")
	cleanup()

	content := readLog(t, logPath)
	if strings.Contains(content, "INFO: info message") {
		t.Fatalf("did not expect info log at warn level: %q", content)
	}
	if !strings.Contains(content, "WARN: warn message") {
		t.Fatalf("expected warn log, got: %q", content)
	}
}

func TestSetOutputAndWithError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, LevelDebug)
	t.Cleanup(func() { _ = Close() })

	WithError(nil, "ignored")
	WithError(errors.New("boom"), "reload")
	SetLevel(LevelError)
	Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "ERROR: reload: boom") {
		t.Fatalf("expected wrapped error line, got %q", out)
	}
	if strings.Contains(out, "ignored") || strings.Contains(out, "hidden") {
		t.Fatalf("unexpected lines in %q", out)
	}
}

func TestLoggingWithoutInitializeIsNoop(t *testing.T) {
	_ = Close()
	Info("nobody listens")
	if GetLogPath() != "" {
		t.Fatal("expected empty log path")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{" WARN ", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"", LevelInfo, true},
		{"loud", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseLevel(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
