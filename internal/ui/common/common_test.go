package common

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragzone/internal/messages"
)

func TestToastReplacedToastIgnoresOldTimer(t *testing.T) {
	m := NewToastModel()
	if cmd := m.ShowInfo("first"); cmd == nil {
		t.Fatal("expected dismiss command")
	}
	m.ShowError("second")

	m, _ = m.Update(ToastDismissed{seq: 1})
	if cur := m.Current(); cur == nil || cur.Message != "second" {
		t.Fatalf("stale dismissal removed the newer toast: %+v", cur)
	}

	m, _ = m.Update(ToastDismissed{seq: 2})
	if m.Visible() {
		t.Fatal("toast should be dismissed")
	}
}

func TestToastExpires(t *testing.T) {
	m := NewToastModel()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.ShowSuccess("saved")
	if !strings.Contains(m.View(), "saved") {
		t.Fatalf("expected toast text in %q", m.View())
	}

	now = now.Add(4 * time.Second)
	if m.Visible() || m.View() != "" {
		t.Fatal("toast should have expired")
	}
}

func TestToastDismiss(t *testing.T) {
	m := NewToastModel()
	m.ShowWarning("careful")
	m.Dismiss()
	if m.Current() != nil {
		t.Fatal("expected no current toast after Dismiss")
	}
}

func TestCopyToClipboardUsesWriter(t *testing.T) {
	prev := clipboardWrite
	defer func() { clipboardWrite = prev }()

	var got string
	clipboardWrite = func(text string) error {
		got = text
		return nil
	}
	if err := CopyToClipboard("hello"); err != nil {
		t.Fatalf("CopyToClipboard: %v", err)
	}
	if got != "hello" {
		t.Fatalf("clipboard got %q", got)
	}

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	if err := CopyToClipboard("x"); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestSafeCmdRecoversPanic(t *testing.T) {
	cmd := SafeCmd(func() tea.Msg { panic("boom") })
	msg := cmd()
	errMsg, ok := msg.(messages.Error)
	if !ok {
		t.Fatalf("expected messages.Error, got %T", msg)
	}
	if errMsg.Context != "command" || !strings.Contains(errMsg.Err.Error(), "boom") {
		t.Fatalf("unexpected error message: %v", errMsg)
	}
}

func TestSafeCmdNil(t *testing.T) {
	if SafeCmd(nil) != nil {
		t.Fatal("expected nil command")
	}
	if SafeBatch(nil, nil) != nil {
		t.Fatal("expected nil batch for nil commands")
	}
}

func TestSafeBatchSingleCommand(t *testing.T) {
	cmd := SafeBatch(nil, func() tea.Msg { return "done" })
	if cmd == nil {
		t.Fatal("expected command")
	}
	if got := cmd(); got != "done" {
		t.Fatalf("expected done, got %v", got)
	}
}
