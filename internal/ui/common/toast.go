package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ToastType identifies the type of toast notification
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
	ToastWarning
)

// Toast represents a notification message
type Toast struct {
	Message string
	Type    ToastType
}

// ToastDismissed is sent when a toast's display time runs out.
type ToastDismissed struct {
	seq int
}

// ToastModel shows one notification at a time on the status bar.
type ToastModel struct {
	current *Toast
	seq     int
	styles  Styles
	now     func() time.Time
	until   time.Time
}

// NewToastModel creates a new toast model
func NewToastModel() *ToastModel {
	return &ToastModel{
		styles: DefaultStyles(),
		now:    time.Now,
	}
}

// Show displays a toast and schedules its dismissal. A newer toast replaces
// the current one; the older timer is then ignored.
func (m *ToastModel) Show(message string, toastType ToastType, duration time.Duration) tea.Cmd {
	m.seq++
	seq := m.seq
	m.current = &Toast{Message: message, Type: toastType}
	m.until = m.now().Add(duration)
	return SafeTick(duration, func(time.Time) tea.Msg {
		return ToastDismissed{seq: seq}
	})
}

// ShowSuccess shows a success toast
func (m *ToastModel) ShowSuccess(message string) tea.Cmd {
	return m.Show(message, ToastSuccess, 3*time.Second)
}

// ShowError shows an error toast
func (m *ToastModel) ShowError(message string) tea.Cmd {
	return m.Show(message, ToastError, 5*time.Second)
}

// ShowInfo shows an info toast
func (m *ToastModel) ShowInfo(message string) tea.Cmd {
	return m.Show(message, ToastInfo, 3*time.Second)
}

// ShowWarning shows a warning toast
func (m *ToastModel) ShowWarning(message string) tea.Cmd {
	return m.Show(message, ToastWarning, 4*time.Second)
}

// Update handles messages
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	if msg, ok := msg.(ToastDismissed); ok && msg.seq == m.seq {
		m.current = nil
	}
	return m, nil
}

// View renders the toast notification
func (m *ToastModel) View() string {
	if !m.Visible() {
		return ""
	}

	var style lipgloss.Style
	var icon string
	switch m.current.Type {
	case ToastSuccess:
		style = m.styles.ToastSuccess
		icon = "✓ "
	case ToastError:
		style = m.styles.ToastError
		icon = "✗ "
	case ToastWarning:
		style = m.styles.ToastWarning
		icon = "! "
	default:
		style = m.styles.ToastInfo
		icon = "i "
	}
	return style.Render(icon + m.current.Message)
}

// Visible returns whether the toast is currently visible
func (m *ToastModel) Visible() bool {
	return m.current != nil && m.now().Before(m.until)
}

// Current returns the toast being shown, if any.
func (m *ToastModel) Current() *Toast {
	if !m.Visible() {
		return nil
	}
	return m.current
}

// Dismiss immediately hides the toast
func (m *ToastModel) Dismiss() {
	m.current = nil
}
