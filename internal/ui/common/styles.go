package common

import "charm.land/lipgloss/v2"

// Styles contains all the application styles
type Styles struct {
	// Floating window
	TitleBar       lipgloss.Style // Idle title row
	TitleBarActive lipgloss.Style // Title row while hovered or dragged
	Button         lipgloss.Style
	CloseButton    lipgloss.Style
	Body           lipgloss.Style
	Footer         lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusButton lipgloss.Style
	Muted        lipgloss.Style

	// Toast notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns the default application styles using Tokyo Night palette
func DefaultStyles() Styles {
	return Styles{
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Background(ColorSurface3).
			Foreground(ColorForeground),
		TitleBarActive: lipgloss.NewStyle().
			Bold(true).
			Background(ColorPrimary).
			Foreground(ColorBackground),
		Button: lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorBackground),
		CloseButton: lipgloss.NewStyle().
			Background(ColorError).
			Foreground(ColorBackground),
		Body: lipgloss.NewStyle().
			Background(ColorSurface1).
			Foreground(ColorForeground),
		Footer: lipgloss.NewStyle().
			Background(ColorSurface2).
			Foreground(ColorMuted),

		StatusBar: lipgloss.NewStyle().
			Foreground(ColorMuted),
		StatusButton: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),

		ToastSuccess: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorSuccess).
			Foreground(ColorBackground),
		ToastError: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorError).
			Foreground(ColorBackground),
		ToastWarning: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorWarning).
			Foreground(ColorBackground),
		ToastInfo: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorInfo).
			Foreground(ColorBackground),
	}
}
