package common

import "charm.land/lipgloss/v2"

// Tokyo Night-inspired color palette
var (
	ColorBackground = lipgloss.Color("#1a1b26") // Dark blue-gray
	ColorForeground = lipgloss.Color("#a9b1d6") // Soft lavender-white
	ColorMuted      = lipgloss.Color("#565f89") // Dimmed text
	ColorBorder     = lipgloss.Color("#292e42") // Subtle borders

	ColorPrimary = lipgloss.Color("#7aa2f7") // Blue - title bar, focus
	ColorSuccess = lipgloss.Color("#9ece6a") // Green
	ColorWarning = lipgloss.Color("#e0af68") // Yellow
	ColorError   = lipgloss.Color("#f7768e") // Red - close button, errors
	ColorInfo    = lipgloss.Color("#7dcfff") // Cyan

	ColorSurface1 = lipgloss.Color("#1f2335") // Window body
	ColorSurface2 = lipgloss.Color("#24283b") // Window footer
	ColorSurface3 = lipgloss.Color("#292e42") // Title bar while idle
)
