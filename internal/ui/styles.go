// Package ui renders command output for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Gold      = lipgloss.Color("#E5A00D")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
	Blue      = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Underline(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true).
			MarginBottom(1)

	PickStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gold).
			Padding(0, 1)
)

// Raw watch status characters (unstyled)
const (
	UnplayedChar   = "●"
	InProgressChar = "◐"
	PlayedChar     = "✓"
	SpoilerChar    = "!"
)

// Watch status indicator styles
var (
	UnplayedStyle   = lipgloss.NewStyle().Foreground(DimGray)
	InProgressStyle = lipgloss.NewStyle().Foreground(Gold)
	PlayedStyle     = lipgloss.NewStyle().Foreground(Green)
)
