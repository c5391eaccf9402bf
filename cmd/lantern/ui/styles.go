// Package ui provides the visual styling for the lantern terminal interface.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Warm lamplight on a dark terminal.
var (
	Ink       = lipgloss.Color("#F5EFE0")
	Paper     = lipgloss.Color("#101828")
	Amber     = lipgloss.Color("#E8A33D")
	AmberDim  = lipgloss.Color("#8A6A34")
	Mist      = lipgloss.Color("#8A92A6")
	Card      = lipgloss.Color("#1A2436")
	Seafoam   = lipgloss.Color("#4DB6AC")
	Rosewood  = lipgloss.Color("#E57373")
	Highlight = lipgloss.Color("#FFFFFF")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentDim  lipgloss.Color
	Muted      lipgloss.Color
	Card       lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme returns the lantern theme.
func DefaultTheme() Theme {
	return Theme{
		Foreground: Ink,
		Background: Paper,
		Accent:     Amber,
		AccentDim:  AmberDim,
		Muted:      Mist,
		Card:       Card,
		Success:    Seafoam,
		Error:      Rosewood,
	}
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style

	// Interactive
	Selected lipgloss.Style
	Option   lipgloss.Style
	Hint     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style

	// Components
	Card    lipgloss.Style
	Badge   lipgloss.Style
	Divider lipgloss.Style
	Footer  lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Accent: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Selected: lipgloss.NewStyle().
			Foreground(Highlight).
			Background(theme.AccentDim).
			Bold(true).
			Padding(0, 1),

		Option: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1),

		Hint: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.AccentDim).
			Padding(0, 2),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(theme.Background).
			Padding(0, 1).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.AccentDim),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() Styles {
	return NewStyles(DefaultTheme())
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
