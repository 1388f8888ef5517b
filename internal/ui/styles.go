// Package ui holds the shared lipgloss styles and text helpers of the
// browse picker.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the picker palette.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	SoftMuted lipgloss.Color
	Text      lipgloss.Color
	Error     lipgloss.Color
}

// DefaultTheme uses ANSI-256 colors that read on dark and light terminals.
var DefaultTheme = Theme{
	Primary:   lipgloss.Color("63"),
	Secondary: lipgloss.Color("69"),
	Accent:    lipgloss.Color("212"),
	Muted:     lipgloss.Color("240"),
	SoftMuted: lipgloss.Color("245"),
	Text:      lipgloss.Color("252"),
	Error:     lipgloss.Color("203"),
}

var currentTheme = DefaultTheme

// Styles for the picker (initialized in ApplyTheme).
var (
	BorderStyle        lipgloss.Style
	FocusedBorderStyle lipgloss.Style
	ErrorStyle         lipgloss.Style
	HelpStyle          lipgloss.Style
	MatchStyle         lipgloss.Style
	NormalStyle        lipgloss.Style
	SelectedStyle      lipgloss.Style
	SubtitleStyle      lipgloss.Style
	TitleStyle         lipgloss.Style
)

func init() {
	ApplyTheme()
}

// InitTheme sets the theme and applies it.
func InitTheme(t Theme) {
	currentTheme = t
	ApplyTheme()
}

// ApplyTheme rebuilds every style from the current theme.
func ApplyTheme() {
	BorderStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(currentTheme.Secondary)

	FocusedBorderStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(currentTheme.Primary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(currentTheme.Error)

	HelpStyle = lipgloss.NewStyle().
		Foreground(currentTheme.SoftMuted)

	MatchStyle = lipgloss.NewStyle().
		Underline(true).
		Foreground(currentTheme.Accent)

	NormalStyle = lipgloss.NewStyle().
		Foreground(currentTheme.Text)

	SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(currentTheme.Accent)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(currentTheme.Muted)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(currentTheme.Primary)
}

// PaneStyle returns a bordered style sized to the outer width and height.
func PaneStyle(width, height int, focused bool) lipgloss.Style {
	style := BorderStyle
	if focused {
		style = FocusedBorderStyle
	}
	return style.Width(max(width-2, 0)).Height(max(height-2, 0))
}

// TruncateWithEllipsis shortens s to at most width runes, ending in "…"
// when cut.
func TruncateWithEllipsis(s string, width int) string {
	runes := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// PadRight pads s with spaces to length runes.
func PadRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
