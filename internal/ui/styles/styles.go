// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across the static and progress packages.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // main accent color (bars, titles)
	Accent  color.Color // highlight color
	Success color.Color // success indicators (checkmarks)
	Error   color.Color // errors, broken links
	Muted   color.Color // secondary text
	Warning color.Color // warnings, open TODOs
}

var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Warning: lipgloss.Color("214"), // orange
	}

	// NoneTheme renders without any colors (uses terminal defaults)
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

// Active colors and styles. Updated by Init.
var (
	Primary color.Color = DefaultTheme.Primary
	Accent  color.Color = DefaultTheme.Accent

	Bold         = lipgloss.NewStyle().Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(DefaultTheme.Error)
	WarningStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(DefaultTheme.Muted)
)

// currentTheme holds the active theme
var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// ForProfile picks the theme for a terminal color profile. Terminals without
// color support and non-terminal outputs get NoneTheme.
func ForProfile(p colorprofile.Profile) Theme {
	if p <= colorprofile.Ascii {
		return NoneTheme
	}
	return DefaultTheme
}

// Init applies the theme matching the color profile. Call this before
// rendering any output.
func Init(p colorprofile.Profile) {
	applyTheme(ForProfile(p))
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	currentTheme = t
	Primary = t.Primary
	Accent = t.Accent

	plain := t == NoneTheme
	colored := func(c color.Color) lipgloss.Style {
		if plain {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(c)
	}

	Bold = lipgloss.NewStyle().Bold(!plain)
	SuccessStyle = colored(t.Success)
	ErrorStyle = colored(t.Error)
	WarningStyle = colored(t.Warning)
	MutedStyle = colored(t.Muted)
}
