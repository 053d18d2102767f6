// Package ui owns the terminal-facing collaborators the services depend on:
// confirmation prompts, notifications, and themed rendering. The display
// theme is an explicit value passed in at construction, not ambient state.
package ui

import "fmt"

// Theme selects the display palette. It parameterizes terminal styles and
// the PDF report's header fill.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name from config or flags.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// HeaderFill returns the RGB fill color for table headers under this theme.
func (t Theme) HeaderFill() (r, g, b int) {
	if t == ThemeDark {
		return 55, 65, 81
	}
	return 220, 220, 220
}
