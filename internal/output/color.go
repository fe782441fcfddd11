// Package output provides styled terminal rendering and structured encoding
// helpers for writewatch.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for good scores and improvements.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for high-severity findings and regressions.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for medium-severity findings.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles. They are rebuilt by SetNoColor.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style
	StyleLabel   lipgloss.Style
	StyleValue   lipgloss.Style
)

func init() {
	buildStyles(true)
}

func buildStyles(color bool) {
	base := lipgloss.NewStyle()
	fg := func(c lipgloss.Color) lipgloss.Style {
		if !color {
			return base
		}
		return base.Foreground(c)
	}
	StyleHeader = fg(ColorPrimary)
	StyleSuccess = fg(ColorSuccess)
	StyleError = fg(ColorError)
	StyleWarning = fg(ColorWarning)
	StyleMuted = fg(ColorMuted)
	StyleBold = base
	StyleValue = base.Width(12)
	if color {
		StyleHeader = StyleHeader.Bold(true)
		StyleBold = StyleBold.Bold(true)
		StyleValue = StyleValue.Bold(true)
	}
	StyleLabel = base.Width(24)
}

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
func SetNoColor(disabled bool) {
	noColor = disabled
	buildStyles(!disabled)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// ShouldColor reports whether output to f should be colored: the user
// wants color, NO_COLOR is unset and f is a terminal.
func ShouldColor(f *os.File, wanted bool) bool {
	if !wanted || os.Getenv("NO_COLOR") != "" || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SeverityStyle returns the style for a suggestion severity.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "high":
		return StyleError
	case "medium":
		return StyleWarning
	default:
		return StyleMuted
	}
}
