package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Width is the rule width used by Section, set from the output.width config.
var Width = 66

// Score bands shared by ScoreBar and ScoreStyle.
const (
	GoodScore = 80
	FairScore = 60
)

// ScoreStyle returns the style for a 0-100 score.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= GoodScore:
		return StyleSuccess
	case score >= FairScore:
		return StyleWarning
	default:
		return StyleError
	}
}

// ScoreBar renders a bar for a 0-100 score, e.g. "████████░░ 80/100".
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s", ScoreStyle(score).Render(bar), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// TrendArrow returns a styled indicator for delta. higherIsBetter picks
// whether a rise is colored as an improvement.
func TrendArrow(delta float64, higherIsBetter bool) string {
	return trend(delta, higherIsBetter, "%+.1f")
}

// TrendArrowPercent is TrendArrow for a percentage delta.
func TrendArrowPercent(delta float64, higherIsBetter bool) string {
	return trend(delta, higherIsBetter, "%+.0f%%")
}

func trend(delta float64, higherIsBetter bool, format string) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}
	arrow := "▼ "
	if delta > 0 {
		arrow = "▲ "
	}
	text := arrow + fmt.Sprintf(format, delta)
	if (delta > 0) == higherIsBetter {
		return StyleSuccess.Render(text)
	}
	return StyleError.Render(text)
}

// Section returns a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", Width))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
