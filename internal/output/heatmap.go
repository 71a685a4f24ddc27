package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	MaxIntensity = 5
	filledGlyph  = "█"
	emptyGlyph   = "░"
)

// IntensityLevel maps count to 0..5 against max using inclusive thresholds.
func IntensityLevel(count, max int) int {
	if count <= 0 || max <= 0 {
		return 0
	}
	ratio := float64(count) / float64(max)
	switch {
	case ratio >= 0.8:
		return 5
	case ratio >= 0.6:
		return 4
	case ratio >= 0.4:
		return 3
	case ratio >= 0.2:
		return 2
	default:
		return 1
	}
}

// HourBar renders level filled glyphs followed by empty ones, always
// MaxIntensity glyphs wide.
func HourBar(level int) string {
	level = clampLevel(level)
	return strings.Repeat(filledGlyph, level) + strings.Repeat(emptyGlyph, MaxIntensity-level)
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxIntensity {
		return MaxIntensity
	}
	return level
}

var (
	gradientLow, _  = colorful.Hex("#5A56E0")
	gradientHigh, _ = colorful.Hex("#EE6FF8")
)

// LevelColor is the gradient color for an intensity level.
func LevelColor(level int) string {
	t := float64(clampLevel(level)) / MaxIntensity
	return gradientLow.BlendLab(gradientHigh, t).Clamped().Hex()
}

// colorBar is HourBar with the filled part tinted by level.
func colorBar(level int, noColor bool) string {
	if noColor {
		return HourBar(level)
	}
	level = clampLevel(level)
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(LevelColor(level))).
		Render(strings.Repeat(filledGlyph, level))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render(strings.Repeat(emptyGlyph, MaxIntensity-level))
	return filled + empty
}
