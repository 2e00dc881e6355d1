package summary

import (
	"image/color"

	"github.com/abhisek/lingodeck/internal/ui/theme"
)

// scoreColor returns the theme color for a score percentage.
func scoreColor(percent float64) color.Color {
	switch {
	case percent >= 80:
		return theme.Success
	case percent >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
