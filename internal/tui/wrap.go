package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const chipGap = "  "

// wrapChips joins pre-styled chips into lines no wider than width. A chip
// wider than width gets a line of its own.
func wrapChips(chips []string, width int) string {
	if width <= 0 {
		return strings.Join(chips, chipGap)
	}
	gapWidth := lipgloss.Width(chipGap)
	var out strings.Builder
	lineWidth := 0
	for _, chip := range chips {
		chipWidth := lipgloss.Width(chip)
		if lineWidth > 0 && lineWidth+gapWidth+chipWidth > width {
			out.WriteRune('\n')
			lineWidth = 0
		}
		if lineWidth > 0 {
			out.WriteString(chipGap)
			lineWidth += gapWidth
		}
		out.WriteString(chip)
		lineWidth += chipWidth
	}
	return out.String()
}
