package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AlignFooter places left at the start and right-aligns right within width
// cells. Widths are measured with lipgloss so styled text lines up. If the
// line does not fit a single space separates the two.
func AlignFooter(left, right string, width int) string {
	spaces := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}
