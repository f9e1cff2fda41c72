package components

import (
	"strings"

	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// SparklineAxis renders first and last labels under a sparkline of width w.
func SparklineAxis(first, last string, w int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	gap := w - lipgloss.Width(first) - lipgloss.Width(last)
	if gap < 1 {
		return style.Render(first)
	}
	return style.Render(first + strings.Repeat(" ", gap) + last)
}
