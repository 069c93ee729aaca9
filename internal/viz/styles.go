package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are rebuilt from CurrentTheme on every frame so a theme switch
// takes effect immediately.
type styles struct {
	title, label, value, muted, key lipgloss.Style
	ok, warn, alarm                 lipgloss.Style
	panel, canvas, graph            lipgloss.Style
}

func themeStyles(t Theme) styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(t.Muted),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(t.Muted),
		key:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		ok:     lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		alarm:  lipgloss.NewStyle().Foreground(t.Error).Bold(true).Blink(true),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		canvas: lipgloss.NewStyle().Foreground(t.Primary).Padding(0, 1),
		graph:  lipgloss.NewStyle().Foreground(t.Accent),
	}
}

// ProgressBar renders a horizontal bar for a fraction in [0, 1].
func ProgressBar(frac float64, width int, st styles) string {
	filled := int(frac * float64(width))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case frac > 0.8:
		return st.ok.Render(bar)
	case frac > 0.3:
		return st.warn.Render(bar)
	}
	return st.muted.Render(bar)
}

var sparkRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values scaled between their min and
// max.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkRunes)-1))
		b.WriteRune(sparkRunes[max(0, min(len(sparkRunes)-1, idx))])
	}
	return b.String()
}

// Separator is a thin rule with a center mark.
func Separator(width int, st styles) string {
	if width < 8 {
		return st.muted.Render(strings.Repeat("─", max(0, width)))
	}
	mid := width / 2
	return st.muted.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}
