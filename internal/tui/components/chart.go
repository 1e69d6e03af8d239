// Package components holds small reusable render helpers for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rmorpir/ampaconta/internal/tui/theme"
)

// HBars renders a horizontal bar chart: one row per label, bars scaled
// against the largest value. Width bounds the whole row.
func HBars(labels []string, values []float64, color lipgloss.Color, width int) string {
	if len(labels) == 0 || len(labels) != len(values) {
		return ""
	}
	t := theme.Active

	labelW := 0
	for _, l := range labels {
		if n := lipgloss.Width(l); n > labelW {
			labelW = n
		}
	}
	if labelW > 22 {
		labelW = 22
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	// label │ bar  value
	barW := width - labelW - 13
	if barW < 6 {
		barW = 6
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(color)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for i, v := range values {
		label := labels[i]
		if lipgloss.Width(label) > labelW {
			label = truncate(label, labelW)
		}

		n := int(v / peak * float64(barW))
		if n < 1 && v > 0 {
			n = 1
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%*s", labelW, label)))
		b.WriteString(axisStyle.Render(" │ "))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f", v)))
		if i < len(values)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Card renders a titled metric box.
func Card(title, value string, width int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	body := titleStyle.Render(title) + "\n" + valueStyle.Render(value)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(width).
		Render(body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n < 1 {
		return ""
	}
	return string(r[:n-1]) + "…"
}
