package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// StepProgress returns a bar for step index (0-based) out of count.
func StepProgress(index, count, width int) ProgressBar {
	pct := 0.0
	if count > 0 {
		pct = float64(index+1) / float64(count)
	}
	return NewProgressBar(fmt.Sprintf("Paso %d/%d", index+1, count), pct, false, width)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// StrengthMeter renders strength as segments, colored by level.
func StrengthMeter(strength, maxStrength, segmentWidth int) string {
	style := theme.StrengthColor(strength, maxStrength)
	var b strings.Builder
	for i := 0; i < maxStrength; i++ {
		seg := strings.Repeat(" ", segmentWidth)
		if i < strength {
			b.WriteString(style.Render(seg))
		} else {
			b.WriteString(theme.ProgressEmpty.Render(seg))
		}
		if i < maxStrength-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}
