package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all framed sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame wraps content in a double-border frame, centering it vertically and
// horizontally within the given dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// InfoCard renders a titled card at the given content width.
func InfoCard(title, body string, cw int) string {
	content := body
	if title != "" {
		content = theme.CardTitle.Render(title) + "\n" + theme.Body.Render(body)
	}
	return theme.Card.
		Width(cw).
		Render(content)
}

// MenuButton renders a fixed-width button; locked buttons are dimmed.
func MenuButton(label string, selected, locked bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch {
	case locked:
		return style.
			Foreground(theme.TextDim).
			BorderForeground(theme.Border).
			Render("🔒 " + label)
	case selected:
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	}
	return style.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(label)
}
