package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/ui/theme"
)

const titleFull = `╔═╗╦ ╦╔═╗╦═╗╔╦╗╦╔═╗╔╗╔╔═╗╔═╗
║ ╦║ ║╠═╣╠╦╝ ║║║╠═╣║║║║╣ ╚═╗
╚═╝╚═╝╩ ╩╩╚══╩╝╩╩ ╩╝╚╝╚═╝╚═╝`

const titleCompact = "G · U · A · R · D · I · A · N · E · S"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 40

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders score, completed modules and the current module in
// a bordered box matching content width.
func renderStatsBar(score, completed, total, current, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	currentStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			scoreStyle.Render(fmt.Sprintf("★%d", score)),
			doneStyle.Render(fmt.Sprintf("✔%d/%d", completed, total)),
			currentStyle.Render(fmt.Sprintf("▸%d", current)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			scoreStyle.Render(fmt.Sprintf("★ %d PUNTOS", score)),
			doneStyle.Render(fmt.Sprintf("✔ %d/%d MÓDULOS", completed, total)),
			currentStyle.Render(fmt.Sprintf("▸ MÓDULO %d", current)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderHint renders the description of the selected module.
func renderHint(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
