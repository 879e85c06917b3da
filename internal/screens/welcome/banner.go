package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/ui/theme"
)

const bannerArt = `
╔═╗╦ ╦╔═╗╦═╗╔╦╗╦╔═╗╔╗╔╔═╗╔═╗
║ ╦║ ║╠═╣╠╦╝ ║║║╠═╣║║║║╣ ╚═╗
╚═╝╚═╝╩ ╩╩╚══╩╝╩╩ ╩╝╚╝╚═╝╚═╝`

const bannerCompact = "G U A R D I A N E S"

// RenderBanner returns the course banner styled in the primary color, with
// the subtitle underneath. Uses a compact fallback below 34 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)
	sub := lipgloss.NewStyle().
		Foreground(theme.ArcadeCyan).
		Render("D I G I T A L E S")

	banner := bannerArt
	if width < 34 {
		banner = bannerCompact
	}
	return lipgloss.JoinVertical(lipgloss.Center, style.Render(banner), sub)
}
