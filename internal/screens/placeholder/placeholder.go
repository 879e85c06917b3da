package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/screen"
	"github.com/abhisek/secaware/internal/ui/layout"
	"github.com/abhisek/secaware/internal/ui/theme"
)

// PlaceholderScreen stands in for a module that has no steps yet.
type PlaceholderScreen struct {
	title       string
	description string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title.
func New(title, description string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, description: description}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("╌╌ Próximamente ╌╌")
	if p.description != "" {
		body += "\n\n" + theme.Hint.Render(p.description)
	}
	body += "\n\n" + theme.Body.Render("Este módulo aún no tiene contenido.\n¡Vuelve pronto!")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Inicio"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}
