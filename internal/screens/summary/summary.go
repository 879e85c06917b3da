package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/progress"
	"github.com/abhisek/secaware/internal/router"
	"github.com/abhisek/secaware/internal/screen"
	"github.com/abhisek/secaware/internal/ui/layout"
	"github.com/abhisek/secaware/internal/ui/theme"
)

// ModuleState is how a module appears in the summary.
type ModuleState int

const (
	StateLocked ModuleState = iota
	StateAvailable
	StateCompleted
	StateComingSoon
)

func (s ModuleState) String() string {
	switch s {
	case StateAvailable:
		return "disponible"
	case StateCompleted:
		return "completado"
	case StateComingSoon:
		return "próximamente"
	}
	return "bloqueado"
}

// Row is one module line of the summary.
type Row struct {
	ID       int
	Title    string
	State    ModuleState
	Score    int
	MaxScore int
}

// Rows derives the summary lines from the catalog and store.
func Rows(catalog *course.Catalog, store *progress.Store) []Row {
	p := store.GetProgress()
	rows := make([]Row, 0, catalog.Len())
	for _, m := range catalog.Modules {
		st := p.ModuleStatus[m.ID]
		r := Row{ID: m.ID, Title: m.Title, Score: st.Score, MaxScore: m.MaxScore()}
		switch {
		case st.Completed:
			r.State = StateCompleted
		case !store.CanAccessModule(m.ID):
			r.State = StateLocked
		case !m.Available():
			r.State = StateComingSoon
		default:
			r.State = StateAvailable
		}
		rows = append(rows, r)
	}
	return rows
}

// SummaryScreen displays per-module progress and the total score. It reads
// the store on every render, so events applied after it was built show up.
type SummaryScreen struct {
	catalog   *course.Catalog
	store     *progress.Store
	sessionID string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. It panics without a progress store.
func New(catalog *course.Catalog, store *progress.Store, sessionID string) *SummaryScreen {
	if store == nil {
		panic("summary: nil progress store")
	}
	return &SummaryScreen{
		catalog:   catalog,
		store:     store,
		sessionID: sessionID,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resumen"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continuar"},
		{Key: "Esc", Description: "Inicio"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Tu progreso"))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	center(divider)

	for _, r := range Rows(s.catalog, s.store) {
		score := fmt.Sprintf("%3d/%-3d", r.Score, r.MaxScore)
		if r.State == StateComingSoon {
			score = "   -   "
		}
		line := fmt.Sprintf("%d. %-32s %-13s %s", r.ID, r.Title, r.State, score)
		center(lipgloss.NewStyle().Foreground(stateColor(r.State)).Render(line))
	}

	center(divider)
	b.WriteString("\n")
	center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("Puntuación total: %d", s.store.GetProgress().TotalScore)))

	meta := fmt.Sprintf("política: %s", s.store.Policy())
	if s.sessionID != "" {
		meta += "   sesión: " + shortID(s.sessionID)
	}
	center(theme.Hint.Render(meta))

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// stateColor returns the theme color for a module state.
func stateColor(s ModuleState) color.Color {
	switch s {
	case StateCompleted:
		return theme.Success
	case StateAvailable:
		return theme.Text
	case StateComingSoon:
		return theme.ArcadeCyan
	default:
		return theme.TextDim
	}
}
