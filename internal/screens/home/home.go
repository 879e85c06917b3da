package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/progress"
	"github.com/abhisek/secaware/internal/router"
	"github.com/abhisek/secaware/internal/screen"
	"github.com/abhisek/secaware/internal/ui/components"
	"github.com/abhisek/secaware/internal/ui/layout"
)

const (
	labelSummary = "RESUMEN"
	labelExit    = "SALIR"
)

// HomeScreen lists the course modules. Locked modules are shown but cannot
// be selected.
type HomeScreen struct {
	catalog        *course.Catalog
	store          *progress.Store
	summaryFactory func() screen.Screen

	menu   components.Menu
	mascot MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumable = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. It panics without a progress store.
func New(catalog *course.Catalog, store *progress.Store, summaryFactory func() screen.Screen) *HomeScreen {
	if store == nil {
		panic("home: nil progress store")
	}
	h := &HomeScreen{
		catalog:        catalog,
		store:          store,
		summaryFactory: summaryFactory,
	}
	h.rebuild()
	h.menu = h.menu.WithSelected(store.CurrentModule() - course.FirstModuleID)
	return h
}

// rebuild recreates the menu from the store, keeping the cursor.
func (h *HomeScreen) rebuild() {
	items := make([]components.MenuItem, 0, h.catalog.Len()+2)
	for _, m := range h.catalog.Modules {
		id := m.ID
		items = append(items, components.MenuItem{
			Label:    moduleLabel(m, h.store),
			Disabled: !h.store.CanAccessModule(id),
			Action: func() tea.Cmd {
				return func() tea.Msg { return progress.NavigationRequested{ModuleID: id} }
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: labelSummary, Action: func() tea.Cmd {
			if h.summaryFactory == nil {
				return nil
			}
			scr := h.summaryFactory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
		}},
		components.MenuItem{Label: labelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	selected := h.menu.Selected
	h.menu = components.NewMenu(items).WithSelected(selected)
	h.mascot = h.mascotVariant()
}

func moduleLabel(m course.Module, store *progress.Store) string {
	label := fmt.Sprintf("%d. %s", m.ID, m.Title)
	if st, ok := store.Status(m.ID); ok && st.Completed {
		label += " ✔"
	}
	return label
}

func (h *HomeScreen) mascotVariant() MascotVariant {
	p := h.store.GetProgress()
	available, done := 0, 0
	for _, m := range h.catalog.Modules {
		if !m.Available() {
			continue
		}
		available++
		if p.ModuleStatus[m.ID].Completed {
			done++
		}
	}
	switch {
	case available > 0 && done == available:
		return MascotCelebrating
	case h.store.RunningScore() == 0 && len(p.ModuleStatus) == 0:
		return MascotAlert
	}
	return MascotIdle
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes locks and labels after returning from a module.
func (h *HomeScreen) Resume() tea.Cmd {
	h.rebuild()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.Size{Width: width, Height: height + layout.ChromeHeight}.Compact()

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}

	p := h.store.GetProgress()
	completed := 0
	for _, st := range p.ModuleStatus {
		if st.Completed {
			completed++
		}
	}
	sections = append(sections, renderStatsBar(p.TotalScore, completed, h.catalog.Len(), p.CurrentModuleID, cw, compact))
	sections = append(sections, h.menu.View(min(buttonWidth, cw), cw))

	if h.menu.Selected < h.catalog.Len() {
		sections = append(sections, renderHint(h.catalog.Modules[h.menu.Selected].Description, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}
