package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/progress"
	"github.com/abhisek/secaware/internal/router"
	"github.com/abhisek/secaware/internal/screen"
	"github.com/abhisek/secaware/internal/screens/placeholder"
)

func newHome(store *progress.Store) *HomeScreen {
	return New(course.Default(), store, func() screen.Screen {
		return placeholder.New("Resumen", "")
	})
}

func press(h *HomeScreen, code rune) tea.Msg {
	_, cmd := h.Update(tea.KeyPressMsg{Code: code})
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestNewPanicsWithoutStore(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(course.Default(), nil, nil)
}

func TestEnterRequestsFirstModule(t *testing.T) {
	h := newHome(progress.NewStore())
	msg := press(h, tea.KeyEnter)
	nav, ok := msg.(progress.NavigationRequested)
	if !ok {
		t.Fatalf("msg = %T, want NavigationRequested", msg)
	}
	if nav.ModuleID != 1 {
		t.Errorf("module = %d, want 1", nav.ModuleID)
	}
}

func TestLockedModulesAreSkipped(t *testing.T) {
	h := newHome(progress.NewStore())
	press(h, tea.KeyDown)
	if got := h.menu.Items[h.menu.Selected].Label; got != labelSummary {
		t.Errorf("selected = %q, want %q", got, labelSummary)
	}
	if _, ok := press(h, tea.KeyEnter).(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg for the summary")
	}
}

func TestResumeUnlocksNextModule(t *testing.T) {
	store := progress.NewStore()
	h := newHome(store)

	store.Apply(progress.ModuleCompleted{ModuleID: 1, Score: 50})
	h.Resume()

	if h.menu.Items[1].Disabled {
		t.Error("module 2 should be unlocked after resume")
	}
	if !strings.HasSuffix(h.menu.Items[0].Label, "✔") {
		t.Errorf("label = %q, want completion mark", h.menu.Items[0].Label)
	}
	press(h, tea.KeyDown)
	if h.menu.Selected != 1 {
		t.Errorf("selected = %d, want 1", h.menu.Selected)
	}
}

func TestCursorStartsOnCurrentModule(t *testing.T) {
	store := progress.NewStore()
	store.Apply(progress.ModuleCompleted{ModuleID: 1, Score: 50}, progress.NavigationRequested{ModuleID: 2})
	h := newHome(store)
	if h.menu.Selected != 1 {
		t.Errorf("selected = %d, want 1", h.menu.Selected)
	}
}

func TestMascotVariant(t *testing.T) {
	tests := []struct {
		name   string
		events []progress.Event
		want   MascotVariant
	}{
		{"fresh", nil, MascotAlert},
		{"in progress", []progress.Event{progress.PointsAwarded{ModuleID: 1, Key: "choose_password", Points: 10}}, MascotIdle},
		{"all done", []progress.Event{
			progress.ModuleCompleted{ModuleID: 1, Score: 50},
			progress.ModuleCompleted{ModuleID: 2, Score: 40},
		}, MascotCelebrating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := progress.NewStore()
			store.Apply(tt.events...)
			if got := newHome(store).mascot; got != tt.want {
				t.Errorf("mascot = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestView(t *testing.T) {
	h := newHome(progress.NewStore())
	view := h.View(100, 40)
	for _, want := range []string{"Guardianes de las Contraseñas", labelSummary, labelExit} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
