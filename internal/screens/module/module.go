// Package module is the screen that walks one course module step by step.
package module

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/navigation"
	"github.com/abhisek/secaware/internal/progress"
	"github.com/abhisek/secaware/internal/router"
	"github.com/abhisek/secaware/internal/screen"
	"github.com/abhisek/secaware/internal/sequencer"
	"github.com/abhisek/secaware/internal/ui/components"
	"github.com/abhisek/secaware/internal/ui/layout"
)

const (
	noticeUnanswered = "Responde el ejercicio antes de continuar."
	noticeMissing    = "Aún faltan ejercicios por completar: %s"
	noticeFirstStep  = "Ya estás en el primer paso."
)

// ModuleScreen renders the current step of a module and turns key presses
// into sequencer calls. Course events are emitted as messages for the app
// inbox; the screen never mutates the store.
type ModuleScreen struct {
	seq            *sequencer.Sequencer
	store          *progress.Store
	summaryFactory func() screen.Screen

	exIndex  int
	choice   components.MultiChoice
	input    components.TextInput
	verdicts map[string]course.Verdict
	typed    map[string]string // last graded strength answer per key
	notice   string
}

var _ screen.Screen = (*ModuleScreen)(nil)
var _ screen.KeyHintProvider = (*ModuleScreen)(nil)

// New creates a screen for m. nextID is the module that follows m, or 0.
// summaryFactory builds the screen shown when the last module is finished.
// It panics without a progress store and fails for a module without steps.
func New(m course.Module, nextID int, store *progress.Store, summaryFactory func() screen.Screen) (*ModuleScreen, error) {
	if store == nil {
		panic("module screen: nil progress store")
	}
	seq, err := sequencer.New(m, nextID)
	if err != nil {
		return nil, err
	}
	s := &ModuleScreen{
		seq:            seq,
		store:          store,
		summaryFactory: summaryFactory,
	}
	s.loadStep()
	return s, nil
}

// Sequencer exposes the runtime state, mainly for tests.
func (s *ModuleScreen) Sequencer() *sequencer.Sequencer {
	return s.seq
}

func (s *ModuleScreen) Init() tea.Cmd {
	return s.focus()
}

// focus starts the cursor when the active exercise takes typed input.
func (s *ModuleScreen) focus() tea.Cmd {
	if ex, ok := s.exercise(); ok && ex.Kind == course.ExerciseStrength {
		return s.input.Init()
	}
	return nil
}

func (s *ModuleScreen) Title() string {
	return s.seq.Module().Title
}

// loadStep resets per-visit UI state for the current step.
func (s *ModuleScreen) loadStep() {
	s.exIndex = 0
	s.verdicts = make(map[string]course.Verdict)
	s.typed = make(map[string]string)
	s.notice = ""
	s.loadExercise()
}

func (s *ModuleScreen) loadExercise() {
	ex, ok := s.exercise()
	if !ok {
		return
	}
	switch ex.Kind {
	case course.ExerciseStrength:
		s.input = components.NewTextInput("Escribe tu contraseña", true, 64)
	default:
		s.choice = components.NewMultiChoice("", course.Options(ex))
	}
}

// exercise returns the active exercise of a graded step.
func (s *ModuleScreen) exercise() (course.Exercise, bool) {
	step := s.seq.CurrentStep()
	if !step.Graded() || s.exIndex >= len(step.Exercises) {
		return course.Exercise{}, false
	}
	return step.Exercises[s.exIndex], true
}

func (s *ModuleScreen) gate() navigation.Gate {
	return navigation.Evaluate(s.seq, s.store)
}

func (s *ModuleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if ex, has := s.exercise(); has && ex.Kind == course.ExerciseStrength {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	key := kmsg.String()
	switch key {
	case "ctrl+n":
		return s, s.next()
	case "ctrl+b":
		return s, s.back()
	}

	ex, has := s.exercise()
	if !has {
		switch key {
		case "enter", "right", "l":
			return s, s.next()
		case "left", "h":
			return s, s.back()
		}
		return s, nil
	}

	if ex.Kind == course.ExerciseStrength {
		return s, s.updateStrength(ex, kmsg)
	}
	return s, s.updateChoice(ex, kmsg)
}

func (s *ModuleScreen) updateChoice(ex course.Exercise, kmsg tea.KeyMsg) tea.Cmd {
	key := kmsg.String()
	if i, ok := s.choice.DigitIndex(key); ok {
		return s.submit(ex, course.Answer{Index: i})
	}
	switch key {
	case "enter":
		if s.choice.PendingChange() {
			return s.submit(ex, course.Answer{Index: s.choice.Selected})
		}
		return s.proceed()
	case "right":
		return s.proceed()
	case "left":
		return s.back()
	}
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(kmsg)
	return cmd
}

func (s *ModuleScreen) updateStrength(ex course.Exercise, kmsg tea.KeyMsg) tea.Cmd {
	switch kmsg.String() {
	case "tab":
		s.input.ToggleMask()
		return nil
	case "enter":
		v, graded := s.verdicts[ex.Key]
		if graded && v.Correct && s.typed[ex.Key] == s.input.Value() {
			return s.proceed()
		}
		return s.submit(ex, course.Answer{Text: s.input.Value()})
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return cmd
}

// submit grades the answer, records it and emits the resulting events.
func (s *ModuleScreen) submit(ex course.Exercise, ans course.Answer) tea.Cmd {
	v, err := course.Grade(ex, ans)
	if err != nil {
		s.notice = "Opción no válida."
		return nil
	}
	s.notice = ""

	switch ex.Kind {
	case course.ExerciseStrength:
		s.typed[ex.Key] = ans.Text
		s.input.Submit(v.Correct)
	default:
		s.choice.Choose(ans.Index, v.Correct)
	}
	s.verdicts[ex.Key] = v

	return emit(s.seq.RecordAnswer(ex.Key, ex.Points, v.Correct))
}

// proceed moves to the next exercise of the step, or to the next step once
// the current exercise has been answered.
func (s *ModuleScreen) proceed() tea.Cmd {
	step := s.seq.CurrentStep()
	ex, _ := s.exercise()
	if _, answered := s.verdicts[ex.Key]; answered && s.exIndex < len(step.Exercises)-1 {
		s.exIndex++
		s.notice = ""
		s.loadExercise()
		return s.focus()
	}
	return s.next()
}

func (s *ModuleScreen) next() tea.Cmd {
	out, events := s.seq.Advance()
	switch out {
	case sequencer.Blocked:
		if s.seq.OnLastStep() && s.seq.IsAnswered() {
			s.notice = fmt.Sprintf(noticeMissing, s.missingTitles())
		} else {
			s.notice = noticeUnanswered
		}
		return nil
	case sequencer.Moved:
		s.loadStep()
		return tea.Batch(emit(events), s.focus())
	case sequencer.Finished:
		var cmds []tea.Cmd
		cmds = append(cmds, emit(events))
		if s.summaryFactory != nil {
			scr := s.summaryFactory()
			cmds = append(cmds, func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} })
		}
		return tea.Sequence(cmds...)
	}
	// LeftModule: the app performs the move once the store accepts it.
	return emit(events)
}

func (s *ModuleScreen) back() tea.Cmd {
	if !s.gate().CanRetreat {
		s.notice = noticeFirstStep
		return nil
	}
	if navigation.RetreatCrossesModule(s.seq, s.store) {
		return emit([]progress.Event{progress.NavigationRequested{ModuleID: s.seq.Module().ID - 1}})
	}
	s.seq.Retreat()
	s.loadStep()
	return s.focus()
}

// missingTitles names the steps whose award keys are still missing.
func (s *ModuleScreen) missingTitles() string {
	missing := make(map[string]bool)
	for _, k := range s.seq.MissingKeys() {
		missing[k] = true
	}
	var titles []string
	for _, step := range s.seq.Module().Steps {
		for _, k := range step.AwardKeys() {
			if missing[k] {
				titles = append(titles, step.Title)
				break
			}
		}
	}
	return joinList(titles)
}

// emit turns course events into an ordered command.
func emit(events []progress.Event) tea.Cmd {
	switch len(events) {
	case 0:
		return nil
	case 1:
		ev := events[0]
		return func() tea.Msg { return ev }
	}
	cmds := make([]tea.Cmd, len(events))
	for i, ev := range events {
		cmds[i] = func() tea.Msg { return ev }
	}
	return tea.Sequence(cmds...)
}

func (s *ModuleScreen) KeyHints() []layout.KeyHint {
	ex, has := s.exercise()
	switch {
	case !has:
		return []layout.KeyHint{
			{Key: "→/Enter", Description: "Siguiente"},
			{Key: "←", Description: "Anterior"},
			{Key: "Esc", Description: "Inicio"},
		}
	case ex.Kind == course.ExerciseStrength:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Comprobar"},
			{Key: "Tab", Description: "Mostrar/ocultar"},
			{Key: "Ctrl+N/B", Description: "Siguiente/Anterior"},
			{Key: "Esc", Description: "Inicio"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/1-4", Description: "Elegir"},
		{Key: "Enter", Description: "Responder"},
		{Key: "←→", Description: "Anterior/Siguiente"},
		{Key: "Esc", Description: "Inicio"},
	}
}
