// Package sequencer walks a module's steps in order and decides when the
// module is complete.
package sequencer

import (
	"errors"
	"fmt"
	"maps"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/progress"
)

// ErrEmptyModule is returned when a sequencer is built for a module with no
// steps.
var ErrEmptyModule = errors.New("module has no steps")

// Outcome describes what an Advance call did.
type Outcome int

const (
	// Blocked means the current step is not answered, or the module is on
	// its last step without being complete.
	Blocked Outcome = iota
	// Moved means the sequencer entered the next step.
	Moved
	// LeftModule means the module is complete and navigation to the next
	// module was requested.
	LeftModule
	// Finished means the module is complete and there is no next module.
	Finished
)

func (o Outcome) String() string {
	switch o {
	case Blocked:
		return "blocked"
	case Moved:
		return "moved"
	case LeftModule:
		return "left-module"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// State is a snapshot of the module's runtime state.
type State struct {
	CurrentStepIndex    int
	CurrentStepAnswered bool
	PointsAwardedKeys   map[string]bool
	ModuleComplete      bool
	Score               int
}

// Sequencer is the runtime state of one mounted module. It lives as long as
// the module is on screen.
type Sequencer struct {
	module course.Module
	nextID int

	index    int
	answered bool
	awarded  map[string]bool
	complete bool
	reported bool
	score    int

	// Reset on every step entry.
	attempted map[string]bool
	correct   map[string]bool
}

// New creates a sequencer positioned on the first step of m. nextID is the
// module to request when m is complete, or 0 if m is the last one.
func New(m course.Module, nextID int) (*Sequencer, error) {
	if !m.Available() {
		return nil, fmt.Errorf("module %d: %w", m.ID, ErrEmptyModule)
	}
	s := &Sequencer{
		module:  m,
		nextID:  nextID,
		awarded: make(map[string]bool),
	}
	s.enterStep(0)
	return s, nil
}

// Module returns the module being walked.
func (s *Sequencer) Module() course.Module { return s.module }

// CurrentStep returns the step at the current index.
func (s *Sequencer) CurrentStep() course.Step { return s.module.Steps[s.index] }

// StepIndex returns the current step index.
func (s *Sequencer) StepIndex() int { return s.index }

// StepCount returns the number of steps in the module.
func (s *Sequencer) StepCount() int { return len(s.module.Steps) }

// OnLastStep reports whether the current step is the final one.
func (s *Sequencer) OnLastStep() bool { return s.index == len(s.module.Steps)-1 }

// IsAnswered reports whether the current step allows moving forward.
func (s *Sequencer) IsAnswered() bool { return s.answered }

// IsModuleComplete reports whether the module is on its final step with
// every graded award key recorded.
func (s *Sequencer) IsModuleComplete() bool { return s.complete }

// Score returns the points earned in this module.
func (s *Sequencer) Score() int { return s.score }

// NextModuleID returns the module requested on completion, or 0.
func (s *Sequencer) NextModuleID() int { return s.nextID }

// Awarded reports whether key has earned its points.
func (s *Sequencer) Awarded(key string) bool { return s.awarded[key] }

// Attempted reports whether key was answered during the current step visit.
func (s *Sequencer) Attempted(key string) bool { return s.attempted[key] }

// AnsweredCorrectly reports whether key was answered correctly during the
// current step visit.
func (s *Sequencer) AnsweredCorrectly(key string) bool { return s.correct[key] }

// MissingKeys returns the graded award keys not yet recorded, in step order.
func (s *Sequencer) MissingKeys() []string {
	var missing []string
	for _, k := range s.module.AwardKeys() {
		if !s.awarded[k] {
			missing = append(missing, k)
		}
	}
	return missing
}

// State returns a snapshot of the runtime state.
func (s *Sequencer) State() State {
	return State{
		CurrentStepIndex:    s.index,
		CurrentStepAnswered: s.answered,
		PointsAwardedKeys:   maps.Clone(s.awarded),
		ModuleComplete:      s.complete,
		Score:               s.score,
	}
}

// Advance moves to the next step if the current one is answered. On the
// final step of a complete module it requests navigation to the next module
// instead.
func (s *Sequencer) Advance() (Outcome, []progress.Event) {
	if !s.answered {
		return Blocked, nil
	}
	if !s.OnLastStep() {
		s.enterStep(s.index + 1)
		return Moved, s.checkCompletion()
	}
	// A module without graded steps completes here rather than on an answer.
	events := s.checkCompletion()
	if !s.complete {
		return Blocked, nil
	}
	if s.nextID == 0 {
		return Finished, events
	}
	return LeftModule, append(events, progress.NavigationRequested{ModuleID: s.nextID})
}

// Retreat moves to the previous step, staying on the first one. It reports
// whether the index changed.
func (s *Sequencer) Retreat() bool {
	if s.index == 0 {
		return false
	}
	s.enterStep(s.index - 1)
	s.checkCompletion()
	return true
}

// RecordAnswer records an answer to the exercise with the given award key on
// the current step. A correct answer earns points once per key. Keys that do
// not belong to the current step are ignored.
func (s *Sequencer) RecordAnswer(key string, points int, correct bool) []progress.Event {
	step := s.CurrentStep()
	if !step.Graded() {
		return nil
	}
	if _, ok := step.Exercise(key); !ok {
		return nil
	}

	var events []progress.Event
	s.attempted[key] = true
	if correct {
		s.correct[key] = true
		if !s.awarded[key] {
			s.awarded[key] = true
			s.score += points
			events = append(events, progress.PointsAwarded{ModuleID: s.module.ID, Key: key, Points: points})
		}
	}

	if !s.answered && s.gateSatisfied(step) {
		s.answered = true
	}
	return append(events, s.checkCompletion()...)
}

func (s *Sequencer) gateSatisfied(step course.Step) bool {
	seen := s.attempted
	if step.AnswerGate() == course.GateCorrect {
		seen = s.correct
	}
	for _, k := range step.AwardKeys() {
		if !seen[k] {
			return false
		}
	}
	return true
}

func (s *Sequencer) enterStep(i int) {
	s.index = i
	s.answered = !s.module.Steps[i].Graded()
	s.attempted = make(map[string]bool)
	s.correct = make(map[string]bool)
}

// checkCompletion recomputes completion and returns ModuleCompleted the
// first time the module becomes complete.
func (s *Sequencer) checkCompletion() []progress.Event {
	s.complete = s.OnLastStep() && len(s.MissingKeys()) == 0
	if !s.complete || s.reported {
		return nil
	}
	s.reported = true
	return []progress.Event{progress.ModuleCompleted{ModuleID: s.module.ID, Score: s.score}}
}
