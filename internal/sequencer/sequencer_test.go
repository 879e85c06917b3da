package sequencer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/secaware/internal/course"
	"github.com/abhisek/secaware/internal/progress"
)

func newModule(t *testing.T, id int) *Sequencer {
	t.Helper()
	c := course.Default()
	m, err := c.Module(id)
	require.NoError(t, err)
	s, err := New(m, c.NextID(id))
	require.NoError(t, err)
	return s
}

func mustMove(t *testing.T, s *Sequencer) {
	t.Helper()
	out, _ := s.Advance()
	require.Equal(t, Moved, out)
}

func TestNew_EmptyModule(t *testing.T) {
	_, err := New(course.Module{ID: 3}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyModule))
}

func TestNew_StartsOnInformationalStep(t *testing.T) {
	s := newModule(t, 1)
	assert.Equal(t, 0, s.StepIndex())
	assert.Equal(t, course.StepInformational, s.CurrentStep().Kind)
	assert.True(t, s.IsAnswered())
	assert.False(t, s.IsModuleComplete())
}

func TestAdvance_BlockedOnUnansweredGradedStep(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)
	require.True(t, s.CurrentStep().Graded())
	assert.False(t, s.IsAnswered())

	out, events := s.Advance()
	assert.Equal(t, Blocked, out)
	assert.Nil(t, events)
	assert.Equal(t, 1, s.StepIndex())
}

func TestRecordAnswer_StrongPasswordScores(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)

	events := s.RecordAnswer("choose_password", 10, true)
	assert.Equal(t, []progress.Event{progress.PointsAwarded{ModuleID: 1, Key: "choose_password", Points: 10}}, events)
	assert.Equal(t, 10, s.Score())
	assert.True(t, s.IsAnswered())
}

func TestRecordAnswer_WeakPasswordStillAnswers(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)

	events := s.RecordAnswer("choose_password", 10, false)
	assert.Empty(t, events)
	assert.Equal(t, 0, s.Score())
	assert.True(t, s.IsAnswered())

	mustMove(t, s)
}

func TestRecordAnswer_Idempotent(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)

	first := s.RecordAnswer("choose_password", 10, true)
	second := s.RecordAnswer("choose_password", 10, true)
	assert.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Equal(t, 10, s.Score())
}

func TestRecordAnswer_IgnoresForeignKeys(t *testing.T) {
	s := newModule(t, 1)

	assert.Nil(t, s.RecordAnswer("choose_password", 10, true), "informational step")
	mustMove(t, s)
	assert.Nil(t, s.RecordAnswer("password_sharing", 20, true), "key of another step")
	assert.False(t, s.IsAnswered())
	assert.False(t, s.Awarded("password_sharing"))
}

func TestRecordAnswer_CorrectGateNeedsCorrectAnswer(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)
	s.RecordAnswer("choose_password", 10, true)
	mustMove(t, s)
	require.Equal(t, course.GateCorrect, s.CurrentStep().AnswerGate())

	s.RecordAnswer("password_tips", 20, false)
	assert.False(t, s.IsAnswered())
	assert.True(t, s.Attempted("password_tips"))

	s.RecordAnswer("password_tips", 20, true)
	assert.True(t, s.IsAnswered())
	assert.Equal(t, 30, s.Score())

	// A later weak attempt does not re-lock the step.
	s.RecordAnswer("password_tips", 20, false)
	assert.True(t, s.IsAnswered())
}

func TestRecordAnswer_AnyGateNeedsEveryExercise(t *testing.T) {
	s := newModule(t, 2)
	mustMove(t, s)
	require.Len(t, s.CurrentStep().Exercises, 2)

	s.RecordAnswer("email_1", 10, false)
	assert.False(t, s.IsAnswered())

	s.RecordAnswer("email_2", 10, true)
	assert.True(t, s.IsAnswered())
	assert.Equal(t, 10, s.Score())
}

func TestPasswordModule_Completion(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)
	s.RecordAnswer("choose_password", 10, true)
	mustMove(t, s)
	s.RecordAnswer("password_tips", 20, true)
	mustMove(t, s)
	require.True(t, s.OnLastStep())
	assert.False(t, s.IsModuleComplete())

	events := s.RecordAnswer("password_sharing", 20, true)
	assert.Equal(t, []progress.Event{
		progress.PointsAwarded{ModuleID: 1, Key: "password_sharing", Points: 20},
		progress.ModuleCompleted{ModuleID: 1, Score: 50},
	}, events)
	assert.True(t, s.IsModuleComplete())

	out, events := s.Advance()
	assert.Equal(t, LeftModule, out)
	assert.Equal(t, []progress.Event{progress.NavigationRequested{ModuleID: 2}}, events)
}

func TestCompletion_RequiresEveryKey(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)
	s.RecordAnswer("choose_password", 10, false)
	mustMove(t, s)
	s.RecordAnswer("password_tips", 20, true)
	mustMove(t, s)
	s.RecordAnswer("password_sharing", 20, true)

	assert.True(t, s.OnLastStep())
	assert.False(t, s.IsModuleComplete())
	assert.Equal(t, []string{"choose_password"}, s.MissingKeys())

	out, _ := s.Advance()
	assert.Equal(t, Blocked, out)

	// Go back, fix the missing answer, return to the end.
	require.True(t, s.Retreat())
	require.True(t, s.Retreat())
	assert.Equal(t, 1, s.StepIndex())
	assert.False(t, s.IsAnswered(), "graded step re-entry resets the answer")
	s.RecordAnswer("choose_password", 10, true)
	mustMove(t, s)
	s.RecordAnswer("password_tips", 20, true)

	out, events := s.Advance()
	assert.Equal(t, Moved, out)
	assert.Equal(t, []progress.Event{progress.ModuleCompleted{ModuleID: 1, Score: 50}}, events)
	assert.True(t, s.IsModuleComplete())
}

func TestCompletion_ReportedOnce(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)
	s.RecordAnswer("choose_password", 10, true)
	mustMove(t, s)
	s.RecordAnswer("password_tips", 20, true)
	mustMove(t, s)
	require.Len(t, s.RecordAnswer("password_sharing", 20, true), 2)

	s.Retreat()
	assert.False(t, s.IsModuleComplete())
	s.RecordAnswer("password_tips", 20, true)
	out, events := s.Advance()
	assert.Equal(t, Moved, out)
	assert.Empty(t, events)
	assert.True(t, s.IsModuleComplete())
}

func TestRetreat_FlooredAtZero(t *testing.T) {
	s := newModule(t, 2)
	assert.False(t, s.Retreat())
	assert.Equal(t, 0, s.StepIndex())

	mustMove(t, s)
	assert.True(t, s.Retreat())
	assert.Equal(t, 0, s.StepIndex())
	assert.True(t, s.IsAnswered())
}

func TestIndexStaysInRange(t *testing.T) {
	s := newModule(t, 2)
	keys := map[int][]string{1: {"email_1", "email_2"}, 3: {"question_0"}}

	for i := 0; i < 20; i++ {
		for _, k := range keys[s.StepIndex()] {
			s.RecordAnswer(k, 0, i%2 == 0)
		}
		if i%5 == 4 {
			s.Retreat()
		} else {
			s.Advance()
		}
		assert.GreaterOrEqual(t, s.StepIndex(), 0)
		assert.LessOrEqual(t, s.StepIndex(), s.StepCount()-1)
	}
}

func TestPhishingModule_LastModuleWithSuccessor(t *testing.T) {
	s := newModule(t, 2)
	mustMove(t, s)
	s.RecordAnswer("email_1", 10, true)
	s.RecordAnswer("email_2", 10, true)
	mustMove(t, s)
	mustMove(t, s)
	events := s.RecordAnswer("question_0", 20, true)
	assert.Contains(t, events, progress.Event(progress.ModuleCompleted{ModuleID: 2, Score: 40}))

	out, events := s.Advance()
	assert.Equal(t, LeftModule, out)
	assert.Equal(t, []progress.Event{progress.NavigationRequested{ModuleID: 3}}, events)
}

func TestAdvance_FinishedWithoutSuccessor(t *testing.T) {
	m := course.Module{ID: 1, Steps: []course.Step{{Title: "only", Kind: course.StepInformational, Info: &course.Info{}}}}
	s, err := New(m, 0)
	require.NoError(t, err)
	out, events := s.Advance()
	assert.Equal(t, Finished, out)
	assert.Equal(t, []progress.Event{progress.ModuleCompleted{ModuleID: 1, Score: 0}}, events)
	assert.True(t, s.IsModuleComplete())

	out, events = s.Advance()
	assert.Equal(t, Finished, out)
	assert.Empty(t, events)
}

func TestState_Snapshot(t *testing.T) {
	s := newModule(t, 1)
	mustMove(t, s)
	s.RecordAnswer("choose_password", 10, true)

	st := s.State()
	assert.Equal(t, State{
		CurrentStepIndex:    1,
		CurrentStepAnswered: true,
		PointsAwardedKeys:   map[string]bool{"choose_password": true},
		Score:               10,
	}, st)

	st.PointsAwardedKeys["password_tips"] = true
	assert.False(t, s.Awarded("password_tips"))
}
