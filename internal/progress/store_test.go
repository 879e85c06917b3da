package progress

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore()
	p := s.GetProgress()
	assert.Equal(t, 1, p.CurrentModuleID)
	assert.Empty(t, p.ModuleStatus)
	assert.Equal(t, 0, p.TotalScore)
	assert.Equal(t, ScoreSum, s.Policy())
}

func TestCanAccessModule(t *testing.T) {
	s := NewStore()

	assert.True(t, s.CanAccessModule(1))
	assert.False(t, s.CanAccessModule(2))
	assert.False(t, s.CanAccessModule(3))
	assert.False(t, s.CanAccessModule(0))

	s.UpdateProgress(1, ModuleStatus{Completed: false, Score: 30})
	assert.False(t, s.CanAccessModule(2), "score alone never unlocks")

	s.UpdateProgress(1, ModuleStatus{Completed: true, Score: 50})
	assert.True(t, s.CanAccessModule(2))
	assert.False(t, s.CanAccessModule(3), "modules cannot be skipped")

	s.UpdateProgress(2, ModuleStatus{Completed: true, Score: 40})
	assert.True(t, s.CanAccessModule(3))
	assert.True(t, s.CanAccessModule(1))
}

func TestNavigateToModule_RejectedBeforeCompletion(t *testing.T) {
	var buf bytes.Buffer
	s := NewStore(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	ok := s.NavigateToModule(2)
	assert.False(t, ok)
	assert.Equal(t, 1, s.CurrentModule())
	assert.Contains(t, buf.String(), "navigation rejected")
	assert.Contains(t, buf.String(), "target=2")
}

func TestNavigateToModule_AllowedAfterCompletion(t *testing.T) {
	s := NewStore()
	s.UpdateProgress(1, ModuleStatus{Completed: true, Score: 50})

	require.True(t, s.NavigateToModule(2))
	assert.Equal(t, 2, s.CurrentModule())

	require.True(t, s.NavigateToModule(1))
	assert.Equal(t, 1, s.CurrentModule())
}

func TestUpdateProgress_SumPolicy(t *testing.T) {
	s := NewStore()
	s.UpdateProgress(1, ModuleStatus{Completed: true, Score: 50})
	s.UpdateProgress(2, ModuleStatus{Completed: true, Score: 30})
	assert.Equal(t, 80, s.GetProgress().TotalScore)

	// Overwrite, never accumulate.
	s.UpdateProgress(2, ModuleStatus{Completed: true, Score: 40})
	assert.Equal(t, 90, s.GetProgress().TotalScore)
}

func TestApply_RunningPolicy(t *testing.T) {
	s := NewStore(WithPolicy(ScoreRunning))

	s.Apply(PointsAwarded{ModuleID: 1, Key: "choose_password", Points: 10})
	assert.Equal(t, 10, s.GetProgress().TotalScore)

	s.Apply(PointsAwarded{ModuleID: 1, Key: "choose_password", Points: 10})
	assert.Equal(t, 10, s.GetProgress().TotalScore, "duplicate key is ignored")

	s.Apply(PointsAwarded{ModuleID: 1, Key: "password_tips", Points: 20})
	s.Apply(ModuleCompleted{ModuleID: 1, Score: 5})
	assert.Equal(t, 30, s.GetProgress().TotalScore, "running policy ignores module scores")
	assert.True(t, s.CanAccessModule(2))
}

func TestApply_SumPolicyIgnoresRunningScore(t *testing.T) {
	s := NewStore()
	s.Apply(PointsAwarded{ModuleID: 1, Key: "k", Points: 10})
	assert.Equal(t, 0, s.GetProgress().TotalScore)
	assert.Equal(t, 10, s.RunningScore())

	s.Apply(ModuleCompleted{ModuleID: 1, Score: 10})
	assert.Equal(t, 10, s.GetProgress().TotalScore)
}

func TestApply_NavigationRequested(t *testing.T) {
	s := NewStore()
	s.Apply(NavigationRequested{ModuleID: 2})
	assert.Equal(t, 1, s.CurrentModule())

	s.Apply(ModuleCompleted{ModuleID: 1, Score: 50}, NavigationRequested{ModuleID: 2})
	assert.Equal(t, 2, s.CurrentModule())

	st, ok := s.Status(1)
	require.True(t, ok)
	assert.Equal(t, ModuleStatus{Completed: true, Score: 50}, st)
}

func TestGetProgress_ReturnsCopy(t *testing.T) {
	s := NewStore()
	s.UpdateProgress(1, ModuleStatus{Completed: true, Score: 50})

	p := s.GetProgress()
	p.ModuleStatus[1] = ModuleStatus{}
	p.ModuleStatus[2] = ModuleStatus{Completed: true}

	assert.True(t, s.CanAccessModule(2))
	assert.False(t, s.CanAccessModule(3))
}

func TestParseScorePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ScorePolicy
		wantErr bool
	}{
		{"sum", ScoreSum, false},
		{"running", ScoreRunning, false},
		{"", "", true},
		{"max", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScorePolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
