package progress

import (
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/abhisek/secaware/internal/course"
)

// ScorePolicy selects how TotalScore is derived.
type ScorePolicy string

const (
	// ScoreSum recomputes the total as the sum of recorded module scores.
	ScoreSum ScorePolicy = "sum"
	// ScoreRunning adopts the running score accumulated from PointsAwarded.
	ScoreRunning ScorePolicy = "running"
)

// ParseScorePolicy validates a policy name.
func ParseScorePolicy(s string) (ScorePolicy, error) {
	switch p := ScorePolicy(s); p {
	case ScoreSum, ScoreRunning:
		return p, nil
	}
	return "", fmt.Errorf("unknown score policy %q (want %q or %q)", s, ScoreSum, ScoreRunning)
}

// ModuleStatus is the recorded outcome of one module.
type ModuleStatus struct {
	Completed bool
	Score     int
}

// CourseProgress is a snapshot of the session's progress.
type CourseProgress struct {
	CurrentModuleID int
	ModuleStatus    map[int]ModuleStatus
	TotalScore      int
}

// Store holds the progress of a single in-memory session. It is not safe
// for concurrent use; all mutations come from one inbox.
type Store struct {
	progress CourseProgress
	policy   ScorePolicy
	logger   *slog.Logger

	running int
	awarded map[awardID]bool
}

type awardID struct {
	module int
	key    string
}

// Option configures a Store.
type Option func(*Store)

// WithPolicy sets the score policy. The default is ScoreSum.
func WithPolicy(p ScorePolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithLogger sets the logger used for rejected navigation.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store positioned on the first module.
func NewStore(opts ...Option) *Store {
	s := &Store{
		progress: CourseProgress{
			CurrentModuleID: course.FirstModuleID,
			ModuleStatus:    make(map[int]ModuleStatus),
		},
		policy:  ScoreSum,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		awarded: make(map[awardID]bool),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetProgress returns a copy of the current progress.
func (s *Store) GetProgress() CourseProgress {
	p := s.progress
	p.ModuleStatus = maps.Clone(s.progress.ModuleStatus)
	return p
}

// Policy returns the configured score policy.
func (s *Store) Policy() ScorePolicy {
	return s.policy
}

// CurrentModule returns the id of the current module.
func (s *Store) CurrentModule() int {
	return s.progress.CurrentModuleID
}

// RunningScore returns the points accumulated from PointsAwarded events.
func (s *Store) RunningScore() int {
	return s.running
}

// Status returns the recorded status of a module.
func (s *Store) Status(moduleID int) (ModuleStatus, bool) {
	st, ok := s.progress.ModuleStatus[moduleID]
	return st, ok
}

// UpdateProgress records status for moduleID and recomputes the total.
func (s *Store) UpdateProgress(moduleID int, status ModuleStatus) {
	s.progress.ModuleStatus[moduleID] = status
	s.recomputeTotal()
}

// CanAccessModule reports whether moduleID is unlocked: the first module
// always is, any other one once its predecessor is completed.
func (s *Store) CanAccessModule(moduleID int) bool {
	if moduleID == course.FirstModuleID {
		return true
	}
	if moduleID < course.FirstModuleID {
		return false
	}
	return s.progress.ModuleStatus[moduleID-1].Completed
}

// NavigateToModule moves to moduleID if it is accessible. A rejected move
// is logged and leaves the current module unchanged.
func (s *Store) NavigateToModule(moduleID int) bool {
	if !s.CanAccessModule(moduleID) {
		s.logger.Info("navigation rejected",
			"target", moduleID,
			"current", s.progress.CurrentModuleID,
			"reason", "previous module not completed")
		return false
	}
	s.progress.CurrentModuleID = moduleID
	return true
}

// Apply consumes events in order.
func (s *Store) Apply(events ...Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case PointsAwarded:
			id := awardID{e.ModuleID, e.Key}
			if s.awarded[id] {
				continue
			}
			s.awarded[id] = true
			s.running += e.Points
			if s.policy == ScoreRunning {
				s.recomputeTotal()
			}
		case ModuleCompleted:
			s.logger.Info("module completed", "module", e.ModuleID, "score", e.Score)
			s.UpdateProgress(e.ModuleID, ModuleStatus{Completed: true, Score: e.Score})
		case NavigationRequested:
			s.NavigateToModule(e.ModuleID)
		}
	}
}

func (s *Store) recomputeTotal() {
	if s.policy == ScoreRunning {
		s.progress.TotalScore = s.running
		return
	}
	total := 0
	for _, st := range s.progress.ModuleStatus {
		total += st.Score
	}
	s.progress.TotalScore = total
}
