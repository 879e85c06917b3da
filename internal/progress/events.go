package progress

// Event is a course event raised by a module sequencer and consumed by the
// Store. The set is closed.
type Event interface {
	courseEvent()
}

// PointsAwarded reports that an award key earned points for the first time.
type PointsAwarded struct {
	ModuleID int
	Key      string
	Points   int
}

// ModuleCompleted reports that a module reached its final step with every
// graded award key recorded.
type ModuleCompleted struct {
	ModuleID int
	Score    int
}

// NavigationRequested asks the store to move to another module. The store
// decides whether the move is allowed.
type NavigationRequested struct {
	ModuleID int
}

func (PointsAwarded) courseEvent()       {}
func (ModuleCompleted) courseEvent()     {}
func (NavigationRequested) courseEvent() {}
