// Package navigation derives which moves are permitted from sequencer and
// store state. It holds no state of its own.
package navigation

import "github.com/abhisek/secaware/internal/course"

// StepState is the sequencer view the gate needs.
type StepState interface {
	StepIndex() int
	IsAnswered() bool
	IsModuleComplete() bool
}

// ModuleState is the store view the gate needs.
type ModuleState interface {
	CurrentModule() int
}

// Gate is the set of permitted moves for one render.
type Gate struct {
	CanAdvance             bool
	CanCrossModuleBoundary bool
	CanRetreat             bool
}

// Evaluate computes the gate for the current state.
func Evaluate(seq StepState, store ModuleState) Gate {
	return Gate{
		CanAdvance:             seq.IsAnswered(),
		CanCrossModuleBoundary: seq.IsModuleComplete(),
		CanRetreat:             seq.StepIndex() > 0 || store.CurrentModule() > course.FirstModuleID,
	}
}

// RetreatCrossesModule reports whether a retreat from the current position
// leaves the module for its predecessor.
func RetreatCrossesModule(seq StepState, store ModuleState) bool {
	return seq.StepIndex() == 0 && store.CurrentModule() > course.FirstModuleID
}
