package environment

import "github.com/samuelfneumann/gridqn/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// End determines whether or not the current episode should be cut
// short. The TimeStep is left unmodified: reaching the step limit is a
// truncation, not a terminal state of the environment, so the last
// transition of a truncated episode still bootstraps from its next state.
func (s StepLimit) End(t *timestep.TimeStep) bool {
	return t.Number >= s.episodeSteps
}

// Steps returns the maximum number of steps in an episode
func (s StepLimit) Steps() int {
	return s.episodeSteps
}
