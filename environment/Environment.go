// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/samuelfneumann/gridqn/timestep"
)

// Environment implements a simulated environment with a discrete set of
// actions enumerated from 0.
//
// Reset starts a new episode and returns its First TimeStep. Step takes
// the action with the given index and returns the resulting TimeStep
// along with whether that TimeStep is terminal.
type Environment interface {
	Reset() (timestep.TimeStep, error)
	Step(action int) (timestep.TimeStep, bool, error)
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Factory constructs independent Environments. Factories are used
// whenever more than one Environment must be stepped at the same time,
// since a single Environment is not safe for concurrent use.
type Factory func() (Environment, error)

// Ender determines when an episode should be cut short
type Ender interface {
	End(t *timestep.TimeStep) bool
}
