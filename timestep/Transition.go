package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transition is a single (s, a, r, s', terminal) tuple of experience.
// Transitions should be treated as immutable once created.
type Transition struct {
	State     *mat.VecDense
	Action    int
	Reward    float64
	NextState *mat.VecDense
	Terminal  bool
}

// NewTransition creates a Transition from the TimeStep an action was
// taken in and the TimeStep that the action lead to. The state vectors
// are copied so that later changes to either TimeStep do not leak into
// the Transition.
func NewTransition(step TimeStep, action int, next TimeStep) Transition {
	state := mat.VecDenseCopyOf(step.Observation)
	nextState := mat.VecDenseCopyOf(next.Observation)

	return Transition{
		State:     state,
		Action:    action,
		Reward:    next.Reward,
		NextState: nextState,
		Terminal:  next.Last(),
	}
}

func (t Transition) String() string {
	str := "Transition | Action: %d  |  Reward: %.2f  |  Terminal: %v"
	return fmt.Sprintf(str, t.Action, t.Reward, t.Terminal)
}
