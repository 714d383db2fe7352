package experiment

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridqn/environment"
	ts "github.com/samuelfneumann/gridqn/timestep"
)

type rolloutResult struct {
	ret      float64
	steps    int
	terminal bool
}

// rollout runs a single episode of env, choosing actions with selector,
// until a terminal state or maxSteps steps. If observe is not nil, it is
// called with each transition.
func rollout(ctx context.Context, env environment.Environment, maxSteps int,
	selector func(state []float64) (int, error),
	observe func(ts.Transition) error) (rolloutResult, error) {
	var result rolloutResult
	ender := environment.NewStepLimit(maxSteps)

	step, err := env.Reset()
	if err != nil {
		return result, err
	}

	for !ender.End(&step) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		action, err := selector(step.Observation.RawVector().Data)
		if err != nil {
			return result, err
		}
		next, terminal, err := env.Step(action)
		if err != nil {
			return result, err
		}
		if observe != nil {
			if err := observe(ts.NewTransition(step, action, next)); err != nil {
				return result, err
			}
		}

		result.ret += next.Reward
		result.steps++
		step = next

		if terminal {
			result.terminal = true
			break
		}
	}
	return result, nil
}

// rowVector returns a 1 x len(data) matrix backed by data
func rowVector(data []float64) *mat.Dense {
	return mat.NewDense(1, len(data), data)
}
