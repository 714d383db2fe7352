package experiment

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gridqn/environment"
	"github.com/samuelfneumann/gridqn/expreplay"
)

// Collect fills replay with the transitions of the given number of
// uniformly random episodes, each in a fresh environment from factory
// and capped at maxSteps steps. Episodes run concurrently over the
// given number of workers, so the order of transitions in replay across
// episodes is unspecified. Collect returns the number of transitions
// added.
func Collect(ctx context.Context, factory environment.Factory,
	replay expreplay.ExperienceReplayer, episodes, maxSteps, workers int,
	seed uint64) (int, error) {
	if episodes < 0 || maxSteps < 1 {
		return 0, fmt.Errorf("collect: invalid episodes or step cap, "+
			"have(%v, %v)", episodes, maxSteps)
	}
	if episodes == 0 {
		return 0, nil
	}

	buffer := expreplay.NewSynchronized(replay)
	added := make([]int, episodes)

	err := forEach(ctx, episodes, workers, func(ctx context.Context,
		i int) error {
		env, err := factory()
		if err != nil {
			return err
		}
		actions, err := env.ActionSpec().NumActions()
		if err != nil {
			return err
		}

		// One source per episode keeps each episode reproducible
		// regardless of scheduling
		dist := distuv.Uniform{
			Min: 0,
			Max: float64(actions),
			Src: rand.NewSource(seed + uint64(i)),
		}
		r, err := rollout(ctx, env, maxSteps, func([]float64) (int, error) {
			action := int(dist.Rand())
			if action == actions {
				action--
			}
			return action, nil
		}, buffer.Add)
		if err != nil {
			return err
		}

		added[i] = r.steps
		return nil
	})

	total := 0
	for _, n := range added {
		total += n
	}
	if err != nil {
		return total, fmt.Errorf("collect: %w", err)
	}
	return total, nil
}
