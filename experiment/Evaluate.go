package experiment

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/gridqn/approximator"
	"github.com/samuelfneumann/gridqn/environment"
	"github.com/samuelfneumann/gridqn/policy"
)

// Evaluation summarizes greedy rollouts of an approximator
type Evaluation struct {
	Returns     []float64
	Lengths     []float64
	MeanReturn  float64
	StdReturn   float64
	MeanLength  float64
	SuccessRate float64 // Fraction of rollouts ending in a terminal state
}

func (e Evaluation) String() string {
	return fmt.Sprintf("Evaluation | Episodes: %d  |  Return: %.2f ± %.2f  "+
		"|  Length: %.2f  |  Success: %.2f", len(e.Returns), e.MeanReturn,
		e.StdReturn, e.MeanLength, e.SuccessRate)
}

// Evaluate runs the given number of greedy rollouts of approx, each in
// a fresh environment from factory and capped at maxSteps steps.
// Rollouts are spread over the given number of workers. The
// approximator is only read.
func Evaluate(ctx context.Context, factory environment.Factory,
	approx approximator.ValueApproximator, episodes, maxSteps,
	workers int) (Evaluation, error) {
	if episodes < 1 || maxSteps < 1 {
		return Evaluation{}, fmt.Errorf("evaluate: episodes and step cap "+
			"must be positive, have(%v, %v)", episodes, maxSteps)
	}

	returns := make([]float64, episodes)
	lengths := make([]float64, episodes)
	success := make([]float64, episodes)

	err := forEach(ctx, episodes, workers, func(ctx context.Context,
		i int) error {
		env, err := factory()
		if err != nil {
			return err
		}
		r, err := rollout(ctx, env, maxSteps, func(state []float64) (int,
			error) {
			values, err := approx.Predict(rowVector(state))
			if err != nil {
				return 0, err
			}
			return policy.Greedy(values.RowView(0)), nil
		}, nil)
		if err != nil {
			return err
		}

		returns[i] = r.ret
		lengths[i] = float64(r.steps)
		if r.terminal {
			success[i] = 1
		}
		return nil
	})
	if err != nil {
		return Evaluation{}, fmt.Errorf("evaluate: %w", err)
	}

	mean, std := stat.MeanStdDev(returns, nil)
	if episodes == 1 {
		std = 0
	}
	return Evaluation{
		Returns:     returns,
		Lengths:     lengths,
		MeanReturn:  mean,
		StdReturn:   std,
		MeanLength:  stat.Mean(lengths, nil),
		SuccessRate: stat.Mean(success, nil),
	}, nil
}

// forEach calls fn for each index in [0, n), spread over at most
// workers goroutines. The first error cancels the remaining calls.
func forEach(ctx context.Context, n, workers int,
	fn func(context.Context, int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	group, groupCtx := errgroup.WithContext(ctx)
	indices := make(chan int)

	group.Go(func() error {
		defer close(indices)
		for i := 0; i < n; i++ {
			select {
			case indices <- i:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for i := range indices {
				if err := fn(groupCtx, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return group.Wait()
}
