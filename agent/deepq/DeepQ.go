// Package deepq implements the deep Q-learning (DQN) and Double DQN
// algorithms with experience replay
package deepq

import (
	"fmt"
	"strings"

	"github.com/aunum/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridqn/agent"
	"github.com/samuelfneumann/gridqn/approximator"
	"github.com/samuelfneumann/gridqn/environment"
	"github.com/samuelfneumann/gridqn/expreplay"
	"github.com/samuelfneumann/gridqn/policy"
	ts "github.com/samuelfneumann/gridqn/timestep"
)

// DeepQ implements the deep Q-learning algorithm using the MSE loss.
//
// Each episode, the agent acts ε-greedily with respect to its online
// approximator and stores every transition in a replay buffer. After
// the episode, if the buffer holds at least a batch of transitions, a
// batch is sampled and the online approximator takes one training step
// towards the update target of each sampled transition in turn. The
// Double variant keeps a lagged target approximator for evaluating the
// next action. Its synchroniser is called after every replay
// invocation, including those which do nothing.
type DeepQ struct {
	env   environment.Environment
	ender environment.StepLimit

	online approximator.ValueApproximator
	target approximator.ValueApproximator // nil unless Double
	sync   Synchroniser                   // nil unless Double

	replay expreplay.ExperienceReplayer
	policy *policy.EGreedy

	variant   Variant
	gamma     float64
	batchSize int

	episodes int
}

// New creates and returns a new DeepQ agent. The online approximator,
// replay buffer and policy are owned by the agent from then on. For
// Double agents the target approximator starts as an exact copy of the
// online approximator.
func New(env environment.Environment, online approximator.ValueApproximator,
	replay expreplay.ExperienceReplayer, p *policy.EGreedy,
	c Config) (*DeepQ, error) {
	variant, err := ParseVariant(c.Variant)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if c.BatchSize < 1 || c.MaxSteps < 1 {
		return nil, fmt.Errorf("new: batch size and step cap must be "+
			"positive, have(%v, %v)", c.BatchSize, c.MaxSteps)
	}

	// Ensure the components agree with the environment
	features := env.ObservationSpec().Features()
	actions, err := env.ActionSpec().NumActions()
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if online.Features() != features || online.Actions() != actions {
		return nil, fmt.Errorf("new: approximator does not match "+
			"environment\n\twant(%v features, %v actions)\n\thave(%v "+
			"features, %v actions)", features, actions, online.Features(),
			online.Actions())
	}
	if p.Actions() != actions {
		return nil, fmt.Errorf("new: policy does not match environment "+
			"\n\twant(%v actions)\n\thave(%v actions)", actions, p.Actions())
	}

	d := &DeepQ{
		env:       env,
		ender:     environment.NewStepLimit(c.MaxSteps),
		online:    online,
		replay:    replay,
		policy:    p,
		variant:   variant,
		gamma:     c.Gamma,
		batchSize: c.BatchSize,
	}

	if variant == Double {
		if d.sync, err = c.Sync.Create(); err != nil {
			return nil, fmt.Errorf("new: %w", err)
		}
		if d.target, err = online.Clone(); err != nil {
			return nil, fmt.Errorf("new: could not create target "+
				"approximator: %w", err)
		}
	}

	return d, nil
}

// RunEpisode runs a single episode in the environment, followed by one
// replay and one decay of ε
func (d *DeepQ) RunEpisode() (agent.Episode, error) {
	summary := agent.Episode{Episode: d.episodes}

	step, err := d.env.Reset()
	if err != nil {
		return summary, fmt.Errorf("runepisode: %w", err)
	}

	for !d.ender.End(&step) {
		action, err := d.SelectAction(step.Observation)
		if err != nil {
			return summary, fmt.Errorf("runepisode: %w", err)
		}

		next, terminal, err := d.env.Step(action)
		if err != nil {
			return summary, fmt.Errorf("runepisode: %w", err)
		}
		if err := d.replay.Add(ts.NewTransition(step, action, next)); err != nil {
			return summary, fmt.Errorf("runepisode: %w", err)
		}

		summary.Return += next.Reward
		summary.Steps++
		step = next

		if terminal {
			summary.ReachedGoal = true
			break
		}
	}

	if summary.Trained, err = d.Replay(); err != nil {
		return summary, fmt.Errorf("runepisode: %w", err)
	}
	if d.sync != nil {
		if summary.Synced, err = d.sync.Sync(d.online, d.target); err != nil {
			return summary, fmt.Errorf("runepisode: %w", err)
		}
		if summary.Synced {
			log.Debugf("episode %v: synchronised target approximator, "+
				"sync call %v", d.episodes, d.sync.Calls())
		}
	}

	summary.Epsilon = d.policy.Decay()
	d.episodes++
	return summary, nil
}

// SelectAction selects an action ε-greedily with respect to the online
// action values of the given state
func (d *DeepQ) SelectAction(state *mat.VecDense) (int, error) {
	values, err := d.online.Predict(state.T())
	if err != nil {
		return 0, fmt.Errorf("selectaction: %w", err)
	}
	return d.policy.SelectAction(values.RowView(0)), nil
}

// Replay samples a batch from the replay buffer and takes one training
// step on the online approximator for each transition in the batch, in
// the order they were sampled. If the buffer holds fewer transitions
// than a batch, Replay does nothing. Replay returns whether the online
// approximator was trained.
func (d *DeepQ) Replay() (bool, error) {
	if d.replay.Len() < d.batchSize {
		return false, nil
	}

	batch, err := d.replay.Sample(d.batchSize)
	if err != nil {
		return false, fmt.Errorf("replay: %w", err)
	}

	for _, t := range batch {
		target, err := d.Target(t)
		if err != nil {
			return false, fmt.Errorf("replay: %w", err)
		}
		if err := d.online.TrainStep(t.State.T(), target.T()); err != nil {
			return false, fmt.Errorf("replay: %w", err)
		}
	}
	return true, nil
}

// Target returns the regression target for a transition: the online
// action values of the state, with the value of the taken action
// replaced by the bootstrapped return
func (d *DeepQ) Target(t ts.Transition) (*mat.VecDense, error) {
	values, err := d.online.Predict(t.State.T())
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	target := mat.VecDenseCopyOf(values.RowView(0))

	if t.Terminal {
		target.SetVec(t.Action, t.Reward)
		return target, nil
	}

	nextValues, err := d.online.Predict(t.NextState.T())
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	next := nextValues.RawRowView(0)

	var bootstrap float64
	switch d.variant {
	case Double:
		// Select with the online approximator, evaluate with the target
		best := floats.MaxIdx(next)
		targetValues, err := d.target.Predict(t.NextState.T())
		if err != nil {
			return nil, fmt.Errorf("target: %w", err)
		}
		bootstrap = targetValues.At(0, best)

	default:
		bootstrap = floats.Max(next)
	}

	target.SetVec(t.Action, t.Reward+d.gamma*bootstrap)
	return target, nil
}

// Online returns the online approximator
func (d *DeepQ) Online() approximator.ValueApproximator {
	return d.online
}

// TargetApproximator returns the target approximator, which is nil
// unless the agent uses the Double variant
func (d *DeepQ) TargetApproximator() approximator.ValueApproximator {
	return d.target
}

// Synchroniser returns the target synchroniser, which is nil unless the
// agent uses the Double variant
func (d *DeepQ) Synchroniser() Synchroniser {
	return d.sync
}

// Replayer returns the agent's replay buffer
func (d *DeepQ) Replayer() expreplay.ExperienceReplayer {
	return d.replay
}

// Epsilon returns the current exploration rate
func (d *DeepQ) Epsilon() float64 {
	return d.policy.Epsilon()
}

// Variant returns the variant of the agent
func (d *DeepQ) Variant() Variant {
	return d.variant
}

// Episodes returns the number of completed episodes
func (d *DeepQ) Episodes() int {
	return d.episodes
}

func (d *DeepQ) String() string {
	return fmt.Sprintf("DeepQ | Variant: %v  |  Gamma: %.2f  |  Batch: %d  "+
		"|  Steps: %d", strings.ToUpper(string(d.variant)), d.gamma,
		d.batchSize, d.ender.Steps())
}
