// Package policy implements action selection policies over predicted
// action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gridqn/utils/floatutils"
	"github.com/samuelfneumann/gridqn/utils/matutils"
)

// Config describes the exploration schedule of an EGreedy policy
type Config struct {
	EpsilonStart float64 `mapstructure:"epsilon_start" yaml:"epsilon_start"`
	EpsilonMin   float64 `mapstructure:"epsilon_min" yaml:"epsilon_min"`
	EpsilonDecay float64 `mapstructure:"epsilon_decay" yaml:"epsilon_decay"`
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.EpsilonMin < 0 || c.EpsilonStart > 1 || c.EpsilonMin > c.EpsilonStart {
		return fmt.Errorf("validate: epsilons must satisfy 0 <= min <= "+
			"start <= 1, have(min=%v, start=%v)", c.EpsilonMin, c.EpsilonStart)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("validate: epsilon decay must be in (0, 1], "+
			"have(%v)", c.EpsilonDecay)
	}
	return nil
}

// Create returns the EGreedy policy described by c
func (c Config) Create(numActions int, seed uint64) (*EGreedy, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewEGreedy(c.EpsilonStart, c.EpsilonMin, c.EpsilonDecay,
		numActions, seed)
}

// EGreedy implements an ε-greedy policy over a vector of action values.
// With probability ε an action is selected uniformly at random,
// otherwise the greedy action is selected. ε decays geometrically
// towards a floor.
type EGreedy struct {
	epsilon    float64
	min        float64
	decay      float64
	numActions int
	seed       rand.Source // Seed for random number generation
}

// NewEGreedy constructs a new EGreedy policy which starts with
// ε = epsilon and decays by a factor of decay down to min
func NewEGreedy(epsilon, min, decay float64, numActions int,
	seed uint64) (*EGreedy, error) {
	if numActions < 1 {
		return nil, fmt.Errorf("newegreedy: must have at least one action")
	}
	if min < 0 || epsilon > 1 || min > epsilon {
		return nil, fmt.Errorf("newegreedy: epsilons must satisfy 0 <= min "+
			"<= epsilon <= 1, have(min=%v, epsilon=%v)", min, epsilon)
	}
	if decay <= 0 || decay > 1 {
		return nil, fmt.Errorf("newegreedy: decay must be in (0, 1], "+
			"have(%v)", decay)
	}

	return &EGreedy{
		epsilon:    epsilon,
		min:        min,
		decay:      decay,
		numActions: numActions,
		seed:       rand.NewSource(seed),
	}, nil
}

// SelectAction selects an action from the ε-greedy policy given the
// values of each action in the current state. Ties between greedy
// actions are broken in favour of the lowest index.
func (p *EGreedy) SelectAction(values mat.Vector) int {
	if values.Len() != p.numActions {
		panic(fmt.Sprintf("selectaction: invalid number of action values "+
			"\n\twant(%v)\n\thave(%v)", p.numActions, values.Len()))
	}
	greedyAction := Greedy(values)
	if p.epsilon == 0 {
		return greedyAction
	}

	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(p.numActions)
	actionProbabilities := make([]float64, p.numActions)
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedyAction] += 1.0 - p.epsilon

	dist := distuv.NewCategorical(actionProbabilities, p.seed)
	return int(dist.Rand())
}

// Greedy returns the index of the largest action value, preferring the
// lowest index on ties
func Greedy(values mat.Vector) int {
	return matutils.MaxVec(values)
}

// Decay decays ε once, never below its floor, and returns the new ε
func (p *EGreedy) Decay() float64 {
	p.epsilon = floatutils.Clip(p.epsilon*p.decay, p.min, 1.0)
	return p.epsilon
}

// Epsilon returns the current value of ε
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// Actions returns the number of actions the policy selects between
func (p *EGreedy) Actions() int {
	return p.numActions
}
