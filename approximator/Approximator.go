// Package approximator implements action-value function approximators
package approximator

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridqn/initwfn"
	"github.com/samuelfneumann/gridqn/solver"
)

// ValueApproximator maps batches of states to action values. Each row
// of a states matrix is a single state and each row of the returned
// matrix holds the value of every action in that state.
type ValueApproximator interface {
	// Predict returns the action values of a batch of states. It does
	// not change the approximator and is safe for concurrent use.
	Predict(states mat.Matrix) (*mat.Dense, error)

	// TrainStep performs one gradient step on the mean squared error
	// between the predicted action values of states and targets, one
	// row at a time
	TrainStep(states, targets mat.Matrix) error

	// Parameters returns a deep copy of the approximator's weights
	Parameters() Parameters

	// SetParameters copies p into the approximator's weights
	SetParameters(p Parameters) error

	// Clone returns an independent approximator with a copy of the
	// weights
	Clone() (ValueApproximator, error)

	Features() int
	Actions() int
}

// Kind describes the types of ValueApproximator that can be
// configured
type Kind string

// Available approximators
const (
	LinearKind Kind = "linear"
	MLPKind    Kind = "mlp"
)

// Config describes a ValueApproximator
type Config struct {
	Kind         string  `mapstructure:"kind" yaml:"kind"`
	LearningRate float64 `mapstructure:"learning_rate" yaml:"learning_rate"`

	// Hidden and Activation configure the MLP only
	Hidden     []int  `mapstructure:"hidden" yaml:"hidden"`
	Activation string `mapstructure:"activation" yaml:"activation"`

	// Solver and Init configure the MLP only. The step size of the
	// solver is the LearningRate.
	Solver solver.Settings  `mapstructure:"solver" yaml:"solver"`
	Init   initwfn.Settings `mapstructure:"init" yaml:"init"`

	// InitScale bounds the uniform initial weights of the linear
	// approximator
	InitScale float64 `mapstructure:"init_scale" yaml:"init_scale"`
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("validate: learning rate must be positive, "+
			"have(%v)", c.LearningRate)
	}

	switch Kind(strings.ToLower(c.Kind)) {
	case LinearKind:
		if c.InitScale < 0 {
			return fmt.Errorf("validate: init scale must be non-negative, "+
				"have(%v)", c.InitScale)
		}
	case MLPKind:
		for i, size := range c.Hidden {
			if size < 1 {
				return fmt.Errorf("validate: hidden layer %v must have "+
					"positive size, have(%v)", i, size)
			}
		}
	default:
		return fmt.Errorf("validate: unknown approximator kind %q", c.Kind)
	}
	return nil
}

// Create returns the ValueApproximator described by c
func (c Config) Create(features, actions int, seed uint64) (
	ValueApproximator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if Kind(strings.ToLower(c.Kind)) == LinearKind {
		return NewLinear(features, actions, c.LearningRate, c.InitScale, seed)
	}

	settings := c.Solver
	settings.StepSize = c.LearningRate
	s, err := settings.Solver()
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	init, err := c.Init.InitWFn()
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return NewMLP(features, actions, c.Hidden, c.Activation, init, s)
}

// rowData returns a copy of row i of m
func rowData(m mat.Matrix, i int) []float64 {
	_, c := m.Dims()
	return mat.Row(make([]float64, c), i, m)
}
