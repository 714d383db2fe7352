package approximator

import (
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Linear is a linear action-value approximator, q(s) = W s + b, with one
// row of W for each action. Linear is trained by stochastic gradient
// descent on the mean squared error over all actions.
type Linear struct {
	mu sync.RWMutex // Guards weights and bias

	weights *mat.Dense // (actions x features)
	bias    *mat.Dense // (actions x 1)

	learningRate float64
	scale        float64
	seed         uint64
}

// NewLinear returns a new Linear approximator. Weights are drawn
// uniformly from [-scale, scale] using the given seed and biases are
// initialized to zero.
func NewLinear(features, actions int, learningRate, scale float64,
	seed uint64) (*Linear, error) {
	if features < 1 || actions < 1 {
		return nil, fmt.Errorf("newlinear: features and actions must be "+
			"positive, have(%v, %v)", features, actions)
	}
	if learningRate <= 0 {
		return nil, fmt.Errorf("newlinear: learning rate must be "+
			"positive, have(%v)", learningRate)
	}

	weights := mat.NewDense(actions, features, nil)
	if scale > 0 {
		initialize(weights, distuv.Uniform{
			Min: -scale,
			Max: scale,
			Src: rand.NewSource(seed),
		})
	}

	return &Linear{
		weights:      weights,
		bias:         mat.NewDense(actions, 1, nil),
		learningRate: learningRate,
		scale:        scale,
		seed:         seed,
	}, nil
}

// initialize fills a matrix of weights with values drawn from a
// univariate distribution
func initialize(weights *mat.Dense, dist distuv.Rander) {
	backingData := weights.RawMatrix().Data
	for i := range backingData {
		backingData[i] = dist.Rand()
	}
}

// Features returns the length of the state vectors the approximator
// takes as input
func (l *Linear) Features() int {
	_, c := l.weights.Dims()
	return c
}

// Actions returns the number of action values predicted for each state
func (l *Linear) Actions() int {
	r, _ := l.weights.Dims()
	return r
}

// Predict returns the action values of each state in states
func (l *Linear) Predict(states mat.Matrix) (*mat.Dense, error) {
	batch, features := states.Dims()
	if features != l.Features() {
		return nil, fmt.Errorf("predict: invalid number of features"+
			"\n\twant(%v)\n\thave(%v)", l.Features(), features)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	values := mat.NewDense(batch, l.Actions(), nil)
	values.Mul(states, l.weights.T())
	values.Apply(func(_, j int, v float64) float64 {
		return v + l.bias.At(j, 0)
	}, values)

	return values, nil
}

// TrainStep performs one gradient descent step for each row of states,
// moving the predicted action values of that state towards the same
// row of targets
func (l *Linear) TrainStep(states, targets mat.Matrix) error {
	batch, features := states.Dims()
	targetBatch, actions := targets.Dims()
	if features != l.Features() || actions != l.Actions() ||
		batch != targetBatch {
		return fmt.Errorf("trainstep: invalid dimensions\n\twant(n x %v, "+
			"n x %v)\n\thave(%v x %v, %v x %v)", l.Features(), l.Actions(),
			batch, features, targetBatch, actions)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	biasData := l.bias.RawMatrix().Data
	for i := 0; i < batch; i++ {
		state := mat.NewVecDense(features, rowData(states, i))

		// ∇MSE w.r.t. the predictions = 2/A * (q(s) - target)
		grad := mat.NewVecDense(actions, nil)
		grad.MulVec(l.weights, state)
		grad.AddVec(grad, l.bias.ColView(0))
		grad.SubVec(grad, mat.NewVecDense(actions, rowData(targets, i)))
		grad.ScaleVec(2/float64(actions), grad)

		l.weights.RankOne(l.weights, -l.learningRate, grad, state)
		floats.AddScaled(biasData, -l.learningRate, grad.RawVector().Data)
	}
	return nil
}

// Parameters returns a copy of the weights and bias of the approximator
func (l *Linear) Parameters() Parameters {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Parameters{l.weights, l.bias}.Clone()
}

// SetParameters sets the weights and bias of the approximator
func (l *Linear) SetParameters(p Parameters) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := (Parameters{l.weights, l.bias}).CopyFrom(p); err != nil {
		return fmt.Errorf("setparameters: %w", err)
	}
	return nil
}

// Clone returns a copy of the approximator which shares no storage
// with l
func (l *Linear) Clone() (ValueApproximator, error) {
	clone, err := NewLinear(l.Features(), l.Actions(), l.learningRate, 0,
		l.seed)
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}

	if err := clone.SetParameters(l.Parameters()); err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	clone.scale = l.scale
	return clone, nil
}
