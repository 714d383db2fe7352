package approximator

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/gridqn/initwfn"
	"github.com/samuelfneumann/gridqn/network"
	"github.com/samuelfneumann/gridqn/solver"
)

// MLP is a neural network action-value approximator. Predictions and
// training use separate computational graphs: the training graph
// computes the gradient of the mean squared error and is stepped by a
// Gorgonia solver, after which its weights are copied to the
// prediction graph.
type MLP struct {
	mu sync.Mutex // Guards both graphs and their VMs

	predictNet network.NeuralNet
	predictVM  G.VM

	trainNet network.NeuralNet
	trainVM  G.VM
	target   *G.Node
	solver   *solver.Solver

	hidden     []int
	activation string
	init       *initwfn.InitWFn
}

// NewMLP returns a new MLP approximator with one hidden layer of size
// hidden[i] for each i. Each hidden layer uses the named activation.
func NewMLP(features, actions int, hidden []int, activation string,
	init *initwfn.InitWFn, s *solver.Solver) (*MLP, error) {
	activations := make([]*network.Activation, len(hidden))
	for i := range hidden {
		act, err := network.ParseActivation(activation)
		if err != nil {
			return nil, fmt.Errorf("newmlp: %w", err)
		}
		activations[i] = act
	}

	predictNet, err := network.NewMLP(features, actions, G.NewGraph(),
		hidden, activations, init.InitWFn())
	if err != nil {
		return nil, fmt.Errorf("newmlp: could not create network: %w", err)
	}

	return newMLPFrom(predictNet, hidden, activation, init, s)
}

// newMLPFrom builds the training graph of an MLP approximator whose
// prediction network is predictNet
func newMLPFrom(predictNet network.NeuralNet, hidden []int,
	activation string, init *initwfn.InitWFn, s *solver.Solver) (*MLP,
	error) {
	trainNet, err := predictNet.Clone()
	if err != nil {
		return nil, fmt.Errorf("newmlp: could not create training "+
			"network: %w", err)
	}
	g := trainNet.Graph()

	// Mean squared error between the predicted action values and the
	// targets
	target := G.NewMatrix(g, tensor.Float64,
		G.WithShape(1, predictNet.Outputs()), G.WithName("target"),
		G.WithInit(G.Zeroes()))
	loss := G.Must(G.Sub(trainNet.Prediction(), target))
	loss = G.Must(G.Square(loss))
	cost := G.Must(G.Mean(loss))

	if _, err := G.Grad(cost, trainNet.Learnables()...); err != nil {
		return nil, fmt.Errorf("newmlp: could not compute gradient: %w", err)
	}

	return &MLP{
		predictNet: predictNet,
		predictVM:  G.NewTapeMachine(predictNet.Graph()),
		trainNet:   trainNet,
		trainVM: G.NewTapeMachine(g,
			G.BindDualValues(trainNet.Learnables()...)),
		target:     target,
		solver:     s,
		hidden:     hidden,
		activation: activation,
		init:       init,
	}, nil
}

// Features returns the length of the state vectors the approximator
// takes as input
func (m *MLP) Features() int {
	return m.predictNet.Features()
}

// Actions returns the number of action values predicted for each state
func (m *MLP) Actions() int {
	return m.predictNet.Outputs()
}

// Predict returns the action values of each state in states
func (m *MLP) Predict(states mat.Matrix) (*mat.Dense, error) {
	batch, features := states.Dims()
	if features != m.Features() {
		return nil, fmt.Errorf("predict: invalid number of features"+
			"\n\twant(%v)\n\thave(%v)", m.Features(), features)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	values := mat.NewDense(batch, m.Actions(), nil)
	for i := 0; i < batch; i++ {
		if err := m.predictNet.SetInput(rowData(states, i)); err != nil {
			return nil, fmt.Errorf("predict: %w", err)
		}
		if err := m.predictVM.RunAll(); err != nil {
			m.predictVM.Reset()
			return nil, fmt.Errorf("predict: %w", err)
		}
		values.SetRow(i, m.predictNet.Output().Data().([]float64))
		m.predictVM.Reset()
	}
	return values, nil
}

// TrainStep takes one solver step for each row of states, moving the
// predicted action values of that state towards the same row of
// targets
func (m *MLP) TrainStep(states, targets mat.Matrix) error {
	batch, features := states.Dims()
	targetBatch, actions := targets.Dims()
	if features != m.Features() || actions != m.Actions() ||
		batch != targetBatch {
		return fmt.Errorf("trainstep: invalid dimensions\n\twant(n x %v, "+
			"n x %v)\n\thave(%v x %v, %v x %v)", m.Features(), m.Actions(),
			batch, features, targetBatch, actions)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < batch; i++ {
		if err := m.trainNet.SetInput(rowData(states, i)); err != nil {
			return fmt.Errorf("trainstep: %w", err)
		}
		targetTensor := tensor.New(
			tensor.WithShape(1, actions),
			tensor.WithBacking(rowData(targets, i)),
		)
		if err := G.Let(m.target, targetTensor); err != nil {
			return fmt.Errorf("trainstep: could not set target: %w", err)
		}

		if err := m.trainVM.RunAll(); err != nil {
			m.trainVM.Reset()
			return fmt.Errorf("trainstep: %w", err)
		}
		if err := m.solver.Step(m.trainNet.Model()); err != nil {
			m.trainVM.Reset()
			return fmt.Errorf("trainstep: could not step solver: %w", err)
		}
		m.trainVM.Reset()
	}

	if err := m.predictNet.Set(m.trainNet); err != nil {
		return fmt.Errorf("trainstep: could not sync prediction "+
			"network: %w", err)
	}
	return nil
}

// Parameters returns a copy of the weights of the network, ordered as
// weights then bias for each layer from input to output
func (m *MLP) Parameters() Parameters {
	m.mu.Lock()
	defer m.mu.Unlock()

	learnables := m.predictNet.Learnables()
	params := make(Parameters, len(learnables))
	for i, node := range learnables {
		shape := node.Shape()
		data := make([]float64, shape.TotalSize())
		copy(data, node.Value().Data().([]float64))
		params[i] = mat.NewDense(shape[0], shape[1], data)
	}
	return params
}

// SetParameters copies p into the weights of both graphs
func (m *MLP) SetParameters(p Parameters) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	learnables := m.trainNet.Learnables()
	if len(p) != len(learnables) {
		return fmt.Errorf("setparameters: incompatible number of "+
			"parameters\n\twant(%v)\n\thave(%v)", len(learnables), len(p))
	}
	for i, node := range learnables {
		shape := node.Shape()
		r, c := p[i].Dims()
		if r != shape[0] || c != shape[1] {
			return fmt.Errorf("setparameters: incompatible dimensions for "+
				"parameter %v\n\twant(%v)\n\thave(%v x %v)", i, shape, r, c)
		}
	}

	for i, node := range learnables {
		r, c := p[i].Dims()
		data := node.Value().Data().([]float64)
		for row := 0; row < r; row++ {
			mat.Row(data[row*c:(row+1)*c], row, p[i])
		}
	}
	return m.predictNet.Set(m.trainNet)
}

// Clone returns an independent MLP with a copy of the weights and a
// fresh solver
func (m *MLP) Clone() (ValueApproximator, error) {
	m.mu.Lock()
	predictNet, err := m.predictNet.Clone()
	m.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}

	s, err := m.solver.Fresh()
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	return newMLPFrom(predictNet, m.hidden, m.activation, m.init, s)
}
