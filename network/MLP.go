package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// mlp implements a multi-layered perceptron with one output node for
// each value that should be predicted. The network takes a single
// sample, a (1, features) matrix, as input.
type mlp struct {
	g          *G.ExprGraph
	layers     []*fcLayer
	input      *G.Node
	numOutputs int
	numInputs  int

	hiddenSizes []int
	activations []*Activation

	learnables G.Nodes
	model      []G.ValueGrad

	prediction *G.Node
	predVal    G.Value
}

// NewMLP creates and returns a new multi-layered perceptron with
// outputs output nodes. The graph parameter g is populated with the
// MLP.
//
// The MLP has len(hiddenSizes) + 1 layers. A final linear layer is
// always added so that given any input, the network predicts outputs
// values. Every layer has a bias unit. For index i, hiddenSizes[i] is
// the number of nodes in hidden layer i and activations[i] is the
// activation function of hidden layer i. The parameter init determines
// the weight initialization scheme; biases are initialized to zero.
func NewMLP(features, outputs int, g *G.ExprGraph, hiddenSizes []int,
	activations []*Activation, init G.InitWFn) (NeuralNet, error) {
	if len(hiddenSizes) != len(activations) {
		msg := "newmlp: invalid number of activations\n\twant(%d)" +
			"\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(activations))
	}
	if features < 1 || outputs < 1 {
		return nil, fmt.Errorf("newmlp: features and outputs must be "+
			"positive, have(%v, %v)", features, outputs)
	}
	for i, size := range hiddenSizes {
		if size < 1 {
			return nil, fmt.Errorf("newmlp: hidden layer %v must have "+
				"positive size, have(%v)", i, size)
		}
	}

	input := G.NewMatrix(g, tensor.Float64, G.WithShape(1, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	sizes := append([]int{features}, hiddenSizes...)
	sizes = append(sizes, outputs)
	acts := append(append([]*Activation{}, activations...), Identity())

	layers := make([]*fcLayer, 0, len(sizes)-1)
	for i := 0; i < len(sizes)-1; i++ {
		layers = append(layers, newFCLayer(g, sizes[i], sizes[i+1], acts[i],
			init, i))
	}

	network := &mlp{
		g:           g,
		layers:      layers,
		input:       input,
		numOutputs:  outputs,
		numInputs:   features,
		hiddenSizes: hiddenSizes,
		activations: activations,
	}
	if _, err := network.fwd(input); err != nil {
		msg := "newmlp: could not compute forward pass: %v"
		return nil, fmt.Errorf(msg, err)
	}

	return network, nil
}

// Graph returns the computational graph of the mlp
func (m *mlp) Graph() *G.ExprGraph {
	return m.g
}

// Clone clones an mlp onto a new computational graph. The weights of
// the clone are copies of the weights of m.
func (m *mlp) Clone() (NeuralNet, error) {
	clone, err := NewMLP(m.numInputs, m.numOutputs, G.NewGraph(),
		m.hiddenSizes, m.activations, G.Zeroes())
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}

	if err := clone.Set(m); err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	return clone, nil
}

// Features returns the number of features in a single observation
// vector that the network takes as input.
func (m *mlp) Features() int {
	return m.numInputs
}

// Outputs returns the number of outputs from the network
func (m *mlp) Outputs() int {
	return m.numOutputs
}

// SetInput sets the value of the input node before running the forward
// pass.
func (m *mlp) SetInput(input []float64) error {
	if len(input) != m.numInputs {
		return fmt.Errorf("setinput: invalid number of inputs\n\twant(%v)"+
			"\n\thave(%v)", m.numInputs, len(input))
	}
	backing := make([]float64, len(input))
	copy(backing, input)

	inputTensor := tensor.New(
		tensor.WithBacking(backing),
		tensor.WithShape(m.input.Shape()...),
	)
	return G.Let(m.input, inputTensor)
}

// Set sets the weights of an mlp to be equal to the weights of another
// network with the same architecture. Weights are copied into the
// existing tensors, so any VM already bound to m keeps working.
func (m *mlp) Set(source NeuralNet) error {
	sourceNodes := source.Learnables()
	nodes := m.Learnables()
	if len(sourceNodes) != len(nodes) {
		return fmt.Errorf("set: incompatible networks\n\twant(%v "+
			"learnables)\n\thave(%v learnables)", len(nodes),
			len(sourceNodes))
	}

	for i, dest := range nodes {
		if !dest.Shape().Eq(sourceNodes[i].Shape()) {
			return fmt.Errorf("set: incompatible shapes for learnable %v "+
				"\n\twant(%v)\n\thave(%v)", i, dest.Shape(),
				sourceNodes[i].Shape())
		}
		destData := dest.Value().Data().([]float64)
		copy(destData, sourceNodes[i].Value().Data().([]float64))
	}
	return nil
}

// Learnables returns the learnable nodes in an mlp, ordered as weights
// then bias for each layer from input to output
func (m *mlp) Learnables() G.Nodes {
	if m.learnables == nil {
		learnables := make([]*G.Node, 0, 2*len(m.layers))
		for _, l := range m.layers {
			learnables = append(learnables, l.Weights(), l.Bias())
		}
		m.learnables = G.Nodes(learnables)
	}
	return m.learnables
}

// Model returns the learnables nodes with their gradients.
func (m *mlp) Model() []G.ValueGrad {
	if m.model == nil {
		m.model = make([]G.ValueGrad, 0, len(m.Learnables()))
		for _, node := range m.Learnables() {
			m.model = append(m.model, node)
		}
	}
	return m.model
}

// fwd performs the forward pass of the mlp on the input node
func (m *mlp) fwd(input *G.Node) (*G.Node, error) {
	pred := input
	var err error
	for i, l := range m.layers {
		if pred, err = l.fwd(pred); err != nil {
			msg := "fwd: could not compute forward pass of layer %v: %v"
			return nil, fmt.Errorf(msg, i, err)
		}
	}

	m.prediction = pred
	G.Read(m.prediction, &m.predVal)

	return pred, nil
}

// Output returns the output of the mlp. The output is only valid
// after the graph has been run by a VM.
func (m *mlp) Output() G.Value {
	return m.predVal
}

// Prediction returns the node of the computational graph that stores
// the output of the mlp
func (m *mlp) Prediction() *G.Node {
	return m.prediction
}
