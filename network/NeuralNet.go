// Package network implements neural networks as Gorgonia computational
// graphs
package network

import (
	G "gorgonia.org/gorgonia"
)

// NeuralNet is a neural network over single-sample inputs. The network
// is a Gorgonia computational graph, which must be compiled into a VM
// and run before Output returns a prediction.
type NeuralNet interface {
	Graph() *G.ExprGraph

	// Clone returns a copy of the network on a new graph. The clone
	// owns its own weights.
	Clone() (NeuralNet, error)

	Features() int
	Outputs() int
	SetInput([]float64) error

	// Set copies the weights of another network into this one
	Set(NeuralNet) error

	Learnables() G.Nodes
	Model() []G.ValueGrad
	Output() G.Value
	Prediction() *G.Node
}
