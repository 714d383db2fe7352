package network

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	G "gorgonia.org/gorgonia"
)

// predict runs the forward pass of net on input
func predict(net NeuralNet, input []float64) []float64 {
	vm := G.NewTapeMachine(net.Graph())
	defer vm.Close()

	So(net.SetInput(input), ShouldBeNil)
	So(vm.RunAll(), ShouldBeNil)
	out := append([]float64{}, net.Output().Data().([]float64)...)
	return out
}

func TestMLP(t *testing.T) {
	Convey("Given an MLP with all weights set to one", t, func() {
		net, err := NewMLP(2, 3, G.NewGraph(), []int{4},
			[]*Activation{ReLU()}, G.Ones())
		So(err, ShouldBeNil)

		Convey("The forward pass is the product of the layers", func() {
			// Hidden: relu(1 + 1) = 2 for each of 4 units, output 4 * 2
			So(predict(net, []float64{1, 1}), ShouldResemble,
				[]float64{8, 8, 8})

			// ReLU zeroes negative pre-activations
			So(predict(net, []float64{-1, -2}), ShouldResemble,
				[]float64{0, 0, 0})
		})

		Convey("Learnables are ordered weights then bias per layer", func() {
			learnables := net.Learnables()
			So(len(learnables), ShouldEqual, 4)
			So([]int(learnables[0].Shape()), ShouldResemble, []int{2, 4})
			So([]int(learnables[1].Shape()), ShouldResemble, []int{1, 4})
			So([]int(learnables[2].Shape()), ShouldResemble, []int{4, 3})
			So([]int(learnables[3].Shape()), ShouldResemble, []int{1, 3})
			So(len(net.Model()), ShouldEqual, 4)
		})

		Convey("A clone predicts the same but owns its weights", func() {
			clone, err := net.Clone()
			So(err, ShouldBeNil)
			So(predict(clone, []float64{1, 1}), ShouldResemble,
				[]float64{8, 8, 8})

			weights := clone.Learnables()[2].Value().Data().([]float64)
			weights[0] = 3

			So(predict(net, []float64{1, 1}), ShouldResemble,
				[]float64{8, 8, 8})
			So(predict(clone, []float64{1, 1}), ShouldResemble,
				[]float64{12, 8, 8})
		})

		Convey("Inputs of the wrong size are rejected", func() {
			So(net.SetInput([]float64{1, 2, 3}), ShouldNotBeNil)
		})

		Convey("Networks of a different shape cannot be copied", func() {
			other, err := NewMLP(2, 3, G.NewGraph(), []int{5},
				[]*Activation{ReLU()}, G.Ones())
			So(err, ShouldBeNil)
			So(net.Set(other), ShouldNotBeNil)
		})
	})

	Convey("Invalid networks are rejected", t, func() {
		_, err := NewMLP(2, 3, G.NewGraph(), []int{4}, nil, G.Ones())
		So(err, ShouldNotBeNil)

		_, err = NewMLP(0, 3, G.NewGraph(), nil, nil, G.Ones())
		So(err, ShouldNotBeNil)

		_, err = ParseActivation("softplus")
		So(err, ShouldNotBeNil)

		act, err := ParseActivation("")
		So(err, ShouldBeNil)
		So(act.IsIdentity(), ShouldBeTrue)
	})
}
