package approximator

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridqn/initwfn"
	"github.com/samuelfneumann/gridqn/solver"
)

const (
	features = 16
	actions  = 4
)

func oneHot(i int) *mat.VecDense {
	v := mat.NewVecDense(features, nil)
	v.SetVec(i, 1)
	return v
}

// squaredError returns the summed squared error between the predicted
// values of state and target
func squaredError(a ValueApproximator, state, target *mat.VecDense) float64 {
	values, err := a.Predict(state.T())
	So(err, ShouldBeNil)

	diff := mat.NewVecDense(target.Len(), nil)
	diff.SubVec(values.RowView(0), target)
	return mat.Dot(diff, diff)
}

// behavesLikeApproximator checks the ValueApproximator contract
func behavesLikeApproximator(newApprox func() ValueApproximator) {
	a := newApprox()
	So(a.Features(), ShouldEqual, features)
	So(a.Actions(), ShouldEqual, actions)

	Convey("Predict returns one row of action values per state", func() {
		states := mat.NewDense(3, features, nil)
		states.SetRow(0, oneHot(0).RawVector().Data)
		states.SetRow(1, oneHot(5).RawVector().Data)
		states.SetRow(2, oneHot(15).RawVector().Data)

		values, err := a.Predict(states)
		So(err, ShouldBeNil)
		r, c := values.Dims()
		So(r, ShouldEqual, 3)
		So(c, ShouldEqual, actions)

		single, err := a.Predict(oneHot(5).T())
		So(err, ShouldBeNil)
		So(mat.EqualApprox(single.RowView(0), values.RowView(1), 1e-12),
			ShouldBeTrue)
	})

	Convey("Predict does not change the parameters", func() {
		before := a.Parameters()
		_, err := a.Predict(oneHot(3).T())
		So(err, ShouldBeNil)
		So(a.Parameters().Equal(before), ShouldBeTrue)
	})

	Convey("Predict rejects states of the wrong size", func() {
		_, err := a.Predict(mat.NewDense(1, features+1, nil))
		So(err, ShouldNotBeNil)
	})

	Convey("TrainStep moves predictions towards the target", func() {
		state := oneHot(6)
		target := mat.NewVecDense(actions, []float64{1, -2, 3, 0.5})
		before := squaredError(a, state, target)

		for i := 0; i < 300; i++ {
			So(a.TrainStep(state.T(), target.T()), ShouldBeNil)
		}
		after := squaredError(a, state, target)
		So(after, ShouldBeLessThan, before/2)
	})

	Convey("TrainStep rejects mismatched batches", func() {
		err := a.TrainStep(mat.NewDense(2, features, nil),
			mat.NewDense(1, actions, nil))
		So(err, ShouldNotBeNil)
	})

	Convey("Parameters are copies", func() {
		params := a.Parameters()
		params[0].Set(0, 0, 1000)
		So(a.Parameters()[0].At(0, 0), ShouldNotEqual, 1000)
	})

	Convey("SetParameters round trips", func() {
		other := newApprox()
		So(other.TrainStep(oneHot(1).T(),
			mat.NewDense(1, actions, []float64{5, 5, 5, 5})), ShouldBeNil)

		So(a.SetParameters(other.Parameters()), ShouldBeNil)
		So(a.Parameters().Equal(other.Parameters()), ShouldBeTrue)

		want, err := other.Predict(oneHot(1).T())
		So(err, ShouldBeNil)
		have, err := a.Predict(oneHot(1).T())
		So(err, ShouldBeNil)
		So(mat.EqualApprox(want, have, 1e-12), ShouldBeTrue)
	})

	Convey("SetParameters rejects incompatible parameters", func() {
		So(a.SetParameters(Parameters{mat.NewDense(1, 1, nil)}),
			ShouldNotBeNil)
	})

	Convey("Clones are independent", func() {
		clone, err := a.Clone()
		So(err, ShouldBeNil)
		So(clone.Parameters().Equal(a.Parameters()), ShouldBeTrue)

		So(a.TrainStep(oneHot(2).T(),
			mat.NewDense(1, actions, []float64{9, 9, 9, 9})), ShouldBeNil)
		So(clone.Parameters().Equal(a.Parameters()), ShouldBeFalse)
	})

	Convey("Predict is safe for concurrent use", func() {
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					a.Predict(oneHot((w + i) % features).T())
				}
			}(w)
		}
		wg.Wait()
	})
}

func TestLinear(t *testing.T) {
	Convey("Given a linear approximator", t, func() {
		behavesLikeApproximator(func() ValueApproximator {
			l, err := NewLinear(features, actions, 0.1, 0.1, 3)
			So(err, ShouldBeNil)
			return l
		})
	})

	Convey("A linear approximator fits a single state exactly", t, func() {
		l, err := NewLinear(features, actions, 0.1, 0.1, 5)
		So(err, ShouldBeNil)

		state := oneHot(9)
		target := mat.NewVecDense(actions, []float64{10, -5, -1, 0})
		for i := 0; i < 300; i++ {
			So(l.TrainStep(state.T(), target.T()), ShouldBeNil)
		}
		So(squaredError(l, state, target), ShouldBeLessThan, 1e-6)
	})

	Convey("Linear approximators with the same seed are equal", t, func() {
		a, err := NewLinear(features, actions, 0.1, 0.1, 11)
		So(err, ShouldBeNil)
		b, err := NewLinear(features, actions, 0.1, 0.1, 11)
		So(err, ShouldBeNil)
		So(a.Parameters().Equal(b.Parameters()), ShouldBeTrue)
	})
}

func TestMLP(t *testing.T) {
	Convey("Given an MLP approximator", t, func() {
		behavesLikeApproximator(func() ValueApproximator {
			s, err := solver.NewDefaultAdam(0.01, 1)
			So(err, ShouldBeNil)
			init, err := initwfn.NewGlorotU(1.0)
			So(err, ShouldBeNil)

			m, err := NewMLP(features, actions, []int{16}, "relu", init, s)
			So(err, ShouldBeNil)
			return m
		})
	})

	Convey("An MLP has a weight and bias for each layer", t, func() {
		s, err := solver.NewVanilla(0.01, 1, -1)
		So(err, ShouldBeNil)
		init, err := initwfn.NewGlorotN(1.0)
		So(err, ShouldBeNil)

		m, err := NewMLP(features, actions, []int{8, 6}, "tanh", init, s)
		So(err, ShouldBeNil)

		params := m.Parameters()
		So(len(params), ShouldEqual, 6)
		r, c := params[0].Dims()
		So([]int{r, c}, ShouldResemble, []int{features, 8})
		r, c = params[5].Dims()
		So([]int{r, c}, ShouldResemble, []int{1, actions})
	})
}

func TestConfig(t *testing.T) {
	Convey("Creating approximators from a Config", t, func() {
		c := Config{
			Kind:         "mlp",
			LearningRate: 0.001,
			Hidden:       []int{24, 24},
			Activation:   "relu",
			Solver:       solver.Settings{Type: "adam"},
			Init:         initwfn.Settings{Type: "glorotu"},
		}
		a, err := c.Create(features, actions, 1)
		So(err, ShouldBeNil)
		So(a, ShouldHaveSameTypeAs, &MLP{})

		c.Kind = "linear"
		a, err = c.Create(features, actions, 1)
		So(err, ShouldBeNil)
		So(a, ShouldHaveSameTypeAs, &Linear{})

		c.Kind = "forest"
		_, err = c.Create(features, actions, 1)
		So(err, ShouldNotBeNil)

		c.Kind = "mlp"
		c.LearningRate = 0
		So(c.Validate(), ShouldNotBeNil)
	})
}
