package timestep

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

func TestNewTransition(t *testing.T) {
	Convey("Given two consecutive timesteps", t, func() {
		state := mat.NewVecDense(3, []float64{1, 0, 0})
		next := mat.NewVecDense(3, []float64{0, 1, 0})
		step := New(First, 0, 1, state, 0)

		Convey("A transition into a Last step is terminal", func() {
			tr := NewTransition(step, 2, New(Last, 10, 0, next, 1))
			So(tr.Action, ShouldEqual, 2)
			So(tr.Reward, ShouldEqual, 10.0)
			So(tr.Terminal, ShouldBeTrue)
		})

		Convey("A transition into a Mid step is not terminal", func() {
			tr := NewTransition(step, 1, New(Mid, -1, 1, next, 1))
			So(tr.Reward, ShouldEqual, -1.0)
			So(tr.Terminal, ShouldBeFalse)
		})

		Convey("The transition does not share the observations", func() {
			tr := NewTransition(step, 0, New(Mid, -1, 1, next, 1))
			state.SetVec(0, 5)
			next.SetVec(1, 5)

			So(tr.State.RawVector().Data, ShouldResemble, []float64{1, 0, 0})
			So(tr.NextState.RawVector().Data, ShouldResemble,
				[]float64{0, 1, 0})
		})
	})
}
