package policy

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

func TestSelectAction(t *testing.T) {
	Convey("Given a greedy policy over four actions", t, func() {
		p, err := NewEGreedy(0.0, 0.0, 1.0, 4, 1)
		So(err, ShouldBeNil)

		Convey("The action with the largest value is selected", func() {
			values := mat.NewVecDense(4, []float64{-1, 3, 2, 0})
			for i := 0; i < 50; i++ {
				So(p.SelectAction(values), ShouldEqual, 1)
			}
		})

		Convey("Ties are broken in favour of the lowest index", func() {
			values := mat.NewVecDense(4, []float64{0, 7, 1, 7})
			So(p.SelectAction(values), ShouldEqual, 1)

			values = mat.NewVecDense(4, []float64{2, 2, 2, 2})
			So(p.SelectAction(values), ShouldEqual, 0)
		})
	})

	Convey("Given a fully random policy", t, func() {
		p, err := NewEGreedy(1.0, 0.01, 0.995, 4, 7)
		So(err, ShouldBeNil)

		Convey("Every action is selected about equally often", func() {
			values := mat.NewVecDense(4, []float64{0, 10, 0, 0})
			counts := make([]int, 4)
			const draws = 4000
			for i := 0; i < draws; i++ {
				counts[p.SelectAction(values)]++
			}
			for _, count := range counts {
				So(count, ShouldBeBetween, draws/4-200, draws/4+200)
			}
		})
	})
}

func TestDecay(t *testing.T) {
	Convey("Decaying epsilon", t, func() {
		p, err := Config{
			EpsilonStart: 1.0,
			EpsilonMin:   0.01,
			EpsilonDecay: 0.995,
		}.Create(4, 1)
		So(err, ShouldBeNil)
		So(p.Epsilon(), ShouldEqual, 1.0)

		Convey("Multiplies epsilon by the decay rate", func() {
			So(p.Decay(), ShouldAlmostEqual, 0.995)
			So(p.Decay(), ShouldAlmostEqual, 0.995*0.995)
		})

		Convey("Never increases epsilon or passes the floor", func() {
			prev := p.Epsilon()
			for i := 0; i < 2000; i++ {
				eps := p.Decay()
				So(eps, ShouldBeLessThanOrEqualTo, prev)
				So(eps, ShouldBeGreaterThanOrEqualTo, 0.01)
				prev = eps
			}
			So(p.Epsilon(), ShouldEqual, 0.01)
		})
	})

	Convey("A schedule with a decay rate of one keeps epsilon fixed", t,
		func() {
			p, err := NewEGreedy(0.3, 0.01, 1.0, 4, 1)
			So(err, ShouldBeNil)
			for i := 0; i < 100; i++ {
				So(p.Decay(), ShouldEqual, 0.3)
			}
		})

	Convey("Invalid schedules are rejected", t, func() {
		_, err := Config{EpsilonStart: 0.1, EpsilonMin: 0.5,
			EpsilonDecay: 0.9}.Create(4, 1)
		So(err, ShouldNotBeNil)

		_, err = Config{EpsilonStart: 1, EpsilonMin: 0.1,
			EpsilonDecay: 1.5}.Create(4, 1)
		So(err, ShouldNotBeNil)
	})
}
