package solver

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSettings(t *testing.T) {
	Convey("Settings create the solver of their type", t, func() {
		for _, typ := range []Type{Adam, Vanilla, RMSProp} {
			s, err := Settings{Type: string(typ), StepSize: 0.01}.Solver()
			So(err, ShouldBeNil)
			So(s.Type, ShouldEqual, typ)
			So(s.Solver, ShouldNotBeNil)
		}
	})

	Convey("Unset Adam hyperparameters take their defaults", t, func() {
		s, err := Settings{Type: "Adam", StepSize: 0.01}.Solver()
		So(err, ShouldBeNil)
		So(s.Config, ShouldResemble, AdamConfig{
			StepSize: 0.01,
			Epsilon:  1e-8,
			Beta1:    0.9,
			Beta2:    0.999,
			Batch:    1,
		})
	})

	Convey("A clipped RMSProp solver stays an RMSProp solver", t, func() {
		s, err := Settings{Type: "rmsprop", StepSize: 0.01, Clip: 1}.Solver()
		So(err, ShouldBeNil)
		So(s.Config, ShouldHaveSameTypeAs, RMSPropConfig{})
	})

	Convey("Fresh solvers share configuration but not state", t, func() {
		s, err := NewDefaultAdam(0.01, 1)
		So(err, ShouldBeNil)
		fresh, err := s.Fresh()
		So(err, ShouldBeNil)
		So(fresh.Config, ShouldResemble, s.Config)
		So(fresh.Solver, ShouldNotPointTo, s.Solver)
	})

	Convey("Invalid settings are rejected", t, func() {
		_, err := Settings{Type: "adam", StepSize: 0}.Solver()
		So(err, ShouldNotBeNil)
		_, err = Settings{Type: "momentum", StepSize: 0.1}.Solver()
		So(err, ShouldNotBeNil)
	})
}
