package initwfn

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gorgonia.org/tensor"
)

func TestSettings(t *testing.T) {
	Convey("Settings create the initializer of their type", t, func() {
		valid := []Settings{
			{Type: "glorotu"},
			{Type: "GlorotN", Gain: 2},
			{Type: "heu"},
			{Type: "hen"},
			{Type: "zeroes"},
			{Type: "ones"},
			{Type: "constant", Value: 0.5},
			{Type: "gaussian", StdDev: 0.1},
			{Type: "uniform", Low: -1, High: 1},
		}
		for _, s := range valid {
			init, err := s.InitWFn()
			So(err, ShouldBeNil)
			So(init.InitWFn(), ShouldNotBeNil)
		}
	})

	Convey("A constant initializer fills every weight", t, func() {
		init, err := Settings{Type: "constant", Value: 0.5}.InitWFn()
		So(err, ShouldBeNil)

		weights := init.InitWFn()(tensor.Float64, 2, 3).([]float64)
		So(weights, ShouldResemble, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5})
	})

	Convey("Uniform initializers respect their bounds", t, func() {
		init, err := Settings{Type: "uniform", Low: -0.1, High: 0.1}.InitWFn()
		So(err, ShouldBeNil)

		for _, w := range init.InitWFn()(tensor.Float64, 10, 10).([]float64) {
			So(w, ShouldBeBetweenOrEqual, -0.1, 0.1)
		}
	})

	Convey("Invalid settings are rejected", t, func() {
		invalid := []Settings{
			{Type: "orthogonal"},
			{Type: "gaussian", StdDev: 0},
			{Type: "uniform", Low: 1, High: 1},
			{Type: "heu", Gain: -1},
		}
		for _, s := range invalid {
			_, err := s.InitWFn()
			So(err, ShouldNotBeNil)
		}
	})
}

func TestConstructors(t *testing.T) {
	Convey("Fan-scaled initializers report their kind", t, func() {
		for _, kind := range []Type{GlorotU, GlorotN, HeU, HeN} {
			init, err := NewScaled(kind, 1.0)
			So(err, ShouldBeNil)
			So(init.Type, ShouldEqual, kind)
			So(init.Config, ShouldResemble, ScaledConfig{Kind: kind, Gain: 1.0})
		}
	})

	Convey("Fan-scaled initializers reject bad arguments", t, func() {
		_, err := NewScaled(GlorotU, 0)
		So(err, ShouldNotBeNil)

		_, err = NewGlorotN(-0.5)
		So(err, ShouldNotBeNil)

		_, err = NewScaled(Uniform, 1.0)
		So(err, ShouldNotBeNil)
	})

	Convey("Distribution initializers validate their parameters", t, func() {
		_, err := NewGaussian(0, -1)
		So(err, ShouldNotBeNil)

		_, err = NewUniform(0.5, -0.5)
		So(err, ShouldNotBeNil)

		init, err := NewGaussian(0, 0.01)
		So(err, ShouldBeNil)
		So(init.Type, ShouldEqual, Gaussian)
	})
}
