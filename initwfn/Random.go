package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// ScaledConfig describes one of the fan-scaled random initializers:
// Glorot or He, each in a uniform and a normal flavour. The Gain
// multiplies the scale the initializer would otherwise use.
type ScaledConfig struct {
	Kind Type
	Gain float64
}

// NewScaled returns a fan-scaled weight initializer of kind t, which
// must be one of GlorotU, GlorotN, HeU or HeN.
func NewScaled(t Type, gain float64) (*InitWFn, error) {
	switch t {
	case GlorotU, GlorotN, HeU, HeN:
	default:
		return nil, fmt.Errorf("newScaled: %q is not a fan-scaled "+
			"initializer", t)
	}
	if gain <= 0 {
		return nil, fmt.Errorf("newScaled: gain must be positive, have(%v)",
			gain)
	}

	return newInitWFn(ScaledConfig{Kind: t, Gain: gain})
}

// NewGlorotU is shorthand for NewScaled(GlorotU, gain).
func NewGlorotU(gain float64) (*InitWFn, error) {
	return NewScaled(GlorotU, gain)
}

// NewGlorotN is shorthand for NewScaled(GlorotN, gain).
func NewGlorotN(gain float64) (*InitWFn, error) {
	return NewScaled(GlorotN, gain)
}

// Type implements the Config interface
func (s ScaledConfig) Type() Type {
	return s.Kind
}

// Create implements the Config interface
func (s ScaledConfig) Create() G.InitWFn {
	switch s.Kind {
	case GlorotN:
		return G.GlorotN(s.Gain)
	case HeU:
		return G.HeU(s.Gain)
	case HeN:
		return G.HeN(s.Gain)
	default:
		return G.GlorotU(s.Gain)
	}
}

// GaussianConfig draws every weight independently from N(Mean, StdDev²).
type GaussianConfig struct {
	Mean, StdDev float64
}

// NewGaussian returns a gaussian weight initializer. The standard
// deviation must be positive.
func NewGaussian(mean, stddev float64) (*InitWFn, error) {
	if stddev <= 0 {
		return nil, fmt.Errorf("newGaussian: standard deviation must be "+
			"positive, have(%v)", stddev)
	}

	return newInitWFn(GaussianConfig{Mean: mean, StdDev: stddev})
}

// Type implements the Config interface
func (g GaussianConfig) Type() Type {
	return Gaussian
}

// Create implements the Config interface
func (g GaussianConfig) Create() G.InitWFn {
	return G.Gaussian(g.Mean, g.StdDev)
}

// UniformConfig draws every weight independently from [Low, High).
type UniformConfig struct {
	Low, High float64
}

// NewUniform returns a uniform weight initializer over [low, high).
func NewUniform(low, high float64) (*InitWFn, error) {
	if high <= low {
		return nil, fmt.Errorf("newUniform: bounds must satisfy low < high, "+
			"have(%v, %v)", low, high)
	}

	return newInitWFn(UniformConfig{Low: low, High: high})
}

// Type implements the Config interface
func (u UniformConfig) Type() Type {
	return Uniform
}

// Create implements the Config interface
func (u UniformConfig) Create() G.InitWFn {
	return G.Uniform(u.Low, u.High)
}
