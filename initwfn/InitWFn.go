// Package initwfn implements functionality to wrap Gorgonia InitWFn
// so that they can be described in configuration files.
package initwfn

import (
	"fmt"
	"strings"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of InitWFn that are available.
// Type is used to implement a basic type system of InitWFn's.
type Type string

// Available InitWFn types
const (
	GlorotU  Type = "glorotu"
	GlorotN  Type = "glorotn"
	HeU      Type = "heu"
	HeN      Type = "hen"
	Zeroes   Type = "zeroes"
	Ones     Type = "ones"
	Constant Type = "constant"
	Gaussian Type = "gaussian"
	Uniform  Type = "uniform"
)

// InitWFn wraps Gorgonia InitWFn so that the initializer can be
// reported along with the configuration that created it.
type InitWFn struct {
	initWFn G.InitWFn
	Type
	Config
}

// newInitWFn returns a new InitWFn
func newInitWFn(c Config) (*InitWFn, error) {
	init := InitWFn{Type: c.Type(), Config: c}
	init.initWFn = init.Config.Create()

	return &init, nil
}

// InitWFn returns the wrapped Gorgonia InitWFn
func (i *InitWFn) InitWFn() G.InitWFn {
	return i.initWFn
}

// String implements the fmt.Stringer interface
func (i *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %v}", i.Type, i.Config)
}

// Config implements a Gorgonia InitWFn configuration and can be used to
// create the described Gorgonia InitWFn's.
type Config interface {
	// Create returns the Gorgonia InitWFn that the Config describes
	Create() G.InitWFn

	// Type returns the type of Gorgonia InitWFn that is returned
	Type() Type
}

// Settings is the flat, file-friendly description of an InitWFn.
// Fields which do not apply to the selected Type are ignored.
type Settings struct {
	Type   string  `mapstructure:"type" yaml:"type"`
	Gain   float64 `mapstructure:"gain" yaml:"gain,omitempty"`
	Mean   float64 `mapstructure:"mean" yaml:"mean,omitempty"`
	StdDev float64 `mapstructure:"stddev" yaml:"stddev,omitempty"`
	Low    float64 `mapstructure:"low" yaml:"low,omitempty"`
	High   float64 `mapstructure:"high" yaml:"high,omitempty"`
	Value  float64 `mapstructure:"value" yaml:"value,omitempty"`
}

// InitWFn creates the InitWFn described by the Settings. A zero gain
// defaults to 1; any other invalid parameter is reported by the
// constructor of the selected Type.
func (s Settings) InitWFn() (*InitWFn, error) {
	gain := s.Gain
	if gain == 0 {
		gain = 1.0
	}

	switch t := Type(strings.ToLower(s.Type)); t {
	case GlorotU, GlorotN, HeU, HeN:
		return NewScaled(t, gain)
	case Zeroes:
		return NewZeroes()
	case Ones:
		return NewOnes()
	case Constant:
		return NewConstant(s.Value)
	case Gaussian:
		return NewGaussian(s.Mean, s.StdDev)
	case Uniform:
		return NewUniform(s.Low, s.High)
	default:
		return nil, fmt.Errorf("initwfn: unknown initializer type %q", s.Type)
	}
}
