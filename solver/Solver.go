// Package solver implements functionality to wrap Gorgonia Solvers
// so that they can be described in configuration files.
package solver

import (
	"fmt"
	"strings"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "adam"
	Vanilla Type = "vanilla"
	RMSProp Type = "rmsprop"
)

// Solver wraps a Gorgonia Solver together with the configuration that
// created it, so that fresh copies of the same Solver can be created
// whenever a network is cloned. Solvers such as Adam carry per-weight
// state, and so should never be shared between networks.
type Solver struct {
	G.Solver
	Type
	Config
}

// newSolver returns a new solver with the given type and configuration.
func newSolver(t Type, c Config) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newSolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	solver := Solver{Type: t, Config: c}
	solver.Solver = solver.Config.Create()

	return &solver, nil
}

// Fresh returns a new Solver with the same configuration as s but none
// of its accumulated state
func (s *Solver) Fresh() (*Solver, error) {
	return newSolver(s.Type, s.Config)
}

// String implements the fmt.Stringer interface
func (s *Solver) String() string {
	return fmt.Sprintf("{%v Solver: %+v}", s.Type, s.Config)
}

// Config implements a Gorgonia Solver configuration and can be used to
// create Gorgonia Solvers they describe.
type Config interface {
	Create() G.Solver

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool
}

// Settings is the flat, file-friendly description of a Solver. Fields
// which do not apply to the selected Type are ignored, and zero values
// are replaced with that Type's defaults.
type Settings struct {
	Type     string  `mapstructure:"type" yaml:"type"`
	StepSize float64 `mapstructure:"step_size" yaml:"step_size"`
	Epsilon  float64 `mapstructure:"epsilon" yaml:"epsilon,omitempty"`
	Beta1    float64 `mapstructure:"beta1" yaml:"beta1,omitempty"`
	Beta2    float64 `mapstructure:"beta2" yaml:"beta2,omitempty"`
	Rho      float64 `mapstructure:"rho" yaml:"rho,omitempty"`
	Clip     float64 `mapstructure:"clip" yaml:"clip,omitempty"`
}

// Validate checks a Settings for errors
func (s Settings) Validate() error {
	if s.StepSize <= 0 {
		return fmt.Errorf("validate: step size must be positive, have(%v)",
			s.StepSize)
	}
	switch Type(strings.ToLower(s.Type)) {
	case Adam, Vanilla, RMSProp:
		return nil
	default:
		return fmt.Errorf("validate: unknown solver type %q", s.Type)
	}
}

// Solver creates the Solver described by the Settings. Every returned
// Solver updates weights one sample at a time.
func (s Settings) Solver() (*Solver, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch Type(strings.ToLower(s.Type)) {
	case Adam:
		eps := orDefault(s.Epsilon, 1e-8)
		beta1 := orDefault(s.Beta1, 0.9)
		beta2 := orDefault(s.Beta2, 0.999)
		return NewAdam(s.StepSize, eps, beta1, beta2, 1, s.Clip)

	case RMSProp:
		eps := orDefault(s.Epsilon, 1e-8)
		rho := orDefault(s.Rho, 0.999)
		return NewRMSProp(s.StepSize, eps, rho, 1, s.Clip)

	default:
		return NewVanilla(s.StepSize, 1, s.Clip)
	}
}

func orDefault(value, def float64) float64 {
	if value == 0 {
		return def
	}
	return value
}
