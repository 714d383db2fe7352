package deepq

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/gridqn/approximator"
	env "github.com/samuelfneumann/gridqn/environment"
	"github.com/samuelfneumann/gridqn/expreplay"
	"github.com/samuelfneumann/gridqn/policy"
)

// Variant determines how the update target of a DeepQ agent is
// computed
type Variant string

const (
	// DQN bootstraps from the maximum online action value of the next
	// state
	DQN Variant = "dqn"

	// Double selects the next action with the online approximator and
	// evaluates it with the target approximator
	Double Variant = "double"
)

// ParseVariant returns the Variant with the given name
func ParseVariant(name string) (Variant, error) {
	switch v := Variant(strings.ToLower(name)); v {
	case DQN, Double:
		return v, nil
	default:
		return "", fmt.Errorf("parsevariant: unknown variant %q", name)
	}
}

// Config implements a configuration of a DeepQ agent
type Config struct {
	Variant   string  `mapstructure:"variant" yaml:"variant"`
	Gamma     float64 `mapstructure:"gamma" yaml:"gamma"`
	BatchSize int     `mapstructure:"batch_size" yaml:"batch_size"`
	MaxSteps  int     `mapstructure:"max_steps" yaml:"max_steps"`

	// Sync configures the target approximator of Double agents
	Sync SyncConfig `mapstructure:"sync" yaml:"sync"`

	Exploration  policy.Config       `mapstructure:"exploration" yaml:"exploration"`
	ExpReplay    expreplay.Config    `mapstructure:"replay" yaml:"replay"`
	Approximator approximator.Config `mapstructure:"approximator" yaml:"approximator"`
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if _, err := ParseVariant(c.Variant); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: gamma must be in [0, 1], have(%v)",
			c.Gamma)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("validate: batch size must be positive, have(%v)",
			c.BatchSize)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("validate: step cap must be positive, have(%v)",
			c.MaxSteps)
	}
	if c.BatchSize > c.ExpReplay.MaxReplayCapacity {
		return fmt.Errorf("validate: batch size %v exceeds replay "+
			"capacity %v", c.BatchSize, c.ExpReplay.MaxReplayCapacity)
	}

	checks := []func() error{
		c.Exploration.Validate,
		c.ExpReplay.Validate,
		c.Approximator.Validate,
	}
	if Variant(strings.ToLower(c.Variant)) == Double {
		checks = append(checks, c.Sync.Validate)
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// Create creates the DeepQ agent described by the Config, interacting
// with environment e. All randomness of the agent derives from seed.
func (c Config) Create(e env.Environment, seed uint64) (*DeepQ, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	features := e.ObservationSpec().Features()
	actions, err := e.ActionSpec().NumActions()
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	online, err := c.Approximator.Create(features, actions, seed)
	if err != nil {
		return nil, fmt.Errorf("create: could not create approximator: %w",
			err)
	}
	replay, err := c.ExpReplay.Create(features, seed+1)
	if err != nil {
		return nil, fmt.Errorf("create: could not create replay buffer: %w",
			err)
	}
	p, err := c.Exploration.Create(actions, seed+2)
	if err != nil {
		return nil, fmt.Errorf("create: could not create policy: %w", err)
	}

	return New(e, online, replay, p, c)
}
