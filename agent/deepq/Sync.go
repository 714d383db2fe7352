package deepq

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/gridqn/approximator"
)

// SyncMode determines how a target approximator follows the online
// approximator
type SyncMode string

const (
	// Copy overwrites the target parameters with the online parameters
	Copy SyncMode = "copy"

	// Polyak blends the online parameters into the target parameters
	Polyak SyncMode = "polyak"
)

// SyncConfig describes a Synchroniser
type SyncConfig struct {
	Mode     string  `mapstructure:"mode" yaml:"mode"`
	Interval int     `mapstructure:"interval" yaml:"interval"`
	Tau      float64 `mapstructure:"tau" yaml:"tau"`
}

// Validate checks a SyncConfig for errors
func (s SyncConfig) Validate() error {
	if s.Interval < 1 {
		return fmt.Errorf("validate: sync interval must be positive, "+
			"have(%v)", s.Interval)
	}
	switch SyncMode(strings.ToLower(s.Mode)) {
	case Copy:
		return nil
	case Polyak:
		if s.Tau <= 0 || s.Tau > 1 {
			return fmt.Errorf("validate: tau must be in (0, 1], have(%v)",
				s.Tau)
		}
		return nil
	default:
		return fmt.Errorf("validate: unknown sync mode %q", s.Mode)
	}
}

// Create returns the Synchroniser described by s
func (s SyncConfig) Create() (Synchroniser, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if SyncMode(strings.ToLower(s.Mode)) == Polyak {
		return NewPolyakSync(s.Interval, s.Tau)
	}
	return NewCopySync(s.Interval)
}

// Synchroniser updates a target approximator from an online
// approximator. Every call to Sync counts as one synchronisation call,
// and only every Interval()-th call changes the target.
type Synchroniser interface {
	// Sync records a synchronisation call and updates target if the
	// call is due. It returns whether target was changed.
	Sync(online, target approximator.ValueApproximator) (bool, error)

	// Calls returns the number of calls to Sync so far
	Calls() int

	Interval() int
}

// CopySync copies the online parameters into the target every
// interval calls
type CopySync struct {
	interval int
	calls    int
}

// NewCopySync returns a new CopySync
func NewCopySync(interval int) (*CopySync, error) {
	if interval < 1 {
		return nil, fmt.Errorf("newcopysync: interval must be positive, "+
			"have(%v)", interval)
	}
	return &CopySync{interval: interval}, nil
}

// Sync implements the Synchroniser interface
func (c *CopySync) Sync(online,
	target approximator.ValueApproximator) (bool, error) {
	c.calls++
	if c.calls%c.interval != 0 {
		return false, nil
	}

	if err := target.SetParameters(online.Parameters()); err != nil {
		return false, fmt.Errorf("sync: %w", err)
	}
	return true, nil
}

// Calls implements the Synchroniser interface
func (c *CopySync) Calls() int {
	return c.calls
}

// Interval implements the Synchroniser interface
func (c *CopySync) Interval() int {
	return c.interval
}

// PolyakSync sets the target parameters to a Polyak average of the
// target and online parameters every interval calls:
//
//	θ_target <- (1 - τ) θ_target + τ θ_online
type PolyakSync struct {
	interval int
	tau      float64
	calls    int
}

// NewPolyakSync returns a new PolyakSync
func NewPolyakSync(interval int, tau float64) (*PolyakSync, error) {
	if interval < 1 {
		return nil, fmt.Errorf("newpolyaksync: interval must be "+
			"positive, have(%v)", interval)
	}
	if tau <= 0 || tau > 1 {
		return nil, fmt.Errorf("newpolyaksync: tau must be in (0, 1], "+
			"have(%v)", tau)
	}
	return &PolyakSync{interval: interval, tau: tau}, nil
}

// Sync implements the Synchroniser interface
func (p *PolyakSync) Sync(online,
	target approximator.ValueApproximator) (bool, error) {
	p.calls++
	if p.calls%p.interval != 0 {
		return false, nil
	}

	params := target.Parameters()
	if err := params.Blend(online.Parameters(), p.tau); err != nil {
		return false, fmt.Errorf("sync: %w", err)
	}
	if err := target.SetParameters(params); err != nil {
		return false, fmt.Errorf("sync: %w", err)
	}
	return true, nil
}

// Calls implements the Synchroniser interface
func (p *PolyakSync) Calls() int {
	return p.calls
}

// Interval implements the Synchroniser interface
func (p *PolyakSync) Interval() int {
	return p.interval
}
