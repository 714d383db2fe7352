// Package expreplay implements a bounded experience replay buffer
package expreplay

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridqn/timestep"
)

// Config implements a specific configuration of an ExperienceReplayer
type Config struct {
	MaxReplayCapacity int `mapstructure:"capacity" yaml:"capacity"`
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.MaxReplayCapacity < 1 {
		return fmt.Errorf("validate: maxCapacity must be >= 1, have(%v)",
			c.MaxReplayCapacity)
	}
	return nil
}

// Create creates and returns the ExperienceReplayer with the specified
// Config, sampling uniformly at random with the given seed.
func (c Config) Create(featureSize int, seed uint64) (ExperienceReplayer,
	error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return New(NewUniformSelector(seed), c.MaxReplayCapacity, featureSize)
}

// ExperienceReplayer implements an experience replay buffer
type ExperienceReplayer interface {
	// Add adds a transition to the buffer, evicting the oldest
	// transition if the buffer is full
	Add(t timestep.Transition) error

	// Sample draws n distinct transitions from the buffer. It is an
	// error to request more transitions than the buffer holds.
	Sample(n int) ([]timestep.Transition, error)

	// Len returns the current number of transitions in the buffer
	Len() int

	// MaxCapacity returns the maximum allowable transitions in the
	// buffer
	MaxCapacity() int

	// Ordered returns the transitions in the buffer from oldest to
	// newest
	Ordered() []timestep.Transition
}

// cache implements a concrete ExperienceReplayer as a ring buffer. Data
// is stored in flat, preallocated caches and the slot to write next is
// tracked by a cursor that wraps around at maxCapacity, so that once the
// cache is full every Add overwrites the oldest transition.
type cache struct {
	stateCache     []float64
	actionCache    []int
	rewardCache    []float64
	nextStateCache []float64
	terminalCache  []bool

	cursor int
	isFull bool

	// Outlines how data is sampled
	sampler Selector

	maxCapacity int
	featureSize int
}

// New creates and returns a new ExperienceReplayer. The sampler
// parameter determines how data is sampled from the buffer. The
// featureSize parameter defines the size of the state vectors.
func New(sampler Selector, maxCapacity, featureSize int) (ExperienceReplayer,
	error) {
	if maxCapacity < 1 {
		return nil, fmt.Errorf("new: maxCapacity must be >= 1")
	}
	if featureSize < 1 {
		return nil, fmt.Errorf("new: featureSize must be >= 1")
	}

	return &cache{
		stateCache:     make([]float64, maxCapacity*featureSize),
		actionCache:    make([]int, maxCapacity),
		rewardCache:    make([]float64, maxCapacity),
		nextStateCache: make([]float64, maxCapacity*featureSize),
		terminalCache:  make([]bool, maxCapacity),

		sampler: sampler,

		maxCapacity: maxCapacity,
		featureSize: featureSize,
	}, nil
}

// String returns the string representation of the cache
func (c *cache) String() string {
	baseStr := "Length: %v \nCursor: %v \nActions: %v \nRewards: %v " +
		"\nTerminal: %v"
	return fmt.Sprintf(baseStr, c.Len(), c.cursor, c.actionCache[:c.Len()],
		c.rewardCache[:c.Len()], c.terminalCache[:c.Len()])
}

// Add adds a transition to the cache
func (c *cache) Add(t timestep.Transition) error {
	if t.State.Len() != c.featureSize || t.NextState.Len() != c.featureSize {
		return &ExpReplayError{
			Op: "add",
			Err: fmt.Errorf("%w: feature size \n\twant(%v)\n\thave(%v, %v)",
				ErrInvalidTransition, c.featureSize, t.State.Len(),
				t.NextState.Len()),
		}
	}

	index := c.cursor
	stateInd := index * c.featureSize
	copy(c.stateCache[stateInd:stateInd+c.featureSize],
		t.State.RawVector().Data)
	copy(c.nextStateCache[stateInd:stateInd+c.featureSize],
		t.NextState.RawVector().Data)

	c.actionCache[index] = t.Action
	c.rewardCache[index] = t.Reward
	c.terminalCache[index] = t.Terminal

	c.cursor = (c.cursor + 1) % c.maxCapacity
	if c.cursor == 0 {
		c.isFull = true
	}
	return nil
}

// Sample samples and returns a batch of n transitions from the replay
// buffer. The order of the returned transitions is unspecified.
func (c *cache) Sample(n int) ([]timestep.Transition, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample: batch size must be >= 0, have(%v)", n)
	}
	if n > c.Len() {
		return nil, &ExpReplayError{
			Op: "sample",
			Err: fmt.Errorf("%w: \n\twant(<=%v)\n\thave(%v)",
				ErrInsufficientSamples, c.Len(), n),
		}
	}
	if n == 0 {
		return []timestep.Transition{}, nil
	}

	slots := c.sampler.choose(n, c.Len())
	batch := make([]timestep.Transition, n)
	for i, slot := range slots {
		batch[i] = c.at(slot)
	}
	return batch, nil
}

// Ordered returns all transitions in the cache from oldest to newest
func (c *cache) Ordered() []timestep.Transition {
	ordered := make([]timestep.Transition, 0, c.Len())
	for _, index := range c.insertOrder() {
		ordered = append(ordered, c.at(index))
	}
	return ordered
}

// insertOrder returns the indices of occupied slots in the order their
// data was inserted
func (c *cache) insertOrder() []int {
	order := make([]int, 0, c.Len())
	if c.isFull {
		for i := c.cursor; i < c.maxCapacity; i++ {
			order = append(order, i)
		}
	}
	for i := 0; i < c.cursor; i++ {
		order = append(order, i)
	}
	return order
}

// at reconstructs the transition stored at index. The returned
// transition does not share memory with the cache.
func (c *cache) at(index int) timestep.Transition {
	stateInd := index * c.featureSize

	state := make([]float64, c.featureSize)
	copy(state, c.stateCache[stateInd:stateInd+c.featureSize])
	nextState := make([]float64, c.featureSize)
	copy(nextState, c.nextStateCache[stateInd:stateInd+c.featureSize])

	return timestep.Transition{
		State:     mat.NewVecDense(c.featureSize, state),
		Action:    c.actionCache[index],
		Reward:    c.rewardCache[index],
		NextState: mat.NewVecDense(c.featureSize, nextState),
		Terminal:  c.terminalCache[index],
	}
}

// Len returns the current number of elements in the cache that
// are available for sampling
func (c *cache) Len() int {
	if c.isFull {
		return c.maxCapacity
	}
	return c.cursor
}

// MaxCapacity returns the maximum number of elements that are allowed
// in the cache
func (c *cache) MaxCapacity() int {
	return c.maxCapacity
}
