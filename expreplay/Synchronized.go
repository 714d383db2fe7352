package expreplay

import (
	"sync"

	"github.com/samuelfneumann/gridqn/timestep"
)

// synchronized guards an ExperienceReplayer with a mutex so that
// transitions can be added from concurrent rollout workers
type synchronized struct {
	mu     sync.Mutex
	replay ExperienceReplayer
}

// NewSynchronized returns an ExperienceReplayer which is safe for
// concurrent use. All calls are serialised onto the wrapped buffer.
func NewSynchronized(replay ExperienceReplayer) ExperienceReplayer {
	if s, ok := replay.(*synchronized); ok {
		return s
	}
	return &synchronized{replay: replay}
}

// Add implements the ExperienceReplayer interface
func (s *synchronized) Add(t timestep.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replay.Add(t)
}

// Sample implements the ExperienceReplayer interface
func (s *synchronized) Sample(n int) ([]timestep.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replay.Sample(n)
}

// Len implements the ExperienceReplayer interface
func (s *synchronized) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replay.Len()
}

// MaxCapacity implements the ExperienceReplayer interface
func (s *synchronized) MaxCapacity() int {
	return s.replay.MaxCapacity()
}

// Ordered implements the ExperienceReplayer interface
func (s *synchronized) Ordered() []timestep.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replay.Ordered()
}
