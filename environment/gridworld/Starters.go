package gridworld

// Starter chooses the position an episode starts in
type Starter interface {
	Start() Position
}

// SingleStart starts every episode in the same position
type SingleStart struct {
	start Position
}

// NewSingleStart returns a Starter which always starts at position p
func NewSingleStart(p Position) *SingleStart {
	return &SingleStart{p}
}

// Start returns the starting position
func (s *SingleStart) Start() Position {
	return s.start
}
