package trackers

import "github.com/samuelfneumann/gridqn/agent"

// NewReturn returns a Tracker of the undiscounted return of each
// episode, which saves its data at the location filename
func NewReturn(filename string) Tracker {
	return newEpisodic(filename, func(ep agent.Episode) float64 {
		return ep.Return
	})
}

// NewEpsilon returns a Tracker of the exploration rate at the end of
// each episode, which saves its data at the location filename
func NewEpsilon(filename string) Tracker {
	return newEpisodic(filename, func(ep agent.Episode) float64 {
		return ep.Epsilon
	})
}
