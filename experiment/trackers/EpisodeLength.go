package trackers

import "github.com/samuelfneumann/gridqn/agent"

// NewEpisodeLength returns a Tracker of the number of steps in each
// episode, which saves its data at the location filename. Episodes
// cut short by a step limit are tracked at that limit.
func NewEpisodeLength(filename string) Tracker {
	return newEpisodic(filename, func(ep agent.Episode) float64 {
		return float64(ep.Steps)
	})
}

// NewSuccess returns a Tracker which records 1 for each episode that
// reached a terminal state and 0 otherwise
func NewSuccess(filename string) Tracker {
	return newEpisodic(filename, func(ep agent.Episode) float64 {
		if ep.ReachedGoal {
			return 1.0
		}
		return 0.0
	})
}
