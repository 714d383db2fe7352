// Package agent defines an agent interface
package agent

import (
	"fmt"

	"github.com/samuelfneumann/gridqn/approximator"
)

// Agent learns action values by interacting with an environment one
// episode at a time.
type Agent interface {
	// RunEpisode runs a single episode of interaction followed by at
	// most one replay of past experience, and returns a summary of the
	// episode
	RunEpisode() (Episode, error)

	// Online returns the approximator used to select actions
	Online() approximator.ValueApproximator

	// Epsilon returns the current exploration rate
	Epsilon() float64
}

// Episode summarizes a single completed episode of an Agent
type Episode struct {
	Episode     int     // Index of the episode, starting at 0
	Return      float64 // Undiscounted sum of rewards
	Steps       int
	ReachedGoal bool    // Whether the episode ended in a terminal state
	Epsilon     float64 // Exploration rate after the end-of-episode decay
	Trained     bool    // Whether replay updated the online approximator
	Synced      bool    // Whether the target approximator was updated
}

func (e Episode) String() string {
	str := "Episode %d | Return: %.2f  |  Steps: %d  |  Goal: %v  |  " +
		"Epsilon: %.4f"
	return fmt.Sprintf(str, e.Episode, e.Return, e.Steps, e.ReachedGoal,
		e.Epsilon)
}
