package checkpointer

import (
	"fmt"

	"github.com/samuelfneumann/gridqn/agent"
	"github.com/samuelfneumann/gridqn/approximator"
)

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	approx   approximator.ValueApproximator

	// filename returns the name of the file to save the next checkpoint
	// in.
	//
	// To save each checkpoint in a separate file with an incremented
	// suffix (e.g. weights1.bin, ..., weightsK.bin) use
	// FilenameEnumerator:
	//
	// n := NewNEpisode(10, approx, FilenameEnumerator(0, "weights", ".bin"))
	filename func() string
}

// NewNEpisode returns a checkpointer that saves the weights of approx
// after every n episodes
func NewNEpisode(n int, approx approximator.ValueApproximator,
	filename func() string) (Checkpointer, error) {
	if n < 1 {
		return nil, fmt.Errorf("newnepisode: interval must be positive, "+
			"have(%v)", n)
	}
	return &nEpisode{
		interval: n,
		approx:   approx,
		filename: filename,
	}, nil
}

// Checkpoint saves the tracked approximator if the episode ends an
// interval
func (n *nEpisode) Checkpoint(ep agent.Episode) error {
	if (ep.Episode+1)%n.interval == 0 {
		return Save(n.filename(), ep.Episode, n.approx)
	}
	return nil
}
