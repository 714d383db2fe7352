// Package checkpointer implements Checkpointers, which periodically save
// the weights of an approximator during an experiment
package checkpointer

import (
	"encoding/gob"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridqn/agent"
	"github.com/samuelfneumann/gridqn/approximator"
)

// Checkpointer checkpoints an approximator based on finished episodes
type Checkpointer interface {
	Checkpoint(ep agent.Episode) error
}

// Checkpoint is the serialized form of an approximator's weights
type Checkpoint struct {
	Episode    int
	Parameters []*mat.Dense
}

// Save gob encodes the weights of v, taken after the given episode, to
// filename. An error is returned if the file cannot be written or
// closed.
func Save(filename string, episode int, v approximator.ValueApproximator) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create checkpoint file: %w", err)
	}

	c := Checkpoint{Episode: episode, Parameters: v.Parameters()}
	if err := gob.NewEncoder(file).Encode(c); err != nil {
		file.Close()
		return fmt.Errorf("save: could not encode checkpoint: %w", err)
	}

	// The checkpoint is only on disk once the file closes cleanly
	if err := file.Close(); err != nil {
		return fmt.Errorf("save: could not close checkpoint file: %w", err)
	}
	return nil
}

// Load decodes the checkpoint at filename and, if v is not nil, copies
// its weights into v
func Load(filename string, v approximator.ValueApproximator) (Checkpoint,
	error) {
	file, err := os.Open(filename)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("load: could not open checkpoint "+
			"file: %w", err)
	}
	defer file.Close()

	var c Checkpoint
	if err := gob.NewDecoder(file).Decode(&c); err != nil {
		return Checkpoint{}, fmt.Errorf("load: could not decode "+
			"checkpoint: %w", err)
	}

	if v != nil {
		if err := v.SetParameters(c.Parameters); err != nil {
			return Checkpoint{}, fmt.Errorf("load: %w", err)
		}
	}
	return c, nil
}
