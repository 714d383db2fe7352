// Package experiment implements experiments which run agents in
// environments and track the data they generate
package experiment

import (
	"context"
	"fmt"
	"io"

	"github.com/aunum/log"
	"github.com/gosuri/uilive"

	"github.com/samuelfneumann/gridqn/agent"
	"github.com/samuelfneumann/gridqn/experiment/checkpointer"
	"github.com/samuelfneumann/gridqn/experiment/trackers"
)

// Online is an experiment that trains an agent online for a fixed
// number of episodes. No offline evaluation is performed.
type Online struct {
	agent    agent.Agent
	episodes int

	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer

	// logEvery controls how often a summary is logged, 0 disables it
	logEvery int
	status   io.Writer
}

// NewOnline creates and returns a new online experiment which runs the
// agent for the given number of episodes. The t parameter is a slice of
// trackers.Tracker which determine what data is saved.
func NewOnline(a agent.Agent, episodes int, t ...trackers.Tracker) (*Online,
	error) {
	if episodes < 0 {
		return nil, fmt.Errorf("newonline: number of episodes must be "+
			"non-negative, have(%v)", episodes)
	}
	return &Online{agent: a, episodes: episodes, trackers: t}, nil
}

// Register registers a Tracker with the experiment
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RegisterCheckpointer registers a Checkpointer with the experiment
func (o *Online) RegisterCheckpointer(c checkpointer.Checkpointer) {
	o.checkpointers = append(o.checkpointers, c)
}

// LogEvery logs a summary of every n-th episode. If n < 1, no
// summaries are logged.
func (o *Online) LogEvery(n int) {
	o.logEvery = n
}

// ShowProgress writes a live status line of the most recent episode to
// a terminal
func (o *Online) ShowProgress(w io.Writer) {
	o.status = w
}

// Run runs all episodes of the experiment, returning their summaries.
// The context is checked between episodes; if it is cancelled, the
// episodes completed so far are returned along with the context's
// error.
func (o *Online) Run(ctx context.Context) ([]agent.Episode, error) {
	var writer *uilive.Writer
	if o.status != nil {
		writer = uilive.New()
		writer.Out = o.status
		writer.Start()
		defer writer.Stop()
	}

	summaries := make([]agent.Episode, 0, o.episodes)
	for i := 0; i < o.episodes; i++ {
		select {
		case <-ctx.Done():
			return summaries, ctx.Err()
		default:
		}

		ep, err := o.agent.RunEpisode()
		if err != nil {
			return summaries, fmt.Errorf("run: episode %v: %w", i, err)
		}
		summaries = append(summaries, ep)

		o.track(ep)
		if err := o.checkpoint(ep); err != nil {
			return summaries, fmt.Errorf("run: %w", err)
		}

		if writer != nil {
			fmt.Fprintf(writer, "%v/%v | %v\n", i+1, o.episodes, ep)
		}
		if o.logEvery > 0 && (i+1)%o.logEvery == 0 {
			log.Infof("%v", ep)
		}
	}

	if len(summaries) > 0 {
		log.Successf("finished %v episodes, final epsilon %.4f",
			len(summaries), o.agent.Epsilon())
	}
	return summaries, nil
}

// Save saves all the data tracked by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// track caches the episode summary in each tracker
func (o *Online) track(ep agent.Episode) {
	for _, t := range o.trackers {
		t.Track(ep)
	}
}

func (o *Online) checkpoint(ep agent.Episode) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(ep); err != nil {
			return err
		}
	}
	return nil
}
