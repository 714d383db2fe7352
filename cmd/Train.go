package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aunum/log"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridqn/agent/deepq"
	"github.com/samuelfneumann/gridqn/config"
	"github.com/samuelfneumann/gridqn/experiment"
	"github.com/samuelfneumann/gridqn/experiment/checkpointer"
	"github.com/samuelfneumann/gridqn/experiment/trackers"
	"github.com/samuelfneumann/gridqn/report"
)

// trainFlags override values of the loaded configuration when set
type trainFlags struct {
	episodes int
	seed     uint64
	variant  string
	output   string
	progress bool
}

// TrainCommand returns the command which trains an agent
func TrainCommand() *cobra.Command {
	var flags trainFlags

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a DQN or Double DQN agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("episodes") {
				c.Run.Episodes = flags.episodes
			}
			if cmd.Flags().Changed("seed") {
				c.Run.Seed = flags.seed
			}
			if cmd.Flags().Changed("variant") {
				c.Agent.Variant = flags.variant
			}
			if cmd.Flags().Changed("output") {
				c.Run.OutputDir = flags.output
			}
			if err := c.Validate(); err != nil {
				return err
			}

			return Train(cmd.Context(), c, flags.progress)
		},
	}

	cmd.Flags().IntVarP(&flags.episodes, "episodes", "e", 0,
		"Number of training episodes")
	cmd.Flags().Uint64VarP(&flags.seed, "seed", "s", 0, "Random seed")
	cmd.Flags().StringVar(&flags.variant, "variant", "",
		"Agent variant, one of dqn or double")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Directory to save results in")
	cmd.Flags().BoolVar(&flags.progress, "progress", false,
		"Show a live status line of the latest episode")
	return cmd
}

// Train runs the training run described by c, saving its data, weights
// and reports in the output directory. If the context is cancelled
// between episodes, the episodes run so far are saved before the
// context's error is returned.
func Train(ctx context.Context, c config.Config, progress bool) error {
	if err := c.Record(); err != nil {
		return err
	}
	out := func(name string) string {
		return filepath.Join(c.Run.OutputDir, name)
	}

	grid, err := c.Environment.Grid()
	if err != nil {
		return err
	}
	agent, err := c.Agent.Create(grid, c.Run.Seed)
	if err != nil {
		return err
	}
	log.Infof("%v", agent)

	if c.Run.WarmupEpisodes > 0 {
		added, err := experiment.Collect(ctx, c.Environment.Factory(),
			agent.Replayer(), c.Run.WarmupEpisodes, c.Agent.MaxSteps,
			c.Run.Workers, c.Run.Seed+3)
		if err != nil {
			return err
		}
		log.Infof("collected %v warmup transitions", added)
	}

	returns := trackers.NewReturn(out("return.bin"))
	lengths := trackers.NewEpisodeLength(out("length.bin"))
	epsilons := trackers.NewEpsilon(out("epsilon.bin"))
	successes := trackers.NewSuccess(out("success.bin"))

	o, err := experiment.NewOnline(agent, c.Run.Episodes, returns, lengths,
		epsilons, successes)
	if err != nil {
		return err
	}
	o.LogEvery(c.Run.LogEvery)
	if progress {
		o.ShowProgress(os.Stdout)
	}
	if c.Run.CheckpointEvery > 0 {
		names := checkpointer.FilenameEnumerator(0, out("weights-"), ".bin")
		cp, err := checkpointer.NewNEpisode(c.Run.CheckpointEvery,
			agent.Online(), names)
		if err != nil {
			return err
		}
		o.RegisterCheckpointer(cp)
	}

	summaries, runErr := o.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		log.Infof("interrupted after %v episodes, saving results",
			len(summaries))
	}

	if err := save(c, agent, out, returns, lengths, epsilons); err != nil {
		return err
	}
	if err := o.Save(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	if c.Run.EvalEpisodes > 0 {
		eval, err := experiment.Evaluate(ctx, c.Environment.Factory(),
			agent.Online(), c.Run.EvalEpisodes, c.Agent.MaxSteps,
			c.Run.Workers)
		if err != nil {
			return err
		}
		log.Successf("%v", eval)
	}
	return nil
}

// save writes the final weights, learning curves and greedy policy of
// the agent to the output directory
func save(c config.Config, agent *deepq.DeepQ, out func(string) string,
	returns, lengths, epsilons trackers.Tracker) error {
	err := checkpointer.Save(out("weights.bin"), agent.Episodes()-1,
		agent.Online())
	if err != nil {
		return err
	}

	window := c.Run.LogEvery
	err = report.SaveCurves(out("curves.html"),
		report.Curve{Name: "return", Data: returns.Data(), Window: window},
		report.Curve{Name: "steps", Data: lengths.Data(), Window: window},
		report.Curve{Name: "epsilon", Data: epsilons.Data()},
	)
	if err != nil {
		return err
	}

	grid, err := c.Environment.Grid()
	if err != nil {
		return err
	}
	if err := report.SavePolicyPNG(out("policy.png"), grid,
		agent.Online()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	log.Successf("saved weights and reports to %v", c.Run.OutputDir)
	return report.PrintPolicy(os.Stdout, grid, agent.Online(), !noColour)
}
