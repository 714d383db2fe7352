package cmd

import (
	"context"
	"os"

	"github.com/aunum/log"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridqn/config"
	"github.com/samuelfneumann/gridqn/experiment"
	"github.com/samuelfneumann/gridqn/experiment/checkpointer"
	"github.com/samuelfneumann/gridqn/report"
)

// EvaluateCommand returns the command which evaluates saved weights
func EvaluateCommand() *cobra.Command {
	var (
		weights  string
		episodes int
		image    string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the greedy policy of saved weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("episodes") {
				c.Run.EvalEpisodes = episodes
			}
			return Evaluate(cmd.Context(), c, weights, image)
		},
	}

	cmd.Flags().StringVarP(&weights, "weights", "w", "",
		"Path to saved weights")
	cmd.Flags().IntVarP(&episodes, "episodes", "e", 0,
		"Number of evaluation episodes")
	cmd.Flags().StringVar(&image, "image", "",
		"If set, save an image of the greedy policy at this path")
	_ = cmd.MarkFlagRequired("weights")
	return cmd
}

// Evaluate loads the weights at the given path into the approximator
// described by c and runs greedy rollouts of it. If image is not empty,
// the greedy policy is also saved as a PNG image there.
func Evaluate(ctx context.Context, c config.Config, weights,
	image string) error {
	grid, err := c.Environment.Grid()
	if err != nil {
		return err
	}
	actions, err := grid.ActionSpec().NumActions()
	if err != nil {
		return err
	}

	approx, err := c.Agent.Approximator.Create(
		grid.ObservationSpec().Features(), actions, c.Run.Seed)
	if err != nil {
		return err
	}
	saved, err := checkpointer.Load(weights, approx)
	if err != nil {
		return err
	}
	log.Infof("loaded weights saved after episode %v", saved.Episode)

	if c.Run.EvalEpisodes > 0 {
		eval, err := experiment.Evaluate(ctx, c.Environment.Factory(),
			approx, c.Run.EvalEpisodes, c.Agent.MaxSteps, c.Run.Workers)
		if err != nil {
			return err
		}
		log.Successf("%v", eval)
	}

	if image != "" {
		if err := report.SavePolicyPNG(image, grid, approx); err != nil {
			return err
		}
	}
	return report.PrintPolicy(os.Stdout, grid, approx, !noColour)
}
