// Package envconfig provides configuration structs for configuring
// environments and their tasks from configuration files.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/gridqn/environment"
	"github.com/samuelfneumann/gridqn/environment/gridworld"
)

// Config implements a specific configuration of a GridWorld with a
// GoalObstacle task
type Config struct {
	Size     int                `mapstructure:"size" yaml:"size"`
	Start    gridworld.Position `mapstructure:"start" yaml:"start"`
	Goal     gridworld.Position `mapstructure:"goal" yaml:"goal"`
	Obstacle gridworld.Position `mapstructure:"obstacle" yaml:"obstacle"`

	GoalReward     float64 `mapstructure:"goal_reward" yaml:"goal_reward"`
	ObstacleReward float64 `mapstructure:"obstacle_reward" yaml:"obstacle_reward"`
	StepReward     float64 `mapstructure:"step_reward" yaml:"step_reward"`
}

// Default returns the Config of the 4x4 GridWorld starting at (0, 0)
// with the goal at (3, 3) and the obstacle at (1, 1)
func Default() Config {
	return Config{
		Size:           4,
		Start:          gridworld.Position{Row: 0, Col: 0},
		Goal:           gridworld.Position{Row: 3, Col: 3},
		Obstacle:       gridworld.Position{Row: 1, Col: 1},
		GoalReward:     gridworld.GoalReward,
		ObstacleReward: gridworld.ObstacleReward,
		StepReward:     gridworld.StepReward,
	}
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.Size < 2 {
		return fmt.Errorf("validate: grid size must be at least 2, have(%v)",
			c.Size)
	}
	for name, p := range map[string]gridworld.Position{
		"start":    c.Start,
		"goal":     c.Goal,
		"obstacle": c.Obstacle,
	} {
		if !p.In(c.Size) {
			return fmt.Errorf("validate: %v %v outside of %dx%d grid", name,
				p, c.Size, c.Size)
		}
	}
	if c.Goal == c.Obstacle {
		return fmt.Errorf("validate: goal and obstacle must differ, "+
			"have(%v)", c.Goal)
	}
	return nil
}

// Grid returns the GridWorld described by the Config
func (c Config) Grid() (*gridworld.GridWorld, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := gridworld.NewGoalObstacle(c.Goal, c.Obstacle, c.GoalReward,
		c.ObstacleReward, c.StepReward)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	return gridworld.New(c.Size, task, gridworld.NewSingleStart(c.Start))
}

// Create returns the environment described by the Config
func (c Config) Create() (env.Environment, error) {
	g, err := c.Grid()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Factory returns an environment Factory which creates independent
// copies of the environment described by the Config
func (c Config) Factory() env.Factory {
	return c.Create
}
