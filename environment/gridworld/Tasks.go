package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Default rewards of the GoalObstacle Task
const (
	GoalReward     = 10.0
	ObstacleReward = -5.0
	StepReward     = -1.0
)

// Task implements the reward scheme of a GridWorld
type Task interface {
	// Outcome returns the reward for arriving at a position and whether
	// that position is terminal
	Outcome(p Position) (reward float64, terminal bool)

	Goal() Position
	Obstacle() Position

	// Min and Max return the minimum and maximum reward attainable on
	// a single step
	Min() float64
	Max() float64
}

// GoalObstacle represents the task of reaching a single goal cell while
// avoiding a single obstacle cell. Entering the obstacle is penalised
// but does not end the episode, so it can be entered repeatedly.
type GoalObstacle struct {
	goal, obstacle Position

	goalReward     float64
	obstacleReward float64
	timeStepReward float64
}

// NewGoalObstacle creates and returns a new GoalObstacle task
func NewGoalObstacle(goal, obstacle Position, goalReward, obstacleReward,
	timeStepReward float64) (*GoalObstacle, error) {
	if goal == obstacle {
		return nil, fmt.Errorf("newgoalobstacle: goal and obstacle must "+
			"differ, both are %v", goal)
	}

	return &GoalObstacle{
		goal:           goal,
		obstacle:       obstacle,
		goalReward:     goalReward,
		obstacleReward: obstacleReward,
		timeStepReward: timeStepReward,
	}, nil
}

// Outcome returns the reward for arriving at position p. The goal check
// takes priority over the obstacle check.
func (g *GoalObstacle) Outcome(p Position) (float64, bool) {
	switch p {
	case g.goal:
		return g.goalReward, true
	case g.obstacle:
		return g.obstacleReward, false
	default:
		return g.timeStepReward, false
	}
}

// Goal returns the goal position
func (g *GoalObstacle) Goal() Position {
	return g.goal
}

// Obstacle returns the obstacle position
func (g *GoalObstacle) Obstacle() Position {
	return g.obstacle
}

// Min returns the minimum reward attainable in the Task
func (g *GoalObstacle) Min() float64 {
	return floats.Min(g.rewards())
}

// Max returns the maximum reward attainable in the Task
func (g *GoalObstacle) Max() float64 {
	return floats.Max(g.rewards())
}

func (g *GoalObstacle) rewards() []float64 {
	return []float64{g.goalReward, g.obstacleReward, g.timeStepReward}
}

// String returns the GoalObstacle as a string
func (g *GoalObstacle) String() string {
	return fmt.Sprintf("Goal: %v (%+.1f) | Obstacle: %v (%+.1f) | Step: %+.1f",
		g.goal, g.goalReward, g.obstacle, g.obstacleReward, g.timeStepReward)
}
