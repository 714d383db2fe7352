// Package gridworld implements a deterministic N x N gridworld with a
// single goal cell and a single obstacle cell
package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridqn/environment"
	"github.com/samuelfneumann/gridqn/timestep"
)

// Position is a (row, col) cell of a GridWorld, indexed from 0 at the
// top left corner.
type Position struct {
	Row int `mapstructure:"row" yaml:"row"`
	Col int `mapstructure:"col" yaml:"col"`
}

// Add returns the Position displaced by d
func (p Position) Add(d Position) Position {
	return Position{p.Row + d.Row, p.Col + d.Col}
}

// In returns whether the Position lies within an n x n grid
func (p Position) In(n int) bool {
	return p.Row >= 0 && p.Row < n && p.Col >= 0 && p.Col < n
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Action is one of the four moves available in a GridWorld. The
// integer value of an Action is its index in the action-value vector.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the number of actions available in a GridWorld
const NumActions = 4

var displacements = [NumActions]Position{
	Up:    {-1, 0},
	Down:  {+1, 0},
	Left:  {0, -1},
	Right: {0, +1},
}

// Displacement returns the (Δrow, Δcol) that the Action moves the agent
func (a Action) Displacement() Position {
	return displacements[a]
}

// Valid returns whether the Action is one of the enumerated actions
func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Actions returns all actions in enumeration order
func Actions() []Action {
	return []Action{Up, Down, Left, Right}
}

// GridWorld represents a gridworld environment
//
// Only the grid dimension and the current agent position are tracked.
// Observations are one-hot encodings of the agent position. Moves that
// would leave the grid are absorbed: the agent stays where it is and the
// step is rewarded as usual.
type GridWorld struct {
	Task
	Starter
	encoder     OneHot
	n           int
	position    Position
	currentStep timestep.TimeStep
}

// New creates a new n x n gridworld with Task t and Starter s. The
// returned GridWorld must be Reset before it is stepped.
func New(n int, t Task, s Starter) (*GridWorld, error) {
	if n < 1 {
		return nil, fmt.Errorf("new: grid size must be positive, have(%d)", n)
	}
	if !t.Goal().In(n) {
		return nil, fmt.Errorf("new: goal %v outside of %dx%d grid",
			t.Goal(), n, n)
	}
	if !t.Obstacle().In(n) {
		return nil, fmt.Errorf("new: obstacle %v outside of %dx%d grid",
			t.Obstacle(), n, n)
	}

	return &GridWorld{
		Task:    t,
		Starter: s,
		encoder: NewOneHot(n),
		n:       n,
	}, nil
}

// NewDefault returns the 4x4 GridWorld starting at (0, 0), with the
// goal at (3, 3) and the obstacle at (1, 1).
func NewDefault() *GridWorld {
	const n = 4
	task, err := NewGoalObstacle(Position{n - 1, n - 1}, Position{1, 1},
		GoalReward, ObstacleReward, StepReward)
	if err != nil {
		panic(fmt.Sprintf("newdefault: %v", err))
	}
	g, err := New(n, task, NewSingleStart(Position{0, 0}))
	if err != nil {
		panic(fmt.Sprintf("newdefault: %v", err))
	}
	return g
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.n, g.n
}

// Position returns the current position of the agent
func (g *GridWorld) Position() Position {
	return g.position
}

// Encoder returns the StateEncoder used to construct observations
func (g *GridWorld) Encoder() OneHot {
	return g.encoder
}

// Reset starts a new episode at the position given by the Starter
func (g *GridWorld) Reset() (timestep.TimeStep, error) {
	start := g.Start()
	if !start.In(g.n) {
		return timestep.TimeStep{}, fmt.Errorf("reset: start %v outside of "+
			"%dx%d grid", start, g.n, g.n)
	}
	g.position = start

	startStep := timestep.New(timestep.First, 0, 1, g.encoder.Encode(start), 0)
	g.currentStep = startStep
	return startStep, nil
}

// Step takes one action in the environment. The agent moves one cell in
// the direction of the action unless that would take it outside the
// grid, in which case it stays in place. The reward and whether the
// returned TimeStep is terminal depend only on the resulting position.
func (g *GridWorld) Step(action int) (timestep.TimeStep, bool, error) {
	a := Action(action)
	if !a.Valid() {
		return timestep.TimeStep{}, false, fmt.Errorf("step: illegal "+
			"action %d", action)
	}

	if next := g.position.Add(a.Displacement()); next.In(g.n) {
		g.position = next
	}

	reward, terminal := g.Outcome(g.position)
	stepType := timestep.Mid
	discount := 1.0
	if terminal {
		stepType = timestep.Last
		discount = 0.0
	}

	number := g.currentStep.Number + 1
	step := timestep.New(stepType, reward, discount,
		g.encoder.Encode(g.position), number)
	g.currentStep = step

	return step, terminal, nil
}

// ObservationSpec returns the observation specification of the
// environment: a one-hot vector of length n*n
func (g *GridWorld) ObservationSpec() environment.Spec {
	features := g.n * g.n
	shape := mat.NewVecDense(features, nil)
	lower := mat.NewVecDense(features, nil)
	upper := mat.NewVecDense(features, nil)
	for i := 0; i < features; i++ {
		upper.SetVec(i, 1.0)
	}

	spec, _ := environment.NewSpec(shape, environment.Observation, lower,
		upper, environment.Discrete)
	return spec
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{float64(Up)})
	upper := mat.NewVecDense(1, []float64{float64(Right)})

	spec, _ := environment.NewSpec(shape, environment.Action, lower, upper,
		environment.Discrete)
	return spec
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |   Goal: %v  |  Obstacle: %v  |  " +
		"Bounds: (%d, %d)"

	return fmt.Sprintf(str, g.position, g.Goal(), g.Obstacle(), g.n, g.n)
}
