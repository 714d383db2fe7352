// Package report renders the results of a training run: learning
// curves, and the greedy policy of an approximator on its gridworld
package report

import (
	"fmt"

	"github.com/samuelfneumann/gridqn/approximator"
	"github.com/samuelfneumann/gridqn/environment/gridworld"
	"github.com/samuelfneumann/gridqn/policy"
)

// Cell is the greedy action and its value at one grid position
type Cell struct {
	Action gridworld.Action
	Value  float64
}

// GreedyPolicy returns the greedy action and value of approx at every
// position of the grid, indexed by row then column
func GreedyPolicy(g *gridworld.GridWorld,
	approx approximator.ValueApproximator) ([][]Cell, error) {
	rows, cols := g.Dims()
	encoder := g.Encoder()
	if approx.Features() != encoder.Features() {
		return nil, fmt.Errorf("greedypolicy: approximator does not match "+
			"grid\n\twant(%v features)\n\thave(%v features)",
			encoder.Features(), approx.Features())
	}

	cells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			state := encoder.Encode(gridworld.Position{Row: r, Col: c})
			values, err := approx.Predict(state.T())
			if err != nil {
				return nil, fmt.Errorf("greedypolicy: %w", err)
			}

			action := policy.Greedy(values.RowView(0))
			cells[r][c] = Cell{
				Action: gridworld.Action(action),
				Value:  values.At(0, action),
			}
		}
	}
	return cells, nil
}

// arrow returns a single character pointing in the direction of a
func arrow(a gridworld.Action) string {
	switch a {
	case gridworld.Up:
		return "↑"
	case gridworld.Down:
		return "↓"
	case gridworld.Left:
		return "←"
	case gridworld.Right:
		return "→"
	default:
		return "?"
	}
}
