package report

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/gridqn/approximator"
	"github.com/samuelfneumann/gridqn/environment/gridworld"
)

// PrintPolicy writes a coloured map of the greedy policy of approx to
// w. The goal is green, the obstacle red and every other cell shows its
// greedy action and value. If colour is false, no escape codes are
// written.
func PrintPolicy(w io.Writer, g *gridworld.GridWorld,
	approx approximator.ValueApproximator, colour bool) error {
	cells, err := GreedyPolicy(g, approx)
	if err != nil {
		return fmt.Errorf("printpolicy: %w", err)
	}
	au := aurora.NewAurora(colour)

	for r, row := range cells {
		for c, cell := range row {
			p := gridworld.Position{Row: r, Col: c}
			var text aurora.Value
			switch p {
			case g.Goal():
				text = au.Green(fmt.Sprintf("%8s ", "GOAL"))
			case g.Obstacle():
				text = au.Red(fmt.Sprintf("%8s ", "XXXX"))
			default:
				text = au.Blue(fmt.Sprintf("%s %6.2f ", arrow(cell.Action),
					cell.Value))
			}
			fmt.Fprint(w, text)
			fmt.Fprint(w, au.White("|"))
		}
		fmt.Fprintln(w)
	}
	return nil
}
