package report

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/gridqn/approximator"
	"github.com/samuelfneumann/gridqn/environment/gridworld"
)

// CellSize is the side length in pixels of one grid cell
const CellSize = 80

var (
	backgroundColour = color.RGBA{245, 245, 245, 255}
	gridColour       = color.RGBA{60, 60, 60, 255}
	goalColour       = color.RGBA{102, 187, 106, 255}
	obstacleColour   = color.RGBA{229, 115, 115, 255}
	startColour      = color.RGBA{144, 202, 249, 255}
	arrowColour      = color.RGBA{33, 33, 33, 255}
)

// Render draws the greedy policy of approx on the grid as an image
// context, with one arrow per cell
func Render(g *gridworld.GridWorld,
	approx approximator.ValueApproximator) (*gg.Context, error) {
	cells, err := GreedyPolicy(g, approx)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	rows, cols := g.Dims()

	dc := gg.NewContext(cols*CellSize, rows*CellSize)
	dc.SetColor(backgroundColour)
	dc.Clear()

	start := g.Start()
	for r, row := range cells {
		for c, cell := range row {
			x, y := float64(c*CellSize), float64(r*CellSize)
			p := gridworld.Position{Row: r, Col: c}

			switch p {
			case g.Goal():
				fillCell(dc, x, y, goalColour)
				continue
			case g.Obstacle():
				fillCell(dc, x, y, obstacleColour)
			case start:
				fillCell(dc, x, y, startColour)
			}
			drawArrow(dc, x+CellSize/2, y+CellSize/2, cell.Action)
		}
	}

	// Grid lines
	dc.SetColor(gridColour)
	dc.SetLineWidth(2.0)
	for r := 0; r <= rows; r++ {
		dc.DrawLine(0, float64(r*CellSize), float64(cols*CellSize),
			float64(r*CellSize))
	}
	for c := 0; c <= cols; c++ {
		dc.DrawLine(float64(c*CellSize), 0, float64(c*CellSize),
			float64(rows*CellSize))
	}
	dc.Stroke()

	return dc, nil
}

// SavePolicyPNG renders the greedy policy of approx and saves it as a
// PNG image at filename
func SavePolicyPNG(filename string, g *gridworld.GridWorld,
	approx approximator.ValueApproximator) error {
	dc, err := Render(g, approx)
	if err != nil {
		return fmt.Errorf("savepolicypng: %w", err)
	}
	return dc.SavePNG(filename)
}

// WritePolicyPNG renders the greedy policy of approx and encodes it as
// a PNG image to w
func WritePolicyPNG(w io.Writer, g *gridworld.GridWorld,
	approx approximator.ValueApproximator) error {
	dc, err := Render(g, approx)
	if err != nil {
		return fmt.Errorf("writepolicypng: %w", err)
	}
	return dc.EncodePNG(w)
}

func fillCell(dc *gg.Context, x, y float64, c color.Color) {
	dc.DrawRectangle(x, y, CellSize, CellSize)
	dc.SetColor(c)
	dc.Fill()
}

// drawArrow draws an arrow centred at (cx, cy) pointing in the
// direction of action a
func drawArrow(dc *gg.Context, cx, cy float64, a gridworld.Action) {
	d := a.Displacement()
	angle := math.Atan2(float64(d.Row), float64(d.Col))
	length := CellSize * 0.3

	dc.Push()
	dc.Translate(cx, cy)
	dc.Rotate(angle)

	dc.SetColor(arrowColour)
	dc.SetLineWidth(4.0)
	dc.DrawLine(-length, 0, length, 0)
	dc.Stroke()

	dc.MoveTo(length+4, 0)
	dc.LineTo(length-10, -8)
	dc.LineTo(length-10, 8)
	dc.ClosePath()
	dc.Fill()
	dc.Pop()
}
