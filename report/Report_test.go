package report

import (
	"bytes"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridqn/approximator"
	"github.com/samuelfneumann/gridqn/environment/gridworld"
)

// rightwards returns a linear approximator preferring Right everywhere
// except in the last column, where it prefers Down
func rightwards(t *testing.T) approximator.ValueApproximator {
	approx, err := approximator.NewLinear(16, 4, 0.01, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	weights := mat.NewDense(4, 16, nil)
	for s := 0; s < 16; s++ {
		if s%4 == 3 {
			weights.Set(int(gridworld.Down), s, 2)
		} else {
			weights.Set(int(gridworld.Right), s, 1)
		}
	}
	if err := approx.SetParameters(approximator.Parameters{weights,
		mat.NewDense(4, 1, nil)}); err != nil {
		t.Fatal(err)
	}
	return approx
}

func TestGreedyPolicy(t *testing.T) {
	Convey("Given an approximator with a known greedy policy", t, func() {
		g := gridworld.NewDefault()
		approx := rightwards(t)

		cells, err := GreedyPolicy(g, approx)
		So(err, ShouldBeNil)
		So(len(cells), ShouldEqual, 4)
		So(cells[0][0].Action, ShouldEqual, gridworld.Right)
		So(cells[0][0].Value, ShouldEqual, 1.0)
		So(cells[2][3].Action, ShouldEqual, gridworld.Down)
		So(cells[2][3].Value, ShouldEqual, 2.0)

		Convey("The console map marks the goal and obstacle", func() {
			var buf bytes.Buffer
			So(PrintPolicy(&buf, g, approx, false), ShouldBeNil)

			out := buf.String()
			So(strings.Count(out, "\n"), ShouldEqual, 4)
			So(out, ShouldContainSubstring, "GOAL")
			So(out, ShouldContainSubstring, "XXXX")
			So(out, ShouldContainSubstring, "→")
			So(out, ShouldNotContainSubstring, "\x1b[")
		})

		Convey("The policy image has one cell per position", func() {
			var buf bytes.Buffer
			So(WritePolicyPNG(&buf, g, approx), ShouldBeNil)

			img, err := png.Decode(&buf)
			So(err, ShouldBeNil)
			So(img.Bounds().Dx(), ShouldEqual, 4*CellSize)
			So(img.Bounds().Dy(), ShouldEqual, 4*CellSize)

			// The centre of the goal cell is filled
			r, gr, b, _ := img.At(3*CellSize+CellSize/2,
				3*CellSize+CellSize/2).RGBA()
			wr, wg, wb, _ := goalColour.RGBA()
			So([]uint32{r, gr, b}, ShouldResemble, []uint32{wr, wg, wb})
		})

		Convey("The image can be saved to disk", func() {
			filename := filepath.Join(t.TempDir(), "policy.png")
			So(SavePolicyPNG(filename, g, approx), ShouldBeNil)
		})
	})

	Convey("An approximator of the wrong size is rejected", t, func() {
		approx, err := approximator.NewLinear(9, 4, 0.01, 0, 1)
		So(err, ShouldBeNil)
		_, err = GreedyPolicy(gridworld.NewDefault(), approx)
		So(err, ShouldNotBeNil)
	})
}

func TestCurves(t *testing.T) {
	Convey("A moving average truncates its first windows", t, func() {
		avg := MovingAverage([]float64{2, 4, 6, 8}, 2)
		So(avg, ShouldResemble, []float64{2, 3, 5, 7})

		So(MovingAverage([]float64{1, 2}, 0), ShouldResemble,
			[]float64{1, 2})
	})

	Convey("Curves render to an HTML page", t, func() {
		var buf bytes.Buffer
		err := WriteCurves(&buf,
			Curve{Name: "return", Data: []float64{-50, -20, 5}, Window: 2},
			Curve{Name: "steps", Data: []float64{50, 21, 6}},
		)
		So(err, ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "<html")
		So(buf.String(), ShouldContainSubstring, "return")
		So(buf.String(), ShouldContainSubstring, "steps")
	})
}
