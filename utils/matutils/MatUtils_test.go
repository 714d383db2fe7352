package matutils

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

func TestMaxVec(t *testing.T) {
	Convey("MaxVec returns the index of the largest value", t, func() {
		So(MaxVec(mat.NewVecDense(4, []float64{1, 5, 3, 2})), ShouldEqual, 1)
		So(MaxVec(mat.NewVecDense(3, []float64{-3, -2, -1})), ShouldEqual, 2)
	})

	Convey("MaxVec breaks ties by the lowest index", t, func() {
		So(MaxVec(mat.NewVecDense(4, []float64{0, 0, 0, 0})), ShouldEqual, 0)
		So(MaxVec(mat.NewVecDense(4, []float64{1, 3, 3, 0})), ShouldEqual, 1)
	})
}
