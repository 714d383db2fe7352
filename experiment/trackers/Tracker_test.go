package trackers

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/samuelfneumann/gridqn/agent"
)

func TestTrackers(t *testing.T) {
	Convey("Given trackers of a short experiment", t, func() {
		dir := t.TempDir()
		ret := NewReturn(filepath.Join(dir, "return.bin"))
		length := NewEpisodeLength(filepath.Join(dir, "length.bin"))
		eps := NewEpsilon(filepath.Join(dir, "epsilon.bin"))
		success := NewSuccess(filepath.Join(dir, "success.bin"))

		episodes := []agent.Episode{
			{Episode: 0, Return: -50, Steps: 50, Epsilon: 0.995},
			{Episode: 1, Return: 4, Steps: 7, Epsilon: 0.990025,
				ReachedGoal: true},
		}
		for _, ep := range episodes {
			for _, tr := range []Tracker{ret, length, eps, success} {
				tr.Track(ep)
			}
		}

		So(ret.Data(), ShouldResemble, []float64{-50, 4})
		So(length.Data(), ShouldResemble, []float64{50, 7})
		So(eps.Data(), ShouldResemble, []float64{0.995, 0.990025})
		So(success.Data(), ShouldResemble, []float64{0, 1})

		Convey("Saved data can be loaded again", func() {
			So(ret.Save(), ShouldBeNil)
			data, err := LoadData(filepath.Join(dir, "return.bin"))
			So(err, ShouldBeNil)
			So(data, ShouldResemble, []float64{-50, 4})
		})

		Convey("Loading a missing file fails", func() {
			_, err := LoadData(filepath.Join(dir, "missing.bin"))
			So(err, ShouldNotBeNil)
		})
	})
}
