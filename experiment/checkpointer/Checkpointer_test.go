package checkpointer

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/samuelfneumann/gridqn/agent"
	"github.com/samuelfneumann/gridqn/approximator"
)

func TestCheckpoint(t *testing.T) {
	Convey("Given a linear approximator", t, func() {
		dir := t.TempDir()
		approx, err := approximator.NewLinear(16, 4, 0.01, 0.5, 7)
		So(err, ShouldBeNil)

		Convey("Its weights survive a save and load", func() {
			filename := filepath.Join(dir, "weights.bin")
			So(Save(filename, 3, approx), ShouldBeNil)

			restored, err := approximator.NewLinear(16, 4, 0.01, 0, 1)
			So(err, ShouldBeNil)
			So(restored.Parameters().Equal(approx.Parameters()), ShouldBeFalse)

			c, err := Load(filename, restored)
			So(err, ShouldBeNil)
			So(c.Episode, ShouldEqual, 3)
			So(restored.Parameters().Equal(approx.Parameters()), ShouldBeTrue)
		})

		Convey("Loading into an incompatible approximator fails", func() {
			filename := filepath.Join(dir, "weights.bin")
			So(Save(filename, 0, approx), ShouldBeNil)

			other, err := approximator.NewLinear(8, 4, 0.01, 0, 1)
			So(err, ShouldBeNil)
			_, err = Load(filename, other)
			So(err, ShouldNotBeNil)
		})

		Convey("Saving reports a file that cannot be created", func() {
			filename := filepath.Join(dir, "missing", "weights.bin")
			So(Save(filename, 0, approx), ShouldNotBeNil)

			_, err := os.Stat(filename)
			So(os.IsNotExist(err), ShouldBeTrue)
		})

		Convey("Saving reports a checkpoint that cannot be written", func() {
			if _, err := os.Stat("/dev/full"); err == nil {
				err := Save("/dev/full", 0, approx)
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, "save:")
			}
		})

		Convey("An NEpisode checkpointer saves every n episodes", func() {
			names := FilenameEnumerator(0, filepath.Join(dir, "ckpt"), ".bin")
			c, err := NewNEpisode(3, approx, names)
			So(err, ShouldBeNil)

			for i := 0; i < 7; i++ {
				So(c.Checkpoint(agent.Episode{Episode: i}), ShouldBeNil)
			}

			files, err := filepath.Glob(filepath.Join(dir, "ckpt*.bin"))
			So(err, ShouldBeNil)
			So(len(files), ShouldEqual, 2)

			saved, err := Load(filepath.Join(dir, "ckpt2.bin"), nil)
			So(err, ShouldBeNil)
			So(saved.Episode, ShouldEqual, 5)
		})

		Convey("A non-positive interval is rejected", func() {
			_, err := NewNEpisode(0, approx,
				FilenameEnumerator(0, filepath.Join(dir, "x"), ".bin"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Filename generators", t, func() {
		next := FilenameEnumerator(4, "w", ".bin")
		So(next(), ShouldEqual, "w5.bin")
		So(next(), ShouldEqual, "w6.bin")
	})
}
