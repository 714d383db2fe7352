package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	Convey("The default configuration is valid", t, func() {
		c := Default()
		So(c.Validate(), ShouldBeNil)
		So(c.Agent.Gamma, ShouldEqual, 0.9)
		So(c.Agent.BatchSize, ShouldEqual, 32)
		So(c.Agent.MaxSteps, ShouldEqual, 50)
		So(c.Agent.ExpReplay.MaxReplayCapacity, ShouldEqual, 2000)
		So(c.Agent.Sync.Interval, ShouldEqual, 10)
		So(c.Run.Episodes, ShouldEqual, 500)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a partial configuration file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "run.yaml")
		contents := `
agent:
  variant: dqn
  approximator:
    kind: linear
    learning_rate: 0.05
run:
  episodes: 20
  output_dir: ` + dir + `
environment:
  obstacle:
    row: 2
    col: 1
`
		So(os.WriteFile(path, []byte(contents), 0o644), ShouldBeNil)

		Convey("Keys in the file override the defaults", func() {
			c, err := Load(path)
			So(err, ShouldBeNil)
			So(c.Agent.Variant, ShouldEqual, "dqn")
			So(c.Agent.Approximator.Kind, ShouldEqual, "linear")
			So(c.Agent.Approximator.LearningRate, ShouldEqual, 0.05)
			So(c.Run.Episodes, ShouldEqual, 20)
			So(c.Environment.Obstacle.Row, ShouldEqual, 2)
			So(c.Environment.Obstacle.Col, ShouldEqual, 1)

			// Untouched keys keep their defaults
			So(c.Agent.Gamma, ShouldEqual, 0.9)
			So(c.Agent.BatchSize, ShouldEqual, 32)
			So(c.Agent.Approximator.Hidden, ShouldResemble, []int{24, 24})
			So(c.Environment.Goal.Row, ShouldEqual, 3)
		})

		Convey("Environment variables override the file", func() {
			t.Setenv("GRIDQN_RUN_EPISODES", "7")
			c, err := Load(path)
			So(err, ShouldBeNil)
			So(c.Run.Episodes, ShouldEqual, 7)
		})

		Convey("A recorded configuration loads back unchanged", func() {
			c, err := Load(path)
			So(err, ShouldBeNil)
			So(c.Record(), ShouldBeNil)

			recorded, err := Load(filepath.Join(dir, "config.yaml"))
			So(err, ShouldBeNil)
			So(recorded, ShouldResemble, c)
		})
	})

	Convey("Loading without a file gives the defaults", t, func() {
		c, err := Load("")
		So(err, ShouldBeNil)
		So(c, ShouldResemble, Default())
	})

	Convey("Invalid configurations are rejected", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		So(os.WriteFile(path, []byte("agent:\n  gamma: 2\n"), 0o644),
			ShouldBeNil)
		_, err := Load(path)
		So(err, ShouldNotBeNil)

		_, err = Load(filepath.Join(dir, "missing.yaml"))
		So(err, ShouldNotBeNil)
	})
}
