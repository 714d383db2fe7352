// Package config describes a complete training run: the environment,
// the agent and the experiment around them
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/gridqn/agent/deepq"
	"github.com/samuelfneumann/gridqn/approximator"
	"github.com/samuelfneumann/gridqn/environment/envconfig"
	"github.com/samuelfneumann/gridqn/expreplay"
	"github.com/samuelfneumann/gridqn/initwfn"
	"github.com/samuelfneumann/gridqn/policy"
	"github.com/samuelfneumann/gridqn/solver"
)

// EnvPrefix prefixes environment variables which override configuration
// keys, e.g. GRIDQN_RUN_EPISODES overrides run.episodes
const EnvPrefix = "GRIDQN"

// Run configures the experiment around an agent
type Run struct {
	Episodes int    `mapstructure:"episodes" yaml:"episodes"`
	Seed     uint64 `mapstructure:"seed" yaml:"seed"`

	// LogEvery logs a summary every LogEvery episodes, 0 disables logging
	LogEvery int `mapstructure:"log_every" yaml:"log_every"`

	// CheckpointEvery saves the online weights every CheckpointEvery
	// episodes, 0 disables checkpointing
	CheckpointEvery int    `mapstructure:"checkpoint_every" yaml:"checkpoint_every"`
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`

	// WarmupEpisodes of uniformly random behaviour fill the replay
	// buffer before training
	WarmupEpisodes int `mapstructure:"warmup_episodes" yaml:"warmup_episodes"`
	Workers        int `mapstructure:"workers" yaml:"workers"`
	EvalEpisodes   int `mapstructure:"eval_episodes" yaml:"eval_episodes"`
}

// Config is the configuration of a complete training run
type Config struct {
	Environment envconfig.Config `mapstructure:"environment" yaml:"environment"`
	Agent       deepq.Config     `mapstructure:"agent" yaml:"agent"`
	Run         Run              `mapstructure:"run" yaml:"run"`
}

// Default returns the default configuration: a Double DQN agent with a
// two layer MLP on the 4x4 gridworld
func Default() Config {
	return Config{
		Environment: envconfig.Default(),
		Agent: deepq.Config{
			Variant:   string(deepq.Double),
			Gamma:     0.9,
			BatchSize: 32,
			MaxSteps:  50,
			Sync: deepq.SyncConfig{
				Mode:     string(deepq.Copy),
				Interval: 10,
				Tau:      0.01,
			},
			Exploration: policy.Config{
				EpsilonStart: 1.0,
				EpsilonMin:   0.01,
				EpsilonDecay: 0.995,
			},
			ExpReplay: expreplay.Config{MaxReplayCapacity: 2000},
			Approximator: approximator.Config{
				Kind:         string(approximator.MLPKind),
				LearningRate: 0.001,
				Hidden:       []int{24, 24},
				Activation:   "relu",
				Solver:       solver.Settings{Type: string(solver.Adam)},
				Init:         initwfn.Settings{Type: string(initwfn.GlorotU)},
				InitScale:    0.1,
			},
		},
		Run: Run{
			Episodes:        500,
			Seed:            0,
			LogEvery:        25,
			CheckpointEvery: 100,
			OutputDir:       "results",
			WarmupEpisodes:  0,
			Workers:         4,
			EvalEpisodes:    20,
		},
	}
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if err := c.Environment.Validate(); err != nil {
		return fmt.Errorf("validate: environment: %w", err)
	}
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("validate: agent: %w", err)
	}

	r := c.Run
	if r.Episodes < 0 || r.LogEvery < 0 || r.CheckpointEvery < 0 ||
		r.WarmupEpisodes < 0 || r.EvalEpisodes < 0 {
		return fmt.Errorf("validate: run: episode counts must be " +
			"non-negative")
	}
	if r.Workers < 1 {
		return fmt.Errorf("validate: run: workers must be positive, "+
			"have(%v)", r.Workers)
	}
	return nil
}

// Load reads the configuration at path over the defaults. Keys
// missing from the file keep their default values and environment
// variables with the EnvPrefix override both. If path is empty, only
// the defaults and environment are used.
func Load(path string) (Config, error) {
	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return Config{}, fmt.Errorf("load: could not encode defaults: %w",
			err)
	}

	vp := viper.New()
	vp.SetConfigType("yaml")
	if err := vp.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, fmt.Errorf("load: could not read defaults: %w", err)
	}

	if path != "" {
		// The file's extension selects its format, e.g. yaml, json or toml
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			vp.SetConfigType(ext)
		}
		vp.SetConfigFile(path)
		if err := vp.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("load: could not read %v: %w", path,
				err)
		}
	}

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	var c Config
	if err := vp.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("load: could not decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}

// Record writes the configuration as YAML to config.yaml in the output
// directory, creating the directory if needed
func (c Config) Record() error {
	if err := os.MkdirAll(c.Run.OutputDir, 0o755); err != nil {
		return fmt.Errorf("record: %w", err)
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("record: could not encode config: %w", err)
	}
	filename := filepath.Join(c.Run.OutputDir, "config.yaml")
	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return nil
}
