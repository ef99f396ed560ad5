// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/experiment/checkpointer"
	"github.com/samuelfneumann/sflearn/experiment/tracker"

	// Register agent types
	_ "github.com/samuelfneumann/sflearn/agent/linear/sfreturn"
	_ "github.com/samuelfneumann/sflearn/agent/linear/tdlambda"
)

// Experiment runs all episodes of a single configuration
type Experiment interface {
	Run() error

	// RunEpisode runs the episode with index episode
	RunEpisode(episode int) error
}

// New creates the environment and agent described by c and returns an
// Online experiment which writes its records to t
func New(c Config, t tracker.Tracker, logger zerolog.Logger) (Experiment,
	error) {
	env, err := c.Env.Create(c.Training.Seed)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	ac, err := agent.NewConfig(agent.Type(c.Agent.ClsString), c.Agent.Kwargs)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	a, err := ac.CreateAgent(env, c.Training.Seed)
	if err != nil {
		return nil, fmt.Errorf("new: could not create agent: %w", err)
	}

	if path := c.Training.InitCheckpoint; path != "" {
		r, err := checkpointer.Load(path)
		if err != nil {
			return nil, fmt.Errorf("new: %w", err)
		}
		if err := checkpointer.Restore(a, r); err != nil {
			return nil, fmt.Errorf("new: %w", err)
		}
		logger.Info().Str("path", path).Int("episode", r.EpisodeIdx).
			Msg("restored checkpoint")
	}

	return NewOnline(env, a, c, t, logger)
}
