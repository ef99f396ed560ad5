package experiment

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/sflearn/experiment/tracker"
	"github.com/samuelfneumann/sflearn/sweep"
)

// Progress is notified after each run of a sweep
type Progress interface {
	Increment()
	Display()
}

// Sweep runs every combination of a configuration tree, one after
// another, writing all records to the same Tracker
type Sweep struct {
	Tracker tracker.Tracker
	Logger  zerolog.Logger

	// CheckpointDir overrides training.checkpoint_dir if non-empty
	CheckpointDir string

	// Progress is optional
	Progress Progress
}

// Len returns the number of runs in the sweep over tree
func Len(tree map[string]interface{}) int {
	return sweep.New(tree).Len()
}

// Run runs the sweep over tree. Every combination is decoded before
// the first run starts, so a bad combination fails the sweep without
// running any. The sweep stops at the first run which fails.
func (s Sweep) Run(tree map[string]interface{}) error {
	var configs []Config
	for it, i := sweep.New(tree), 0; it.Next(); i++ {
		c, err := Decode(it.Config())
		if err != nil {
			return fmt.Errorf("run: run %d: %w", i, err)
		}
		if s.CheckpointDir != "" {
			c.Training.CheckpointDir = s.CheckpointDir
		}
		configs = append(configs, c)
	}
	s.Logger.Info().Int("runs", len(configs)).Msg("starting sweep")

	for i, c := range configs {
		logger := s.Logger.With().Int("run", i).Logger()

		exp, err := New(c, s.Tracker, logger)
		if err != nil {
			return fmt.Errorf("run: run %d: %w", i, err)
		}
		if err := exp.Run(); err != nil {
			return fmt.Errorf("run: run %d: %w", i, err)
		}

		if s.Progress != nil {
			s.Progress.Increment()
			s.Progress.Display()
		}
	}

	s.Logger.Info().Msg("finished sweep")
	return nil
}
