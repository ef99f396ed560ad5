package experiment

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/sflearn/agent"
	env "github.com/samuelfneumann/sflearn/environment"
	"github.com/samuelfneumann/sflearn/experiment/checkpointer"
	"github.com/samuelfneumann/sflearn/experiment/tracker"
	"github.com/samuelfneumann/sflearn/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

// Online is an Experiment that runs an agent online only. After each
// episode a record is written to the tracker, then the agent's weights
// are optionally reset, then optionally checkpointed.
type Online struct {
	environment env.Environment
	learner     agent.Agent

	cfg          Config
	tracker      tracker.Tracker
	checkpointer checkpointer.Checkpointer // nil if disabled
	reset        *paramReset               // nil if disabled
	logger       zerolog.Logger

	base    tracker.Record
	episode tracker.Episode

	// States and true values of the fixed policy, nil if the
	// environment cannot compute them
	states []*mat.VecDense
	truth  []float64
}

// NewOnline creates and returns a new online experiment of agent a on
// environment e, configured by c
func NewOnline(e env.Environment, a agent.Agent, c Config, t tracker.Tracker,
	logger zerolog.Logger) (*Online, error) {
	base, err := baseRecord(c)
	if err != nil {
		return nil, fmt.Errorf("newOnline: %w", err)
	}

	o := &Online{
		environment: e,
		learner:     a,
		cfg:         c,
		tracker:     t,
		reset:       newParamReset(c.Training.ParamReset, c.Training.Seed, logger),
		logger:      logger,
		base:        base,
	}

	if n := c.Training.SaveCheckpoint; n != nil && *n > 0 {
		o.checkpointer, err = checkpointer.NewNStep(*n, a, c.Tree,
			checkpointer.UUIDFile(c.Training.CheckpointDir))
		if err != nil {
			return nil, fmt.Errorf("newOnline: %w", err)
		}
	}

	o.initDiagnostics()
	return o, nil
}

// initDiagnostics computes the true state values of the environment
// if both the environment and agent support it
func (o *Online) initDiagnostics() {
	evaluator, ok := o.environment.(env.Evaluator)
	if !ok {
		return
	}
	estimator, ok := o.learner.(agent.ValueEstimator)
	if !ok {
		return
	}

	truth, err := evaluator.TrueValues(estimator.Discount())
	if err != nil {
		o.logger.Warn().Err(err).Msg("could not compute true values")
		return
	}
	o.states = evaluator.States()
	o.truth = truth.RawVector().Data
}

// Run runs all episodes of the experiment
func (o *Online) Run() error {
	o.logger.Info().
		Str("env", o.cfg.Env.ClsString).
		Str("agent", o.cfg.Agent.ClsString).
		Uint64("seed", o.cfg.Training.Seed).
		Int("episodes", o.cfg.Training.NumEpisodes).
		Msg("starting run")

	for i := 0; i < o.cfg.Training.NumEpisodes; i++ {
		if err := o.RunEpisode(i); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	o.logger.Info().Msg("finished run")
	return nil
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode(episode int) error {
	step, err := o.environment.Reset()
	if err != nil {
		return fmt.Errorf("runEpisode: %w", err)
	}
	o.episode.Track(step)
	action := o.learner.BeginEpisode(step.Observation)

	for done := false; !done; {
		step, done, err = o.environment.Step(action)
		if err != nil {
			return fmt.Errorf("runEpisode: %w", err)
		}
		o.episode.Track(step)
		action = o.learner.Step(step.Observation, step.Reward, done)
	}

	r := o.record(episode)
	if err := o.tracker.Track(r); err != nil {
		return fmt.Errorf("runEpisode: %w", err)
	}
	o.logger.Debug().
		Int("episode", episode).
		Int("steps", o.episode.Steps()).
		Float64("return", o.episode.Return()).
		Msg("episode finished")

	if o.reset != nil && o.reset.Due(episode) {
		if err := o.reset.Reset(o.learner); err != nil {
			return fmt.Errorf("runEpisode: %w", err)
		}
		o.logger.Debug().Int("episode", episode).Msg("reset weights")
	}

	if o.checkpointer != nil {
		if err := o.checkpointer.Checkpoint(episode); err != nil {
			return fmt.Errorf("runEpisode: %w", err)
		}
	}
	return nil
}

// record returns the log record of the episode that just finished
func (o *Online) record(episode int) tracker.Record {
	r := make(tracker.Record, len(o.base)+10)
	for k, v := range o.base {
		r[k] = v
	}

	r["episode_idx"] = episode
	r["total_steps"] = o.episode.Steps()
	r["cumulative_reward"] = o.episode.Return()

	for k, v := range lossAverages(o.learner.Logs()) {
		r[k] = v
	}

	if o.truth != nil {
		estimator := o.learner.(agent.ValueEstimator)
		values := make([]float64, len(o.states))
		for i, s := range o.states {
			values[i] = estimator.StateValue(s)
		}
		r["v_fn_rmse"] = floatutils.RMSE(values, o.truth)

		if sr, ok := o.learner.(agent.SuccessorReturner); ok {
			for i, s := range o.states {
				values[i] = sr.SuccessorReturn(s, 0)
			}
			r["sf_G_rmse"] = floatutils.RMSE(values, o.truth)
		}
	}

	return r
}
